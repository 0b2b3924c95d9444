// Package cnumber provides the complex-valued sibling of number.Number: the
// same twelve slots, each holding a complex coefficient, with no checksum.
// Values serve as collapse inputs and register amplitudes.
package cnumber

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/arbitrary-number/quantix/internal/number"
)

// Number holds one complex coefficient per field a..l.
// The zero value is the complex zero.
type Number struct {
	coeffs [number.NumOrdinals]complex128
}

// Zero returns the value with every coefficient 0.
func Zero() Number {
	return Number{}
}

// One returns the identity pattern: every coefficient 1 except g and h.
func One() Number {
	var n Number
	for i := range n.coeffs {
		if i != number.FieldG && i != number.FieldH {
			n.coeffs[i] = 1
		}
	}
	return n
}

// Create returns a value whose a coefficient is re+im·i and whose other
// coefficients are zero. It is the scalar embedding used for amplitudes.
func Create(re, im float64) Number {
	var n Number
	n.coeffs[number.FieldA] = complex(re, im)
	return n
}

// FromCoefficients builds a value from all twelve coefficients.
func FromCoefficients(c [number.NumOrdinals]complex128) Number {
	return Number{coeffs: c}
}

// FromNumber lifts a structured number into the complex domain using its
// signed field values.
func FromNumber(n number.Number) Number {
	var c Number
	for i := range c.coeffs {
		v, _ := n.SignedOrdinal(i)
		c.coeffs[i] = complex(float64(v), 0)
	}
	return c
}

// Coefficient returns the coefficient at index.
func (n Number) Coefficient(index int) (complex128, error) {
	if index < 0 || index >= number.NumOrdinals {
		return 0, indexError(index)
	}
	return n.coeffs[index], nil
}

// SetCoefficient stores v at index.
func (n *Number) SetCoefficient(index int, v complex128) error {
	if index < 0 || index >= number.NumOrdinals {
		return indexError(index)
	}
	n.coeffs[index] = v
	return nil
}

// Coefficients returns a copy of all twelve coefficients.
func (n Number) Coefficients() [number.NumOrdinals]complex128 {
	return n.coeffs
}

// Scalar returns the a coefficient, which carries the value of a Create'd number.
func (n Number) Scalar() complex128 {
	return n.coeffs[number.FieldA]
}

// NormSquared returns the sum of |c|² over every coefficient.
func (n Number) NormSquared() float64 {
	var s float64
	for _, c := range n.coeffs {
		s += real(c)*real(c) + imag(c)*imag(c)
	}
	return s
}

// Add returns the coefficient-wise sum.
func (n Number) Add(o Number) Number {
	for i := range n.coeffs {
		n.coeffs[i] += o.coeffs[i]
	}
	return n
}

// Sub returns the coefficient-wise difference.
func (n Number) Sub(o Number) Number {
	for i := range n.coeffs {
		n.coeffs[i] -= o.coeffs[i]
	}
	return n
}

// Scale multiplies every coefficient by a real factor.
func (n Number) Scale(f float64) Number {
	return n.Mul(complex(f, 0))
}

// Mul multiplies every coefficient by a complex factor.
func (n Number) Mul(f complex128) Number {
	for i := range n.coeffs {
		n.coeffs[i] *= f
	}
	return n
}

// Conjugate returns the coefficient-wise complex conjugate.
func (n Number) Conjugate() Number {
	for i := range n.coeffs {
		n.coeffs[i] = cmplx.Conj(n.coeffs[i])
	}
	return n
}

// IsZero reports whether every coefficient is exactly zero.
func (n Number) IsZero() bool {
	return n == Number{}
}

// Equal reports whether every coefficient of n and o differs by at most tol
// in modulus.
func (n Number) Equal(o Number, tol float64) bool {
	for i := range n.coeffs {
		if cmplx.Abs(n.coeffs[i]-o.coeffs[i]) > tol {
			return false
		}
	}
	return true
}

// IsFinite reports whether no coefficient is NaN or infinite.
func (n Number) IsFinite() bool {
	for _, c := range n.coeffs {
		if cmplx.IsNaN(c) || cmplx.IsInf(c) {
			return false
		}
	}
	return true
}

// String lists the non-zero coefficients, or "0".
func (n Number) String() string {
	var parts []string
	for i, c := range n.coeffs {
		if c == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%s", number.OrdinalNames[i], FormatComplex(c)))
	}
	if len(parts) == 0 {
		return "0"
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FormatComplex renders c as "re+imi" with the shortest float formatting,
// dropping a zero imaginary part.
func FormatComplex(c complex128) string {
	re, im := real(c), imag(c)
	if im == 0 {
		return fmt.Sprintf("%g", re)
	}
	if math.Signbit(im) {
		return fmt.Sprintf("%g-%gi", re, -im)
	}
	return fmt.Sprintf("%g+%gi", re, im)
}

func indexError(index int) error {
	return &number.Error{
		Code:    number.ErrCodeInvalidFieldIndex,
		Message: fmt.Sprintf("coefficient index %d outside [0, %d]", index, number.NumOrdinals-1),
		Field:   index,
		Value:   int64(index),
	}
}
