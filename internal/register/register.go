// Package register models a multi-qubit state as a dense vector of complex
// structured amplitudes, and implements Born-rule measurement over it.
//
// Qubit q corresponds to bit (n-1-q) of an amplitude index, so qubit 0 is
// the most significant bit. Registers are not safe for concurrent mutation.
package register

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/arbitrary-number/quantix/internal/cnumber"
)

// MaxQubits bounds the register width.
const MaxQubits = 16

// Tolerance is the accepted deviation of the total probability from 1.
const Tolerance = 1e-9

// Register is a fixed-width vector of 2^n amplitudes.
type Register struct {
	qubits int
	amps   []cnumber.Number
}

// New returns a register of the given width with every amplitude zero.
// Its total probability is 0 until amplitudes are assigned.
func New(qubits int) (*Register, error) {
	if qubits < 1 || qubits > MaxQubits {
		return nil, errorf(ErrCodeInvalidQubitCount, "qubit count %d outside [1, %d]", qubits, MaxQubits)
	}
	return &Register{qubits: qubits, amps: make([]cnumber.Number, 1<<qubits)}, nil
}

// WithZeroState returns a register in the basis state |0…0⟩.
func WithZeroState(qubits int) (*Register, error) {
	r, err := New(qubits)
	if err != nil {
		return nil, err
	}
	r.amps[0] = cnumber.Create(1, 0)
	return r, nil
}

// FromAmplitudes builds a register from scalar amplitudes. The length must
// be a power of two. The amplitudes are not normalized.
func FromAmplitudes(amps ...complex128) (*Register, error) {
	n := 0
	for 1<<n < len(amps) {
		n++
	}
	if len(amps) == 0 || 1<<n != len(amps) {
		return nil, errorf(ErrCodeInvalidQubitCount, "%d amplitudes is not a power of two", len(amps))
	}
	if n == 0 {
		return nil, errorf(ErrCodeInvalidQubitCount, "a register needs at least one qubit")
	}
	r, err := New(n)
	if err != nil {
		return nil, err
	}
	for i, a := range amps {
		r.amps[i] = cnumber.Create(real(a), imag(a))
	}
	return r, nil
}

// Qubits returns the register width.
func (r *Register) Qubits() int { return r.qubits }

// Dimension returns the number of amplitudes, 2^Qubits.
func (r *Register) Dimension() int { return len(r.amps) }

// Amplitude returns the amplitude at index.
func (r *Register) Amplitude(index int) (cnumber.Number, error) {
	if index < 0 || index >= len(r.amps) {
		return cnumber.Number{}, r.indexError(index)
	}
	return r.amps[index], nil
}

// SetAmplitude stores v at index.
func (r *Register) SetAmplitude(index int, v cnumber.Number) error {
	if index < 0 || index >= len(r.amps) {
		return r.indexError(index)
	}
	r.amps[index] = v
	return nil
}

// Probabilities returns the squared norm of every amplitude.
func (r *Register) Probabilities() []float64 {
	p := make([]float64, len(r.amps))
	for i, a := range r.amps {
		p[i] = a.NormSquared()
	}
	return p
}

// TotalProbability returns the sum of Probabilities.
func (r *Register) TotalProbability() float64 {
	return floats.Sum(r.Probabilities())
}

// IsNormalized reports whether the total probability is 1 within Tolerance.
func (r *Register) IsNormalized() bool {
	return math.Abs(r.TotalProbability()-1) <= Tolerance
}

// Normalize scales the amplitudes so the total probability is 1.
// A register with no probability mass cannot be normalized.
func (r *Register) Normalize() error {
	total := r.TotalProbability()
	if total == 0 {
		return errorf(ErrCodeDegenerateMeasurement, "register has zero probability mass")
	}
	r.scale(1 / math.Sqrt(total))
	return nil
}

// Clone returns an independent copy.
func (r *Register) Clone() *Register {
	c := &Register{qubits: r.qubits, amps: make([]cnumber.Number, len(r.amps))}
	copy(c.amps, r.amps)
	return c
}

// String lists the non-zero amplitudes by basis state.
func (r *Register) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Register(%d qubits)", r.qubits)
	for i, a := range r.amps {
		if a.IsZero() {
			continue
		}
		fmt.Fprintf(&b, "\n  |%0*b⟩ %s", r.qubits, i, a)
	}
	return b.String()
}

func (r *Register) scale(f float64) {
	for i := range r.amps {
		r.amps[i] = r.amps[i].Scale(f)
	}
}

func (r *Register) checkQubit(q int) error {
	if q < 0 || q >= r.qubits {
		return errorf(ErrCodeInvalidQubitIndex, "qubit %d outside [0, %d)", q, r.qubits)
	}
	return nil
}

// bit returns the value of qubit q in basis index i.
func (r *Register) bit(i, q int) int {
	return (i >> (r.qubits - 1 - q)) & 1
}

func (r *Register) indexError(index int) *Error {
	return errorf(ErrCodeInvalidAmplitudeIndex, "amplitude index %d outside [0, %d)", index, len(r.amps))
}
