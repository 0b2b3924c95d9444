// Package collapse evaluates complex-valued expression trees to a single
// complex number.
//
// Unlike quantition in package expr, collapse needs every symbol bound and
// reports a true division by zero as an error.
package collapse

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/arbitrary-number/quantix/internal/cnumber"
)

// Expr is a sealed interface over collapse tree nodes.
type Expr interface {
	String() string
	collapseExpr()
}

// Constant is a complex literal.
type Constant struct{ Value complex128 }

// Symbol is a named value looked up in the bindings.
type Symbol struct{ Name string }

// Add, Sub, Mul and Div combine two sub-expressions.
type (
	Add struct{ L, R Expr }
	Sub struct{ L, R Expr }
	Mul struct{ L, R Expr }
	Div struct{ L, R Expr }
)

func (*Constant) collapseExpr() {}
func (*Symbol) collapseExpr()   {}
func (*Add) collapseExpr()      {}
func (*Sub) collapseExpr()      {}
func (*Mul) collapseExpr()      {}
func (*Div) collapseExpr()      {}

func (e *Constant) String() string { return formatConstant(e.Value) }
func (e *Symbol) String() string   { return e.Name }
func (e *Add) String() string      { return fmt.Sprintf("(%s + %s)", e.L, e.R) }
func (e *Sub) String() string      { return fmt.Sprintf("(%s - %s)", e.L, e.R) }
func (e *Mul) String() string      { return fmt.Sprintf("(%s * %s)", e.L, e.R) }
func (e *Div) String() string      { return fmt.Sprintf("(%s / %s)", e.L, e.R) }

// NewSymbol returns a symbol whose name is NFC-normalized, so canonically
// equivalent spellings bind to the same value.
func NewSymbol(name string) *Symbol {
	return &Symbol{Name: norm.NFC.String(name)}
}

// Bindings maps symbol names to values.
type Bindings map[string]complex128

// Set binds the NFC form of name to v.
func (b Bindings) Set(name string, v complex128) {
	b[norm.NFC.String(name)] = v
}

// Collapse evaluates e against bindings.
func Collapse(e Expr, bindings Bindings) (complex128, error) {
	switch n := e.(type) {
	case *Constant:
		return n.Value, nil
	case *Symbol:
		v, ok := bindings[n.Name]
		if !ok {
			return 0, &Error{
				Code:    ErrCodeUnboundSymbol,
				Message: fmt.Sprintf("symbol %q is not bound", n.Name),
				Symbol:  n.Name,
			}
		}
		return v, nil
	case *Add:
		return binary(n.L, n.R, bindings, func(l, r complex128) complex128 { return l + r })
	case *Sub:
		return binary(n.L, n.R, bindings, func(l, r complex128) complex128 { return l - r })
	case *Mul:
		return binary(n.L, n.R, bindings, func(l, r complex128) complex128 { return l * r })
	case *Div:
		l, err := Collapse(n.L, bindings)
		if err != nil {
			return 0, err
		}
		r, err := Collapse(n.R, bindings)
		if err != nil {
			return 0, err
		}
		if r == 0 {
			return 0, &Error{
				Code:    ErrCodeDivisionByZero,
				Message: fmt.Sprintf("denominator %s is zero", n.R),
			}
		}
		return l / r, nil
	}
	return 0, fmt.Errorf("collapse: unknown node type %T", e)
}

func binary(le, re Expr, bindings Bindings, op func(l, r complex128) complex128) (complex128, error) {
	l, err := Collapse(le, bindings)
	if err != nil {
		return 0, err
	}
	r, err := Collapse(re, bindings)
	if err != nil {
		return 0, err
	}
	return op(l, r), nil
}

// formatConstant parenthesizes constants with an imaginary part so they read
// as one operand inside a tree.
func formatConstant(c complex128) string {
	if imag(c) == 0 {
		return cnumber.FormatComplex(c)
	}
	return "(" + cnumber.FormatComplex(c) + ")"
}
