package collapse

import (
	"github.com/arbitrary-number/quantix/internal/cnumber"
	"github.com/arbitrary-number/quantix/internal/number"
)

// ToCollapseTree expands the coefficients of n into the nested division
//
//	(((a+g)/(b+g))/(c+h)) / (((d*(b+h))/(e*b*i))/(f*b*j))
//
// with every field as a Constant. Fields k and l do not take part.
func ToCollapseTree(n cnumber.Number) Expr {
	c := n.Coefficients()
	return nest(func(i int) Expr { return &Constant{Value: c[i]} })
}

// SymbolicTree is the same shape as ToCollapseTree with every field as a
// Symbol named by its letter.
func SymbolicTree() Expr {
	return nest(func(i int) Expr { return &Symbol{Name: number.OrdinalNames[i]} })
}

// SymbolBindings binds every field letter to the matching coefficient of n.
func SymbolBindings(n cnumber.Number) Bindings {
	c := n.Coefficients()
	b := make(Bindings, number.NumOrdinals)
	for i, name := range number.OrdinalNames {
		b[name] = c[i]
	}
	return b
}

// CollapseNumber collapses the nested division of n.
func CollapseNumber(n cnumber.Number) (complex128, error) {
	return Collapse(SymbolicTree(), SymbolBindings(n))
}

func nest(leaf func(int) Expr) Expr {
	f := func(name string) Expr { return leaf(number.FieldIndex(name)) }

	t1 := &Add{f("a"), f("g")}
	t2 := &Add{f("b"), f("g")}
	t3 := &Add{f("c"), f("h")}
	t4 := &Mul{f("d"), &Add{f("b"), f("h")}}
	t5 := &Mul{&Mul{f("e"), f("b")}, f("i")}
	t6 := &Mul{&Mul{f("f"), f("b")}, f("j")}

	return &Div{
		&Div{&Div{t1, t2}, t3},
		&Div{&Div{t4, t5}, t6},
	}
}
