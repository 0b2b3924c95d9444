package expr

import "github.com/arbitrary-number/quantix/internal/number"

// Simplify returns a simplified copy of n, rewriting bottom-up:
//
//	x + 0 → x    0 + x → x
//	x * 1 → x    1 * x → x
//	x * 0 → 0    0 * x → 0
//
// Zero and one are recognized only on literal nodes. The input tree is not
// modified. A node that Simplify already produced is returned as is, so
// Simplify(Simplify(t)) is Simplify(t).
func Simplify(n Node) Node {
	if n.Simplified() {
		return n
	}
	return simplify(n)
}

// simplify always returns a fresh, parentless node.
func simplify(n Node) Node {
	var out Node
	switch v := n.(type) {
	case *Literal:
		out = NewLiteral(v.Value)
	case *Variable:
		out = &Variable{Name: v.Name}
	case *Unary:
		out = NewUnary(v.Op, simplify(v.X))
	case *Func:
		out = NewFunc(v.Fn, simplify(v.Arg))
	case *Binary:
		l, r := simplify(v.Left), simplify(v.Right)
		out = rewrite(v.Op, l, r)
	}
	out.meta().simplified = true
	return out
}

func rewrite(op BinaryOp, l, r Node) Node {
	switch op {
	case OpAdd:
		if isLiteral(r, number.Zero()) {
			return l
		}
		if isLiteral(l, number.Zero()) {
			return r
		}
	case OpMultiply:
		if isLiteral(r, number.One()) {
			return l
		}
		if isLiteral(l, number.One()) {
			return r
		}
		if isLiteral(r, number.Zero()) || isLiteral(l, number.Zero()) {
			return NewLiteral(number.Zero())
		}
	}
	return NewBinary(op, l, r)
}

func isLiteral(n Node, want number.Number) bool {
	lit, ok := n.(*Literal)
	return ok && lit.Value.Equal(want)
}
