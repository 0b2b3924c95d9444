package expr

import (
	"golang.org/x/text/unicode/norm"

	"github.com/arbitrary-number/quantix/internal/number"
)

// Node is a sealed interface over tree nodes.
// Only *Literal, *Variable, *Unary, *Binary and *Func implement it.
type Node interface {
	// Parent returns the enclosing node, or nil for a root.
	Parent() Node

	// Simplified reports whether Simplify produced this node.
	Simplified() bool

	String() string

	meta() *nodeMeta
}

// nodeMeta holds derived data that is not part of a node's identity.
type nodeMeta struct {
	parent     Node
	simplified bool
}

func (m *nodeMeta) Parent() Node { return m.parent }
func (m *nodeMeta) Simplified() bool { return m.simplified }
func (m *nodeMeta) meta() *nodeMeta { return m }

// Literal is a constant structured number.
type Literal struct {
	nodeMeta
	Value number.Number
}

// Variable is a named placeholder. Quantition refuses to reduce it.
type Variable struct {
	nodeMeta
	Name string
}

// Unary applies a unary operator to X.
type Unary struct {
	nodeMeta
	Op UnaryOp
	X  Node
}

// Binary applies a binary operator to Left and Right.
type Binary struct {
	nodeMeta
	Op          BinaryOp
	Left, Right Node
}

// Func applies a function to Arg.
type Func struct {
	nodeMeta
	Fn  Function
	Arg Node
}

// NewLiteral returns a literal node holding v.
func NewLiteral(v number.Number) *Literal {
	return &Literal{Value: v}
}

// NewVariable returns a variable node. The name is NFC-normalized so that
// visually identical names bind identically.
func NewVariable(name string) *Variable {
	return &Variable{Name: norm.NFC.String(name)}
}

// NewUnary returns op applied to x and becomes x's parent.
func NewUnary(op UnaryOp, x Node) *Unary {
	n := &Unary{Op: op, X: adopt(x)}
	n.X.meta().parent = n
	return n
}

// NewBinary returns op applied to left and right and becomes their parent.
func NewBinary(op BinaryOp, left, right Node) *Binary {
	n := &Binary{Op: op, Left: adopt(left), Right: adopt(right)}
	n.Left.meta().parent = n
	n.Right.meta().parent = n
	return n
}

// NewFunc returns fn applied to arg and becomes arg's parent.
func NewFunc(fn Function, arg Node) *Func {
	n := &Func{Fn: fn, Arg: adopt(arg)}
	n.Arg.meta().parent = n
	return n
}

// Add, Sub, Mul and Div are shorthands for NewBinary.
func Add(l, r Node) *Binary { return NewBinary(OpAdd, l, r) }
func Sub(l, r Node) *Binary { return NewBinary(OpSubtract, l, r) }
func Mul(l, r Node) *Binary { return NewBinary(OpMultiply, l, r) }
func Div(l, r Node) *Binary { return NewBinary(OpDivide, l, r) }

// adopt returns n itself when it is free, or a deep copy when another node
// already owns it. A node therefore never has two parents.
func adopt(n Node) Node {
	if n.Parent() == nil {
		return n
	}
	return Clone(n)
}

// Clone returns a deep copy of n with no parent. Flags are preserved.
func Clone(n Node) Node {
	var c Node
	switch v := n.(type) {
	case *Literal:
		c = NewLiteral(v.Value)
	case *Variable:
		c = &Variable{Name: v.Name}
	case *Unary:
		c = NewUnary(v.Op, Clone(v.X))
	case *Binary:
		c = NewBinary(v.Op, Clone(v.Left), Clone(v.Right))
	case *Func:
		c = NewFunc(v.Fn, Clone(v.Arg))
	default:
		panic("expr: unknown node type")
	}
	c.meta().simplified = n.Simplified()
	return c
}

// Children returns the direct children of n in evaluation order.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Unary:
		return []Node{v.X}
	case *Binary:
		return []Node{v.Left, v.Right}
	case *Func:
		return []Node{v.Arg}
	default:
		return nil
	}
}

// Root follows parent links to the top of the tree.
func Root(n Node) Node {
	for n.Parent() != nil {
		n = n.Parent()
	}
	return n
}
