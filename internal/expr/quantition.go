package expr

import (
	"fmt"

	"github.com/arbitrary-number/quantix/internal/number"
)

// DivisionMarker returns the value quantition produces when a divisor reduces
// to zero: a=1, b=0, c=1, every other field 1, all signs positive.
func DivisionMarker() number.Number {
	var ords [number.NumOrdinals]int
	for i := range ords {
		ords[i] = 1
	}
	ords[number.FieldB] = 0
	return number.MustFromFields(ords, [number.NumOrdinals]bool{})
}

// IsDivisionMarker reports whether n is exactly the division marker.
func IsDivisionMarker(n number.Number) bool {
	return n.Identical(DivisionMarker())
}

// Step describes one reduced node during a traced quantition.
type Step struct {
	Depth int
	Node  Node
	Value number.Number

	// Deferred is set when a zero divisor was replaced by the marker.
	Deferred bool
}

// Quantition reduces n to a structured number.
//
// It fails with UNBOUND_VARIABLE on any variable and with
// UNSUPPORTED_OPERATION on power, root and the transcendental functions.
// Division by a zero-valued divisor is not an error.
func Quantition(n Node) (number.Number, error) {
	return quantition(n, 0, nil)
}

// QuantitionTrace is Quantition that calls fn for every reduced node in
// post-order.
func QuantitionTrace(n Node, fn func(Step)) (number.Number, error) {
	return quantition(n, 0, fn)
}

func quantition(n Node, depth int, fn func(Step)) (number.Number, error) {
	var (
		v        number.Number
		deferred bool
	)

	switch node := n.(type) {
	case *Literal:
		v = node.Value
	case *Variable:
		return number.Number{}, &EvalError{
			Code:    ErrCodeUnboundVariable,
			Message: fmt.Sprintf("variable %q has no value", node.Name),
			Node:    node.Name,
		}
	case *Unary:
		x, err := quantition(node.X, depth+1, fn)
		if err != nil {
			return number.Number{}, err
		}
		v, err = applyUnary(node, x)
		if err != nil {
			return number.Number{}, err
		}
	case *Binary:
		l, err := quantition(node.Left, depth+1, fn)
		if err != nil {
			return number.Number{}, err
		}
		r, err := quantition(node.Right, depth+1, fn)
		if err != nil {
			return number.Number{}, err
		}
		v, deferred, err = applyBinary(node, l, r)
		if err != nil {
			return number.Number{}, err
		}
	case *Func:
		x, err := quantition(node.Arg, depth+1, fn)
		if err != nil {
			return number.Number{}, err
		}
		v, err = applyFunc(node, x)
		if err != nil {
			return number.Number{}, err
		}
	default:
		return number.Number{}, fmt.Errorf("quantition: unknown node type %T", n)
	}

	if fn != nil {
		fn(Step{Depth: depth, Node: n, Value: v, Deferred: deferred})
	}
	return v, nil
}

func applyUnary(node *Unary, x number.Number) (number.Number, error) {
	switch node.Op {
	case OpNegate:
		return x.Negate(), nil
	default:
		return number.Number{}, unsupported(node.Op.String(), node)
	}
}

func applyBinary(node *Binary, l, r number.Number) (number.Number, bool, error) {
	switch node.Op {
	case OpAdd:
		return l.Add(r), false, nil
	case OpSubtract:
		return l.Sub(r), false, nil
	case OpMultiply:
		return l.Mul(r), false, nil
	case OpDivide:
		if r.IsZero() {
			return DivisionMarker(), true, nil
		}
		return l.Div(r), false, nil
	default:
		return number.Number{}, false, unsupported(node.Op.String(), node)
	}
}

func applyFunc(node *Func, x number.Number) (number.Number, error) {
	switch node.Fn {
	case FnAbs:
		return x.Abs(), nil
	case FnSqrt:
		return x.Sqrt(), nil
	default:
		return number.Number{}, unsupported(node.Fn.String(), node)
	}
}

func unsupported(name string, n Node) *EvalError {
	return &EvalError{
		Code:    ErrCodeUnsupportedOperation,
		Message: fmt.Sprintf("%s is not defined on structured numbers", name),
		Node:    n.String(),
	}
}
