package expr

import (
	"fmt"

	"github.com/arbitrary-number/quantix/internal/ir"
	"github.com/arbitrary-number/quantix/internal/number"
)

// Node kinds in the canonical encoding.
const (
	KindLiteral  = "literal"
	KindVariable = "variable"
	KindUnary    = "unary"
	KindBinary   = "binary"
	KindFunction = "function"
)

// Encode returns the canonical interchange form of the tree.
func Encode(n Node) ir.Object {
	switch v := n.(type) {
	case *Literal:
		return ir.Object{"kind": ir.String(KindLiteral), "value": v.Value.IR()}
	case *Variable:
		return ir.Object{"kind": ir.String(KindVariable), "name": ir.String(v.Name)}
	case *Unary:
		return ir.Object{"kind": ir.String(KindUnary), "op": ir.String(v.Op.String()), "arg": Encode(v.X)}
	case *Binary:
		return ir.Object{
			"kind":  ir.String(KindBinary),
			"op":    ir.String(v.Op.String()),
			"left":  Encode(v.Left),
			"right": Encode(v.Right),
		}
	case *Func:
		return ir.Object{"kind": ir.String(KindFunction), "fn": ir.String(v.Fn.String()), "arg": Encode(v.Arg)}
	}
	panic("expr: unknown node type")
}

// Decode rebuilds a tree from its canonical form.
func Decode(obj ir.Object) (Node, error) {
	kind, err := obj.String("kind")
	if err != nil {
		return nil, fmt.Errorf("decode node: %w", err)
	}

	switch kind {
	case KindLiteral:
		val, err := obj.Object("value")
		if err != nil {
			return nil, fmt.Errorf("decode literal: %w", err)
		}
		num, err := number.FromIR(val)
		if err != nil {
			return nil, fmt.Errorf("decode literal: %w", err)
		}
		return NewLiteral(num), nil

	case KindVariable:
		name, err := obj.String("name")
		if err != nil {
			return nil, fmt.Errorf("decode variable: %w", err)
		}
		return NewVariable(name), nil

	case KindUnary:
		opName, err := obj.String("op")
		if err != nil {
			return nil, fmt.Errorf("decode unary: %w", err)
		}
		op, err := ParseUnaryOp(opName)
		if err != nil {
			return nil, err
		}
		x, err := decodeChild(obj, "arg")
		if err != nil {
			return nil, err
		}
		return NewUnary(op, x), nil

	case KindBinary:
		opName, err := obj.String("op")
		if err != nil {
			return nil, fmt.Errorf("decode binary: %w", err)
		}
		op, err := ParseBinaryOp(opName)
		if err != nil {
			return nil, err
		}
		l, err := decodeChild(obj, "left")
		if err != nil {
			return nil, err
		}
		r, err := decodeChild(obj, "right")
		if err != nil {
			return nil, err
		}
		return NewBinary(op, l, r), nil

	case KindFunction:
		fnName, err := obj.String("fn")
		if err != nil {
			return nil, fmt.Errorf("decode function: %w", err)
		}
		fn, err := ParseFunction(fnName)
		if err != nil {
			return nil, err
		}
		arg, err := decodeChild(obj, "arg")
		if err != nil {
			return nil, err
		}
		return NewFunc(fn, arg), nil
	}
	return nil, fmt.Errorf("decode node: unknown kind %q", kind)
}

func decodeChild(obj ir.Object, key string) (Node, error) {
	child, err := obj.Object(key)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", obj["kind"], err)
	}
	n, err := Decode(child)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// ID returns the content identifier of the tree. Structurally equal trees
// built from identical literals share an ID.
func ID(n Node) string {
	return ir.MustHash(ir.DomainTree, Encode(n))
}
