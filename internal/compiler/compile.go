package compiler

import (
	"fmt"
	"slices"

	"cuelang.org/go/cue/token"

	"github.com/arbitrary-number/quantix/internal/cnumber"
	"github.com/arbitrary-number/quantix/internal/collapse"
	"github.com/arbitrary-number/quantix/internal/expr"
	"github.com/arbitrary-number/quantix/internal/number"
	"github.com/arbitrary-number/quantix/internal/register"
)

// Program is a compiled document. Fields are nil when the document omits
// the corresponding key.
type Program struct {
	Expr     expr.Node
	Values   map[string]number.Number
	Collapse collapse.Expr
	Bindings collapse.Bindings
	Register *register.Register
	Targets  []int
}

// Compile builds every section present in doc.
func Compile(doc *Document) (*Program, error) {
	c := &compiler{source: doc.source}
	p := &Program{}
	var err error

	if doc.Expr != nil {
		if p.Expr, err = c.node(doc.Expr, "expr"); err != nil {
			return nil, err
		}
	}
	if doc.Values != nil {
		if p.Values, err = c.values(doc.Values); err != nil {
			return nil, err
		}
	}
	if doc.Collapse != nil {
		if p.Collapse, err = c.collapseNode(doc.Collapse, "collapse"); err != nil {
			return nil, err
		}
	}
	if doc.Bindings != nil {
		p.Bindings = make(collapse.Bindings, len(doc.Bindings))
		for name, v := range doc.Bindings {
			p.Bindings.Set(name, complex128(v))
		}
	}
	if doc.Register != nil {
		if p.Register, err = c.register(doc.Register); err != nil {
			return nil, err
		}
		p.Targets = slices.Clone(doc.Register.Targets)
	}
	return p, nil
}

// BuildExpr compiles a single node declaration.
func BuildExpr(d *NodeDecl) (expr.Node, error) {
	return (&compiler{}).node(d, "expr")
}

type compiler struct {
	source positioner
}

func (c *compiler) errorf(path, format string, args ...any) *CompileError {
	pos := token.NoPos
	if c.source != nil {
		pos = c.source.pos(path)
	}
	return &CompileError{Field: path, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func (c *compiler) node(d *NodeDecl, path string) (expr.Node, error) {
	kinds := 0
	for _, set := range []bool{d.Int != nil, d.Fields != nil, d.Const != "", d.Var != "", d.Op != "", d.Fn != ""} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, c.errorf(path, "exactly one of int, fields, const, var, op or fn is required")
	}

	args, err := c.args(d, path)
	if err != nil {
		return nil, err
	}

	switch {
	case d.Int != nil:
		n, err := number.FromInt(*d.Int)
		if err != nil {
			return nil, c.errorf(path+".int", "%v", err)
		}
		return expr.NewLiteral(n), nil

	case d.Fields != nil:
		n, err := c.fields(d.Fields, path+".fields")
		if err != nil {
			return nil, err
		}
		return expr.NewLiteral(n), nil

	case d.Const != "":
		switch d.Const {
		case "zero":
			return expr.NewLiteral(number.Zero()), nil
		case "one":
			return expr.NewLiteral(number.One()), nil
		}
		return nil, c.errorf(path+".const", "unknown constant %q (want zero or one)", d.Const)

	case d.Var != "":
		return expr.NewVariable(d.Var), nil

	case d.Op == "negate":
		return expr.NewUnary(expr.OpNegate, args[0]), nil

	case d.Op != "":
		op, err := expr.ParseBinaryOp(d.Op)
		if err != nil {
			return nil, c.errorf(path+".op", "%v", err)
		}
		return expr.NewBinary(op, args[0], args[1]), nil

	default:
		fn, err := expr.ParseFunction(d.Fn)
		if err != nil {
			return nil, c.errorf(path+".fn", "%v", err)
		}
		return expr.NewFunc(fn, args[0]), nil
	}
}

// args compiles d.Args after checking the arity the kind demands.
func (c *compiler) args(d *NodeDecl, path string) ([]expr.Node, error) {
	want := 0
	switch {
	case d.Op == "negate", d.Fn != "":
		want = 1
	case d.Op != "":
		want = 2
	}
	if len(d.Args) != want {
		return nil, c.errorf(path+".args", "want %d arguments, got %d", want, len(d.Args))
	}

	out := make([]expr.Node, len(d.Args))
	for i := range d.Args {
		n, err := c.node(&d.Args[i], fmt.Sprintf("%s.args[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// fields builds a number from Zero with the listed signed field values.
func (c *compiler) fields(m map[string]int, path string) (number.Number, error) {
	var ords [number.NumOrdinals]int
	var signs [number.NumOrdinals]bool
	for name, v := range m {
		i := number.FieldIndex(name)
		if i < 0 {
			return number.Number{}, c.errorf(path+"."+name, "unknown field (want a..l)")
		}
		if v < -number.OrdinalMax || v > number.OrdinalMax {
			return number.Number{}, c.errorf(path+"."+name, "value %d outside [%d, %d]", v, -number.OrdinalMax, number.OrdinalMax)
		}
		if v < 0 {
			ords[i], signs[i] = -v, true
		} else {
			ords[i] = v
		}
	}
	return number.FromFields(ords, signs)
}

func (c *compiler) values(m map[string]int) (map[string]number.Number, error) {
	out := make(map[string]number.Number, len(m))
	for name, v := range m {
		n, err := number.FromInt(v)
		if err != nil {
			return nil, c.errorf("values."+name, "%v", err)
		}
		out[expr.NewVariable(name).Name] = n
	}
	return out, nil
}

func (c *compiler) collapseNode(d *CollapseDecl, path string) (collapse.Expr, error) {
	kinds := 0
	for _, set := range []bool{d.Const != nil, d.Sym != "", d.Op != "", d.Number != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, c.errorf(path, "exactly one of const, sym, op or number is required")
	}
	if d.Op == "" && len(d.Args) > 0 {
		return nil, c.errorf(path+".args", "only op nodes take arguments")
	}

	switch {
	case d.Const != nil:
		return &collapse.Constant{Value: complex128(*d.Const)}, nil
	case d.Sym != "":
		return collapse.NewSymbol(d.Sym), nil
	case d.Number != nil:
		var coeffs [number.NumOrdinals]complex128
		for name, v := range d.Number {
			i := number.FieldIndex(name)
			if i < 0 {
				return nil, c.errorf(path+".number."+name, "unknown field (want a..l)")
			}
			coeffs[i] = complex128(v)
		}
		return collapse.ToCollapseTree(cnumber.FromCoefficients(coeffs)), nil
	}

	if len(d.Args) != 2 {
		return nil, c.errorf(path+".args", "want 2 arguments, got %d", len(d.Args))
	}
	l, err := c.collapseNode(&d.Args[0], path+".args[0]")
	if err != nil {
		return nil, err
	}
	r, err := c.collapseNode(&d.Args[1], path+".args[1]")
	if err != nil {
		return nil, err
	}
	switch d.Op {
	case "add":
		return &collapse.Add{L: l, R: r}, nil
	case "sub":
		return &collapse.Sub{L: l, R: r}, nil
	case "mul":
		return &collapse.Mul{L: l, R: r}, nil
	case "div":
		return &collapse.Div{L: l, R: r}, nil
	}
	return nil, c.errorf(path+".op", "unknown operator %q (want add, sub, mul or div)", d.Op)
}

func (c *compiler) register(d *RegisterDecl) (*register.Register, error) {
	var (
		reg *register.Register
		err error
	)
	if len(d.Amplitudes) > 0 {
		amps := make([]complex128, len(d.Amplitudes))
		for i, a := range d.Amplitudes {
			amps[i] = complex128(a)
		}
		reg, err = register.FromAmplitudes(amps...)
		if err == nil && reg.Qubits() != d.Qubits {
			return nil, c.errorf("register.amplitudes", "%d amplitudes do not match %d qubits", len(amps), d.Qubits)
		}
	} else {
		reg, err = register.WithZeroState(d.Qubits)
	}
	if err != nil {
		return nil, c.errorf("register", "%v", err)
	}

	if d.Normalize {
		if err := reg.Normalize(); err != nil {
			return nil, c.errorf("register.normalize", "%v", err)
		}
	}
	for i, g := range d.Gates {
		gate, err := register.GateByName(g.Gate)
		if err != nil {
			return nil, c.errorf(fmt.Sprintf("register.gates[%d].gate", i), "%v", err)
		}
		if err := reg.Apply(gate, g.Qubit); err != nil {
			return nil, c.errorf(fmt.Sprintf("register.gates[%d].qubit", i), "%v", err)
		}
	}
	for i, q := range d.Targets {
		if q < 0 || q >= d.Qubits {
			return nil, c.errorf(fmt.Sprintf("register.targets[%d]", i), "qubit %d outside [0, %d)", q, d.Qubits)
		}
	}
	return reg, nil
}
