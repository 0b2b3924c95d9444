package expr

import "fmt"

// BinaryOp is a two-operand operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
	OpRoot
)

var binaryNames = map[BinaryOp]string{
	OpAdd:      "add",
	OpSubtract: "subtract",
	OpMultiply: "multiply",
	OpDivide:   "divide",
	OpPower:    "power",
	OpRoot:     "root",
}

var binarySymbols = map[BinaryOp]string{
	OpAdd:      "+",
	OpSubtract: "-",
	OpMultiply: "*",
	OpDivide:   "/",
	OpPower:    "^",
}

func (op BinaryOp) String() string {
	if s, ok := binaryNames[op]; ok {
		return s
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// ParseBinaryOp returns the operator with the given name.
func ParseBinaryOp(name string) (BinaryOp, error) {
	for op, s := range binaryNames {
		if s == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown binary operator %q", name)
}

// UnaryOp is a one-operand operator.
type UnaryOp int

const (
	OpNegate UnaryOp = iota
)

func (op UnaryOp) String() string {
	if op == OpNegate {
		return "negate"
	}
	return fmt.Sprintf("UnaryOp(%d)", int(op))
}

// ParseUnaryOp returns the operator with the given name.
func ParseUnaryOp(name string) (UnaryOp, error) {
	if name == "negate" {
		return OpNegate, nil
	}
	return 0, fmt.Errorf("unknown unary operator %q", name)
}

// Function is a named one-argument function.
type Function int

const (
	FnAbs Function = iota
	FnSqrt
	FnSin
	FnCos
	FnTan
	FnExp
	FnLog
)

var functionNames = map[Function]string{
	FnAbs:  "abs",
	FnSqrt: "sqrt",
	FnSin:  "sin",
	FnCos:  "cos",
	FnTan:  "tan",
	FnExp:  "exp",
	FnLog:  "log",
}

func (fn Function) String() string {
	if s, ok := functionNames[fn]; ok {
		return s
	}
	return fmt.Sprintf("Function(%d)", int(fn))
}

// ParseFunction returns the function with the given name.
func ParseFunction(name string) (Function, error) {
	for fn, s := range functionNames {
		if s == name {
			return fn, nil
		}
	}
	return 0, fmt.Errorf("unknown function %q", name)
}
