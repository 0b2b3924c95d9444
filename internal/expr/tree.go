package expr

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arbitrary-number/quantix/internal/number"
)

// Height returns the number of nodes on the longest root-to-leaf path.
func Height(n Node) int {
	h := 0
	for _, c := range Children(n) {
		h = max(h, Height(c))
	}
	return h + 1
}

// NodeCount returns the number of nodes in the tree.
func NodeCount(n Node) int {
	count := 1
	for _, c := range Children(n) {
		count += NodeCount(c)
	}
	return count
}

// HasVariables reports whether any variable occurs in the tree.
func HasVariables(n Node) bool {
	if _, ok := n.(*Variable); ok {
		return true
	}
	return slices.ContainsFunc(Children(n), HasVariables)
}

// Variables returns the distinct variable names in the tree, sorted.
func Variables(n Node) []string {
	seen := map[string]bool{}
	var walk func(Node)
	walk = func(n Node) {
		if v, ok := n.(*Variable); ok {
			seen[v.Name] = true
		}
		for _, c := range Children(n) {
			walk(c)
		}
	}
	walk(n)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Bind returns a copy of n with every variable named in values replaced by a
// literal. Unlisted variables are kept.
func Bind(n Node, values map[string]number.Number) Node {
	switch v := n.(type) {
	case *Literal:
		return NewLiteral(v.Value)
	case *Variable:
		if val, ok := values[v.Name]; ok {
			return NewLiteral(val)
		}
		return &Variable{Name: v.Name}
	case *Unary:
		return NewUnary(v.Op, Bind(v.X, values))
	case *Binary:
		return NewBinary(v.Op, Bind(v.Left, values), Bind(v.Right, values))
	case *Func:
		return NewFunc(v.Fn, Bind(v.Arg, values))
	}
	panic("expr: unknown node type")
}

// Equal reports structural equality. Literals compare by signed field value;
// parent links and flags are ignored.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.Value.Equal(y.Value)
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && Equal(x.X, y.X)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Func:
		y, ok := b.(*Func)
		return ok && x.Fn == y.Fn && Equal(x.Arg, y.Arg)
	}
	return false
}

// Derivation renders the construction history of n in prefix form, for
// example "divide(literal{a:1}, variable x)".
func Derivation(n Node) string {
	switch v := n.(type) {
	case *Literal:
		return "literal" + literalText(v.Value)
	case *Variable:
		return "variable " + v.Name
	case *Unary:
		return fmt.Sprintf("%s(%s)", v.Op, Derivation(v.X))
	case *Binary:
		return fmt.Sprintf("%s(%s, %s)", v.Op, Derivation(v.Left), Derivation(v.Right))
	case *Func:
		return fmt.Sprintf("%s(%s)", v.Fn, Derivation(v.Arg))
	}
	return "?"
}

func (n *Literal) String() string  { return literalText(n.Value) }
func (n *Variable) String() string { return n.Name }
func (n *Unary) String() string    { return "-" + n.X.String() }
func (n *Func) String() string     { return fmt.Sprintf("%s(%s)", n.Fn, n.Arg) }

func (n *Binary) String() string {
	if n.Op == OpRoot {
		return fmt.Sprintf("root(%s, %s)", n.Left, n.Right)
	}
	return fmt.Sprintf("(%s %s %s)", n.Left, binarySymbols[n.Op], n.Right)
}

// literalText lists the non-zero signed fields, so One renders as
// {a:1 b:1 c:1 d:1 e:1 f:1 i:1 j:1 k:1 l:1} and Zero as {}.
func literalText(v number.Number) string {
	var parts []string
	for i := range number.NumOrdinals {
		s, _ := v.SignedOrdinal(i)
		if s != 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", number.OrdinalNames[i], s))
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}
