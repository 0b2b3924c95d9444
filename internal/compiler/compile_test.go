package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbitrary-number/quantix/internal/collapse"
	"github.com/arbitrary-number/quantix/internal/expr"
	"github.com/arbitrary-number/quantix/internal/number"
)

const yamlDoc = `
expr:
  op: divide
  args:
    - op: add
      args:
        - var: x
        - int: 2
    - const: zero
values:
  x: 40
collapse:
  op: div
  args:
    - sym: p
    - const: "1+1i"
bindings:
  p: 2
register:
  qubits: 1
  gates:
    - gate: h
      qubit: 0
  targets: [0]
`

const cueDoc = `
expr: {
	op: "multiply"
	args: [{fields: {a: 3, b: -2}}, {const: "one"}]
}
collapse: number: {a: "1", b: 1, c: 1, d: 1, e: 1, f: 1, i: 1, j: 1}
register: {
	qubits:     2
	amplitudes: [1, 0, 0, "1i"]
	normalize:  true
	targets:    [1, 0]
}
`

func TestParseYAMLAndCompile(t *testing.T) {
	doc, err := ParseYAML([]byte(yamlDoc))
	require.NoError(t, err)

	p, err := Compile(doc)
	require.NoError(t, err)

	assert.Equal(t, "((x + {a:2 b:1 c:1 d:1 e:1 f:1 i:1 j:1 k:1 l:1}) / {})", p.Expr.String())
	assert.Equal(t, []string{"x"}, expr.Variables(p.Expr))

	got, err := expr.Quantition(expr.Bind(p.Expr, p.Values))
	require.NoError(t, err)
	assert.True(t, expr.IsDivisionMarker(got))

	c, err := collapse.Collapse(p.Collapse, p.Bindings)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, real(c), 1e-12)
	assert.InDelta(t, -1.0, imag(c), 1e-12)

	require.NotNil(t, p.Register)
	assert.InDelta(t, 0.5, p.Register.Probabilities()[1], 1e-12)
	assert.Equal(t, []int{0}, p.Targets)
}

func TestParseCUEAndCompile(t *testing.T) {
	doc, err := ParseCUE([]byte(cueDoc), "doc.cue")
	require.NoError(t, err)

	p, err := Compile(doc)
	require.NoError(t, err)

	v, err := expr.Quantition(p.Expr)
	require.NoError(t, err)
	a, _ := v.SignedOrdinal(number.FieldA)
	b, _ := v.SignedOrdinal(number.FieldB)
	assert.Equal(t, 3, a)
	assert.Equal(t, -2, b)

	c, err := collapse.Collapse(p.Collapse, nil)
	require.NoError(t, err)
	assert.Equal(t, complex(1, 0), c)

	assert.True(t, p.Register.IsNormalized())
	assert.Equal(t, []int{1, 0}, p.Targets)
	assert.Nil(t, p.Values)
}

func TestNamesAreNFC(t *testing.T) {
	// The symbol uses a combining acute accent; the binding key and the value
	// name use the precomposed form.
	doc, err := ParseYAML([]byte("expr: {var: \"cafe\u0301\"}\nvalues: {\"caf\u00e9\": 3}\ncollapse: {sym: \"cafe\u0301\"}\nbindings: {\"caf\u00e9\": \"2i\"}\n"))
	require.NoError(t, err)

	p, err := Compile(doc)
	require.NoError(t, err)

	got, err := expr.Quantition(expr.Bind(p.Expr, p.Values))
	require.NoError(t, err)
	a, _ := got.SignedOrdinal(number.FieldA)
	assert.Equal(t, 3, a)

	c, err := collapse.Collapse(p.Collapse, p.Bindings)
	require.NoError(t, err)
	assert.Equal(t, complex(0, 2), c)
	assert.Contains(t, p.Bindings, "caf\u00e9")
	assert.Equal(t, "caf\u00e9", p.Collapse.String())
}

func TestCUEErrorsCarryPosition(t *testing.T) {
	src := "expr: {\n\top: \"modulo\"\n\targs: [{int: 1}, {int: 2}]\n}\n"
	doc, err := ParseCUE([]byte(src), "bad.cue")
	require.NoError(t, err)

	_, err = Compile(doc)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "expr.op", ce.Field)
	require.True(t, ce.Pos.IsValid())
	assert.Equal(t, 2, ce.Pos.Line())
	assert.Contains(t, err.Error(), "bad.cue:2:")
}

func TestParseCUERejectsIncomplete(t *testing.T) {
	_, err := ParseCUE([]byte(`expr: {int: int}`), "open.cue")
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "cue", ce.Field)
}

func TestParseCUERejectsSyntaxError(t *testing.T) {
	_, err := ParseCUE([]byte(`expr: {`), "broken.cue")
	assert.Error(t, err)
}

func TestParseYAMLRejectsUnknownKeys(t *testing.T) {
	_, err := ParseYAML([]byte("expr: {int: 1}\nextra: true\n"))
	require.Error(t, err)

	_, err = ParseYAML([]byte(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestCompileNodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"no kind", "expr: {}", "expr"},
		{"two kinds", "expr: {int: 1, var: x}", "expr"},
		{"binary arity", "expr: {op: add, args: [{int: 1}]}", "expr.args"},
		{"leaf with args", "expr: {var: x, args: [{int: 1}]}", "expr.args"},
		{"nested", "expr: {op: add, args: [{int: 1}, {fn: cosh, args: [{int: 1}]}]}", "expr.args[1].fn"},
		{"const", "expr: {const: two}", "expr.const"},
		{"field name", "expr: {fields: {m: 1}}", "expr.fields.m"},
		{"field range", "expr: {fields: {a: 600000}}", "expr.fields.a"},
		{"int range", "expr: {int: -600000}", "expr.int"},
		{"collapse op", "collapse: {op: pow, args: [{sym: a}, {sym: b}]}", "collapse.op"},
		{"collapse kinds", "collapse: {sym: a, op: add}", "collapse"},
		{"register width", "register: {qubits: 0}", "register"},
		{"amplitude count", "register: {qubits: 2, amplitudes: [1, 0]}", "register.amplitudes"},
		{"gate", "register: {qubits: 1, gates: [{gate: cnot, qubit: 0}]}", "register.gates[0].gate"},
		{"gate qubit", "register: {qubits: 1, gates: [{gate: h, qubit: 3}]}", "register.gates[0].qubit"},
		{"target", "register: {qubits: 1, targets: [1]}", "register.targets[0]"},
		{"degenerate", "register: {qubits: 1, amplitudes: [0, 0], normalize: true}", "register.normalize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseYAML([]byte(tt.src))
			require.NoError(t, err)

			_, err = Compile(doc)
			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestComplexLiterals(t *testing.T) {
	tests := []struct {
		in   string
		want complex128
	}{
		{"0.5", 0.5},
		{"-2i", -2i},
		{"1+2i", complex(1, 2)},
		{"1 - 2i", complex(1, -2)},
	}
	for _, tt := range tests {
		got, err := ParseComplex(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, complex128(got))
	}
	_, err := ParseComplex("one")
	assert.Error(t, err)

	assert.Equal(t, "0.5", Complex(0.5).String())
	assert.Equal(t, "1-2i", Complex(complex(1, -2)).String())
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "doc.yml")
	require.NoError(t, os.WriteFile(yml, []byte(yamlDoc), 0o644))
	cuePath := filepath.Join(dir, "doc.cue")
	require.NoError(t, os.WriteFile(cuePath, []byte(cueDoc), 0o644))

	doc, err := LoadDocument(yml)
	require.NoError(t, err)
	assert.NotNil(t, doc.Expr)

	doc, err = LoadDocument(cuePath)
	require.NoError(t, err)
	assert.NotNil(t, doc.Register)

	_, err = LoadDocument(filepath.Join(dir, "doc.json"))
	assert.Error(t, err)

	txt := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	_, err = LoadDocument(txt)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
}

func TestBuildExpr(t *testing.T) {
	one := 1
	n, err := BuildExpr(&NodeDecl{Fn: "sqrt", Args: []NodeDecl{{Int: &one}}})
	require.NoError(t, err)
	assert.Equal(t, "sqrt({a:1 b:1 c:1 d:1 e:1 f:1 i:1 j:1 k:1 l:1})", n.String())
}
