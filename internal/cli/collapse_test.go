package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const symbolDivisionDoc = `
collapse:
  op: div
  args:
    - sym: x
    - const: "2"
bindings:
  x: "1+2i"
`

func TestCollapse_DocumentBindings(t *testing.T) {
	doc := writeDoc(t, "c.yaml", symbolDivisionDoc)

	var got CollapseResult
	_, err := executeJSON(t, &got, "collapse", doc)
	require.NoError(t, err)
	assert.Equal(t, "(x / 2)", got.Tree)
	assert.Equal(t, "0.5+1i", got.Value)
	assert.InDelta(t, 0.5, got.Real, 1e-12)
	assert.InDelta(t, 1.0, got.Imag, 1e-12)
}

func TestCollapse_BindFlagOverrides(t *testing.T) {
	doc := writeDoc(t, "c.yaml", symbolDivisionDoc)

	out, _, err := execute(t, "collapse", doc, "--bind", "x=3")
	require.NoError(t, err)
	assert.Equal(t, "(x / 2) = 1.5\n", out)
}

func TestCollapse_Failures(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantCode string
	}{
		{
			name:     "unbound symbol",
			doc:      "collapse:\n  op: add\n  args: [{sym: y}, {const: \"1\"}]\n",
			wantCode: "UNBOUND_SYMBOL",
		},
		{
			name:     "zero denominator",
			doc:      "collapse:\n  op: div\n  args: [{const: \"1\"}, {const: \"0\"}]\n",
			wantCode: "DIVISION_BY_ZERO",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := executeJSON(t, nil, "collapse", writeDoc(t, "c.yaml", tt.doc))
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestCollapse_MalformedBinding(t *testing.T) {
	doc := writeDoc(t, "c.yaml", symbolDivisionDoc)

	resp, err := executeJSON(t, nil, "collapse", doc, "--bind", "x=abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeInvalidFlag, resp.Error.Code)
}
