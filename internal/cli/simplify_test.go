package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplify_ErasesVariable(t *testing.T) {
	doc := writeDoc(t, "mul.yaml", `
expr:
  op: add
  args:
    - op: multiply
      args: [{var: x}, {const: zero}]
    - var: y
`)

	var got SimplifyResult
	_, err := executeJSON(t, &got, "simplify", doc)
	require.NoError(t, err)
	assert.True(t, got.Changed)
	assert.Equal(t, "((x * {}) + y)", got.Original)
	assert.Equal(t, "y", got.Simplified)
	assert.Equal(t, []string{"x", "y"}, got.Before.Variables)
	assert.Equal(t, []string{"y"}, got.After.Variables)
	assert.Equal(t, 5, got.Before.NodeCount)
	assert.Equal(t, 1, got.After.NodeCount)
	assert.Equal(t, "variable y", got.After.Derivation)
	assert.NotEqual(t, got.Before.ID, got.After.ID)
}

func TestSimplify_Unchanged(t *testing.T) {
	doc := writeDoc(t, "add.yaml", unboundDoc)

	var got SimplifyResult
	_, err := executeJSON(t, &got, "simplify", doc)
	require.NoError(t, err)
	assert.False(t, got.Changed)
	assert.Equal(t, got.Original, got.Simplified)
	assert.Equal(t, got.Before, got.After)
}

func TestSimplify_TextOutput(t *testing.T) {
	doc := writeDoc(t, "mul.yaml", "expr:\n  op: multiply\n  args: [{var: x}, {const: zero}]\n")

	out, _, err := execute(t, "simplify", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "simplified: {}")
	assert.Contains(t, out, "nodes:      3 -> 1")
}

func TestSimplify_NoExprSection(t *testing.T) {
	doc := writeDoc(t, "c.yaml", "collapse: {const: \"1\"}\n")

	_, _, err := execute(t, "simplify", doc)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
