package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: divide_by_zero_defers
description: A divisor that reduces to zero yields the division marker
expr:
  op: divide
  args:
    - int: 6
    - const: zero
assertions:
  - type: marker
`

const failingScenario = `name: wrong_outcomes
description: Asserts an outcome the register cannot produce
register:
  qubits: 1
samples: [0.5]
assertions:
  - type: outcomes
    outcomes: [1]
`

func writeScenarios(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestTestCommand_AllPass(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"divide.yaml": passingScenario})

	out, _, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ divide_by_zero_defers")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommand_FailureExitsOne(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"divide.yaml": passingScenario,
		"wrong.yaml":  failingScenario,
	})

	var got TestResult
	resp, err := executeJSON(t, &got, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.Equal(t, 1, got.Passed)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Scenarios, 2)
	assert.Equal(t, "wrong_outcomes", got.Scenarios[1].Name)
	assert.Contains(t, got.Scenarios[1].Errors[0], "got outcomes [0], want [1]")
}

func TestTestCommand_Filter(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"divide.yaml": passingScenario,
		"wrong.yaml":  failingScenario,
	})

	var got TestResult
	_, err := executeJSON(t, &got, "test", dir, "--filter", "div*")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)

	_, _, err = execute(t, "test", dir, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_UpdateThenCompareGolden(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"divide.yaml": passingScenario})
	golden := filepath.Join(dir, "golden", "divide.golden")

	_, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name":"divide_by_zero_defers"`)
	assert.Contains(t, string(data), `"deferred":true`)

	_, _, err = execute(t, "test", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(golden, []byte(`{"scenario_name":"divide_by_zero_defers","trace":[]}`), 0o644))
	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommand_LoadErrorIsReported(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"broken.yaml": "name: broken\n"})

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommand_Empty(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommand_MissingDir(t *testing.T) {
	_, _, err := execute(t, "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_HarnessScenarios(t *testing.T) {
	dir := filepath.Join("..", "harness", "testdata", "scenarios")

	var got TestResult
	_, err := executeJSON(t, &got, "test", dir)
	require.NoError(t, err)
	assert.Equal(t, got.Total, got.Passed)
	assert.Positive(t, got.Total)
}
