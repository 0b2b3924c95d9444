package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oneDoc prepares |01⟩ on two qubits, so every shot is deterministic.
const oneDoc = `
register:
  qubits: 2
  amplitudes: ["0", "1", "0", "0"]
`

func TestMeasure_DeterministicRegister(t *testing.T) {
	doc := writeDoc(t, "one.yaml", oneDoc)

	var got MeasureResult
	_, err := executeJSON(t, &got, "measure", doc, "--shots", "4")
	require.NoError(t, err)
	assert.NotEmpty(t, got.RunID)
	assert.Zero(t, got.Seq)
	assert.Equal(t, []int{0, 1}, got.Targets)
	assert.Equal(t, 4, got.Shots)
	assert.Equal(t, map[int]int{1: 4}, got.Counts)
	assert.Equal(t, 1.0, got.MeanOutcome)
	assert.Contains(t, got.Final, "|01⟩")
}

func TestMeasure_TargetOrder(t *testing.T) {
	doc := writeDoc(t, "one.yaml", oneDoc)

	var got MeasureResult
	_, err := executeJSON(t, &got, "measure", doc, "--target", "1", "--target", "0")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, got.Targets)
	assert.Equal(t, map[int]int{2: 1}, got.Counts)
}

func TestMeasure_TextOutput(t *testing.T) {
	doc := writeDoc(t, "one.yaml", oneDoc)

	out, _, err := execute(t, "measure", doc, "--shots", "2", "--target", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "targets: [1]")
	assert.Contains(t, out, "|1⟩  2  (1.000)")
}

func TestMeasure_Failures(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		args     []string
		wantExit int
		wantCode string
	}{
		{"degenerate register", "register:\n  qubits: 1\n  amplitudes: [\"0\", \"0\"]\n", nil, ExitFailure, "DEGENERATE_MEASUREMENT"},
		{"zero shots", oneDoc, []string{"--shots", "0"}, ExitFailure, "INVALID_SHOTS"},
		{"bad target", oneDoc, []string{"--target", "5"}, ExitFailure, "INVALID_QUBIT_INDEX"},
		{"no register", unboundDoc, nil, ExitCommandError, ErrCodeMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"measure", writeDoc(t, "doc.yaml", tt.doc)}, tt.args...)
			resp, err := executeJSON(t, nil, args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestMeasureThenHistory(t *testing.T) {
	doc := writeDoc(t, "one.yaml", oneDoc)
	db := filepath.Join(t.TempDir(), "runs.db")

	var first, second MeasureResult
	_, err := executeJSON(t, &first, "measure", doc, "--shots", "3", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Seq)
	_, err = executeJSON(t, &second, "measure", doc, "--target", "1", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Seq)

	var list HistoryList
	_, err = executeJSON(t, &list, "history", "--db", db)
	require.NoError(t, err)
	require.Len(t, list.Runs, 2)
	assert.Equal(t, first.RunID, list.Runs[0].ID)
	assert.Equal(t, doc, list.Runs[0].Source)
	assert.Equal(t, []int{0, 1}, list.Runs[0].Targets)
	assert.Equal(t, []int{1}, list.Runs[1].Targets)

	var filtered HistoryList
	_, err = executeJSON(t, &filtered, "history", "--db", db, "--outcome", "3")
	require.NoError(t, err)
	assert.Empty(t, filtered.Runs)
	_, err = executeJSON(t, &filtered, "history", "--db", db, "--outcome", "1", "--source", doc)
	require.NoError(t, err)
	assert.Len(t, filtered.Runs, 2)
	_, err = executeJSON(t, &filtered, "history", "--db", db, "--qubits", "1")
	require.NoError(t, err)
	assert.Empty(t, filtered.Runs)

	var run HistoryRun
	_, err = executeJSON(t, &run, "history", "--db", db, first.RunID, "--shots")
	require.NoError(t, err)
	assert.Equal(t, 3, run.Run.Shots)
	assert.Equal(t, map[int]int{1: 3}, run.Counts)
	require.Len(t, run.Shots, 3)
	for i, s := range run.Shots {
		assert.Equal(t, i, s.Shot)
		assert.Equal(t, 1, s.Outcome)
		assert.InDelta(t, 1.0, s.Probability, 1e-12)
	}
}

func TestHistory_Errors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	resp, err := executeJSON(t, nil, "history", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)

	resp, err = executeJSON(t, nil, "history")
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidFlag, resp.Error.Code)

	_, err = executeJSON(t, nil, "measure", writeDoc(t, "one.yaml", oneDoc), "--db", db)
	require.NoError(t, err)
	resp, err = executeJSON(t, nil, "history", "--db", db, "no-such-run")
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestHistory_EmptyJournal(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	_, _, err := execute(t, "measure", writeDoc(t, "one.yaml", oneDoc), "--shots", "0", "--db", db)
	require.Error(t, err)

	out, _, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "no runs recorded\n", out)
}
