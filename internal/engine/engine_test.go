package engine

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbitrary-number/quantix/internal/register"
	"github.com/arbitrary-number/quantix/internal/store"
	"github.com/arbitrary-number/quantix/internal/testutil"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir() + "/test.db")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func bell(t *testing.T) *register.Register {
	t.Helper()
	r, err := register.FromAmplitudes(1, 0, 0, 1)
	require.NoError(t, err)
	return r
}

func TestEngine_RunCountsOutcomes(t *testing.T) {
	src := testutil.NewSequenceSource(0.1, 0.9, 0.4)
	e := New(NewFixedGenerator("run-1"), WithSource(src))
	r := bell(t)

	rep, err := e.Run(context.Background(), Job{Register: r, Targets: []int{0, 1}, Shots: 3})
	require.NoError(t, err)

	assert.Equal(t, "run-1", rep.RunID)
	assert.Equal(t, int64(0), rep.Seq)
	assert.Equal(t, []Shot{{0, 0.5}, {3, 0.5}, {0, 0.5}}, rep.Shots)
	assert.Equal(t, map[int]int{0: 2, 3: 1}, rep.Counts)
	assert.InDelta(t, 1.0, rep.MeanOutcome, 1e-12)
	assert.Equal(t, 3, src.Drawn())

	// The job register is measured by copy.
	assert.InDelta(t, 2.0, r.TotalProbability(), 1e-12)
	require.NotNil(t, rep.Final)
	assert.True(t, rep.Final.IsNormalized())
}

func TestEngine_RunJournals(t *testing.T) {
	s := setupTestStore(t)
	src := testutil.NewSequenceSource(0.9, 0.1)
	e := New(NewFixedGenerator("run-a"), WithStore(s), WithSource(src))

	rep, err := e.Run(context.Background(), Job{Source: "bell.yaml", Register: bell(t), Targets: []int{1}, Shots: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rep.Seq)

	run, ms, err := s.ReadRun(context.Background(), "run-a")
	require.NoError(t, err)
	assert.Equal(t, "bell.yaml", run.Source)
	assert.Equal(t, 2, run.Qubits)
	assert.Equal(t, []int{1}, run.Targets)
	require.Len(t, ms, 2)
	assert.Equal(t, 1, ms[0].Outcome)
	assert.Equal(t, 0, ms[1].Outcome)
	assert.Equal(t, rep.Final.Snapshot(), ms[1].Snapshot)
}

func TestEngine_FailedJournalLeavesNoRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TRIGGER fail_second_shot BEFORE INSERT ON measurements
		WHEN NEW.shot = 1
		BEGIN SELECT RAISE(ABORT, 'disk full'); END
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	src := testutil.NewSequenceSource(0.1, 0.9, 0.4)
	e := New(NewFixedGenerator("run-1"), WithStore(s), WithSource(src))

	_, err = e.Run(context.Background(), Job{Register: bell(t), Targets: []int{0, 1}, Shots: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	runs, err := s.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, _, err = s.ReadRun(context.Background(), "run-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEngine_RunRejectsBadJobs(t *testing.T) {
	e := New(NewFixedGenerator(), WithMaxShots(2))

	tests := []struct {
		name string
		job  Job
		code RunErrorCode
	}{
		{"no register", Job{Targets: []int{0}, Shots: 1}, ErrCodeMissingRegister},
		{"zero shots", Job{Register: bell(t), Targets: []int{0}, Shots: 0}, ErrCodeInvalidShots},
		{"too many shots", Job{Register: bell(t), Targets: []int{0}, Shots: 3}, ErrCodeShotsExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Run(context.Background(), tt.job)
			var re *RunError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.code, re.Code)
		})
	}
}

func TestEngine_DegenerateRunLeavesNoRecord(t *testing.T) {
	s := setupTestStore(t)
	src := testutil.NewSequenceSource()
	e := New(NewFixedGenerator("run-x"), WithStore(s), WithSource(src))

	empty, err := register.New(1)
	require.NoError(t, err)

	_, err = e.Run(context.Background(), Job{Register: empty, Targets: []int{0}, Shots: 4})
	require.Error(t, err)
	assert.True(t, register.IsDegenerate(err), "got %v", err)
	assert.Equal(t, 0, src.Drawn())

	runs, err := s.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestEngine_RunStopsOnCancel(t *testing.T) {
	src := testutil.NewSequenceSource(0.5)
	e := New(NewFixedGenerator("run-c"), WithSource(src))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx, Job{Register: bell(t), Targets: []int{0}, Shots: 1})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, src.Drawn())
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}

	a, b := gen.Generate(), gen.Generate()
	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, a, b)
}

func TestFixedGenerator(t *testing.T) {
	gen := NewFixedGenerator("run-1", "run-2")

	assert.Equal(t, "run-1", gen.Generate())
	assert.Equal(t, "run-2", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}
