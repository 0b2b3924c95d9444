package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arbitrary-number/quantix/internal/register"
)

// Run describes one measurement run: a register measured Shots times on the
// same targets.
type Run struct {
	ID      string
	Seq     int64
	Source  string
	Qubits  int
	Targets []int
	Shots   int
	Version string
}

// Measurement is the journal row for a single shot.
type Measurement struct {
	RunID       string
	Shot        int
	Outcome     int
	Probability float64
	Snapshot    register.Snapshot
}

// execer is the subset of *sql.DB and *sql.Tx the write helpers need.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateRun inserts a run and assigns it the next logical seq. The assigned
// seq is returned.
func (s *Store) CreateRun(ctx context.Context, run Run) (int64, error) {
	seq, err := createRun(ctx, s.db, run)
	if err != nil {
		return 0, err
	}
	slog.Debug("run created", "run", run.ID, "seq", seq, "shots", run.Shots)
	return seq, nil
}

// WriteMeasurement appends one shot to a run. Rewriting the same shot is a
// no-op.
func (s *Store) WriteMeasurement(ctx context.Context, m Measurement) error {
	if err := writeMeasurement(ctx, s.db, m); err != nil {
		return err
	}
	slog.Debug("measurement recorded", "run", m.RunID, "shot", m.Shot, "outcome", m.Outcome)
	return nil
}

// RecordRun inserts a run and all of its measurements in one transaction.
// Either every row is written or none is. The assigned seq is returned.
func (s *Store) RecordRun(ctx context.Context, run Run, ms []Measurement) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("record run %s: begin tx: %w", run.ID, err)
	}
	defer tx.Rollback() // No-op if committed

	seq, err := createRun(ctx, tx, run)
	if err != nil {
		return 0, err
	}
	for _, m := range ms {
		if m.RunID != run.ID {
			return 0, fmt.Errorf("record run %s: measurement %d belongs to run %q", run.ID, m.Shot, m.RunID)
		}
		if err := writeMeasurement(ctx, tx, m); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("record run %s: commit: %w", run.ID, err)
	}

	slog.Debug("run recorded", "run", run.ID, "seq", seq, "measurements", len(ms))
	return seq, nil
}

func createRun(ctx context.Context, q execer, run Run) (int64, error) {
	targets, err := marshalTargets(run.Targets)
	if err != nil {
		return 0, fmt.Errorf("create run %s: %w", run.ID, err)
	}

	var seq int64
	err = q.QueryRowContext(ctx, `
		INSERT INTO runs (id, seq, source, qubits, targets, shots, version)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?, ?, ?, ?, ?)
		RETURNING seq
	`, run.ID, run.Source, run.Qubits, targets, run.Shots, run.Version).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("create run %s: %w", run.ID, err)
	}
	return seq, nil
}

func writeMeasurement(ctx context.Context, q execer, m Measurement) error {
	snap, err := marshalSnapshot(m.Snapshot)
	if err != nil {
		return fmt.Errorf("write measurement %s/%d: %w", m.RunID, m.Shot, err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO measurements (run_id, shot, outcome, probability, snapshot)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(run_id, shot) DO NOTHING
	`, m.RunID, m.Shot, m.Outcome, m.Probability, snap)
	if err != nil {
		return fmt.Errorf("write measurement %s/%d: %w", m.RunID, m.Shot, err)
	}
	return nil
}

// GetRun loads run metadata by ID.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, source, qubits, targets, shots, version
		FROM runs WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("get run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// ReadRun returns a run with its measurements ordered by shot.
// A run with no recorded shots yields an empty, non-nil slice.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, []Measurement, error) {
	run, err := s.GetRun(ctx, id)
	if err != nil {
		return Run{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, shot, outcome, probability, snapshot
		FROM measurements
		WHERE run_id = ?
		ORDER BY shot ASC
	`, id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("query measurements: %w", err)
	}
	defer rows.Close()

	ms := []Measurement{}
	for rows.Next() {
		var (
			m    Measurement
			blob []byte
		)
		if err := rows.Scan(&m.RunID, &m.Shot, &m.Outcome, &m.Probability, &blob); err != nil {
			return Run{}, nil, fmt.Errorf("scan measurement: %w", err)
		}
		if m.Snapshot, err = unmarshalSnapshot(blob); err != nil {
			return Run{}, nil, fmt.Errorf("measurement %s/%d: %w", m.RunID, m.Shot, err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return Run{}, nil, fmt.Errorf("iterate measurements: %w", err)
	}
	return run, ms, nil
}

// ListRuns returns every run ordered by seq.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	return s.FindRuns(ctx, nil)
}

// FindRuns returns the runs matching f ordered by seq. A nil filter matches
// every run.
func (s *Store) FindRuns(ctx context.Context, f Filter) ([]Run, error) {
	where, params, err := compileFilter(f)
	if err != nil {
		return nil, fmt.Errorf("find runs: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, source, qubits, targets, shots, version
		FROM runs
		WHERE `+where+`
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, params...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// OutcomeCounts returns the number of shots per outcome for a run.
func (s *Store) OutcomeCounts(ctx context.Context, runID string) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT outcome, COUNT(*)
		FROM measurements
		WHERE run_id = ?
		GROUP BY outcome
		ORDER BY outcome ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcome counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var outcome, n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scan outcome count: %w", err)
		}
		counts[outcome] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcome counts: %w", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run     Run
		targets string
	)
	if err := row.Scan(&run.ID, &run.Seq, &run.Source, &run.Qubits, &targets, &run.Shots, &run.Version); err != nil {
		return Run{}, err
	}
	t, err := unmarshalTargets(targets)
	if err != nil {
		return Run{}, err
	}
	run.Targets = t
	return run, nil
}
