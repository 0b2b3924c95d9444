package engine

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/arbitrary-number/quantix/internal/ir"
	"github.com/arbitrary-number/quantix/internal/register"
	"github.com/arbitrary-number/quantix/internal/store"
)

// DefaultMaxShots bounds a single run unless overridden with WithMaxShots.
const DefaultMaxShots = 100_000

// Job describes a measurement run.
type Job struct {
	// Source labels where the register came from, e.g. a document path.
	Source string

	Register *register.Register
	Targets  []int
	Shots    int
}

// Shot is the result of one measurement.
type Shot struct {
	Outcome     int
	Probability float64
}

// Report summarises a completed run.
type Report struct {
	RunID string

	// Seq is the journal sequence number, or 0 when nothing was journaled.
	Seq int64

	Shots  []Shot
	Counts map[int]int

	// MeanOutcome is the arithmetic mean of the outcomes.
	MeanOutcome float64

	// Final is the collapsed register of the last shot.
	Final *register.Register
}

// Engine executes measurement jobs.
type Engine struct {
	store    *store.Store
	ids      RunIDGenerator
	src      register.RandomSource
	maxShots int
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore journals every successful run to s.
func WithStore(s *store.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithSource replaces the cryptographic random source.
func WithSource(src register.RandomSource) Option {
	return func(e *Engine) { e.src = src }
}

// WithMaxShots sets the per-run shot limit.
func WithMaxShots(n int) Option {
	return func(e *Engine) { e.maxShots = n }
}

// New creates an engine that names runs with ids.
func New(ids RunIDGenerator, opts ...Option) *Engine {
	e := &Engine{
		ids:      ids,
		src:      register.CryptoSource{},
		maxShots: DefaultMaxShots,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run measures job.Register job.Shots times. The register passed in is never
// modified. Cancelling ctx stops the run between shots.
func (e *Engine) Run(ctx context.Context, job Job) (*Report, error) {
	if job.Register == nil {
		return nil, &RunError{Code: ErrCodeMissingRegister, Message: "job has no register"}
	}
	if job.Shots < 1 {
		return nil, &RunError{Code: ErrCodeInvalidShots, Message: fmt.Sprintf("shots must be at least 1, got %d", job.Shots)}
	}
	if job.Shots > e.maxShots {
		return nil, &RunError{Code: ErrCodeShotsExceeded, Message: fmt.Sprintf("%d shots exceeds limit %d", job.Shots, e.maxShots)}
	}

	rep := &Report{
		RunID:  e.ids.Generate(),
		Shots:  make([]Shot, 0, job.Shots),
		Counts: make(map[int]int),
	}
	slog.Debug("run starting", "run", rep.RunID, "targets", job.Targets, "shots", job.Shots)

	outcomes := make([]float64, 0, job.Shots)
	snapshots := make([]register.Snapshot, 0, job.Shots)
	for i := range job.Shots {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run %s: shot %d: %w", rep.RunID, i, err)
		}
		res, err := register.Measure(job.Register, job.Targets, e.src)
		if err != nil {
			return nil, fmt.Errorf("run %s: shot %d: %w", rep.RunID, i, err)
		}
		rep.Shots = append(rep.Shots, Shot{Outcome: res.Outcome, Probability: res.Probability})
		rep.Counts[res.Outcome]++
		rep.Final = res.Register
		outcomes = append(outcomes, float64(res.Outcome))
		if e.store != nil {
			snapshots = append(snapshots, res.Register.Snapshot())
		}
	}
	rep.MeanOutcome = stat.Mean(outcomes, nil)

	if e.store != nil {
		if err := e.journal(ctx, job, rep, snapshots); err != nil {
			return nil, err
		}
	}

	slog.Info("run complete", "run", rep.RunID, "shots", job.Shots, "mean", rep.MeanOutcome)
	return rep, nil
}

func (e *Engine) journal(ctx context.Context, job Job, rep *Report, snapshots []register.Snapshot) error {
	ms := make([]store.Measurement, len(rep.Shots))
	for i, shot := range rep.Shots {
		ms[i] = store.Measurement{
			RunID:       rep.RunID,
			Shot:        i,
			Outcome:     shot.Outcome,
			Probability: shot.Probability,
			Snapshot:    snapshots[i],
		}
	}

	seq, err := e.store.RecordRun(ctx, store.Run{
		ID:      rep.RunID,
		Source:  job.Source,
		Qubits:  job.Register.Qubits(),
		Targets: job.Targets,
		Shots:   job.Shots,
		Version: ir.Version,
	}, ms)
	if err != nil {
		return err
	}
	rep.Seq = seq
	return nil
}
