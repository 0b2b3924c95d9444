package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arbitrary-number/quantix/internal/engine"
	"github.com/arbitrary-number/quantix/internal/harness"
	"github.com/arbitrary-number/quantix/internal/store"
)

// MeasureOptions holds flags for the measure command.
type MeasureOptions struct {
	*RootOptions
	Targets []int
	Shots   int
	DBPath  string
}

// MeasureResult is the output of measure.
type MeasureResult struct {
	RunID       string      `json:"run_id"`
	Seq         int64       `json:"seq,omitempty"`
	Targets     []int       `json:"targets"`
	Shots       int         `json:"shots"`
	Counts      map[int]int `json:"counts"`
	MeanOutcome float64     `json:"mean_outcome"`
	Final       string      `json:"final"`
}

func (r MeasureResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run:     %s", r.RunID)
	if r.Seq > 0 {
		fmt.Fprintf(&b, " (seq %d)", r.Seq)
	}
	fmt.Fprintf(&b, "\ntargets: %v\nshots:   %d\n", r.Targets, r.Shots)
	b.WriteString(formatCounts(r.Counts, r.Shots, len(r.Targets)))
	fmt.Fprintf(&b, "mean:    %g\n", r.MeanOutcome)
	fmt.Fprintf(&b, "final:   %s", r.Final)
	return b.String()
}

// formatCounts renders one line per outcome in ascending order, with the
// outcome in binary over width bits.
func formatCounts(counts map[int]int, shots, width int) string {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "  |%0*b⟩  %d  (%.3f)\n", width, k, counts[k], float64(counts[k])/float64(shots))
	}
	return b.String()
}

// NewMeasureCommand creates the measure command.
func NewMeasureCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MeasureOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "measure <doc>",
		Short: "Measure a document's register",
		Long: `Measure the register section on the given targets, once per shot. Each
shot measures a fresh copy of the prepared register. Targets default to the
document's register.targets, then to every qubit. The first target is the
most significant bit of the outcome.

With --db, the run and every shot are journaled to a SQLite database that
history can read back.

Exit codes:
  0 - Run completed
  1 - Measurement failed (degenerate register, bad targets)
  2 - Command error

Examples:
  quantix measure bell.cue --shots 1000
  quantix measure bell.cue --target 1 --shots 10 --db runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeasure(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntSliceVar(&opts.Targets, "target", nil, "qubit to measure (repeatable, first is MSB)")
	cmd.Flags().IntVar(&opts.Shots, "shots", 1, "number of shots")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "journal the run to this SQLite database")

	return cmd
}

func runMeasure(opts *MeasureOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	prog, err := loadProgram(f, path)
	if err != nil {
		return err
	}
	if prog.Register == nil {
		return f.Fail(ExitCommandError, ErrCodeMissing, fmt.Errorf("%s has no register section", path))
	}

	targets := opts.Targets
	if len(targets) == 0 {
		targets = harness.Targets(prog)
	}

	var engineOpts []engine.Option
	if opts.DBPath != "" {
		st, err := store.Open(opts.DBPath)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeDatabase, err)
		}
		defer st.Close()
		engineOpts = append(engineOpts, engine.WithStore(st))
		f.VerboseLog("Journaling to %s", opts.DBPath)
	}

	eng := engine.New(engine.UUIDv7Generator{}, engineOpts...)
	rep, err := eng.Run(cmd.Context(), engine.Job{
		Source:   path,
		Register: prog.Register,
		Targets:  targets,
		Shots:    opts.Shots,
	})
	if err != nil {
		return f.Fail(ExitFailure, domainCode(err), err)
	}

	return f.Success(MeasureResult{
		RunID:       rep.RunID,
		Seq:         rep.Seq,
		Targets:     targets,
		Shots:       opts.Shots,
		Counts:      rep.Counts,
		MeanOutcome: rep.MeanOutcome,
		Final:       rep.Final.String(),
	})
}
