package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arbitrary-number/quantix/internal/ir"
	"github.com/arbitrary-number/quantix/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DBPath  string
	Shots   bool
	Source  string
	Qubits  int
	Outcome int
}

// RunSummary is one journaled run.
type RunSummary struct {
	ID      string `json:"id"`
	Seq     int64  `json:"seq"`
	Source  string `json:"source"`
	Qubits  int    `json:"qubits"`
	Targets []int  `json:"targets"`
	Shots   int    `json:"shots"`
	Version string `json:"version"`
}

func summarize(r store.Run) RunSummary {
	return RunSummary{
		ID:      r.ID,
		Seq:     r.Seq,
		Source:  r.Source,
		Qubits:  r.Qubits,
		Targets: r.Targets,
		Shots:   r.Shots,
		Version: r.Version,
	}
}

// HistoryList is the output of history without a run ID.
type HistoryList struct {
	Runs []RunSummary `json:"runs"`
}

func (h HistoryList) String() string {
	if len(h.Runs) == 0 {
		return "no runs recorded"
	}
	var b strings.Builder
	for i, r := range h.Runs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%4d  %s  %s  targets=%v shots=%d", r.Seq, r.ID, r.Source, r.Targets, r.Shots)
	}
	return b.String()
}

// ShotRecord is one journaled shot.
type ShotRecord struct {
	Shot        int     `json:"shot"`
	Outcome     int     `json:"outcome"`
	Probability float64 `json:"probability"`
}

// HistoryRun is the output of history for a single run.
type HistoryRun struct {
	Run    RunSummary   `json:"run"`
	Counts map[int]int  `json:"counts"`
	Shots  []ShotRecord `json:"shots,omitempty"`
}

func (h HistoryRun) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run:     %s (seq %d)\n", h.Run.ID, h.Run.Seq)
	fmt.Fprintf(&b, "source:  %s\n", h.Run.Source)
	fmt.Fprintf(&b, "targets: %v\nshots:   %d\n", h.Run.Targets, h.Run.Shots)
	b.WriteString(strings.TrimSuffix(formatCounts(h.Counts, h.Run.Shots, len(h.Run.Targets)), "\n"))
	for _, s := range h.Shots {
		fmt.Fprintf(&b, "\n  #%d  %0*b  p=%.4f", s.Shot, len(h.Run.Targets), s.Outcome, s.Probability)
	}
	return b.String()
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show journaled measurement runs",
		Long: `List the runs journaled by measure --db in seq order, or show one run's
outcome counts. Add --shots to list every shot of the run.

A listing can be narrowed with --source, --qubits and --outcome; a run
matches --outcome when any of its shots produced that outcome.

Examples:
  quantix history --db runs.db
  quantix history --db runs.db --source bell.cue --outcome 3
  quantix history --db runs.db 0192f1e4-... --shots`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "SQLite journal (required)")
	cmd.Flags().BoolVar(&opts.Shots, "shots", false, "list every shot")
	cmd.Flags().StringVar(&opts.Source, "source", "", "only runs measured from this document")
	cmd.Flags().IntVar(&opts.Qubits, "qubits", 0, "only runs on registers of this width")
	cmd.Flags().IntVar(&opts.Outcome, "outcome", 0, "only runs with a shot producing this outcome")

	return cmd
}

func runHistory(opts *HistoryOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	if opts.DBPath == "" {
		return f.Fail(ExitCommandError, ErrCodeInvalidFlag, errors.New("--db is required"))
	}
	if _, err := os.Stat(opts.DBPath); errors.Is(err, os.ErrNotExist) {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Errorf("database not found: %s", opts.DBPath))
	}
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeDatabase, err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if len(args) == 0 {
		runs, err := st.FindRuns(ctx, historyFilter(opts, cmd))
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeDatabase, err)
		}
		out := HistoryList{Runs: make([]RunSummary, 0, len(runs))}
		for _, r := range runs {
			out.Runs = append(out.Runs, summarize(r))
		}
		return f.Success(out)
	}

	run, ms, err := st.ReadRun(ctx, args[0])
	if errors.Is(err, store.ErrNotFound) {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Errorf("run not found: %s", args[0]))
	}
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeDatabase, err)
	}
	counts, err := st.OutcomeCounts(ctx, run.ID)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeDatabase, err)
	}

	out := HistoryRun{Run: summarize(run), Counts: counts}
	if opts.Shots {
		for _, m := range ms {
			out.Shots = append(out.Shots, ShotRecord{Shot: m.Shot, Outcome: m.Outcome, Probability: m.Probability})
		}
	}
	return f.Success(out)
}

func historyFilter(opts *HistoryOptions, cmd *cobra.Command) store.Filter {
	var and store.And
	if opts.Source != "" {
		and.Filters = append(and.Filters, store.Equals{Column: "source", Value: ir.String(opts.Source)})
	}
	if cmd.Flags().Changed("qubits") {
		and.Filters = append(and.Filters, store.Equals{Column: "qubits", Value: ir.Int(opts.Qubits)})
	}
	if cmd.Flags().Changed("outcome") {
		and.Filters = append(and.Filters, store.HasOutcome{Outcome: opts.Outcome})
	}
	return and
}
