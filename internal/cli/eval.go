package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arbitrary-number/quantix/internal/expr"
	"github.com/arbitrary-number/quantix/internal/number"
	"github.com/arbitrary-number/quantix/internal/store"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Simplify bool
	Bind     []string
	DBPath   string
}

// EvalStep is one reduced node, reported with --verbose.
type EvalStep struct {
	Depth    int    `json:"depth"`
	Node     string `json:"node"`
	Value    string `json:"value"`
	Deferred bool   `json:"deferred,omitempty"`
}

// EvalResult is the output of eval.
type EvalResult struct {
	Tree           string     `json:"tree"`
	TreeID         string     `json:"tree_id"`
	Value          string     `json:"value"`
	ValueID        string     `json:"value_id"`
	DivisionMarker bool       `json:"division_marker"`
	Checksum       int        `json:"checksum"`
	Hex            string     `json:"hex"`
	Steps          []EvalStep `json:"steps,omitempty"`
}

func (r EvalResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tree:     %s\n", r.Tree)
	fmt.Fprintf(&b, "value:    %s\n", r.Value)
	if r.DivisionMarker {
		b.WriteString("          (division marker)\n")
	}
	fmt.Fprintf(&b, "checksum: 0x%X\n", r.Checksum)
	fmt.Fprintf(&b, "packed:   %s", r.Hex)
	for _, s := range r.Steps {
		mark := ""
		if s.Deferred {
			mark = " (deferred)"
		}
		fmt.Fprintf(&b, "\n%s%s => %s%s", strings.Repeat("  ", s.Depth), s.Node, s.Value, mark)
	}
	return b.String()
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <doc>",
		Short: "Reduce a document's expression tree",
		Long: `Reduce the expr section of a document to a single structured number.

Variables must be bound with --bind or a values section; quantition never
substitutes on its own. A divisor that reduces to zero yields the division
marker instead of an error.

With --db, the reduced tree and its value are saved to a SQLite store under
their content IDs.

Exit codes:
  0 - Expression reduced
  1 - Evaluation failed (unbound variable, unsupported operation)
  2 - Command error

Examples:
  quantix eval tree.cue
  quantix eval tree.yaml --bind x=3 --simplify
  quantix eval tree.cue --verbose --format json
  quantix eval tree.cue --db values.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Simplify, "simplify", false, "simplify before reducing")
	cmd.Flags().StringArrayVar(&opts.Bind, "bind", nil, "bind a variable: name=<int> (repeatable)")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "save the tree and value to this SQLite database")

	return cmd
}

func runEval(opts *EvalOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	prog, err := loadProgram(f, path)
	if err != nil {
		return err
	}
	if prog.Expr == nil {
		return f.Fail(ExitCommandError, ErrCodeMissing, fmt.Errorf("%s has no expr section", path))
	}

	values := make(map[string]number.Number, len(prog.Values)+len(opts.Bind))
	for k, v := range prog.Values {
		values[k] = v
	}
	flags, err := parseBindings(opts.Bind)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeInvalidFlag, err)
	}
	for k, v := range flags {
		values[expr.NewVariable(k).Name] = v
	}

	tree := prog.Expr
	if len(values) > 0 {
		tree = expr.Bind(tree, values)
	}
	if opts.Simplify {
		tree = expr.Simplify(tree)
	}

	var steps []EvalStep
	v, err := expr.QuantitionTrace(tree, func(s expr.Step) {
		if opts.Verbose {
			steps = append(steps, EvalStep{
				Depth:    s.Depth,
				Node:     s.Node.String(),
				Value:    expr.NewLiteral(s.Value).String(),
				Deferred: s.Deferred,
			})
		}
	})
	if err != nil {
		return f.Fail(ExitFailure, domainCode(err), err)
	}

	if opts.DBPath != "" {
		if err := saveEval(cmd, opts.DBPath, tree, v); err != nil {
			return f.Fail(ExitCommandError, ErrCodeDatabase, err)
		}
		f.VerboseLog("Saved %s", opts.DBPath)
	}

	return f.Success(EvalResult{
		Tree:           tree.String(),
		TreeID:         expr.ID(tree),
		Value:          expr.NewLiteral(v).String(),
		ValueID:        v.ID(),
		DivisionMarker: expr.IsDivisionMarker(v),
		Checksum:       int(v.Checksum()),
		Hex:            v.Hex(),
		Steps:          steps,
	})
}

func saveEval(cmd *cobra.Command, path string, tree expr.Node, v number.Number) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.PutTree(cmd.Context(), tree); err != nil {
		return err
	}
	_, err = st.PutNumber(cmd.Context(), v)
	return err
}
