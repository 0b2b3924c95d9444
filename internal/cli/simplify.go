package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arbitrary-number/quantix/internal/expr"
)

// TreeMetrics describes the shape of an expression tree.
type TreeMetrics struct {
	Height     int      `json:"height"`
	NodeCount  int      `json:"node_count"`
	Variables  []string `json:"variables"`
	Derivation string   `json:"derivation"`
	ID         string   `json:"id"`
}

func metricsOf(n expr.Node) TreeMetrics {
	vars := expr.Variables(n)
	if vars == nil {
		vars = []string{}
	}
	return TreeMetrics{
		Height:     expr.Height(n),
		NodeCount:  expr.NodeCount(n),
		Variables:  vars,
		Derivation: expr.Derivation(n),
		ID:         expr.ID(n),
	}
}

// SimplifyResult is the output of simplify.
type SimplifyResult struct {
	Original   string      `json:"original"`
	Simplified string      `json:"simplified"`
	Changed    bool        `json:"changed"`
	Before     TreeMetrics `json:"before"`
	After      TreeMetrics `json:"after"`
}

func (r SimplifyResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "original:   %s\n", r.Original)
	fmt.Fprintf(&b, "simplified: %s\n", r.Simplified)
	fmt.Fprintf(&b, "nodes:      %d -> %d\n", r.Before.NodeCount, r.After.NodeCount)
	fmt.Fprintf(&b, "height:     %d -> %d\n", r.Before.Height, r.After.Height)
	fmt.Fprintf(&b, "variables:  %s\n", strings.Join(r.After.Variables, ", "))
	fmt.Fprintf(&b, "id:         %s", r.After.ID)
	return b.String()
}

// NewSimplifyCommand creates the simplify command.
func NewSimplifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simplify <doc>",
		Short: "Apply the algebraic identity rules to a document's expression",
		Long: `Rewrite the expr section with x+0 -> x, x*1 -> x and x*0 -> 0, then report
the tree before and after. The input tree is not evaluated; a variable
multiplied by zero disappears without being bound.

Examples:
  quantix simplify tree.cue
  quantix simplify tree.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			prog, err := loadProgram(f, args[0])
			if err != nil {
				return err
			}
			if prog.Expr == nil {
				return f.Fail(ExitCommandError, ErrCodeMissing, fmt.Errorf("%s has no expr section", args[0]))
			}

			out := expr.Simplify(prog.Expr)
			return f.Success(SimplifyResult{
				Original:   prog.Expr.String(),
				Simplified: out.String(),
				Changed:    !expr.Equal(prog.Expr, out),
				Before:     metricsOf(prog.Expr),
				After:      metricsOf(out),
			})
		},
	}
	return cmd
}
