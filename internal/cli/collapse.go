package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arbitrary-number/quantix/internal/cnumber"
	"github.com/arbitrary-number/quantix/internal/collapse"
)

// CollapseResult is the output of collapse.
type CollapseResult struct {
	Tree  string  `json:"tree"`
	Value string  `json:"value"`
	Real  float64 `json:"real"`
	Imag  float64 `json:"imag"`
}

func (r CollapseResult) String() string {
	return fmt.Sprintf("%s = %s", r.Tree, r.Value)
}

// NewCollapseCommand creates the collapse command.
func NewCollapseCommand(rootOpts *RootOptions) *cobra.Command {
	var bind []string

	cmd := &cobra.Command{
		Use:   "collapse <doc>",
		Short: "Evaluate a document's collapse tree to a complex value",
		Long: `Evaluate the collapse section with the document's bindings plus any
--bind name=<complex> flags. Unlike eval, a zero denominator is an error.

Exit codes:
  0 - Tree collapsed
  1 - Unbound symbol or division by zero
  2 - Command error

Examples:
  quantix collapse circuit.cue
  quantix collapse circuit.yaml --bind p=1+2i`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			prog, err := loadProgram(f, args[0])
			if err != nil {
				return err
			}
			if prog.Collapse == nil {
				return f.Fail(ExitCommandError, ErrCodeMissing, fmt.Errorf("%s has no collapse section", args[0]))
			}

			bindings := make(collapse.Bindings, len(prog.Bindings)+len(bind))
			for k, v := range prog.Bindings {
				bindings[k] = v
			}
			extra, err := parseComplexBindings(bind)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeInvalidFlag, err)
			}
			for k, v := range extra {
				bindings.Set(k, v)
			}

			v, err := collapse.Collapse(prog.Collapse, bindings)
			if err != nil {
				return f.Fail(ExitFailure, domainCode(err), err)
			}
			return f.Success(CollapseResult{
				Tree:  prog.Collapse.String(),
				Value: cnumber.FormatComplex(v),
				Real:  real(v),
				Imag:  imag(v),
			})
		},
	}

	cmd.Flags().StringArrayVar(&bind, "bind", nil, "bind a symbol: name=<complex> (repeatable)")
	return cmd
}
