package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arbitrary-number/quantix/internal/expr"
	"github.com/arbitrary-number/quantix/internal/number"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Fields string
	Hex    string
}

// InspectResult is the output of inspect.
type InspectResult struct {
	Literal        string `json:"literal"`
	Fields         []int  `json:"fields"`
	Checksum       int    `json:"checksum"`
	Hex            string `json:"hex"`
	ID             string `json:"id"`
	Fraction       string `json:"fraction,omitempty"`
	DivisionMarker bool   `json:"division_marker"`

	detail string
}

func (r InspectResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "literal:  %s\n", r.Literal)
	fmt.Fprintf(&b, "packed:   %s\n", r.Hex)
	fmt.Fprintf(&b, "id:       %s\n", r.ID)
	if r.Fraction != "" {
		fmt.Fprintf(&b, "a/b:      %s\n", r.Fraction)
	}
	if r.DivisionMarker {
		b.WriteString("          (division marker)\n")
	}
	b.WriteString(r.detail)
	return b.String()
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect [integer]",
		Short: "Show the fields, checksum and packed form of a number",
		Long: `Build a structured number and print its signed fields, checksum, nested
division structure and 32-byte packed encoding.

Give exactly one of an integer argument (One with field a set), --fields or
--hex. A --hex value is checked against its stored checksum.

Examples:
  quantix inspect 42
  quantix inspect -- -7
  quantix inspect --fields a=1,b=-3
  quantix inspect --hex 0100000000...`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Fields, "fields", "", "signed fields, e.g. a=1,b=-3 (others are zero)")
	cmd.Flags().StringVar(&opts.Hex, "hex", "", "packed encoding in hex")

	return cmd
}

func runInspect(opts *InspectOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	given := len(args)
	if opts.Fields != "" {
		given++
	}
	if opts.Hex != "" {
		given++
	}
	if given != 1 {
		return f.Fail(ExitCommandError, ErrCodeInvalidFlag,
			errors.New("give exactly one of an integer, --fields or --hex"))
	}

	var (
		n   number.Number
		err error
	)
	switch {
	case len(args) == 1:
		n, err = number.Parse(args[0])
	case opts.Fields != "":
		n, err = parseFields(opts.Fields)
	default:
		n, err = number.ParseHex(opts.Hex)
	}
	if err != nil {
		if code := domainCode(err); code != ErrCodeGeneric {
			return f.Fail(ExitFailure, code, err)
		}
		return f.Fail(ExitCommandError, ErrCodeInvalidFlag, err)
	}

	return f.Success(inspect(n))
}

func inspect(n number.Number) InspectResult {
	fields := make([]int, number.NumOrdinals)
	for i := range fields {
		fields[i], _ = n.SignedOrdinal(i)
	}
	r := InspectResult{
		Literal:        expr.NewLiteral(n).String(),
		Fields:         fields,
		Checksum:       int(n.Checksum()),
		Hex:            n.Hex(),
		ID:             n.ID(),
		DivisionMarker: expr.IsDivisionMarker(n),
		detail:         n.String(),
	}
	if frac, ok := n.Fraction(); ok {
		r.Fraction = frac.RatString()
	}
	return r
}
