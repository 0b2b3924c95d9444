package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arbitrary-number/quantix/internal/compiler"
	"github.com/arbitrary-number/quantix/internal/harness"
	"github.com/arbitrary-number/quantix/internal/number"
)

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// loadProgram reads and compiles a document, reporting failures through f.
func loadProgram(f *OutputFormatter, path string) (*compiler.Program, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Errorf("document not found: %s", path))
	}

	doc, err := compiler.LoadDocument(path)
	if err != nil {
		var ce *compiler.CompileError
		if errors.As(err, &ce) {
			return nil, f.Fail(ExitCommandError, ErrCodeCompile, err)
		}
		return nil, f.Fail(ExitCommandError, ErrCodeLoadFailed, err)
	}

	prog, err := compiler.Compile(doc)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeCompile, err)
	}
	f.VerboseLog("Compiled %s", path)
	return prog, nil
}

// domainCode returns the package error code of err, falling back to E001.
func domainCode(err error) string {
	if code := harness.ErrorCode(err); code != "" {
		return code
	}
	return ErrCodeGeneric
}

// parseBindings parses repeated name=<int> flags.
func parseBindings(flags []string) (map[string]number.Number, error) {
	out := make(map[string]number.Number, len(flags))
	for _, b := range flags {
		name, raw, ok := strings.Cut(b, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("binding %q: want name=<int>", b)
		}
		n, err := number.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", b, err)
		}
		out[name] = n
	}
	return out, nil
}

// parseComplexBindings parses repeated name=<complex> flags.
func parseComplexBindings(flags []string) (map[string]complex128, error) {
	out := make(map[string]complex128, len(flags))
	for _, b := range flags {
		name, raw, ok := strings.Cut(b, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("binding %q: want name=<complex>", b)
		}
		c, err := compiler.ParseComplex(raw)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", b, err)
		}
		out[name] = complex128(c)
	}
	return out, nil
}

// parseFields parses "a=1,b=-3" into a number built from Zero.
func parseFields(s string) (number.Number, error) {
	var (
		ords  [number.NumOrdinals]int
		signs [number.NumOrdinals]bool
	)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, raw, ok := strings.Cut(part, "=")
		if !ok {
			return number.Number{}, fmt.Errorf("field %q: want name=<int>", part)
		}
		i := number.FieldIndex(strings.TrimSpace(name))
		if i < 0 {
			return number.Number{}, fmt.Errorf("field %q: unknown field (want a..l)", name)
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return number.Number{}, fmt.Errorf("field %q: %w", part, err)
		}
		if v < 0 {
			ords[i], signs[i] = -v, true
		} else {
			ords[i] = v
		}
	}
	return number.FromFields(ords, signs)
}
