package harness

import (
	"fmt"
	"math/cmplx"
	"slices"
	"sort"
	"strings"

	"github.com/arbitrary-number/quantix/internal/cnumber"
	"github.com/arbitrary-number/quantix/internal/expr"
	"github.com/arbitrary-number/quantix/internal/number"
)

// DefaultTolerance is used by collapse assertions that set none.
const DefaultTolerance = 1e-9

// EvaluateAssertions checks every assertion against result and returns one
// message per failure, prefixed with the assertion index.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d] (%s): %v", i, a.Type, err))
		}
	}
	return failures
}

func evaluate(r *Result, a Assertion) error {
	switch a.Type {
	case AssertMarker:
		v, err := quantitionValue(r)
		if err != nil {
			return err
		}
		if !expr.IsDivisionMarker(v) {
			return fmt.Errorf("value %s is not the division marker", expr.NewLiteral(v))
		}
		return nil

	case AssertFields:
		v, err := quantitionValue(r)
		if err != nil {
			return err
		}
		return checkFields(v, a.Fields)

	case AssertError:
		err, ok := r.StageErrors[a.Stage]
		if !ok {
			return fmt.Errorf("stage %s succeeded, want %s", a.Stage, a.Code)
		}
		if got := ErrorCode(err); got != a.Code {
			return fmt.Errorf("stage %s failed with %q, want %s", a.Stage, got, a.Code)
		}
		return nil

	case AssertCollapse:
		if err, ok := r.StageErrors[StageCollapse]; ok {
			return fmt.Errorf("collapse failed: %v", err)
		}
		if r.Collapsed == nil {
			return fmt.Errorf("document has no collapse section")
		}
		tol := a.Tolerance
		if tol == 0 {
			tol = DefaultTolerance
		}
		want := complex128(*a.Value)
		if d := cmplx.Abs(*r.Collapsed - want); d > tol {
			return fmt.Errorf("got %s, want %s (|diff| %g > %g)",
				cnumber.FormatComplex(*r.Collapsed), cnumber.FormatComplex(want), d, tol)
		}
		return nil

	case AssertOutcomes:
		if err, ok := r.StageErrors[StageMeasure]; ok {
			return fmt.Errorf("measurement failed: %v", err)
		}
		if !slices.Equal(r.Outcomes, a.Outcomes) {
			return fmt.Errorf("got outcomes %v, want %v", r.Outcomes, a.Outcomes)
		}
		return nil

	case AssertDeferred:
		n := 0
		for _, ev := range r.Trace {
			if ev.Deferred {
				n++
			}
		}
		if n != a.Count {
			return fmt.Errorf("got %d deferred divisions, want %d", n, a.Count)
		}
		return nil

	case AssertTraceContains:
		for _, ev := range r.Trace {
			if strings.Contains(ev.Node, a.Text) {
				return nil
			}
		}
		return fmt.Errorf("no trace node contains %q", a.Text)

	case AssertTraceCount:
		n := 0
		for _, ev := range r.Trace {
			if ev.Stage == a.Stage && ev.Error == "" {
				n++
			}
		}
		if n != a.Count {
			return fmt.Errorf("got %d %s events, want %d", n, a.Stage, a.Count)
		}
		return nil
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

func quantitionValue(r *Result) (number.Number, error) {
	if err, ok := r.StageErrors[StageQuantition]; ok {
		return number.Number{}, fmt.Errorf("quantition failed: %v", err)
	}
	if r.Value == nil {
		return number.Number{}, fmt.Errorf("document has no expr section")
	}
	return *r.Value, nil
}

// checkFields compares the listed signed fields of v. Mismatches are
// reported in field order.
func checkFields(v number.Number, want map[string]int) error {
	names := make([]string, 0, len(want))
	for name := range want {
		names = append(names, name)
	}
	sort.Strings(names)

	var diffs []string
	for _, name := range names {
		i := number.FieldIndex(name)
		if i < 0 {
			return fmt.Errorf("unknown field %q", name)
		}
		got, _ := v.SignedOrdinal(i)
		if got != want[name] {
			diffs = append(diffs, fmt.Sprintf("%s: got %d, want %d", name, got, want[name]))
		}
	}
	if len(diffs) > 0 {
		return fmt.Errorf("%s", strings.Join(diffs, "; "))
	}
	return nil
}
