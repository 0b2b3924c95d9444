package store

import (
	"fmt"
	"strings"

	"github.com/arbitrary-number/quantix/internal/ir"
)

// Filter selects runs in FindRuns.
//
// This is a sealed interface; only types in this package implement it.
//
// Filter types:
//   - Equals: column = literal
//   - HasOutcome: at least one shot produced the outcome
//   - And: every filter holds
type Filter interface {
	filterNode()
}

// Equals matches a runs column against a literal. Column must be one of
// source, qubits, shots or version.
type Equals struct {
	Column string
	Value  ir.Value
}

func (Equals) filterNode() {}

// HasOutcome matches runs with at least one shot whose outcome is Outcome.
type HasOutcome struct {
	Outcome int
}

func (HasOutcome) filterNode() {}

// And matches when every filter matches. An empty And matches all runs.
type And struct {
	Filters []Filter
}

func (And) filterNode() {}

// filterColumns are the runs columns Equals may reference.
var filterColumns = map[string]bool{
	"source":  true,
	"qubits":  true,
	"shots":   true,
	"version": true,
}

// compileFilter converts f to a WHERE fragment over runs. Values are always
// bound as parameters.
func compileFilter(f Filter) (string, []any, error) {
	switch v := f.(type) {
	case nil:
		return "1 = 1", nil, nil
	case Equals:
		return compileEquals(v)
	case *Equals:
		return compileEquals(*v)
	case HasOutcome:
		return compileHasOutcome(v), []any{v.Outcome}, nil
	case *HasOutcome:
		return compileHasOutcome(*v), []any{v.Outcome}, nil
	case And:
		return compileAnd(v)
	case *And:
		return compileAnd(*v)
	default:
		return "", nil, fmt.Errorf("unsupported filter type: %T", f)
	}
}

func compileEquals(eq Equals) (string, []any, error) {
	if !filterColumns[eq.Column] {
		return "", nil, fmt.Errorf("cannot filter on column %q", eq.Column)
	}
	param, err := valueToParam(eq.Value)
	if err != nil {
		return "", nil, fmt.Errorf("filter %s: %w", eq.Column, err)
	}
	return eq.Column + " = ?", []any{param}, nil
}

func compileHasOutcome(HasOutcome) string {
	return "EXISTS (SELECT 1 FROM measurements m WHERE m.run_id = runs.id AND m.outcome = ?)"
}

func compileAnd(and And) (string, []any, error) {
	if len(and.Filters) == 0 {
		return "1 = 1", nil, nil
	}

	parts := make([]string, 0, len(and.Filters))
	var params []any
	for _, f := range and.Filters {
		sql, p, err := compileFilter(f)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, p...)
	}
	return strings.Join(parts, " AND "), params, nil
}

// valueToParam converts a scalar ir.Value to a SQL parameter.
func valueToParam(v ir.Value) (any, error) {
	switch val := v.(type) {
	case ir.String:
		return string(val), nil
	case ir.Int:
		return int64(val), nil
	case ir.Bool:
		return bool(val), nil
	case nil:
		return nil, fmt.Errorf("null cannot be compared")
	default:
		return nil, fmt.Errorf("%T cannot be used as a SQL parameter", v)
	}
}
