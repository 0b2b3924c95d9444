package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/arbitrary-number/quantix/internal/ir"
)

// GoldenDir is where golden traces live, relative to the test's package.
const GoldenDir = "testdata/golden"

// Snapshot serializes a trace as canonical JSON:
//
//	{"scenario_name": ..., "trace": [{"depth", "node", "seq", "stage", ...}]}
//
// Optional event fields are omitted when empty.
func Snapshot(name string, result *Result) ([]byte, error) {
	trace := make(ir.Array, len(result.Trace))
	for i, ev := range result.Trace {
		obj := ir.Object{
			"seq":   ir.Int(ev.Seq),
			"stage": ir.String(ev.Stage),
			"depth": ir.Int(ev.Depth),
			"node":  ir.String(ev.Node),
		}
		if ev.Value != "" {
			obj["value"] = ir.String(ev.Value)
		}
		if ev.Deferred {
			obj["deferred"] = ir.Bool(true)
		}
		if ev.Error != "" {
			obj["error"] = ir.String(ev.Error)
		}
		trace[i] = obj
	}
	return ir.MarshalCanonical(ir.Object{
		"scenario_name": ir.String(name),
		"trace":         trace,
	})
}

// RunWithGolden executes a scenario and compares its trace with
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace with its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := Snapshot(name, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
