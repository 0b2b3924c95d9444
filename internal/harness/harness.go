package harness

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/arbitrary-number/quantix/internal/cnumber"
	"github.com/arbitrary-number/quantix/internal/collapse"
	"github.com/arbitrary-number/quantix/internal/compiler"
	"github.com/arbitrary-number/quantix/internal/engine"
	"github.com/arbitrary-number/quantix/internal/expr"
	"github.com/arbitrary-number/quantix/internal/testutil"
)

// RunID names the single measurement run of every scenario.
const RunID = "scenario"

// Run executes a scenario and evaluates its assertions.
//
// Stage failures such as UNBOUND_VARIABLE are recorded in the trace and in
// Result.StageErrors; they are what error assertions check. Run itself only
// fails when the document cannot be loaded or compiled.
func Run(scenario *Scenario) (*Result, error) {
	doc, err := scenario.document()
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	prog, err := compiler.Compile(doc)
	if err != nil {
		return nil, fmt.Errorf("compile document: %w", err)
	}

	result := NewResult()
	ctx := context.Background()

	if prog.Expr != nil {
		runQuantition(prog, scenario.Simplify, result)
	}
	if prog.Collapse != nil {
		runCollapse(prog, result)
	}
	if prog.Register != nil {
		runMeasure(ctx, prog, scenario.Samples, result)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	slog.Debug("scenario complete", "scenario", scenario.Name, "events", len(result.Trace), "pass", result.Pass)
	return result, nil
}

func runQuantition(prog *compiler.Program, simplify bool, result *Result) {
	tree := prog.Expr
	if prog.Values != nil {
		tree = expr.Bind(tree, prog.Values)
	}
	if simplify {
		tree = expr.Simplify(tree)
	}

	v, err := expr.QuantitionTrace(tree, func(s expr.Step) {
		result.addEvent(TraceEvent{
			Stage:    StageQuantition,
			Depth:    s.Depth,
			Node:     s.Node.String(),
			Value:    expr.NewLiteral(s.Value).String(),
			Deferred: s.Deferred,
		})
	})
	if err != nil {
		result.StageErrors[StageQuantition] = err
		result.addEvent(TraceEvent{Stage: StageQuantition, Node: tree.String(), Error: ErrorCode(err)})
		return
	}
	result.Value = &v
}

func runCollapse(prog *compiler.Program, result *Result) {
	v, err := collapse.Collapse(prog.Collapse, prog.Bindings)
	if err != nil {
		result.StageErrors[StageCollapse] = err
		result.addEvent(TraceEvent{Stage: StageCollapse, Node: prog.Collapse.String(), Error: ErrorCode(err)})
		return
	}
	result.Collapsed = &v
	result.addEvent(TraceEvent{Stage: StageCollapse, Node: prog.Collapse.String(), Value: cnumber.FormatComplex(v)})
}

func runMeasure(ctx context.Context, prog *compiler.Program, samples []float64, result *Result) {
	targets := Targets(prog)
	node := fmt.Sprintf("measure %v", targets)

	e := engine.New(
		engine.NewFixedGenerator(RunID),
		engine.WithSource(testutil.NewSequenceSource(samples...)),
	)
	rep, err := e.Run(ctx, engine.Job{Source: RunID, Register: prog.Register, Targets: targets, Shots: len(samples)})
	if err != nil {
		result.StageErrors[StageMeasure] = err
		result.addEvent(TraceEvent{Stage: StageMeasure, Node: node, Error: ErrorCode(err)})
		return
	}

	result.Outcomes = make([]int, len(rep.Shots))
	for i, shot := range rep.Shots {
		result.Outcomes[i] = shot.Outcome
		result.addEvent(TraceEvent{
			Stage: StageMeasure,
			Node:  node,
			Value: fmt.Sprintf("outcome=%d p=%.4f", shot.Outcome, shot.Probability),
		})
	}
}

// Targets returns the document's measurement targets, or every qubit in
// order when the document names none.
func Targets(prog *compiler.Program) []int {
	if len(prog.Targets) > 0 {
		return slices.Clone(prog.Targets)
	}
	targets := make([]int, prog.Register.Qubits())
	for i := range targets {
		targets[i] = i
	}
	return targets
}
