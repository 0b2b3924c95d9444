package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arbitrary-number/quantix/internal/compiler"
)

// Scenario defines a conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is an optional path to a .cue or .yaml document. Relative
	// paths resolve against the scenario file. It excludes inline sections.
	Document string `yaml:"document,omitempty"`

	// Inline holds the expr, values, collapse, bindings and register
	// sections written directly in the scenario.
	Inline compiler.Document `yaml:",inline"`

	// Simplify runs the simplifier before quantition.
	Simplify bool `yaml:"simplify,omitempty"`

	// Samples are the uniform draws in [0, 1) consumed by measurement, one
	// per shot.
	Samples []float64 `yaml:"samples,omitempty"`

	// Assertions validate the run.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of a run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Fields lists expected signed field values (fields). Unlisted fields
	// are not checked.
	Fields map[string]int `yaml:"fields,omitempty"`

	// Stage selects quantition, collapse or measure (error, trace_count).
	Stage string `yaml:"stage,omitempty"`

	// Code is the expected error code (error).
	Code string `yaml:"code,omitempty"`

	// Value is the expected collapse result (collapse).
	Value *compiler.Complex `yaml:"value,omitempty"`

	// Tolerance bounds |got - Value| (collapse). Defaults to 1e-9.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Outcomes is the expected outcome of every shot (outcomes).
	Outcomes []int `yaml:"outcomes,omitempty"`

	// Text is a substring searched for in trace nodes (trace_contains).
	Text string `yaml:"text,omitempty"`

	// Count is the expected number of events (trace_count, deferred).
	Count int `yaml:"count,omitempty"`
}

// Assertion types.
const (
	AssertMarker        = "marker"
	AssertFields        = "fields"
	AssertError         = "error"
	AssertCollapse      = "collapse"
	AssertOutcomes      = "outcomes"
	AssertDeferred      = "deferred"
	AssertTraceContains = "trace_contains"
	AssertTraceCount    = "trace_count"
)

// Stages of a run, in execution order.
const (
	StageQuantition = "quantition"
	StageCollapse   = "collapse"
	StageMeasure    = "measure"
)

// LoadScenario reads and validates a scenario file. Unknown fields are
// rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Document != "" && !filepath.IsAbs(scenario.Document) {
		scenario.Document = filepath.Join(filepath.Dir(path), scenario.Document)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// document returns the scenario's document, loading it from disk when the
// scenario refers to one.
func (s *Scenario) document() (*compiler.Document, error) {
	if s.Document == "" {
		return &s.Inline, nil
	}
	return compiler.LoadDocument(s.Document)
}

func (s *Scenario) hasInline() bool {
	d := s.Inline
	return d.Expr != nil || d.Values != nil || d.Collapse != nil || d.Bindings != nil || d.Register != nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Document != "" {
		if s.hasInline() {
			return fmt.Errorf("document and inline sections are mutually exclusive")
		}
		if _, err := os.Stat(s.Document); os.IsNotExist(err) {
			return fmt.Errorf("document not found: %s", s.Document)
		}
	} else if !s.hasInline() {
		return fmt.Errorf("one of document, expr, collapse or register is required")
	}

	for i, u := range s.Samples {
		if u < 0 || u >= 1 {
			return fmt.Errorf("samples[%d]: %v outside [0, 1)", i, u)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertMarker:
	case AssertFields:
		if len(a.Fields) == 0 {
			return fmt.Errorf("assertions[%d]: fields is required for fields", index)
		}
	case AssertError:
		if err := validateStage(index, a.Stage); err != nil {
			return err
		}
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for error", index)
		}
	case AssertCollapse:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for collapse", index)
		}
		if a.Tolerance < 0 {
			return fmt.Errorf("assertions[%d]: tolerance must be non-negative", index)
		}
	case AssertOutcomes:
		if a.Outcomes == nil {
			return fmt.Errorf("assertions[%d]: outcomes is required for outcomes", index)
		}
	case AssertDeferred:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for deferred", index)
		}
	case AssertTraceContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for trace_contains", index)
		}
	case AssertTraceCount:
		if err := validateStage(index, a.Stage); err != nil {
			return err
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

func validateStage(index int, stage string) error {
	switch stage {
	case StageQuantition, StageCollapse, StageMeasure:
		return nil
	case "":
		return fmt.Errorf("assertions[%d]: stage is required", index)
	}
	return fmt.Errorf("assertions[%d]: unknown stage %q", index, stage)
}
