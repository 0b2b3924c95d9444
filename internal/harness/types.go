package harness

import (
	"github.com/arbitrary-number/quantix/internal/number"
)

// TraceEvent is one entry in a run's trace.
type TraceEvent struct {
	Seq   int64  `json:"seq"`
	Stage string `json:"stage"`
	Depth int    `json:"depth"`
	Node  string `json:"node"`

	// Value is the rendered result. Empty when Error is set.
	Value string `json:"value,omitempty"`

	// Deferred marks a division whose divisor reduced to zero.
	Deferred bool `json:"deferred,omitempty"`

	// Error is the error code when the stage failed.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	Trace  []TraceEvent `json:"trace"`
	Errors []string     `json:"errors,omitempty"`

	// Value is the quantition result, when the document had an expr that
	// reduced.
	Value *number.Number `json:"-"`

	// Collapsed is the collapse result, when there was one.
	Collapsed *complex128 `json:"-"`

	// Outcomes holds one entry per shot.
	Outcomes []int `json:"outcomes,omitempty"`

	// StageErrors maps a stage to the error that ended it.
	StageErrors map[string]error `json:"-"`

	seq int64
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:        true,
		Trace:       []TraceEvent{},
		Errors:      []string{},
		StageErrors: make(map[string]error),
	}
}

// AddError records an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// addEvent stamps ev with the next sequence number and appends it.
func (r *Result) addEvent(ev TraceEvent) {
	r.seq++
	ev.Seq = r.seq
	r.Trace = append(r.Trace, ev)
}
