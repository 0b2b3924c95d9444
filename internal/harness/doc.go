// Package harness runs quantix conformance scenarios.
//
// A scenario is a YAML file that carries a document (inline, or by path
// relative to the scenario) plus assertions over what running it produced:
//
//	name: divide_by_zero_defers
//	description: A zero divisor yields the division marker
//	expr:
//	  op: divide
//	  args: [{int: 6}, {const: zero}]
//	assertions:
//	  - type: marker
//
// Running a scenario executes each section the document declares, in a fixed
// order: quantition of expr, collapse of collapse against bindings, then one
// measurement of register per entry in samples. Measurement draws its random
// numbers from samples, so every run is deterministic.
//
// Every reduced node, collapse and shot is appended to a trace. The trace is
// serialized as canonical JSON for golden file comparison via goldie.
package harness
