// Package compiler turns declarative quantix documents into the runtime
// values of packages expr, collapse and register.
//
// A document is CUE or YAML with up to five top-level keys:
//
//	expr:     expression tree for quantition
//	values:   integer values for expr variables
//	collapse: complex expression tree
//	bindings: complex values for collapse symbols
//	register: register width, amplitudes, gates and measurement targets
//
// Errors carry the document path of the offending field and, for CUE input,
// its source position.
package compiler
