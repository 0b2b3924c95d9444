package expr

import (
	"errors"
	"fmt"
)

// EvalError is returned by Quantition when a tree cannot be reduced.
type EvalError struct {
	// Code identifies the error category.
	Code EvalErrorCode

	// Message is a human-readable description.
	Message string

	// Node is the rendering of the offending node.
	Node string
}

// EvalErrorCode categorizes evaluation errors.
type EvalErrorCode string

const (
	// ErrCodeUnboundVariable indicates quantition reached a variable.
	ErrCodeUnboundVariable EvalErrorCode = "UNBOUND_VARIABLE"

	// ErrCodeUnsupportedOperation indicates a declared but unimplemented
	// operator or function.
	ErrCodeUnsupportedOperation EvalErrorCode = "UNSUPPORTED_OPERATION"
)

// Error implements the error interface.
func (e *EvalError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.Code, e.Message, e.Node)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnboundVariable reports whether err is an UNBOUND_VARIABLE error.
// Uses errors.As to handle wrapped errors.
func IsUnboundVariable(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeUnboundVariable
	}
	return false
}

// IsUnsupportedOperation reports whether err is an UNSUPPORTED_OPERATION error.
func IsUnsupportedOperation(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeUnsupportedOperation
	}
	return false
}
