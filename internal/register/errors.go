package register

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes register errors.
type ErrorCode string

const (
	// ErrCodeDegenerateMeasurement indicates a collapse onto zero probability mass.
	ErrCodeDegenerateMeasurement ErrorCode = "DEGENERATE_MEASUREMENT"

	// ErrCodeInvalidQubitIndex indicates a qubit outside [0, qubits) or a repeated target.
	ErrCodeInvalidQubitIndex ErrorCode = "INVALID_QUBIT_INDEX"

	// ErrCodeInvalidAmplitudeIndex indicates an amplitude outside [0, 2^qubits).
	ErrCodeInvalidAmplitudeIndex ErrorCode = "INVALID_AMPLITUDE_INDEX"

	// ErrCodeInvalidQubitCount indicates a qubit count outside [1, MaxQubits].
	ErrCodeInvalidQubitCount ErrorCode = "INVALID_QUBIT_COUNT"

	// ErrCodeEntropyUnavailable indicates the random source failed.
	ErrCodeEntropyUnavailable ErrorCode = "ENTROPY_UNAVAILABLE"
)

// Error is returned by register operations.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsDegenerate reports whether err is a DEGENERATE_MEASUREMENT error.
func IsDegenerate(err error) bool {
	return HasCode(err, ErrCodeDegenerateMeasurement)
}

// HasCode reports whether err is a register Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

func errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
