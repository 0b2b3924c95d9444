package engine

import (
	"errors"
	"fmt"
)

// RunError is returned when a job cannot be run.
type RunError struct {
	// Code identifies the error category.
	Code RunErrorCode

	// Message is a human-readable description.
	Message string

	// RunID identifies the affected run, when one was assigned.
	RunID string
}

// RunErrorCode categorizes run errors.
type RunErrorCode string

const (
	// ErrCodeInvalidShots indicates a shot count below one.
	ErrCodeInvalidShots RunErrorCode = "INVALID_SHOTS"

	// ErrCodeShotsExceeded indicates a shot count above the engine limit.
	ErrCodeShotsExceeded RunErrorCode = "SHOTS_EXCEEDED"

	// ErrCodeMissingRegister indicates a job without a register.
	ErrCodeMissingRegister RunErrorCode = "MISSING_REGISTER"
)

// Error implements the error interface.
func (e *RunError) Error() string {
	if e.RunID != "" {
		return fmt.Sprintf("%s: %s (run=%s)", e.Code, e.Message, e.RunID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsShotsError reports whether err is an invalid or exceeded shot count.
func IsShotsError(err error) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == ErrCodeInvalidShots || re.Code == ErrCodeShotsExceeded
	}
	return false
}
