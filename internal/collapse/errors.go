package collapse

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes collapse errors.
type ErrorCode string

const (
	// ErrCodeUnboundSymbol indicates a symbol with no entry in the bindings.
	ErrCodeUnboundSymbol ErrorCode = "UNBOUND_SYMBOL"

	// ErrCodeDivisionByZero indicates a denominator that evaluated to exactly 0.
	ErrCodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"
)

// Error is returned by Collapse.
type Error struct {
	Code    ErrorCode
	Message string

	// Symbol is set for UNBOUND_SYMBOL.
	Symbol string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnboundSymbol reports whether err is an UNBOUND_SYMBOL error.
func IsUnboundSymbol(err error) bool {
	return hasCode(err, ErrCodeUnboundSymbol)
}

// IsDivisionByZero reports whether err is a DIVISION_BY_ZERO error.
func IsDivisionByZero(err error) bool {
	return hasCode(err, ErrCodeDivisionByZero)
}

func hasCode(err error, code ErrorCode) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}
