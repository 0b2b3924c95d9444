package number

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes structured number errors.
type ErrorCode string

const (
	// ErrCodeInvalidOrdinalRange indicates a field value outside [OrdinalMin, OrdinalMax].
	ErrCodeInvalidOrdinalRange ErrorCode = "INVALID_ORDINAL_RANGE"

	// ErrCodeInvalidFieldIndex indicates a field or sign index outside [0, 11].
	ErrCodeInvalidFieldIndex ErrorCode = "INVALID_FIELD_INDEX"

	// ErrCodeChecksumMismatch indicates the stored checksum does not match the fields.
	ErrCodeChecksumMismatch ErrorCode = "CHECKSUM_MISMATCH"

	// ErrCodeInvalidLiteral indicates text that cannot be parsed as a number.
	ErrCodeInvalidLiteral ErrorCode = "INVALID_LITERAL"
)

// Error is returned by every failing operation in this package.
// Field and Value are populated when they are meaningful for the code.
type Error struct {
	Code    ErrorCode
	Message string
	Field   int
	Value   int64
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func indexError(index int) *Error {
	return &Error{
		Code:    ErrCodeInvalidFieldIndex,
		Message: fmt.Sprintf("field index %d outside [0, %d]", index, NumOrdinals-1),
		Field:   index,
		Value:   int64(index),
	}
}

func rangeError(index int, value int64) *Error {
	return &Error{
		Code:    ErrCodeInvalidOrdinalRange,
		Message: fmt.Sprintf("ordinal %s = %d outside [%d, %d]", fieldName(index), value, OrdinalMin, OrdinalMax),
		Field:   index,
		Value:   value,
	}
}

// IsRangeError reports whether err is an INVALID_ORDINAL_RANGE error.
func IsRangeError(err error) bool {
	return hasCode(err, ErrCodeInvalidOrdinalRange)
}

// IsIndexError reports whether err is an INVALID_FIELD_INDEX error.
func IsIndexError(err error) bool {
	return hasCode(err, ErrCodeInvalidFieldIndex)
}

// IsChecksumError reports whether err is a CHECKSUM_MISMATCH error.
func IsChecksumError(err error) bool {
	return hasCode(err, ErrCodeChecksumMismatch)
}

func hasCode(err error, code ErrorCode) bool {
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Code == code
	}
	return false
}

func fieldName(index int) string {
	if index < 0 || index >= NumOrdinals {
		return fmt.Sprintf("#%d", index)
	}
	return OrdinalNames[index]
}
