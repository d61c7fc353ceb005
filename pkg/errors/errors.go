// Package errors provides structured error types for tableplan.
//
// Every error that crosses a package boundary carries a [Code]. Codes let the
// editor decide what to tell the operator, the layout server pick an HTTP
// status, and the CLI choose between a warning and a failure, without string
// matching.
//
// # Error Codes
//
// Codes are grouped by prefix:
//   - INVALID_*: the caller sent something unusable (see [IsInvalid])
//   - NOT_FOUND: the requested resource does not exist
//   - NETWORK_ERROR, TIMEOUT, STORE_ERROR: the layout store failed; the live
//     layout is unaffected and the operation can be retried (see [IsPersistence])
//   - INTERNAL_ERROR, UNSUPPORTED: bugs and missing capabilities
//
// # Usage
//
//	if err := t.Validate(); errors.Is(err, errors.ErrCodeInvalidGeometry) {
//	    notify(errors.UserMessage(err))
//	}
//
//	return errors.Wrap(errors.ErrCodeStore, err, "save layout for %s", venueID)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidVenue    Code = "INVALID_VENUE"
	ErrCodeInvalidTable    Code = "INVALID_TABLE"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	ErrCodeNotFound Code = "NOT_FOUND"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"
	ErrCodeStore   Code = "STORE_ERROR"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an operator-facing message and an optional
// cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// find returns the outermost *Error in err's chain.
func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code,
// or err.Error() for uncoded errors.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsInvalid reports whether err was caused by unusable input.
func IsInvalid(err error) bool {
	return strings.HasPrefix(string(GetCode(err)), "INVALID_")
}

// IsPersistence reports whether err is a recoverable layout store failure.
func IsPersistence(err error) bool {
	switch GetCode(err) {
	case ErrCodeNetwork, ErrCodeTimeout, ErrCodeStore:
		return true
	}
	return false
}
