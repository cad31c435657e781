package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeUnavailable  ErrorCode = "UNAVAILABLE"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors. A user with zero activity in a period is NOT an error
// anywhere in the statistics engine; NotFound is reserved for missing entities
// addressed by id (a slot, a task).
var (
	ErrInvalidPeriod  = NewError(ErrCodeInvalid, "invalid period")
	ErrInvalidPayload = NewError(ErrCodeInvalid, "invalid payload")
	ErrSlotNotFound   = NewError(ErrCodeNotFound, "time slot not found")
	ErrTaskNotFound   = NewError(ErrCodeNotFound, "task not found")
	ErrUnauthorized   = NewError(ErrCodeUnauthorized, "unauthorized")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// IsRetryable reports whether the error came from an unreachable upstream
// store. Aggregation holds no state across calls, so retrying is always safe.
func IsRetryable(err error) bool {
	return IsDomainError(err, ErrCodeUnavailable)
}
