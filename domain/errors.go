package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
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

// Common domain errors.
var (
	ErrTaskNotFound    = NewError(ErrCodeNotFound, "task not found")
	ErrSubtaskNotFound = NewError(ErrCodeNotFound, "subtask not found")
	ErrUserNotFound    = NewError(ErrCodeNotFound, "user not found")
	ErrEventNotFound   = NewError(ErrCodeNotFound, "event not found")
	ErrSessionNotFound = NewError(ErrCodeNotFound, "session not found")
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload  = NewError(ErrCodeInvalid, "invalid payload")
	ErrBlankTitle      = NewError(ErrCodeInvalid, "title must not be blank")
	ErrMissingDeadline = NewError(ErrCodeInvalid, "deadline is required")
	ErrMissingOwner    = NewError(ErrCodeInvalid, "owner is required")
	ErrEmailTaken      = NewError(ErrCodeConflict, "email already registered")
	ErrDateTaken       = NewError(ErrCodeConflict, "an event already exists on that date")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// IsNotFound reports whether the error carries the NOT_FOUND classification.
func IsNotFound(err error) bool {
	return IsDomainError(err, ErrCodeNotFound)
}
