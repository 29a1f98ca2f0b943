package services

import (
	"errors"
)

// Error kinds. Controllers map each kind onto one HTTP status.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrFullyBooked       = errors.New("fully booked")
	ErrTooManyRequests   = errors.New("too many requests")
	ErrUnavailable       = errors.New("service unavailable")
)

// FieldErrors maps JSON field names to a message for that field.
type FieldErrors map[string]string

// Error is a client-facing failure: a kind, a message and optional field errors.
type Error struct {
	Kind    error
	Message string
	Fields  FieldErrors
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func fieldError(kind error, message, field, fieldMessage string) *Error {
	return &Error{Kind: kind, Message: message, Fields: FieldErrors{field: fieldMessage}}
}

func validationError(fields FieldErrors) *Error {
	return &Error{Kind: ErrValidation, Message: "Validation failed", Fields: fields}
}
