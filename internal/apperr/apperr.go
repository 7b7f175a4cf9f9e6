// Package apperr holds the error kinds shared by services and translated
// to HTTP statuses at the handler boundary.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrOutOfRange   = errors.New("out of range")
	ErrUnavailable  = errors.New("unavailable")
)

// Error pairs a client-facing message with one of the kinds above.
type Error struct {
	kind    error
	message string
}

// New returns an error whose text is message and which matches kind under errors.Is.
func New(kind error, message string) error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.kind
}

// ValidationError reports malformed client input on a named field.
type ValidationError struct {
	Field   string
	Message string
	kind    error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// OutOfRange is a ValidationError that also matches ErrOutOfRange.
func OutOfRange(field, message string) error {
	return &ValidationError{Field: field, Message: message, kind: ErrOutOfRange}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
