package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error unwraps to exactly one of these.
var (
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrPermission      = errors.New("permission denied")
	ErrUnauthenticated = errors.New("authentication required")
	ErrTransient       = errors.New("temporary failure")
)

// Error is a user-visible failure carrying the field it is about, if any.
type Error struct {
	Kind    error
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewValidationError(field, message string) *Error {
	return &Error{Kind: ErrValidation, Field: field, Message: message}
}

func NewConflictError(field, message string) *Error {
	return &Error{Kind: ErrConflict, Field: field, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func NewPermissionError(message string) *Error {
	return &Error{Kind: ErrPermission, Message: message}
}

// Detail wraps a domain error with extra context while keeping errors.Is and
// the field reported to the client.
func Detail(err *Error, format string, args ...any) error {
	return &Error{
		Kind:    err,
		Field:   err.Field,
		Message: fmt.Sprintf("%s: %s", err.Message, fmt.Sprintf(format, args...)),
	}
}

// FieldErrors returns the field→message map for a domain error, or nil.
func FieldErrors(err error) map[string]string {
	var derr *Error
	if !errors.As(err, &derr) || derr.Field == "" {
		return nil
	}
	return map[string]string{derr.Field: derr.Message}
}
