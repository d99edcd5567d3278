package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected failure in a collaborator (database, cache).
var ErrInternal = errors.New("internal error")

// ErrDivisionByZero is returned by the money layer when asked to divide by zero.
// A zero-count or zero-period request is a caller error and is never swallowed.
var ErrDivisionByZero = errors.New("division by zero")

// ErrReferentialIntegrity indicates a record that points at a missing account or member.
var ErrReferentialIntegrity = errors.New("referential integrity violation")

// ErrAmbiguousAttribution marks a payer resolved through the description-name fallback
// instead of a linked identity.
var ErrAmbiguousAttribution = errors.New("ambiguous payer attribution")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
