package services

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by every service operation. Controllers translate
// these to HTTP statuses; collaborator errors never leak past a service.

// ValidationError signals bad input. Field may be empty for whole-request
// problems.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AuthorizationError signals the actor is not permitted. The message is
// deliberately generic.
type AuthorizationError struct{}

func (e *AuthorizationError) Error() string { return "not permitted" }

var ErrNotPermitted = &AuthorizationError{}

// NotFoundError signals the entity does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// ConflictError signals a state or uniqueness violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(message string) error {
	return &ConflictError{Message: message}
}

// StorageError wraps a transient infrastructure failure. Safe to show a
// generic retry message; the cause goes to the logs only.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage failure" }

func (e *StorageError) Unwrap() error { return e.Err }

func NewStorageError(err error) error {
	return &StorageError{Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
