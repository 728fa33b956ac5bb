// Package errors provides the error kinds returned by inventory operations.
// Callers branch on kind with errors.Is against the sentinels, or errors.As
// against the typed errors when they need the details.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrProductNotFound = errors.New("product not found")
	ErrPersistence     = errors.New("persistence failed")
)

// ValidationError reports a malformed product field or an illegal stock change.
// A Reason that already starts with the field name is printed on its own.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" || strings.HasPrefix(e.Reason, e.Field+" ") {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a lookup of an id the inventory does not hold.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with ID '%s' not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

// PersistenceError reports a store write that failed or affected no rows.
// Err is nil when the store answered but did not apply the write.
type PersistenceError struct {
	ID  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to update stock in store for product %s", e.ID)
	}
	return fmt.Sprintf("failed to update stock in store for product %s: %v", e.ID, e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewValidation is a shorthand for &ValidationError{Field: field, Reason: reason}.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
