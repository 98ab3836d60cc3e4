// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or proposal fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or not positive.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyName is returned when a configuration name is empty after trimming.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptySelection is returned when a proposal selects no options at all.
	ErrEmptySelection = errors.New("at least one option must be selected")

	// ErrUnknownOption is returned when a selected option id is not in the catalog.
	ErrUnknownOption = errors.New("unknown option")

	// ErrUnknownFeature is returned when a selection refers to a feature not in the catalog.
	ErrUnknownFeature = errors.New("unknown feature")

	// ErrDuplicateFeature is returned when two different options of the same feature are selected.
	ErrDuplicateFeature = errors.New("only one option may be selected per feature")

	// ErrInvalidCatalog is returned when catalog data violates its own invariants
	// (duplicate feature names, options pointing at another feature, negative prices).
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// ValidationError describes a single invalid field. It wraps one of the
// sentinel errors above so callers can use errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel so errors.Is works against it.
// Every ValidationError also matches ErrValidation.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrValidation {
		return []error{ErrValidation}
	}
	return []error{e.Err, ErrValidation}
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// IsValidationError reports whether err is, or wraps, a validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
