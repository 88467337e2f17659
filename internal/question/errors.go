package question

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks client input that is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence marks a store failure on insert or delete.
	ErrPersistence = errors.New("persistence failure")
	// ErrNotFound is returned when a delete targets a question that does not exist.
	ErrNotFound = errors.New("question not found")
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
