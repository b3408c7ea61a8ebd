package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a question id does not exist
	ErrNotFound = errors.New("question not found")
	// ErrValidation marks input rejected at the write boundary
	ErrValidation = errors.New("validation failed")
)

// ValidationError lists the required fields that were empty after trimming.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": required fields missing: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}
