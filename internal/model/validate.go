package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// ValidateAlertSpec checks the enum fields of an AlertSpec. Empty values are
// accepted since NewAlert fills them in. Message content is not constrained.
func ValidateAlertSpec(s AlertSpec) error {
	var ve ValidationError

	if s.Type != "" && !s.Type.IsValid() {
		ve.Add("type", fmt.Sprintf("invalid value %q", s.Type))
	}
	if s.Destination != "" && !s.Destination.IsValid() {
		ve.Add("destination", fmt.Sprintf("invalid value %q", s.Destination))
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
