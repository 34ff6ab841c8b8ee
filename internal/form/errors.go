// Package form holds the resume record behind the builder form and the update
// operations driven by form input.
package form

import "fmt"

// FieldError indicates an update addressed a field the record does not have
type FieldError struct {
	Field string
	Kind  string // "scalar", "list" or "text"
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("unknown %s field: %q", e.Kind, e.Field)
}

// ImageError represents a failed profile image load. The record is left unchanged.
type ImageError struct {
	Message string
	Cause   error
}

func (e *ImageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("image error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("image error: %s", e.Message)
}

func (e *ImageError) Unwrap() error {
	return e.Cause
}
