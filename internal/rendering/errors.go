package rendering

import "fmt"

// TemplateError represents an error parsing or executing a preview template
type TemplateError struct {
	Template string
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Template, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Template)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure to produce one of the projections
type RenderError struct {
	Projection string // "preview" or "document"
	Message    string
	Cause      error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error (%s): %s: %v", e.Projection, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error (%s): %s", e.Projection, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
