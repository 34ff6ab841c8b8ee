package export

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the export package.
var (
	// ErrClosed is returned when rendering with a closed engine or exporter.
	ErrClosed = errors.New("export: engine is closed")

	// ErrNoBuild is returned when a download is requested before any record was submitted.
	ErrNoBuild = errors.New("export: no document has been requested")
)

// EngineError represents a failure inside a PDF engine
type EngineError struct {
	Engine  string
	Message string
	Cause   error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s engine: %s: %v", e.Engine, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s engine: %s", e.Engine, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}
