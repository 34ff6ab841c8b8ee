// Package export turns the PDF document tree into PDF bytes and keeps an up-to-date
// download for the latest revision of the form.
package export

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/rendering"
)

// FileName is the name every exported document is saved under
const FileName = "resume.pdf"

// Engine names accepted by NewEngine.
const (
	EngineNative = "native"
	EngineChrome = "chrome"
)

// Engine serializes a document tree to PDF bytes
type Engine interface {
	Render(ctx context.Context, doc *rendering.Document) (*Result, error)
	Close() error
}

// NewEngine returns the engine registered under name. Chrome options are ignored by
// the native engine.
func NewEngine(name string, opts ...Option) (Engine, error) {
	switch name {
	case "", EngineNative:
		return NewNativeEngine(), nil
	case EngineChrome:
		return NewChromeEngine(opts...)
	default:
		return nil, fmt.Errorf("unknown engine %q (expected %s or %s)", name, EngineNative, EngineChrome)
	}
}
