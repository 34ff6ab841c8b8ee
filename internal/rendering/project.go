package rendering

import (
	"context"
	"html/template"

	"github.com/jonathan/resume-builder/internal/types"
	"golang.org/x/sync/errgroup"
)

// Projections holds both renderings of one record snapshot
type Projections struct {
	Preview     *Preview
	PreviewHTML template.HTML
	Document    *Document
}

// BuildBoth projects r into the preview and the document concurrently.
func BuildBoth(ctx context.Context, r types.Resume) (*Projections, error) {
	out := &Projections{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out.Preview = BuildPreview(r)
		html, err := PreviewHTML(r)
		if err != nil {
			return &RenderError{Projection: "preview", Message: "failed to render preview", Cause: err}
		}
		out.PreviewHTML = html
		return ctx.Err()
	})

	g.Go(func() error {
		out.Document = BuildDocument(r)
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
