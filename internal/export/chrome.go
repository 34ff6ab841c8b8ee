package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// A4 paper in inches, as expected by PrintToPDF.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// ChromeEngine prints the document's HTML rendering through headless Chrome.
// It reuses one browser process and opens a tab per render. It is safe for
// concurrent use.
type ChromeEngine struct {
	cfg           chromeConfig
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewChromeEngine starts a headless browser. The caller must call Close when done.
func NewChromeEngine(opts ...Option) (*ChromeEngine, error) {
	cfg := defaultChromeConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.chromePath == "" && cfg.autoDownload {
		path, err := resolveBrowser()
		if err != nil {
			return nil, &EngineError{Engine: EngineChrome, Message: "failed to resolve browser", Cause: err}
		}
		cfg.chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start eagerly so a missing browser is reported here and not on first download.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, &EngineError{Engine: EngineChrome, Message: "failed to start browser", Cause: err}
	}

	return &ChromeEngine{
		cfg:           cfg,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close stops the browser process. Close is idempotent.
func (c *ChromeEngine) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.browserCancel()
	c.allocCancel()
	return nil
}

// Render prints doc to PDF
func (c *ChromeEngine) Render(ctx context.Context, doc *rendering.Document) (*Result, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	var html bytes.Buffer
	if err := rendering.RenderDocumentHTML(&html, doc); err != nil {
		return nil, &EngineError{Engine: EngineChrome, Message: "failed to render print page", Cause: err}
	}

	path, cleanup, err := writeTempPage(html.Bytes())
	if err != nil {
		return nil, &EngineError{Engine: EngineChrome, Message: "failed to stage print page", Cause: err}
	}
	defer cleanup()

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	defer tabCancel()

	// Tie the tab to the caller's context so a superseded build stops printing.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var buf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate("file://"+path),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(0).
				WithMarginRight(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &EngineError{Engine: EngineChrome, Message: "conversion failed", Cause: err}
	}

	return NewResult(buf), nil
}

func (c *ChromeEngine) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

// writeTempPage stores the print page where the browser can load it
func writeTempPage(html []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "resume-*.html")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	name := f.Name()
	cleanup := func() { _ = os.Remove(name) }

	if _, err := f.Write(html); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to resolve temp file: %w", err)
	}
	return abs, cleanup, nil
}
