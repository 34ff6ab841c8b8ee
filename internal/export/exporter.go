package export

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// Download control labels.
const (
	LabelPreparing = "Preparing PDF..."
	LabelReady     = "Download PDF"
)

// Status describes the export state of the latest revision
type Status struct {
	Revision uint64 `json:"revision"`
	Ready    bool   `json:"ready"`
	Label    string `json:"label"`
	Error    string `json:"error,omitempty"`
}

// build is one asynchronous render of a record snapshot
type build struct {
	id       string
	revision uint64
	record   types.Resume
	cancel   context.CancelFunc
	done     chan struct{}

	// set before done is closed
	result     *Result
	err        error
	superseded bool
}

// Exporter keeps a PDF of the latest record revision. Every revision starts a
// background build; a newer revision cancels the build it supersedes.
type Exporter struct {
	engine  Engine
	verbose bool

	mu          sync.Mutex
	current     *build
	watchers    map[int]chan Status
	nextID      int
	unsubscribe func()
	closed      bool
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithVerboseLogging logs every build start and completion.
func WithVerboseLogging(verbose bool) ExporterOption {
	return func(e *Exporter) {
		e.verbose = verbose
	}
}

// NewExporter returns an exporter rendering with engine
func NewExporter(engine Engine, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		engine:   engine,
		watchers: make(map[int]chan Status),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Attach subscribes the exporter to store and starts a build of its current record.
func (e *Exporter) Attach(store *form.Store) {
	unsubscribe := store.Subscribe(e.Trigger)

	e.mu.Lock()
	e.unsubscribe = unsubscribe
	e.mu.Unlock()

	r, rev := store.Snapshot()
	e.Trigger(r, rev)
}

// Trigger starts a build of r. Revisions older than or equal to the current one are ignored.
func (e *Exporter) Trigger(r types.Resume, revision uint64) {
	e.mu.Lock()
	if e.closed || (e.current != nil && revision <= e.current.revision) {
		e.mu.Unlock()
		return
	}

	prev := e.current
	if prev != nil {
		prev.superseded = true
		prev.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &build{
		id:       uuid.NewString(),
		revision: revision,
		record:   r,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	e.current = b
	e.broadcastLocked()
	e.mu.Unlock()

	if e.verbose {
		log.Printf("[export] build %s started (revision %d)", b.id, revision)
	}

	go e.run(ctx, b)
}

func (e *Exporter) run(ctx context.Context, b *build) {
	defer b.cancel()

	res, err := e.engine.Render(ctx, rendering.BuildDocument(b.record))

	e.mu.Lock()
	b.result, b.err = res, err
	close(b.done)
	stale := b != e.current
	if !stale {
		e.broadcastLocked()
	}
	e.mu.Unlock()

	switch {
	case stale:
		if e.verbose {
			log.Printf("[export] build %s discarded (revision %d superseded)", b.id, b.revision)
		}
		return
	case err != nil:
		log.Printf("[export] build %s failed: %v", b.id, err)
	case e.verbose:
		log.Printf("[export] build %s ready: %d bytes", b.id, res.Len())
	}
}

// Status returns the export state of the latest revision
func (e *Exporter) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statusLocked()
}

func (e *Exporter) statusLocked() Status {
	b := e.current
	if b == nil {
		return Status{Label: LabelPreparing}
	}

	select {
	case <-b.done:
	default:
		return Status{Revision: b.revision, Label: LabelPreparing}
	}

	s := Status{Revision: b.revision, Ready: b.err == nil, Label: LabelReady}
	if b.err != nil {
		s.Error = b.err.Error()
	}
	return s
}

// Download is a pending PDF of the record snapshot current when it was requested.
type Download struct {
	exporter *Exporter
	build    *build
}

// Request pins the current revision. A record update after this call does not change
// what the download contains.
func (e *Exporter) Request() *Download {
	e.mu.Lock()
	defer e.mu.Unlock()
	return &Download{exporter: e, build: e.current}
}

// Revision returns the record revision the download renders
func (d *Download) Revision() uint64 {
	if d.build == nil {
		return 0
	}
	return d.build.revision
}

// Wait blocks until the pinned revision's PDF is available or ctx is done. When the
// background build was superseded the snapshot is rendered directly.
func (d *Download) Wait(ctx context.Context) (*Result, error) {
	b := d.build
	if b == nil {
		return nil, ErrNoBuild
	}

	select {
	case <-b.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	d.exporter.mu.Lock()
	res, err, superseded := b.result, b.err, b.superseded
	d.exporter.mu.Unlock()

	if err != nil && superseded && errors.Is(err, context.Canceled) {
		return d.exporter.engine.Render(ctx, rendering.BuildDocument(b.record))
	}
	return res, err
}

// Latest waits for the PDF of the revision current at call time
func (e *Exporter) Latest(ctx context.Context) (*Result, error) {
	return e.Request().Wait(ctx)
}

// Watch delivers status changes, starting with the current status. Slow receivers
// only see the newest status. Call the returned function to stop watching.
func (e *Exporter) Watch() (<-chan Status, func()) {
	ch := make(chan Status, 1)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := e.nextID
	e.nextID++
	e.watchers[id] = ch
	ch <- e.statusLocked()
	e.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			if _, ok := e.watchers[id]; ok {
				delete(e.watchers, id)
				close(ch)
			}
		})
	}
}

// broadcastLocked sends the current status to every watcher. Callers hold e.mu.
func (e *Exporter) broadcastLocked() {
	s := e.statusLocked()
	for _, ch := range e.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// Close detaches from the store, cancels the running build and ends all watches.
// The engine is left open.
func (e *Exporter) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	unsubscribe := e.unsubscribe
	if e.current != nil {
		e.current.cancel()
	}
	for id, ch := range e.watchers {
		delete(e.watchers, id)
		close(ch)
	}
	e.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
