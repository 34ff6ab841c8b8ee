package form

import (
	"log"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultMaxImageBytes bounds the size of an uploaded profile image
const DefaultMaxImageBytes = 5 << 20

// Listener is called after every successful update with the new record and revision.
type Listener func(resume types.Resume, revision uint64)

// Store holds the resume record and funnels every mutation through its update
// operations. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	resume    types.Resume
	revision  uint64
	listeners map[int]Listener
	nextID    int

	maxImageBytes int64
	verbose       bool
}

// Option configures a Store
type Option func(*Store)

// WithMaxImageBytes caps the size of images accepted by LoadImage.
// A zero or negative value keeps the default.
func WithMaxImageBytes(n int64) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxImageBytes = n
		}
	}
}

// WithVerbose logs every update
func WithVerbose(verbose bool) Option {
	return func(s *Store) {
		s.verbose = verbose
	}
}

// NewStore creates a store seeded with a copy of initial
func NewStore(initial types.Resume, opts ...Option) *Store {
	s := &Store{
		resume:        initial.Clone(),
		listeners:     make(map[int]Listener),
		maxImageBytes: DefaultMaxImageBytes,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Snapshot returns a deep copy of the current record and its revision
func (s *Store) Snapshot() (types.Resume, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resume.Clone(), s.revision
}

// Revision returns the number of updates applied so far
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Text returns the form-control text for the named field of the current record
func (s *Store) Text(field string) (string, error) {
	r, _ := s.Snapshot()
	return FieldText(r, field)
}

// SetScalar replaces the named scalar field. The value is stored as entered.
func (s *Store) SetScalar(field, value string) error {
	set, ok := scalarSetters[field]
	if !ok {
		return &FieldError{Field: field, Kind: "scalar"}
	}
	s.update(field, func(r *types.Resume) { set(r, value) })
	return nil
}

// SetList rebuilds the named list field from raw textarea content. Malformed
// lines never fail the update; missing parts are left empty.
func (s *Store) SetList(field, raw string) error {
	set, ok := listSetters[field]
	if !ok {
		return &FieldError{Field: field, Kind: "list"}
	}
	s.update(field, func(r *types.Resume) { set(r, raw) })
	return nil
}

// SetImage stores an encoded profile image
func (s *Store) SetImage(dataURI string) {
	s.update("image", func(r *types.Resume) { r.Image = dataURI })
}

// ClearImage removes the profile image
func (s *Store) ClearImage() {
	s.update("image", func(r *types.Resume) { r.Image = "" })
}

// Replace swaps in a whole new record
func (s *Store) Replace(resume types.Resume) {
	next := resume.Clone()
	s.update("*", func(r *types.Resume) { *r = next })
}

// Subscribe registers l to be called after every update. The returned function
// removes the registration.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// update applies fn under the lock and notifies listeners once the lock is released
func (s *Store) update(field string, fn func(*types.Resume)) {
	s.mu.Lock()
	fn(&s.resume)
	s.resume.Normalize()
	s.revision++
	revision := s.revision
	snapshot := s.resume.Clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	if s.verbose {
		log.Printf("[form] updated %s (revision %d)", field, revision)
	}

	for _, l := range listeners {
		// each listener gets its own copy so projections cannot alias each other
		l(snapshot.Clone(), revision)
	}
}
