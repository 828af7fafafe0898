// Package store holds the application's single state container. It is built
// once at the root and handed to every consumer; there is no global
// instance.
package store

import (
	"errors"
	"log"
	"time"

	"taskflow/internal/state"
)

// ErrNoStore is raised when the container is used before it was built.
var ErrNoStore = errors.New("store: used outside an initialized container")

type Option func(*Store)

// WithClock sets the clock used to stamp UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.reducer.Now = now
	}
}

// WithLogger logs every dispatched action to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Store owns the current snapshot. It is not safe for concurrent use; all
// dispatches are expected to come from one goroutine.
type Store struct {
	snapshot state.Snapshot
	reducer  state.Reducer
	logger   *log.Logger
	ready    bool
}

func New(initial state.Snapshot, opts ...Option) *Store {
	s := &Store{snapshot: initial, ready: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check returns ErrNoStore if s cannot be used.
func Check(s *Store) error {
	if s == nil || !s.ready {
		return ErrNoStore
	}
	return nil
}

// State returns the current snapshot. Callers must not modify it.
func (s *Store) State() state.Snapshot {
	s.mustBeReady()
	return s.snapshot
}

// Dispatch applies a to the current snapshot.
func (s *Store) Dispatch(a state.Action) {
	s.mustBeReady()
	s.snapshot = s.reducer.Reduce(s.snapshot, a)
	if s.logger != nil && a != nil {
		s.logger.Printf("dispatch %s: %d tasks, %d categories", a.Kind(), len(s.snapshot.Tasks), len(s.snapshot.Categories))
	}
}

// Now returns the container's clock reading.
func (s *Store) Now() time.Time {
	s.mustBeReady()
	if s.reducer.Now == nil {
		return time.Now()
	}
	return s.reducer.Now()
}

func (s *Store) mustBeReady() {
	if err := Check(s); err != nil {
		panic(err)
	}
}
