package aggregate

import (
	"context"
	"sync"

	"github.com/amir-ae/commerce-api-lite-sub001/event"
)

// Scope is an identity map of Aggregate Roots loaded within the boundaries
// of a single logical operation (e.g. one request).
//
// A Scope must never be shared across concurrent operations: each operation
// creates its own instance, so a failed operation cannot leak entries into
// an unrelated one. The aggregate.Committer clears the Scope exactly once
// for every durable commit, dropping entries made stale by the write.
type Scope struct {
	mx      sync.RWMutex
	entries map[event.StreamID]any
}

// NewScope creates a new empty Scope.
func NewScope() *Scope {
	return &Scope{
		entries: make(map[event.StreamID]any),
	}
}

// Get returns the Aggregate Root cached under the specified stream id,
// or false if no entry is present.
func (s *Scope) Get(id event.StreamID) (any, bool) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	root, ok := s.entries[id]

	return root, ok
}

// Put caches the Aggregate Root under the specified stream id,
// replacing any previous entry.
func (s *Scope) Put(id event.StreamID, root any) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.entries[id] = root
}

// ClearAll drops every entry in the Scope.
func (s *Scope) ClearAll() {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.entries = make(map[event.StreamID]any)
}

// Len returns the number of entries currently held in the Scope.
func (s *Scope) Len() int {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return len(s.entries)
}

// ScopedRepository decorates an aggregate.Repository with read-through
// caching over a Scope instance.
//
// Get returns the cached Aggregate Root when present, loading it from the
// inner Repository and caching it otherwise. Save delegates to the inner
// Repository untouched.
type ScopedRepository[I ID, T Root[I]] struct {
	inner Repository[I, T]
	scope *Scope
}

// NewScopedRepository decorates the provided Repository with read-through
// caching on the specified Scope.
func NewScopedRepository[I ID, T Root[I]](inner Repository[I, T], scope *Scope) ScopedRepository[I, T] {
	return ScopedRepository[I, T]{
		inner: inner,
		scope: scope,
	}
}

// Get implements aggregate.Getter.
func (repo ScopedRepository[I, T]) Get(ctx context.Context, id I) (T, error) {
	streamID := event.StreamID(id.String())

	if cached, ok := repo.scope.Get(streamID); ok {
		if root, ok := cached.(T); ok {
			return root, nil
		}
	}

	root, err := repo.inner.Get(ctx, id)
	if err != nil {
		var zeroValue T
		return zeroValue, err
	}

	repo.scope.Put(streamID, root)

	return root, nil
}

// Save implements aggregate.Saver.
func (repo ScopedRepository[I, T]) Save(ctx context.Context, root T) error {
	return repo.inner.Save(ctx, root)
}
