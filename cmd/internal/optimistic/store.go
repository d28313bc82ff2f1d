package optimistic

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrScopeClosed is returned when a result arrives after its view was closed,
// or after the caller waiting for it gave up. The result is discarded.
var ErrScopeClosed = errors.New("view scope closed")

type cloner[T any] interface {
	Clone() T
}

// Store is the local mirror of one backend list, keyed by a canonical id.
// Items are kept by value; types holding slices or pointers should implement
// Clone() T so snapshots never share memory with the live list.
type Store[T any] struct {
	resource string
	keyOf    func(T) string
	tracker  *Tracker

	mu    sync.Mutex
	items []T
}

func NewStore[T any](resource string, keyOf func(T) string) *Store[T] {
	return &Store[T]{
		resource: resource,
		keyOf:    keyOf,
		tracker:  NewTracker(),
	}
}

func (s *Store[T]) Resource() string {
	return s.resource
}

// Snapshot returns a deep copy of the current list.
func (s *Store[T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.items)
}

// Replace swaps the whole list, usually with a fresh backend read.
func (s *Store[T]) Replace(items []T) {
	fresh := cloneAll(items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = fresh
}

func (s *Store[T]) Find(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(key)
	if idx < 0 {
		var zero T
		return zero, false
	}
	return cloneItem(s.items[idx]), true
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Upsert replaces the item with the same key or appends it at the end.
func (s *Store[T]) Upsert(item T) {
	item = cloneItem(item)
	key := s.keyOf(item)

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(key); idx >= 0 {
		s.items[idx] = item
		return
	}
	s.items = append(s.items, item)
}

// Pending reports whether a mutation on key is still waiting for the backend.
func (s *Store[T]) Pending(key string) bool {
	return s.tracker.Pending(s.trackKey(key))
}

// InFlight is the number of mutations on this store still waiting for the backend.
func (s *Store[T]) InFlight() int {
	return s.tracker.CountPrefix(s.resource + "/")
}

// Refresh re-reads the list through fetch. Concurrent refreshes under the
// same scope share one backend call, which runs with the scope's context:
// a caller whose ctx ends stops waiting without failing the others. The
// list is only replaced while the scope is still open.
func (s *Store[T]) Refresh(ctx context.Context, scope *Scope, fetch func(context.Context) ([]T, error)) error {
	key := fmt.Sprintf("%s#%d", s.resource, scope.id)
	ch := s.tracker.DoChan(key, func() (any, error) {
		items, err := fetch(scope.Context())
		if scope.Closed() {
			return nil, fmt.Errorf("%w: %s refresh", ErrScopeClosed, s.resource)
		}
		if err != nil {
			return nil, err
		}
		s.Replace(items)
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return fmt.Errorf("%w: %s refresh: %v", ErrScopeClosed, s.resource, ctx.Err())
	}
}

func (s *Store[T]) trackKey(key string) string {
	return s.resource + "/" + key
}

// indexOf must be called with s.mu held.
func (s *Store[T]) indexOf(key string) int {
	if key == "" {
		return -1
	}
	for i, item := range s.items {
		if s.keyOf(item) == key {
			return i
		}
	}
	return -1
}

func cloneItem[T any](v T) T {
	if c, ok := any(v).(cloner[T]); ok {
		return c.Clone()
	}
	return v
}

func cloneAll[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = cloneItem(item)
	}
	return out
}
