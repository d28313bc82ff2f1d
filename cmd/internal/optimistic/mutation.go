package optimistic

import (
	"context"
	"errors"
	"fmt"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/utils/apierror"
)

// Patch transforms one item. Patches receive a private copy and may modify it freely.
type Patch[T any] func(T) T

// Mutation describes one speculative edit of a Store item.
type Mutation[T any] struct {
	// Key is the canonical id of the item to change.
	Key string

	// Patch is applied locally before the backend answers. Ignored when Remove is set.
	Patch Patch[T]

	// Remove drops the item locally before the backend answers.
	Remove bool

	// Commit performs the backend call. When it returns a non-nil patch built
	// from the response body, that patch is laid over the item on success.
	Commit func(ctx context.Context) (Patch[T], error)

	Success string
	Failure string
}

// Apply runs the optimistic lifecycle of m against s:
//
// 1. the item is located (failing with a precondition error, without any backend call, when it is not there);
//
// 2. the current item and its position are captured and the local edit is applied;
//
// 3. Commit is called;
//
// 4. on success the backend's answer is merged over the current item, on failure the captured item is put back.
//
// Either outcome produces one notification. The returned error is for the
// caller's information only: the store is always left consistent.
//
// A rollback only touches its own key. Concurrent mutations on the same key
// are allowed; each one restores the item it captured itself, so the last
// one to resolve wins.
func Apply[T any](ctx context.Context, s *Store[T], n notify.Notifier, m Mutation[T]) error {
	if n == nil {
		n = notify.Discard
	}

	if m.Commit == nil {
		return fmt.Errorf("optimistic: mutation on %s/%s has no commit", s.resource, m.Key)
	}

	before, err := s.begin(m)
	if err != nil {
		n.Notify(notify.Failure(err, m.Failure))
		return err
	}

	trackKey := s.trackKey(m.Key)
	s.tracker.Begin(trackKey)
	defer s.tracker.End(trackKey)

	reconcile, err := m.Commit(ctx)
	if ctx.Err() != nil {
		// The view that started this is gone, whatever came back is stale
		return fmt.Errorf("%w: %s/%s: %v", ErrScopeClosed, s.resource, m.Key, ctx.Err())
	}

	if err != nil {
		s.restore(m.Key, before, m.Remove)
		n.Notify(notify.Failure(err, m.Failure))
		return err
	}

	if reconcile != nil && !m.Remove {
		s.patch(m.Key, reconcile)
	}

	if m.Success != "" {
		n.Notify(notify.Success(m.Success))
	}
	return nil
}

// captured is an item as it was before a mutation, with its list position.
type captured[T any] struct {
	item  T
	index int
}

// begin captures the item under m.Key and applies the local edit atomically.
func (s *Store[T]) begin(m Mutation[T]) (captured[T], error) {
	if m.Key == "" {
		return captured[T]{}, apierror.NewPreconditionError("Identificador do item ausente")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(m.Key)
	if idx < 0 {
		return captured[T]{}, apierror.NewPreconditionError("Item %s não encontrado na lista", m.Key)
	}

	before := captured[T]{item: cloneItem(s.items[idx]), index: idx}

	switch {
	case m.Remove:
		next := make([]T, 0, len(s.items)-1)
		next = append(next, s.items[:idx]...)
		next = append(next, s.items[idx+1:]...)
		s.items = next
	case m.Patch != nil:
		s.items[idx] = m.Patch(cloneItem(s.items[idx]))
	}
	return before, nil
}

// restore puts c back under key. A removed item is re-inserted at its old
// position, or at the end when the list has shrunk since; an edited item
// that a refresh dropped meanwhile stays dropped.
func (s *Store[T]) restore(key string, c captured[T], removed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(key); idx >= 0 {
		s.items[idx] = c.item
		return
	}
	if !removed {
		return
	}

	at := min(c.index, len(s.items))
	next := make([]T, 0, len(s.items)+1)
	next = append(next, s.items[:at]...)
	next = append(next, c.item)
	next = append(next, s.items[at:]...)
	s.items = next
}

// patch applies p to the item currently stored under key, if it still exists.
func (s *Store[T]) patch(key string, p Patch[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(key); idx >= 0 {
		s.items[idx] = p(cloneItem(s.items[idx]))
	}
}

// IsDiscarded reports whether err only means the view went away.
func IsDiscarded(err error) bool {
	return errors.Is(err, ErrScopeClosed)
}
