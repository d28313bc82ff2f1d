package service

import (
	"context"
	"sync"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/optimistic"

	"github.com/labstack/gommon/log"
)

// screen tracks whether a list view is open. Opening it creates a fresh
// scope; closing it cancels everything started under that scope.
type screen struct {
	mu     sync.Mutex
	parent context.Context
	scope  *optimistic.Scope

	// onOpen runs once per opened scope, e.g. to start a poller.
	onOpen func(scope *optimistic.Scope)
}

// open returns the current view, opening a new one when needed. fresh is
// true when this call opened it.
func (s *screen) open() (scope *optimistic.Scope, fresh bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scope != nil && !s.scope.Closed() {
		return s.scope, false
	}

	parent := s.parent
	if parent == nil {
		parent = context.Background()
	}
	s.scope = optimistic.NewScope(parent)
	if s.onOpen != nil {
		go s.onOpen(s.scope)
	}
	return s.scope, true
}

// Close tears the view down. Pending refreshes and mutations started under
// it will not touch the lists anymore.
func (s *screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scope != nil {
		s.scope.Close()
		s.scope = nil
	}
}

func (s *screen) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope != nil && !s.scope.Closed()
}

// within derives a context that ends with either the request or the view.
func within(ctx, scope context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(scope)
	stop := context.AfterFunc(ctx, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}

// listView is a screen showing one backend list.
type listView[T any] struct {
	screen

	store    *optimistic.Store[T]
	fetch    func(ctx context.Context) ([]T, error)
	notifier notify.Notifier
	failure  string
}

func newListView[T any](
	parent context.Context,
	store *optimistic.Store[T],
	fetch func(ctx context.Context) ([]T, error),
	notifier notify.Notifier,
	failure string,
) *listView[T] {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &listView[T]{
		screen:   screen{parent: parent},
		store:    store,
		fetch:    fetch,
		notifier: notifier,
		failure:  failure,
	}
}

// load returns the open view, reading the list first when this call opened it.
func (v *listView[T]) load(ctx context.Context) (*optimistic.Scope, error) {
	scope, fresh := v.open()
	if !fresh {
		return scope, nil
	}

	if err := v.refresh(ctx, scope); err != nil {
		// Retry on the next read instead of showing an empty list for good
		v.Close()
		return nil, err
	}
	return scope, nil
}

// items returns the list, loading it when this call opens the view.
func (v *listView[T]) items(ctx context.Context) ([]T, error) {
	if _, err := v.load(ctx); err != nil {
		return nil, err
	}
	return v.store.Snapshot(), nil
}

// Refresh re-reads the list on the manager's request.
func (v *listView[T]) Refresh(ctx context.Context) error {
	scope, _ := v.open()
	return v.refresh(ctx, scope)
}

func (v *listView[T]) refresh(ctx context.Context, scope *optimistic.Scope) error {
	err := v.store.Refresh(ctx, scope, v.fetch)
	if err != nil && !optimistic.IsDiscarded(err) {
		log.Errorf("failed to refresh %s: %v", v.store.Resource(), err)
		v.notifier.Notify(notify.Failure(err, v.failure))
	}
	return err
}

// mutate runs m under the current view, loading the list first when the
// view was not open. The backend call is abandoned when either the request
// or the view ends.
func (v *listView[T]) mutate(ctx context.Context, m optimistic.Mutation[T]) error {
	scope, err := v.load(ctx)
	if err != nil {
		return err
	}

	rctx, cancel := within(ctx, scope.Context())
	defer cancel()

	commit := m.Commit
	if commit != nil {
		m.Commit = func(context.Context) (optimistic.Patch[T], error) {
			return commit(rctx)
		}
	}
	return optimistic.Apply(scope.Context(), v.store, v.notifier, m)
}
