package optimistic

import (
	"context"
	"sync"
	"sync/atomic"
)

var scopeSeq atomic.Uint64

// Scope is the lifetime of one open view. Work started with its context is
// abandoned (and its results discarded) once the view is closed.
type Scope struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{id: scopeSeq.Add(1), ctx: ctx, cancel: cancel}
}

func (s *Scope) Context() context.Context {
	return s.ctx
}

func (s *Scope) Close() {
	s.once.Do(s.cancel)
}

func (s *Scope) Closed() bool {
	return s.ctx.Err() != nil
}
