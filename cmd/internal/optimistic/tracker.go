package optimistic

import (
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Tracker counts in-flight mutations per key and collapses duplicate reads.
type Tracker struct {
	group singleflight.Group

	mu      sync.Mutex
	pending map[string]int
}

func NewTracker() *Tracker {
	return &Tracker{pending: make(map[string]int)}
}

func (t *Tracker) Begin(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[key]++
}

func (t *Tracker) End(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending[key] <= 1 {
		delete(t.pending, key)
		return
	}
	t.pending[key]--
}

func (t *Tracker) Pending(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending[key] > 0
}

func (t *Tracker) CountPrefix(prefix string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := 0
	for key, n := range t.pending {
		if strings.HasPrefix(key, prefix) {
			total += n
		}
	}
	return total
}

// DoChan runs fn once for every group of concurrent callers sharing key.
// Each caller receives the shared result on its own channel.
func (t *Tracker) DoChan(key string, fn func() (any, error)) <-chan singleflight.Result {
	return t.group.DoChan(key, fn)
}
