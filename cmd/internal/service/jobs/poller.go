package jobs

import (
	"context"
	"time"
	"trackpass/cmd/internal/optimistic"

	"github.com/labstack/gommon/log"
)

const RoutesPollInterval = 15 * time.Second

// Poller refreshes one screen on a fixed interval for as long as the
// context it was started with is alive.
type Poller struct {
	name     string
	interval time.Duration
	refresh  func(ctx context.Context) error
}

func NewPoller(name string, interval time.Duration, refresh func(ctx context.Context) error) *Poller {
	if interval <= 0 {
		interval = RoutesPollInterval
	}
	return &Poller{
		name:     name,
		interval: interval,
		refresh:  refresh,
	}
}

// Start blocks until ctx is done; run it on its own goroutine.
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Infof("%s poller started (every %s)", p.name, p.interval)

	for {
		select {
		case <-ctx.Done():
			log.Infof("Stopping %s poller...", p.name)
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	err := p.refresh(ctx)
	if err == nil || optimistic.IsDiscarded(err) {
		return
	}
	log.Errorf("Poller: failed to refresh %s: %v", p.name, err)
}
