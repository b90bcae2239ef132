package auth

import (
	"context"
	"sync"
	"time"
)

// DefaultSweepInterval is how often the sweeper scans stored sessions
const DefaultSweepInterval = 30 * time.Second

// Sweeper periodically force-logs-out expired and idle sessions. It is
// the only recurring background operation in the system and is stopped
// on shutdown so no timer outlives the server.
type Sweeper struct {
	service  *Service
	interval time.Duration

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  bool
}

// NewSweeper creates a sweeper over the given auth service.
// interval <= 0 uses DefaultSweepInterval.
func NewSweeper(service *Service, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		service:  service,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called or ctx is cancelled
func (w *Sweeper) Start(ctx context.Context) {
	w.started = true
	go func() {
		defer close(w.done)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.service.Sweep(ctx)
			case <-w.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels the sweep loop and waits for it to exit.
// Safe to call more than once.
func (w *Sweeper) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		if w.started {
			<-w.done
		}
	})
}
