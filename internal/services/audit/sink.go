// Package audit provides a best-effort sink for the append-only audit
// tables. Writes never block or fail the mutation that produced them:
// entries are queued on a bounded channel and flushed by a background
// worker, and are dropped (with a log line) when the queue is full.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/storage"
)

// Sink accepts audit records without ever failing the caller
type Sink interface {
	Activity(entry model.ActivityLog)
	LoginEvent(entry model.LoginLog)
}

// DefaultQueueSize is the bound on pending audit writes
const DefaultQueueSize = 256

// writeTimeout caps how long a single background write may take
const writeTimeout = 5 * time.Second

type record struct {
	activity *model.ActivityLog
	login    *model.LoginLog
}

// Queue is the storage-backed Sink implementation
type Queue struct {
	storage storage.Storage
	logger  *slog.Logger

	records   chan record
	done      chan struct{}
	closeOnce sync.Once

	mu     sync.RWMutex
	closed bool
}

// Ensure Queue implements Sink
var _ Sink = (*Queue)(nil)

// NewQueue creates a sink writing to the given storage. size <= 0 uses
// DefaultQueueSize.
func NewQueue(store storage.Storage, logger *slog.Logger, size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	q := &Queue{
		storage: store,
		logger:  logger,
		records: make(chan record, size),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

// Activity enqueues an activity log entry, dropping it if the queue is full
func (q *Queue) Activity(entry model.ActivityLog) {
	q.enqueue(record{activity: &entry})
}

// LoginEvent enqueues a login log entry, dropping it if the queue is full
func (q *Queue) LoginEvent(entry model.LoginLog) {
	q.enqueue(record{login: &entry})
}

func (q *Queue) enqueue(r record) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return
	}

	select {
	case q.records <- r:
	default:
		q.logger.Warn("audit queue full, dropping entry")
	}
}

// Close stops accepting entries, drains the queue, and waits for the
// worker to finish. Safe to call more than once.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		close(q.records)
		q.mu.Unlock()
		<-q.done
	})
}

func (q *Queue) run() {
	defer close(q.done)
	for r := range q.records {
		q.write(r)
	}
}

func (q *Queue) write(r record) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var err error
	switch {
	case r.activity != nil:
		err = q.storage.AppendActivityLog(ctx, r.activity)
	case r.login != nil:
		err = q.storage.AppendLoginLog(ctx, r.login)
	}
	if err != nil {
		q.logger.Warn("audit write failed", slog.String("error", err.Error()))
	}
}

// Nop is a Sink that discards everything, for tests and tooling
type Nop struct{}

// Ensure Nop implements Sink
var _ Sink = Nop{}

// Activity discards the entry
func (Nop) Activity(model.ActivityLog) {}

// LoginEvent discards the entry
func (Nop) LoginEvent(model.LoginLog) {}
