package testutil

import (
	"context"

	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/storage"
)

// SyncSink writes audit entries straight to storage so tests can assert
// on them without waiting for a background worker.
type SyncSink struct {
	Storage storage.Storage
}

// Activity appends the entry immediately
func (s SyncSink) Activity(entry model.ActivityLog) {
	_ = s.Storage.AppendActivityLog(context.Background(), &entry)
}

// LoginEvent appends the entry immediately
func (s SyncSink) LoginEvent(entry model.LoginLog) {
	_ = s.Storage.AppendLoginLog(context.Background(), &entry)
}
