package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/storage/memory"
	"github.com/khokhopl/league-console/internal/testutil"
)

func TestQueueWritesEntries(t *testing.T) {
	store := memory.New()
	q := NewQueue(store, testutil.NopLogger(), 8)

	q.Activity(model.ActivityLog{
		UserID:      1,
		Username:    "admin",
		Module:      model.ModuleTeams,
		Action:      "create",
		Description: "Added team Govt High School Salem",
		Timestamp:   time.Now(),
	})
	q.LoginEvent(model.LoginLog{
		UserID:    1,
		Username:  "admin",
		Action:    model.LoginActionLogin,
		Success:   true,
		Timestamp: time.Now(),
	})
	q.Close()

	activity, err := store.ListActivityLogs(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, "Added team Govt High School Salem", activity[0].Description)

	logins, err := store.ListLoginLogs(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logins, 1)
	assert.True(t, logins[0].Success)
}

func TestQueueCloseDrainsPending(t *testing.T) {
	store := memory.New()
	q := NewQueue(store, testutil.NopLogger(), 64)

	for i := 0; i < 20; i++ {
		q.Activity(model.ActivityLog{Username: "admin", Module: model.ModuleMatches, Action: "update"})
	}
	q.Close()

	logs, err := store.ListActivityLogs(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, logs, 20)
}

func TestQueueEnqueueAfterCloseIsSafe(t *testing.T) {
	store := memory.New()
	q := NewQueue(store, testutil.NopLogger(), 8)
	q.Close()

	// Must not panic or block.
	q.Activity(model.ActivityLog{Username: "admin"})
	q.LoginEvent(model.LoginLog{Username: "admin"})

	logs, err := store.ListActivityLogs(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestQueueCloseIsIdempotent(t *testing.T) {
	q := NewQueue(memory.New(), testutil.NopLogger(), 8)
	q.Close()
	q.Close()
}

func TestNopDiscards(t *testing.T) {
	var sink Sink = Nop{}
	sink.Activity(model.ActivityLog{Username: "admin"})
	sink.LoginEvent(model.LoginLog{Username: "admin"})
}
