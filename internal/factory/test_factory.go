package factory

import (
	"time"

	"github.com/khokhopl/league-console/internal/dependencies/mocks"
	"github.com/khokhopl/league-console/internal/services/auth"
	"github.com/khokhopl/league-console/internal/storage/memory"
	"github.com/khokhopl/league-console/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockClock drives time in tests
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
