package testutil

import (
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/nhle/menu-catalog/internal/catalog"
	"github.com/nhle/menu-catalog/internal/clock"
	"github.com/nhle/menu-catalog/internal/ident"
	"github.com/nhle/menu-catalog/internal/store"
)

// Epoch is the instant test clocks start at: Monday 2024-01-01 12:00 UTC.
var Epoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestCatalog creates an empty catalog with a fixed clock at Epoch and
// sequential ids ("id-1", "id-2", ...), logging to the test log.
func NewTestCatalog(t *testing.T) (*catalog.Store, *clock.Fixed) {
	t.Helper()

	c := clock.NewFixed(Epoch)
	s := catalog.New(
		catalog.WithClock(c),
		catalog.WithIDs(ident.NewSequence("id")),
		catalog.WithLogger(zaptest.NewLogger(t)),
	)
	return s, c
}
