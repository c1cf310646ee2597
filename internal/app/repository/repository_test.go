package repository

import (
	"context"
	"testing"

	"github.com/ikkim/flyer-backend/internal/db"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/stretchr/testify/require"
)

// forEachBackend runs fn once with a local (memory KV) facade and once with a
// remote (SQLite) facade.
func forEachBackend(t *testing.T, fn func(t *testing.T, repos *Repositories)) {
	t.Run("local", func(t *testing.T) {
		fn(t, New(store.NewLocalBackend(store.NewMemoryKV())))
	})
	t.Run("remote", func(t *testing.T) {
		testDB, err := db.SetupTestDB()
		require.NoError(t, err)
		t.Cleanup(func() { db.CleanupTestDB(testDB) })
		fn(t, New(store.NewRemoteBackend(testDB)))
	})
}

func strPtr(s string) *string { return &s }

var bg = context.Background()
