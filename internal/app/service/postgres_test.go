package service

import (
	"os"
	"testing"

	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/internal/db"
	"github.com/ikkim/flyer-backend/internal/db/dbtest"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	dbtest.Terminate()
	os.Exit(code)
}

// postgresRepos returns a facade over the shared container database with every table emptied.
func postgresRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	gdb := dbtest.Postgres(t)
	require.NoError(t, db.Migrate(gdb))
	require.NoError(t, db.TruncateAllTables(gdb))
	return repository.New(store.NewRemoteBackend(gdb))
}
