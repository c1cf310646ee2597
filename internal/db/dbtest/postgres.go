// Package dbtest starts the PostgreSQL container shared by the opt-in database tests.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ikkim/flyer-backend/config"
	"github.com/ikkim/flyer-backend/internal/db"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// EnvPostgres enables the PostgreSQL container run; it needs a Docker daemon.
const EnvPostgres = "FLYER_POSTGRES_TESTS"

var (
	once      sync.Once
	shared    *gorm.DB
	startErr  error
	terminate func(context.Context, ...testcontainers.TerminateOption) error
)

// Postgres returns the container database shared by every test in the package,
// starting it on first use. It skips t unless EnvPostgres is set.
func Postgres(t testing.TB) *gorm.DB {
	t.Helper()
	if os.Getenv(EnvPostgres) == "" {
		t.Skipf("set %s=1 to run against PostgreSQL", EnvPostgres)
	}
	once.Do(func() {
		shared, terminate, startErr = start()
	})
	if startErr != nil {
		t.Fatalf("failed to start postgres: %v", startErr)
	}
	return shared
}

// Terminate stops the container if Postgres started one. Call it from TestMain.
func Terminate() {
	if terminate != nil {
		_ = terminate(context.Background())
	}
}

func start() (*gorm.DB, func(context.Context, ...testcontainers.TerminateOption) error, error) {
	const (
		dbName = "flyer"
		dbUser = "flyer"
		dbPwd  = "flyer-secret"
	)
	ctx := context.Background()

	container, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, container.Terminate, err
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, container.Terminate, err
	}

	// The password travels separately, the way REMOTE_DB_ACCESS_KEY does.
	gdb, err := db.Open(&config.RemoteConfig{
		URL:       fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=disable", dbUser, host, port.Port(), dbName),
		AccessKey: dbPwd,
	})
	if err != nil {
		return nil, container.Terminate, err
	}
	return gdb, container.Terminate, nil
}
