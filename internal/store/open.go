package store

import (
	"context"
	"fmt"

	"github.com/ikkim/flyer-backend/config"
	"github.com/ikkim/flyer-backend/internal/db"
	"github.com/ikkim/flyer-backend/pkg/logger"
	redisclient "github.com/ikkim/flyer-backend/pkg/redis"
)

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Open selects the backend once for the life of the process: remote when both
// remote settings are present, otherwise the configured local KV driver.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	if cfg.Remote.IsConfigured() {
		gdb, err := db.Open(&cfg.Remote)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(gdb); err != nil {
			return nil, fmt.Errorf("failed to migrate remote schema: %w", err)
		}
		b := NewRemoteBackend(gdb)
		if err := b.Ping(ctx); err != nil {
			b.Close()
			return nil, fmt.Errorf("remote backend unreachable: %w", err)
		}
		logger.Info("Using remote backend", nil)
		return b, nil
	}

	kv, err := OpenKV(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Using local backend", map[string]interface{}{
		"driver": cfg.Local.Driver,
	})
	return NewLocalBackend(kv), nil
}

// OpenKV builds the local KV named by LOCAL_STORE_DRIVER.
func OpenKV(cfg *config.Config) (KV, error) {
	switch cfg.Local.Driver {
	case DriverMemory:
		return NewMemoryKV(), nil
	case DriverFile, "":
		return NewFileKV(cfg.Local.Path)
	case DriverRedis:
		client, err := redisclient.New(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisKV(client, cfg.Redis.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown local store driver %q", cfg.Local.Driver)
	}
}
