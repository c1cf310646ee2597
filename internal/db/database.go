package db

import (
	"fmt"
	"net/url"

	"github.com/ikkim/flyer-backend/config"
	appLogger "github.com/ikkim/flyer-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxIdleConns = 10
	maxOpenConns = 50
)

// Open connects to the remote PostgreSQL backend described by cfg.
func Open(cfg *config.RemoteConfig) (*gorm.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if u, perr := url.Parse(cfg.URL); perr == nil {
		fields["host"] = u.Host
		fields["database"] = u.Path
	}
	appLogger.Info("Connecting to remote database", fields)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // Use silent mode, we'll use our own logger
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)

	appLogger.Info("Database connection established successfully", map[string]interface{}{
		"max_idle_conns": maxIdleConns,
		"max_open_conns": maxOpenConns,
	})
	return gdb, nil
}
