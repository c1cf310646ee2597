package db

import (
	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table of the remote schema.
func Models() []interface{} {
	return []interface{}{
		&model.Request{},
		&model.Vendor{},
		&model.Product{},
		&model.Ticket{},
		&model.TicketMessage{},
		&model.FlyerView{},
		&model.Notification{},
	}
}

// Migrate creates or updates the remote schema.
func Migrate(gdb *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := gdb.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
