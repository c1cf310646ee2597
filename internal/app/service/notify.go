package service

import (
	"context"

	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/pkg/logger"
)

// notify stores a notification. Failures are logged and never reach the caller.
func notify(ctx context.Context, repo repository.NotificationRepository, n *model.Notification) {
	if err := repo.Create(ctx, n); err != nil {
		logger.Warn("Failed to create notification", map[string]interface{}{
			"type":  n.Type,
			"error": err.Error(),
		})
	}
}

func adminNotification(kind model.NotificationType, title, message string) *model.Notification {
	target := model.NotificationTargetAdmin
	return &model.Notification{
		Type:       kind,
		Title:      title,
		Message:    &message,
		TargetType: &target,
	}
}

func vendorNotification(kind model.NotificationType, vendorID, title, message string) *model.Notification {
	target := model.NotificationTargetVendor
	return &model.Notification{
		Type:       kind,
		Title:      title,
		Message:    &message,
		TargetType: &target,
		TargetID:   &vendorID,
	}
}
