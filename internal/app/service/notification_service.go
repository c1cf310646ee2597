package service

import (
	"context"

	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/pkg/logger"
)

const defaultNotificationLimit = 50

type NotificationService interface {
	ListForAdmin(ctx context.Context, unreadOnly bool) ([]model.Notification, error)
	ListForVendor(ctx context.Context, token string) ([]model.Notification, error)
	UnreadCountForAdmin(ctx context.Context) (int64, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsReadForAdmin(ctx context.Context) (int64, error)
}

type notificationService struct {
	repos *repository.Repositories
}

func NewNotificationService(repos *repository.Repositories) NotificationService {
	return &notificationService{repos: repos}
}

func adminFilter() repository.NotificationFilter {
	target := model.NotificationTargetAdmin
	return repository.NotificationFilter{TargetType: &target}
}

func (s *notificationService) ListForAdmin(ctx context.Context, unreadOnly bool) ([]model.Notification, error) {
	filter := adminFilter()
	filter.UnreadOnly = unreadOnly
	filter.Limit = defaultNotificationLimit
	return s.repos.Notifications.List(ctx, filter)
}

func (s *notificationService) ListForVendor(ctx context.Context, token string) ([]model.Notification, error) {
	vendor, err := s.repos.Vendors.GetByEditToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrInvalidEditToken
	}
	target := model.NotificationTargetVendor
	return s.repos.Notifications.List(ctx, repository.NotificationFilter{
		TargetType: &target,
		TargetID:   &vendor.ID,
		Limit:      defaultNotificationLimit,
	})
}

func (s *notificationService) UnreadCountForAdmin(ctx context.Context) (int64, error) {
	return s.repos.Notifications.UnreadCount(ctx, adminFilter())
}

func (s *notificationService) MarkAsRead(ctx context.Context, id string) error {
	found, err := s.repos.Notifications.MarkAsRead(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllAsReadForAdmin(ctx context.Context) (int64, error) {
	marked, err := s.repos.Notifications.MarkAllAsRead(ctx, adminFilter())
	if err != nil {
		return 0, err
	}
	logger.Debug("Admin notifications marked as read", map[string]interface{}{
		"count": marked,
	})
	return marked, nil
}
