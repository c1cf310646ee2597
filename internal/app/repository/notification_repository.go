package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/logger"
)

type NotificationFilter struct {
	TargetType *model.NotificationTarget
	TargetID   *string
	UnreadOnly bool
	Limit      int
}

func (f NotificationFilter) filters() []store.Filter {
	var out []store.Filter
	if f.TargetType != nil {
		out = append(out, store.Eq("target_type", string(*f.TargetType)))
	}
	if f.TargetID != nil {
		out = append(out, store.Eq("target_id", *f.TargetID))
	}
	if f.UnreadOnly {
		out = append(out, store.Eq("is_read", false))
	}
	return out
}

type NotificationRepository interface {
	List(ctx context.Context, filter NotificationFilter) ([]model.Notification, error)
	UnreadCount(ctx context.Context, filter NotificationFilter) (int64, error)
	Create(ctx context.Context, n *model.Notification) error
	MarkAsRead(ctx context.Context, id string) (bool, error)
	MarkAllAsRead(ctx context.Context, filter NotificationFilter) (int64, error)
}

type notificationRepository struct {
	backend store.Backend
	table   store.Table[model.Notification]
}

func NewNotificationRepository(backend store.Backend) NotificationRepository {
	return &notificationRepository{
		backend: backend,
		table:   store.NewTable[model.Notification](backend, NotificationCollection),
	}
}

func (r *notificationRepository) List(ctx context.Context, filter NotificationFilter) ([]model.Notification, error) {
	q := store.Where(filter.filters()...).OrderByDesc("created_at")
	if filter.Limit > 0 {
		q = q.Take(filter.Limit)
	}
	notifications, err := r.table.Find(ctx, q)
	if err != nil {
		logger.Error("Failed to fetch notifications", err)
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, filter NotificationFilter) (int64, error) {
	filter.UnreadOnly = true
	return r.table.Count(ctx, filter.filters()...)
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	n.ID = uuid.NewString()
	n.CreatedAt = now()

	logger.Debug("Creating notification", map[string]interface{}{
		"type":        n.Type,
		"target_type": n.TargetType,
	})
	if err := r.table.Insert(ctx, n); err != nil {
		logger.Error("Failed to create notification", err, map[string]interface{}{
			"type": n.Type,
		})
		return err
	}
	return nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id string) (bool, error) {
	n, err := r.table.Update(ctx, id, func(n *model.Notification) {
		n.IsRead = true
	})
	if err != nil {
		logger.Error("Failed to mark notification as read", err, map[string]interface{}{
			"notification_id": id,
		})
		return false, err
	}
	return n != nil, nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, filter NotificationFilter) (int64, error) {
	filter.UnreadOnly = true
	var marked int64
	err := r.backend.Transact(ctx, func(ctx context.Context) error {
		unread, err := r.table.Find(ctx, store.Where(filter.filters()...))
		if err != nil {
			return err
		}
		for _, n := range unread {
			if _, err := r.table.Update(ctx, n.ID, func(n *model.Notification) { n.IsRead = true }); err != nil {
				return err
			}
			marked++
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to mark notifications as read", err)
		return 0, err
	}
	return marked, nil
}
