package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/logger"
)

// TicketMessageRepository is append-only.
type TicketMessageRepository interface {
	GetByTicketID(ctx context.Context, ticketID string) ([]model.TicketMessage, error)
	Create(ctx context.Context, msg *model.TicketMessage) error
}

type ticketMessageRepository struct {
	table store.Table[model.TicketMessage]
}

func NewTicketMessageRepository(backend store.Backend) TicketMessageRepository {
	return &ticketMessageRepository{table: store.NewTable[model.TicketMessage](backend, TicketMessageCollection)}
}

func (r *ticketMessageRepository) GetByTicketID(ctx context.Context, ticketID string) ([]model.TicketMessage, error) {
	messages, err := r.table.Find(ctx, store.Where(store.Eq("ticket_id", ticketID)).OrderBy("created_at"))
	if err != nil {
		logger.Error("Failed to fetch ticket messages", err, map[string]interface{}{
			"ticket_id": ticketID,
		})
		return nil, err
	}
	return messages, nil
}

func (r *ticketMessageRepository) Create(ctx context.Context, msg *model.TicketMessage) error {
	msg.ID = uuid.NewString()
	msg.CreatedAt = now()

	if err := r.table.Insert(ctx, msg); err != nil {
		logger.Error("Failed to create ticket message", err, map[string]interface{}{
			"ticket_id": msg.TicketID,
			"author":    msg.Author,
		})
		return err
	}
	return nil
}
