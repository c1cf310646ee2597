package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/logger"
)

type TicketRepository interface {
	GetAll(ctx context.Context, status *model.TicketStatus) ([]model.Ticket, error)
	GetByID(ctx context.Context, id string) (*model.Ticket, error)
	GetByVendorID(ctx context.Context, vendorID string) ([]model.Ticket, error)
	CountOpen(ctx context.Context) (int64, error)
	Create(ctx context.Context, ticket *model.Ticket) error
	UpdateStatus(ctx context.Context, id string, status model.TicketStatus) (*model.Ticket, error)
	Touch(ctx context.Context, id string) (*model.Ticket, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ticketRepository struct {
	backend  store.Backend
	table    store.Table[model.Ticket]
	messages store.Table[model.TicketMessage]
}

func NewTicketRepository(backend store.Backend) TicketRepository {
	return &ticketRepository{
		backend:  backend,
		table:    store.NewTable[model.Ticket](backend, TicketCollection),
		messages: store.NewTable[model.TicketMessage](backend, TicketMessageCollection),
	}
}

// GetAll lists tickets most recently active first, optionally by status.
func (r *ticketRepository) GetAll(ctx context.Context, status *model.TicketStatus) ([]model.Ticket, error) {
	q := store.Query{}
	if status != nil {
		q = store.Where(store.Eq("status", string(*status)))
	}
	tickets, err := r.table.Find(ctx, q.OrderByDesc("updated_at"))
	if err != nil {
		logger.Error("Failed to fetch tickets", err)
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	ticket, err := r.table.Get(ctx, id)
	if err != nil {
		logger.Error("Failed to fetch ticket", err, map[string]interface{}{
			"ticket_id": id,
		})
		return nil, err
	}
	return ticket, nil
}

func (r *ticketRepository) GetByVendorID(ctx context.Context, vendorID string) ([]model.Ticket, error) {
	tickets, err := r.table.Find(ctx, store.Where(store.Eq("vendor_id", vendorID)).OrderByDesc("updated_at"))
	if err != nil {
		logger.Error("Failed to fetch vendor tickets", err, map[string]interface{}{
			"vendor_id": vendorID,
		})
		return nil, err
	}
	return tickets, nil
}

// CountOpen counts tickets still waiting for an admin (open or in progress).
func (r *ticketRepository) CountOpen(ctx context.Context) (int64, error) {
	return r.table.Count(ctx, store.In("status",
		string(model.TicketStatusOpen),
		string(model.TicketStatusInProgress),
	))
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	ts := now()
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = ts
	ticket.UpdatedAt = ts
	if ticket.Status == "" {
		ticket.Status = model.TicketStatusOpen
	}

	if err := r.table.Insert(ctx, ticket); err != nil {
		logger.Error("Failed to create ticket", err, map[string]interface{}{
			"vendor_id": ticket.VendorID,
		})
		return err
	}
	return nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status model.TicketStatus) (*model.Ticket, error) {
	logger.Debug("Updating ticket status", map[string]interface{}{
		"ticket_id": id,
		"status":    status,
	})
	ticket, err := r.table.Update(ctx, id, func(t *model.Ticket) {
		t.Status = status
		t.UpdatedAt = now()
	})
	if err != nil {
		logger.Error("Failed to update ticket status", err, map[string]interface{}{
			"ticket_id": id,
		})
		return nil, err
	}
	return ticket, nil
}

// Touch bumps updatedAt after a new message.
func (r *ticketRepository) Touch(ctx context.Context, id string) (*model.Ticket, error) {
	return r.table.Update(ctx, id, func(t *model.Ticket) {
		t.UpdatedAt = now()
	})
}

// Delete removes the ticket and its messages.
func (r *ticketRepository) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.backend.Transact(ctx, func(ctx context.Context) error {
		if _, err := r.messages.Delete(ctx, store.Eq("ticket_id", id)); err != nil {
			return err
		}
		n, err := r.table.Delete(ctx, store.Eq("id", id))
		deleted = n > 0
		return err
	})
	if err != nil {
		logger.Error("Failed to delete ticket", err, map[string]interface{}{
			"ticket_id": id,
		})
		return false, err
	}
	return deleted, nil
}
