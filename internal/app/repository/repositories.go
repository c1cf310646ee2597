package repository

import (
	"context"
	"time"

	"github.com/ikkim/flyer-backend/internal/store"
)

// Collections as they are named in each backend.
var (
	RequestCollection       = store.Collection{Table: "requests", Slot: "flyer_requests"}
	VendorCollection        = store.Collection{Table: "vendors", Slot: "flyer_vendors", Unique: []string{"slug", "edit_token"}}
	ProductCollection       = store.Collection{Table: "products", Slot: "flyer_products"}
	TicketCollection        = store.Collection{Table: "tickets", Slot: "flyer_tickets"}
	TicketMessageCollection = store.Collection{Table: "ticket_messages", Slot: "flyer_ticket_messages"}
	FlyerViewCollection     = store.Collection{Table: "flyer_views", Slot: "flyer_views"}
	NotificationCollection  = store.Collection{Table: "notifications", Slot: "flyer_notifications"}
)

// Repositories is the single entry point services use. Every repository in it
// shares one backend, chosen when the facade is built.
type Repositories struct {
	backend store.Backend

	Requests       RequestRepository
	Vendors        VendorRepository
	Products       ProductRepository
	Tickets        TicketRepository
	TicketMessages TicketMessageRepository
	FlyerViews     FlyerViewRepository
	Notifications  NotificationRepository
}

func New(backend store.Backend) *Repositories {
	return &Repositories{
		backend:        backend,
		Requests:       NewRequestRepository(backend),
		Vendors:        NewVendorRepository(backend),
		Products:       NewProductRepository(backend),
		Tickets:        NewTicketRepository(backend),
		TicketMessages: NewTicketMessageRepository(backend),
		FlyerViews:     NewFlyerViewRepository(backend),
		Notifications:  NewNotificationRepository(backend),
	}
}

// Transact runs fn as one unit of work across all repositories.
func (r *Repositories) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.Transact(ctx, fn)
}

func (r *Repositories) BackendName() string {
	return r.backend.Name()
}

func (r *Repositories) Ping(ctx context.Context) error {
	return r.backend.Ping(ctx)
}

func (r *Repositories) Close() error {
	return r.backend.Close()
}

// now is replaced in tests that need deterministic timestamps.
var now = func() time.Time {
	return time.Now().UTC()
}
