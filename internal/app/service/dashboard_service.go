package service

import (
	"context"
	"sort"

	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/repository"
)

// Badges are the counters shown next to the admin navigation items.
type Badges struct {
	PendingRequests     int64 `json:"pendingRequests"`
	OpenTickets         int64 `json:"openTickets"`
	UnreadNotifications int64 `json:"unreadNotifications"`
}

type VendorViewTotal struct {
	VendorID string `json:"vendorId"`
	Slug     string `json:"slug"`
	ShopName string `json:"shopName"`
	Views    int64  `json:"views"`
}

type DashboardService interface {
	Badges(ctx context.Context) (*Badges, error)
	ViewTotals(ctx context.Context) ([]VendorViewTotal, error)
}

type dashboardService struct {
	repos *repository.Repositories
}

func NewDashboardService(repos *repository.Repositories) DashboardService {
	return &dashboardService{repos: repos}
}

func (s *dashboardService) Badges(ctx context.Context) (*Badges, error) {
	pending, err := s.repos.Requests.CountByStatus(ctx, model.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	open, err := s.repos.Tickets.CountOpen(ctx)
	if err != nil {
		return nil, err
	}
	unread, err := s.repos.Notifications.UnreadCount(ctx, adminFilter())
	if err != nil {
		return nil, err
	}
	return &Badges{
		PendingRequests:     pending,
		OpenTickets:         open,
		UnreadNotifications: unread,
	}, nil
}

// ViewTotals lists every vendor with its all-time view count, most viewed first.
func (s *dashboardService) ViewTotals(ctx context.Context) ([]VendorViewTotal, error) {
	vendors, err := s.repos.Vendors.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(vendors))
	for i, v := range vendors {
		ids[i] = v.ID
	}
	totals, err := s.repos.FlyerViews.TotalsByVendor(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]VendorViewTotal, len(vendors))
	for i, v := range vendors {
		out[i] = VendorViewTotal{
			VendorID: v.ID,
			Slug:     v.Slug,
			ShopName: v.ShopName,
			Views:    totals[v.ID],
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	return out, nil
}
