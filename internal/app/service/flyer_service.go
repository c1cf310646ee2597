package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/pkg/logger"
	"github.com/ikkim/flyer-backend/pkg/metrics"
)

const (
	defaultStatsDays = 7
	maxStatsDays     = 90
)

// Viewer describes who opened a public flyer.
type Viewer struct {
	IP        string
	UserAgent string
	Referrer  string
}

// PublicVendor hides the edit token and status from customers.
type PublicVendor struct {
	Slug         string  `json:"slug"`
	ShopName     string  `json:"shopName"`
	ManagerName  string  `json:"managerName"`
	ManagerPhoto *string `json:"managerPhoto,omitempty"`
	KakaoURL     string  `json:"kakaoUrl"`
}

type PublicFlyer struct {
	Vendor   PublicVendor    `json:"vendor"`
	Products []model.Product `json:"products"`
}

type ViewStats struct {
	VendorID string                  `json:"vendorId"`
	Total    int64                   `json:"total"`
	Days     int                     `json:"days"`
	Daily    []repository.DailyCount `json:"daily"`
}

type FlyerService interface {
	GetPublicFlyer(ctx context.Context, slug string, viewer Viewer) (*PublicFlyer, error)
	ViewStats(ctx context.Context, vendorID string, days int) (*ViewStats, error)
}

type flyerService struct {
	repos   *repository.Repositories
	metrics *metrics.FlyerMetrics
}

func NewFlyerService(repos *repository.Repositories, m *metrics.FlyerMetrics) FlyerService {
	return &flyerService{repos: repos, metrics: m}
}

// GetPublicFlyer serves active vendors only; hidden and blocked vendors read as not found.
func (s *flyerService) GetPublicFlyer(ctx context.Context, slug string, viewer Viewer) (*PublicFlyer, error) {
	vendor, err := s.repos.Vendors.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if vendor == nil || vendor.Status != model.VendorStatusActive {
		return nil, ErrVendorNotFound
	}

	products, err := s.repos.Products.GetByVendorID(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].IsFeatured != products[j].IsFeatured {
			return products[i].IsFeatured
		}
		return products[i].SortOrder < products[j].SortOrder
	})

	s.recordView(ctx, vendor.ID, viewer)

	return &PublicFlyer{
		Vendor: PublicVendor{
			Slug:         vendor.Slug,
			ShopName:     vendor.ShopName,
			ManagerName:  vendor.ManagerName,
			ManagerPhoto: vendor.ManagerPhoto,
			KakaoURL:     vendor.KakaoURL,
		},
		Products: products,
	}, nil
}

func (s *flyerService) recordView(ctx context.Context, vendorID string, viewer Viewer) {
	view := &model.FlyerView{
		VendorID:  vendorID,
		UserAgent: optional(viewer.UserAgent),
		Referrer:  optional(viewer.Referrer),
		IPHash:    hashIP(viewer.IP),
	}
	if err := s.repos.FlyerViews.Record(ctx, view); err != nil {
		logger.Warn("Failed to record flyer view", map[string]interface{}{
			"vendor_id": vendorID,
			"error":     err.Error(),
		})
		return
	}
	s.metrics.IncView()
}

func (s *flyerService) ViewStats(ctx context.Context, vendorID string, days int) (*ViewStats, error) {
	if days <= 0 {
		days = defaultStatsDays
	}
	if days > maxStatsDays {
		days = maxStatsDays
	}

	vendor, err := s.repos.Vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}

	total, err := s.repos.FlyerViews.CountByVendor(ctx, vendorID, nil)
	if err != nil {
		return nil, err
	}
	daily, err := s.repos.FlyerViews.DailyCounts(ctx, vendorID, days)
	if err != nil {
		return nil, err
	}
	return &ViewStats{
		VendorID: vendorID,
		Total:    total,
		Days:     days,
		Daily:    daily,
	}, nil
}

func hashIP(ip string) *string {
	if ip == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(ip))
	h := hex.EncodeToString(sum[:])
	return &h
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
