package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/logger"
)

// statsLocation buckets daily view counts by Korean calendar days.
var statsLocation = time.FixedZone("KST", 9*60*60)

type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

type FlyerViewRepository interface {
	Record(ctx context.Context, view *model.FlyerView) error
	CountByVendor(ctx context.Context, vendorID string, since *time.Time) (int64, error)
	DailyCounts(ctx context.Context, vendorID string, days int) ([]DailyCount, error)
	TotalsByVendor(ctx context.Context, vendorIDs []string) (map[string]int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type flyerViewRepository struct {
	table store.Table[model.FlyerView]
}

func NewFlyerViewRepository(backend store.Backend) FlyerViewRepository {
	return &flyerViewRepository{table: store.NewTable[model.FlyerView](backend, FlyerViewCollection)}
}

func (r *flyerViewRepository) Record(ctx context.Context, view *model.FlyerView) error {
	view.ID = uuid.NewString()
	if view.ViewedAt.IsZero() {
		view.ViewedAt = now()
	}
	if err := r.table.Insert(ctx, view); err != nil {
		logger.Error("Failed to record flyer view", err, map[string]interface{}{
			"vendor_id": view.VendorID,
		})
		return err
	}
	return nil
}

func (r *flyerViewRepository) CountByVendor(ctx context.Context, vendorID string, since *time.Time) (int64, error) {
	filters := []store.Filter{store.Eq("vendor_id", vendorID)}
	if since != nil {
		filters = append(filters, store.Gte("viewed_at", since.UTC()))
	}
	return r.table.Count(ctx, filters...)
}

// DailyCounts returns one entry per day for the last `days` days, oldest
// first, including days without views.
func (r *flyerViewRepository) DailyCounts(ctx context.Context, vendorID string, days int) ([]DailyCount, error) {
	if days <= 0 {
		days = 7
	}
	today := now().In(statsLocation)
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, statsLocation).AddDate(0, 0, -(days - 1))

	views, err := r.table.Find(ctx, store.Where(
		store.Eq("vendor_id", vendorID),
		store.Gte("viewed_at", start.UTC()),
	))
	if err != nil {
		logger.Error("Failed to fetch flyer views", err, map[string]interface{}{
			"vendor_id": vendorID,
		})
		return nil, err
	}

	counts := make(map[string]int64, days)
	for _, v := range views {
		counts[v.ViewedAt.In(statsLocation).Format(time.DateOnly)]++
	}

	out := make([]DailyCount, days)
	for i := range out {
		day := start.AddDate(0, 0, i).Format(time.DateOnly)
		out[i] = DailyCount{Date: day, Count: counts[day]}
	}
	return out, nil
}

func (r *flyerViewRepository) TotalsByVendor(ctx context.Context, vendorIDs []string) (map[string]int64, error) {
	totals := make(map[string]int64, len(vendorIDs))
	for _, id := range vendorIDs {
		n, err := r.table.Count(ctx, store.Eq("vendor_id", id))
		if err != nil {
			return nil, err
		}
		totals[id] = n
	}
	return totals, nil
}

func (r *flyerViewRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.table.Delete(ctx, store.Lt("viewed_at", cutoff.UTC()))
	if err != nil {
		logger.Error("Failed to purge flyer views", err, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, err
	}
	return n, nil
}
