package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/logger"
)

type RequestRepository interface {
	GetAll(ctx context.Context) ([]model.Request, error)
	GetByID(ctx context.Context, id string) (*model.Request, error)
	GetByStatus(ctx context.Context, status model.RequestStatus) ([]model.Request, error)
	CountByStatus(ctx context.Context, status model.RequestStatus) (int64, error)
	Create(ctx context.Context, req *model.Request) error
	Update(ctx context.Context, id string, mutate func(*model.Request)) (*model.Request, error)
	UpdateStatus(ctx context.Context, id string, status model.RequestStatus) (*model.Request, error)
	Decide(ctx context.Context, id string, status model.RequestStatus) (*model.Request, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type requestRepository struct {
	table store.Table[model.Request]
}

func NewRequestRepository(backend store.Backend) RequestRepository {
	return &requestRepository{table: store.NewTable[model.Request](backend, RequestCollection)}
}

func (r *requestRepository) GetAll(ctx context.Context) ([]model.Request, error) {
	requests, err := r.table.Find(ctx, store.Query{}.OrderByDesc("created_at"))
	if err != nil {
		logger.Error("Failed to fetch requests", err)
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*model.Request, error) {
	req, err := r.table.Get(ctx, id)
	if err != nil {
		logger.Error("Failed to fetch request", err, map[string]interface{}{
			"request_id": id,
		})
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) GetByStatus(ctx context.Context, status model.RequestStatus) ([]model.Request, error) {
	logger.Debug("Fetching requests by status", map[string]interface{}{
		"status": status,
	})

	requests, err := r.table.Find(ctx, store.Where(store.Eq("status", string(status))).OrderByDesc("created_at"))
	if err != nil {
		logger.Error("Failed to fetch requests by status", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) CountByStatus(ctx context.Context, status model.RequestStatus) (int64, error) {
	return r.table.Count(ctx, store.Eq("status", string(status)))
}

func (r *requestRepository) Create(ctx context.Context, req *model.Request) error {
	ts := now()
	req.ID = uuid.NewString()
	req.CreatedAt = ts
	req.UpdatedAt = ts
	if req.Status == "" {
		req.Status = model.RequestStatusPending
	}

	logger.Debug("Creating request", map[string]interface{}{
		"request_id": req.ID,
		"shop_name":  req.ShopName,
	})

	if err := r.table.Insert(ctx, req); err != nil {
		logger.Error("Failed to create request", err, map[string]interface{}{
			"shop_name": req.ShopName,
		})
		return err
	}
	return nil
}

// Update returns (nil, nil) when the request does not exist.
func (r *requestRepository) Update(ctx context.Context, id string, mutate func(*model.Request)) (*model.Request, error) {
	updated, err := r.table.Update(ctx, id, func(req *model.Request) {
		createdAt := req.CreatedAt
		mutate(req)
		req.ID = id
		req.CreatedAt = createdAt
		req.UpdatedAt = now()
	})
	if err != nil {
		logger.Error("Failed to update request", err, map[string]interface{}{
			"request_id": id,
		})
		return nil, err
	}
	return updated, nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status model.RequestStatus) (*model.Request, error) {
	logger.Debug("Updating request status", map[string]interface{}{
		"request_id": id,
		"status":     status,
	})
	return r.Update(ctx, id, func(req *model.Request) {
		req.Status = status
	})
}

// Decide moves a pending request to status. It returns (nil, nil) when the
// request is missing or another caller already decided it.
func (r *requestRepository) Decide(ctx context.Context, id string, status model.RequestStatus) (*model.Request, error) {
	logger.Debug("Deciding request", map[string]interface{}{
		"request_id": id,
		"status":     status,
	})

	pending := []store.Filter{store.Eq("status", string(model.RequestStatusPending))}
	decided, err := r.table.UpdateIf(ctx, id, pending, func(req *model.Request) {
		req.Status = status
		req.UpdatedAt = now()
	})
	if err != nil {
		logger.Error("Failed to decide request", err, map[string]interface{}{
			"request_id": id,
			"status":     status,
		})
		return nil, err
	}
	return decided, nil
}

func (r *requestRepository) Delete(ctx context.Context, id string) (bool, error) {
	n, err := r.table.Delete(ctx, store.Eq("id", id))
	if err != nil {
		logger.Error("Failed to delete request", err, map[string]interface{}{
			"request_id": id,
		})
		return false, err
	}
	return n > 0, nil
}
