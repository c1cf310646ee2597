package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/logger"
	"github.com/ikkim/flyer-backend/pkg/util"
)

// maxCreateAttempts bounds retries when another writer takes the chosen slug first.
const maxCreateAttempts = 3

type VendorRepository interface {
	GetAll(ctx context.Context) ([]model.Vendor, error)
	GetByID(ctx context.Context, id string) (*model.Vendor, error)
	GetBySlug(ctx context.Context, slug string) (*model.Vendor, error)
	GetByEditToken(ctx context.Context, token string) (*model.Vendor, error)
	GetByStatus(ctx context.Context, status model.VendorStatus) ([]model.Vendor, error)
	ListSlugs(ctx context.Context, prefix string) ([]string, error)
	Create(ctx context.Context, vendor *model.Vendor) error
	Update(ctx context.Context, id string, mutate func(*model.Vendor)) (*model.Vendor, error)
	UpdateStatus(ctx context.Context, id string, status model.VendorStatus) (*model.Vendor, error)
	RegenerateEditToken(ctx context.Context, id string) (*model.Vendor, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type vendorRepository struct {
	backend  store.Backend
	table    store.Table[model.Vendor]
	products store.Table[model.Product]
	views    store.Table[model.FlyerView]
}

func NewVendorRepository(backend store.Backend) VendorRepository {
	return &vendorRepository{
		backend:  backend,
		table:    store.NewTable[model.Vendor](backend, VendorCollection),
		products: store.NewTable[model.Product](backend, ProductCollection),
		views:    store.NewTable[model.FlyerView](backend, FlyerViewCollection),
	}
}

func (r *vendorRepository) GetAll(ctx context.Context) ([]model.Vendor, error) {
	vendors, err := r.table.Find(ctx, store.Query{}.OrderByDesc("created_at"))
	if err != nil {
		logger.Error("Failed to fetch vendors", err)
		return nil, err
	}
	return vendors, nil
}

func (r *vendorRepository) GetByID(ctx context.Context, id string) (*model.Vendor, error) {
	return r.lookup(ctx, "id", id)
}

// GetBySlug returns the vendor whatever its status; visibility is the caller's decision.
func (r *vendorRepository) GetBySlug(ctx context.Context, slug string) (*model.Vendor, error) {
	return r.lookup(ctx, "slug", slug)
}

func (r *vendorRepository) GetByEditToken(ctx context.Context, token string) (*model.Vendor, error) {
	if token == "" {
		return nil, nil
	}
	return r.lookup(ctx, "edit_token", token)
}

func (r *vendorRepository) lookup(ctx context.Context, column, value string) (*model.Vendor, error) {
	vendor, err := r.table.First(ctx, store.Where(store.Eq(column, value)))
	if err != nil {
		logger.Error("Failed to fetch vendor", err, map[string]interface{}{
			"by": column,
		})
		return nil, err
	}
	return vendor, nil
}

func (r *vendorRepository) GetByStatus(ctx context.Context, status model.VendorStatus) ([]model.Vendor, error) {
	vendors, err := r.table.Find(ctx, store.Where(store.Eq("status", string(status))).OrderByDesc("created_at"))
	if err != nil {
		logger.Error("Failed to fetch vendors by status", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return vendors, nil
}

func (r *vendorRepository) ListSlugs(ctx context.Context, prefix string) ([]string, error) {
	vendors, err := r.table.Find(ctx, store.Where(store.HasPrefix("slug", prefix)))
	if err != nil {
		return nil, err
	}
	slugs := make([]string, len(vendors))
	for i, v := range vendors {
		slugs[i] = v.Slug
	}
	return slugs, nil
}

// Create assigns the id, a unique slug derived from the shop name and a fresh
// edit token when the caller left them empty.
func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	baseSlug := vendor.Slug
	if baseSlug == "" {
		baseSlug = util.GenerateSlug(vendor.ShopName)
	}
	assignToken := vendor.EditToken == ""
	if vendor.Status == "" {
		vendor.Status = model.VendorStatusActive
	}

	var err error
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		err = r.backend.Transact(ctx, func(ctx context.Context) error {
			existing, err := r.ListSlugs(ctx, util.SlugConflictPrefix(baseSlug))
			if err != nil {
				return err
			}
			vendor.Slug = util.ResolveSlugConflict(baseSlug, existing)
			if assignToken {
				if vendor.EditToken, err = util.GenerateEditToken(); err != nil {
					return err
				}
			}
			ts := now()
			vendor.ID = uuid.NewString()
			vendor.CreatedAt = ts
			vendor.UpdatedAt = ts
			return r.table.Insert(ctx, vendor)
		})
		if err == nil || !store.IsDuplicate(err) {
			break
		}
		logger.Warn("Vendor slug or token taken concurrently, retrying", map[string]interface{}{
			"slug":    vendor.Slug,
			"attempt": attempt,
		})
	}
	if err != nil {
		logger.Error("Failed to create vendor", err, map[string]interface{}{
			"shop_name": vendor.ShopName,
		})
		return err
	}

	logger.Debug("Vendor created", map[string]interface{}{
		"vendor_id": vendor.ID,
		"slug":      vendor.Slug,
	})
	return nil
}

// Update never changes id, slug or createdAt.
func (r *vendorRepository) Update(ctx context.Context, id string, mutate func(*model.Vendor)) (*model.Vendor, error) {
	updated, err := r.table.Update(ctx, id, func(v *model.Vendor) {
		slug, createdAt := v.Slug, v.CreatedAt
		mutate(v)
		v.ID = id
		v.Slug = slug
		v.CreatedAt = createdAt
		v.UpdatedAt = now()
	})
	if err != nil {
		logger.Error("Failed to update vendor", err, map[string]interface{}{
			"vendor_id": id,
		})
		return nil, err
	}
	return updated, nil
}

func (r *vendorRepository) UpdateStatus(ctx context.Context, id string, status model.VendorStatus) (*model.Vendor, error) {
	logger.Debug("Updating vendor status", map[string]interface{}{
		"vendor_id": id,
		"status":    status,
	})
	return r.Update(ctx, id, func(v *model.Vendor) {
		v.Status = status
	})
}

func (r *vendorRepository) RegenerateEditToken(ctx context.Context, id string) (*model.Vendor, error) {
	token, err := util.GenerateEditToken()
	if err != nil {
		return nil, err
	}
	return r.Update(ctx, id, func(v *model.Vendor) {
		v.EditToken = token
	})
}

// Delete removes the vendor together with its products and flyer views.
func (r *vendorRepository) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.backend.Transact(ctx, func(ctx context.Context) error {
		if _, err := r.products.Delete(ctx, store.Eq("vendor_id", id)); err != nil {
			return err
		}
		if _, err := r.views.Delete(ctx, store.Eq("vendor_id", id)); err != nil {
			return err
		}
		n, err := r.table.Delete(ctx, store.Eq("id", id))
		deleted = n > 0
		return err
	})
	if err != nil {
		logger.Error("Failed to delete vendor", err, map[string]interface{}{
			"vendor_id": id,
		})
		return false, err
	}
	logger.Debug("Vendor deleted", map[string]interface{}{
		"vendor_id": id,
		"deleted":   deleted,
	})
	return deleted, nil
}
