package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/logger"
	"github.com/ikkim/flyer-backend/pkg/util"
)

type ProductRepository interface {
	GetAll(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	GetByVendorID(ctx context.Context, vendorID string) ([]model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, id string, mutate func(*model.Product)) (*model.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByVendorID(ctx context.Context, vendorID string) (int64, error)
	BulkSaveForVendor(ctx context.Context, vendorID string, items []model.Product) ([]model.Product, error)
}

type productRepository struct {
	backend store.Backend
	table   store.Table[model.Product]
}

func NewProductRepository(backend store.Backend) ProductRepository {
	return &productRepository{
		backend: backend,
		table:   store.NewTable[model.Product](backend, ProductCollection),
	}
}

// applyPricing derives SalePrice; a caller-supplied value is always overwritten.
func applyPricing(p *model.Product) error {
	sale, err := util.CalculateSalePrice(p.OriginalPrice, p.DiscountRate)
	if err != nil {
		return err
	}
	p.SalePrice = sale
	return nil
}

func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	products, err := r.table.Find(ctx, store.Query{}.OrderBy("vendor_id").OrderBy("sort_order"))
	if err != nil {
		logger.Error("Failed to fetch products", err)
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	product, err := r.table.Get(ctx, id)
	if err != nil {
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

// GetByVendorID returns the vendor's products ordered by sortOrder.
func (r *productRepository) GetByVendorID(ctx context.Context, vendorID string) ([]model.Product, error) {
	logger.Debug("Fetching products for vendor", map[string]interface{}{
		"vendor_id": vendorID,
	})

	products, err := r.table.Find(ctx, store.Where(store.Eq("vendor_id", vendorID)).OrderBy("sort_order"))
	if err != nil {
		logger.Error("Failed to fetch products for vendor", err, map[string]interface{}{
			"vendor_id": vendorID,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	if err := applyPricing(product); err != nil {
		return err
	}
	ts := now()
	product.ID = uuid.NewString()
	product.CreatedAt = ts
	product.UpdatedAt = ts

	if err := r.table.Insert(ctx, product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"vendor_id": product.VendorID,
			"name":      product.Name,
		})
		return err
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, id string, mutate func(*model.Product)) (*model.Product, error) {
	var updated *model.Product
	err := r.backend.Transact(ctx, func(ctx context.Context) error {
		current, err := r.table.Get(ctx, id)
		if err != nil || current == nil {
			return err
		}
		next := *current
		mutate(&next)
		next.ID = id
		next.VendorID = current.VendorID
		next.CreatedAt = current.CreatedAt
		next.UpdatedAt = now()
		if err := applyPricing(&next); err != nil {
			return err
		}
		updated, err = r.table.Update(ctx, id, func(p *model.Product) { *p = next })
		return err
	})
	if err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return updated, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) (bool, error) {
	n, err := r.table.Delete(ctx, store.Eq("id", id))
	if err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return false, err
	}
	return n > 0, nil
}

func (r *productRepository) DeleteByVendorID(ctx context.Context, vendorID string) (int64, error) {
	n, err := r.table.Delete(ctx, store.Eq("vendor_id", vendorID))
	if err != nil {
		logger.Error("Failed to delete products for vendor", err, map[string]interface{}{
			"vendor_id": vendorID,
		})
		return 0, err
	}
	return n, nil
}

// BulkSaveForVendor replaces the vendor's whole product list. SortOrder is
// reassigned from the position in items and sale prices are recomputed.
func (r *productRepository) BulkSaveForVendor(ctx context.Context, vendorID string, items []model.Product) ([]model.Product, error) {
	logger.Debug("Replacing vendor products", map[string]interface{}{
		"vendor_id": vendorID,
		"count":     len(items),
	})

	ts := now()
	saved := make([]model.Product, len(items))
	recs := make([]*model.Product, len(items))
	for i, item := range items {
		item.ID = uuid.NewString()
		item.VendorID = vendorID
		item.SortOrder = i
		item.CreatedAt = ts
		item.UpdatedAt = ts
		if err := applyPricing(&item); err != nil {
			return nil, err
		}
		saved[i] = item
		recs[i] = &saved[i]
	}

	err := r.backend.Transact(ctx, func(ctx context.Context) error {
		if _, err := r.table.Delete(ctx, store.Eq("vendor_id", vendorID)); err != nil {
			return err
		}
		return r.table.Insert(ctx, recs...)
	})
	if err != nil {
		logger.Error("Failed to replace vendor products", err, map[string]interface{}{
			"vendor_id": vendorID,
		})
		return nil, err
	}
	return saved, nil
}
