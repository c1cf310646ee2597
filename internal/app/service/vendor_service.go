package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/pkg/logger"
	"github.com/ikkim/flyer-backend/pkg/util"
)

const saleDateLayout = "2006-01-02"

// VendorUpdate carries the editable vendor fields. Nil leaves a field unchanged.
type VendorUpdate struct {
	ShopName     *string `json:"shopName"`
	ManagerName  *string `json:"managerName"`
	ManagerPhoto *string `json:"managerPhoto"`
	KakaoURL     *string `json:"kakaoUrl"`
}

// ProductInput is one product row of a flyer save. Sale price and sort order
// are derived server side.
type ProductInput struct {
	Name          string  `json:"name"`
	Image         *string `json:"image"`
	OriginalPrice int64   `json:"originalPrice"`
	DiscountRate  float64 `json:"discountRate"`
	SaleStartDate *string `json:"saleStartDate"`
	SaleEndDate   *string `json:"saleEndDate"`
	IsFeatured    bool    `json:"isFeatured"`
}

// VendorDetail is the admin view of one vendor.
type VendorDetail struct {
	Vendor    *model.Vendor   `json:"vendor"`
	Products  []model.Product `json:"products"`
	ViewCount int64           `json:"viewCount"`
	EditURL   string          `json:"editUrl"`
	PublicURL string          `json:"publicUrl"`
}

// ManagedFlyer is what the edit link holder sees.
type ManagedFlyer struct {
	Vendor    *model.Vendor   `json:"vendor"`
	Products  []model.Product `json:"products"`
	PublicURL string          `json:"publicUrl"`
}

type VendorService interface {
	List(ctx context.Context, status *model.VendorStatus) ([]model.Vendor, error)
	Get(ctx context.Context, id string) (*VendorDetail, error)
	Update(ctx context.Context, id string, input VendorUpdate) (*model.Vendor, error)
	UpdateStatus(ctx context.Context, id string, status model.VendorStatus) (*model.Vendor, error)
	Delete(ctx context.Context, id string) error
	RegenerateEditToken(ctx context.Context, id string) (*VendorDetail, error)

	GetByEditToken(ctx context.Context, token string) (*ManagedFlyer, error)
	SaveFlyer(ctx context.Context, token string, input VendorUpdate, products []ProductInput) (*ManagedFlyer, error)
}

type vendorService struct {
	repos         *repository.Repositories
	publicBaseURL string
}

func NewVendorService(repos *repository.Repositories, publicBaseURL string) VendorService {
	return &vendorService{
		repos:         repos,
		publicBaseURL: publicBaseURL,
	}
}

func (s *vendorService) List(ctx context.Context, status *model.VendorStatus) ([]model.Vendor, error) {
	if status == nil {
		return s.repos.Vendors.GetAll(ctx)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: 알 수 없는 매장 상태입니다", util.ErrInvalidArgument)
	}
	return s.repos.Vendors.GetByStatus(ctx, *status)
}

func (s *vendorService) Get(ctx context.Context, id string) (*VendorDetail, error) {
	vendor, err := s.repos.Vendors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}
	return s.detail(ctx, vendor)
}

func (s *vendorService) detail(ctx context.Context, vendor *model.Vendor) (*VendorDetail, error) {
	products, err := s.repos.Products.GetByVendorID(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}
	views, err := s.repos.FlyerViews.CountByVendor(ctx, vendor.ID, nil)
	if err != nil {
		return nil, err
	}
	return &VendorDetail{
		Vendor:    vendor,
		Products:  products,
		ViewCount: views,
		EditURL:   EditURL(s.publicBaseURL, vendor.EditToken),
		PublicURL: PublicURL(s.publicBaseURL, vendor.Slug),
	}, nil
}

func (s *vendorService) Update(ctx context.Context, id string, input VendorUpdate) (*model.Vendor, error) {
	if err := validateVendorUpdate(input); err != nil {
		return nil, err
	}
	vendor, err := s.repos.Vendors.Update(ctx, id, input.apply)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}
	return vendor, nil
}

func (s *vendorService) UpdateStatus(ctx context.Context, id string, status model.VendorStatus) (*model.Vendor, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: 알 수 없는 매장 상태입니다", util.ErrInvalidArgument)
	}
	vendor, err := s.repos.Vendors.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}
	logger.Info("Vendor status changed", map[string]interface{}{
		"vendor_id": id,
		"status":    status,
	})
	return vendor, nil
}

func (s *vendorService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repos.Vendors.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrVendorNotFound
	}
	logger.Info("Vendor deleted", map[string]interface{}{
		"vendor_id": id,
	})
	return nil
}

// RegenerateEditToken invalidates the old edit link immediately.
func (s *vendorService) RegenerateEditToken(ctx context.Context, id string) (*VendorDetail, error) {
	vendor, err := s.repos.Vendors.RegenerateEditToken(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}
	logger.Info("Vendor edit token regenerated", map[string]interface{}{
		"vendor_id": id,
	})
	return s.detail(ctx, vendor)
}

func (s *vendorService) GetByEditToken(ctx context.Context, token string) (*ManagedFlyer, error) {
	vendor, err := s.repos.Vendors.GetByEditToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrInvalidEditToken
	}
	products, err := s.repos.Products.GetByVendorID(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}
	return &ManagedFlyer{
		Vendor:    vendor,
		Products:  products,
		PublicURL: PublicURL(s.publicBaseURL, vendor.Slug),
	}, nil
}

// SaveFlyer updates the vendor profile and replaces its product list as one unit of work.
func (s *vendorService) SaveFlyer(ctx context.Context, token string, input VendorUpdate, products []ProductInput) (*ManagedFlyer, error) {
	if err := validateVendorUpdate(input); err != nil {
		return nil, err
	}
	items := make([]model.Product, len(products))
	for i, p := range products {
		item, err := p.toModel(i)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}

	var result *ManagedFlyer
	err := s.repos.Transact(ctx, func(ctx context.Context) error {
		vendor, err := s.repos.Vendors.GetByEditToken(ctx, token)
		if err != nil {
			return err
		}
		if vendor == nil {
			return ErrInvalidEditToken
		}
		if vendor.Status == model.VendorStatusBlocked {
			return ErrVendorBlocked
		}

		updated, err := s.repos.Vendors.Update(ctx, vendor.ID, input.apply)
		if err != nil {
			return err
		}
		saved, err := s.repos.Products.BulkSaveForVendor(ctx, vendor.ID, items)
		if err != nil {
			return err
		}
		result = &ManagedFlyer{
			Vendor:    updated,
			Products:  saved,
			PublicURL: PublicURL(s.publicBaseURL, updated.Slug),
		}
		return nil
	})
	if err != nil {
		logger.Warn("Flyer save failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	logger.Info("Flyer saved", map[string]interface{}{
		"vendor_id": result.Vendor.ID,
		"products":  len(result.Products),
	})
	return result, nil
}

func (u VendorUpdate) apply(v *model.Vendor) {
	if u.ShopName != nil {
		v.ShopName = strings.TrimSpace(*u.ShopName)
	}
	if u.ManagerName != nil {
		v.ManagerName = strings.TrimSpace(*u.ManagerName)
	}
	if u.ManagerPhoto != nil {
		v.ManagerPhoto = trimmed(u.ManagerPhoto)
	}
	if u.KakaoURL != nil {
		v.KakaoURL = strings.TrimSpace(*u.KakaoURL)
	}
}

func validateVendorUpdate(u VendorUpdate) error {
	if u.ShopName != nil && strings.TrimSpace(*u.ShopName) == "" {
		return fmt.Errorf("%w: 매장명을 입력해주세요", util.ErrInvalidArgument)
	}
	if u.ManagerName != nil && strings.TrimSpace(*u.ManagerName) == "" {
		return fmt.Errorf("%w: 담당자 이름을 입력해주세요", util.ErrInvalidArgument)
	}
	return nil
}

func (p ProductInput) toModel(index int) (model.Product, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return model.Product{}, fmt.Errorf("%w: %d번째 상품의 이름을 입력해주세요", util.ErrInvalidArgument, index+1)
	}
	if v := util.ValidatePriceInput(float64(p.OriginalPrice), p.DiscountRate); !v.Valid {
		return model.Product{}, fmt.Errorf("%w: %s (%s)", util.ErrInvalidArgument, v.Error, name)
	}
	if err := validateSalePeriod(p.SaleStartDate, p.SaleEndDate); err != nil {
		return model.Product{}, err
	}
	return model.Product{
		Name:          name,
		Image:         trimmed(p.Image),
		OriginalPrice: p.OriginalPrice,
		DiscountRate:  p.DiscountRate,
		SaleStartDate: trimmed(p.SaleStartDate),
		SaleEndDate:   trimmed(p.SaleEndDate),
		IsFeatured:    p.IsFeatured,
		SortOrder:     index,
	}, nil
}

func validateSalePeriod(start, end *string) error {
	var startAt, endAt time.Time
	var err error
	if s := trimmed(start); s != nil {
		if startAt, err = time.Parse(saleDateLayout, *s); err != nil {
			return fmt.Errorf("%w: 할인 시작일 형식이 올바르지 않습니다 (YYYY-MM-DD)", util.ErrInvalidArgument)
		}
	}
	if e := trimmed(end); e != nil {
		if endAt, err = time.Parse(saleDateLayout, *e); err != nil {
			return fmt.Errorf("%w: 할인 종료일 형식이 올바르지 않습니다 (YYYY-MM-DD)", util.ErrInvalidArgument)
		}
	}
	if !startAt.IsZero() && !endAt.IsZero() && endAt.Before(startAt) {
		return fmt.Errorf("%w: 할인 종료일은 시작일 이후여야 합니다", util.ErrInvalidArgument)
	}
	return nil
}
