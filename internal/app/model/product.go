package model

import "time"

// Product 전단 상품. SalePrice는 항상 OriginalPrice와 DiscountRate로부터 계산된다.
type Product struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	VendorID      string    `gorm:"column:vendor_id;type:varchar(36);not null;index" json:"vendorId"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	Image         *string   `gorm:"column:image;type:text" json:"image,omitempty"`
	OriginalPrice int64     `gorm:"column:original_price;not null" json:"originalPrice"`
	DiscountRate  float64   `gorm:"column:discount_rate;not null;default:0" json:"discountRate"`
	SalePrice     int64     `gorm:"column:sale_price;not null" json:"salePrice"`
	SortOrder     int       `gorm:"column:sort_order;not null;default:0" json:"sortOrder"`
	SaleStartDate *string   `gorm:"column:sale_start_date;type:varchar(10)" json:"saleStartDate,omitempty"` // YYYY-MM-DD
	SaleEndDate   *string   `gorm:"column:sale_end_date;type:varchar(10)" json:"saleEndDate,omitempty"`
	IsFeatured    bool      `gorm:"column:is_featured;not null;default:false" json:"isFeatured"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

func (p Product) RecordID() string { return p.ID }

func (p Product) Value(column string) any {
	switch column {
	case "id":
		return p.ID
	case "vendor_id":
		return p.VendorID
	case "name":
		return p.Name
	case "original_price":
		return p.OriginalPrice
	case "discount_rate":
		return p.DiscountRate
	case "sale_price":
		return p.SalePrice
	case "sort_order":
		return p.SortOrder
	case "is_featured":
		return p.IsFeatured
	case "created_at":
		return p.CreatedAt
	case "updated_at":
		return p.UpdatedAt
	}
	return nil
}
