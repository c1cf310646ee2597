package model

import "time"

type VendorStatus string

const (
	VendorStatusActive  VendorStatus = "active"
	VendorStatusHidden  VendorStatus = "hidden"
	VendorStatusBlocked VendorStatus = "blocked"
)

func (s VendorStatus) IsValid() bool {
	switch s {
	case VendorStatusActive, VendorStatusHidden, VendorStatusBlocked:
		return true
	}
	return false
}

// Vendor 승인된 매장. Slug는 생성 후 변경되지 않는다.
type Vendor struct {
	ID           string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Slug         string       `gorm:"column:slug;type:varchar(50);uniqueIndex;not null" json:"slug"`
	ShopName     string       `gorm:"column:shop_name;not null" json:"shopName"`
	ManagerName  string       `gorm:"column:manager_name;not null" json:"managerName"`
	ManagerPhoto *string      `gorm:"column:manager_photo;type:text" json:"managerPhoto,omitempty"`
	KakaoURL     string       `gorm:"column:kakao_url" json:"kakaoUrl"`
	EditToken    string       `gorm:"column:edit_token;type:varchar(64);uniqueIndex;not null" json:"editToken"`
	Status       VendorStatus `gorm:"column:status;type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt    time.Time    `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"column:updated_at" json:"updatedAt"`
}

func (Vendor) TableName() string {
	return "vendors"
}

func (v Vendor) RecordID() string { return v.ID }

func (v Vendor) Value(column string) any {
	switch column {
	case "id":
		return v.ID
	case "slug":
		return v.Slug
	case "shop_name":
		return v.ShopName
	case "manager_name":
		return v.ManagerName
	case "kakao_url":
		return v.KakaoURL
	case "edit_token":
		return v.EditToken
	case "status":
		return string(v.Status)
	case "created_at":
		return v.CreatedAt
	case "updated_at":
		return v.UpdatedAt
	}
	return nil
}
