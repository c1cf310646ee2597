package model

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Request 입점 신청
type Request struct {
	ID          string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ShopName    string        `gorm:"column:shop_name;not null" json:"shopName"`
	ManagerName string        `gorm:"column:manager_name;not null" json:"managerName"`
	Phone       *string       `gorm:"column:phone" json:"phone,omitempty"`
	KakaoURL    *string       `gorm:"column:kakao_url" json:"kakaoUrl,omitempty"`
	Notes       *string       `gorm:"column:notes;type:text" json:"notes,omitempty"`
	Status      RequestStatus `gorm:"column:status;type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time     `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time     `gorm:"column:updated_at" json:"updatedAt"`
}

func (Request) TableName() string {
	return "requests"
}

func (r Request) RecordID() string { return r.ID }

func (r Request) Value(column string) any {
	switch column {
	case "id":
		return r.ID
	case "shop_name":
		return r.ShopName
	case "manager_name":
		return r.ManagerName
	case "phone":
		return r.Phone
	case "kakao_url":
		return r.KakaoURL
	case "status":
		return string(r.Status)
	case "created_at":
		return r.CreatedAt
	case "updated_at":
		return r.UpdatedAt
	}
	return nil
}

// IsPending reports whether the request can still be approved or rejected.
func (r Request) IsPending() bool {
	return r.Status == RequestStatusPending
}
