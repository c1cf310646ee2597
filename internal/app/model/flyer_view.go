package model

import "time"

// FlyerView 공개 전단 조회 기록. IP는 해시로만 저장한다.
type FlyerView struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	VendorID  string    `gorm:"column:vendor_id;type:varchar(36);not null;index" json:"vendorId"`
	ViewedAt  time.Time `gorm:"column:viewed_at;not null;index" json:"viewedAt"`
	UserAgent *string   `gorm:"column:user_agent;type:text" json:"userAgent,omitempty"`
	Referrer  *string   `gorm:"column:referrer;type:text" json:"referrer,omitempty"`
	IPHash    *string   `gorm:"column:ip_hash;type:varchar(64)" json:"ipHash,omitempty"`
}

func (FlyerView) TableName() string {
	return "flyer_views"
}

func (v FlyerView) RecordID() string { return v.ID }

func (v FlyerView) Value(column string) any {
	switch column {
	case "id":
		return v.ID
	case "vendor_id":
		return v.VendorID
	case "viewed_at":
		return v.ViewedAt
	case "ip_hash":
		return v.IPHash
	}
	return nil
}
