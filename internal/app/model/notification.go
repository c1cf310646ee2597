package model

import "time"

type NotificationType string

const (
	NotificationTypeNewRequest      NotificationType = "new_request"
	NotificationTypeRequestApproved NotificationType = "request_approved"
	NotificationTypeNewTicket       NotificationType = "new_ticket"
	NotificationTypeSystem          NotificationType = "system"
)

type NotificationTarget string

const (
	NotificationTargetAdmin  NotificationTarget = "admin"
	NotificationTargetVendor NotificationTarget = "vendor"
)

// Notification 알림. TargetType이 비어 있으면 전체 대상이다.
type Notification struct {
	ID         string              `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Type       NotificationType    `gorm:"column:type;type:varchar(30);not null;index" json:"type"`
	Title      string              `gorm:"column:title;not null" json:"title"`
	Message    *string             `gorm:"column:message;type:text" json:"message,omitempty"`
	TargetType *NotificationTarget `gorm:"column:target_type;type:varchar(10);index" json:"targetType,omitempty"`
	TargetID   *string             `gorm:"column:target_id;type:varchar(36);index" json:"targetId,omitempty"`
	IsRead     bool                `gorm:"column:is_read;not null;default:false;index" json:"isRead"`
	CreatedAt  time.Time           `gorm:"column:created_at" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n Notification) RecordID() string { return n.ID }

func (n Notification) Value(column string) any {
	switch column {
	case "id":
		return n.ID
	case "type":
		return string(n.Type)
	case "target_type":
		if n.TargetType == nil {
			return nil
		}
		return string(*n.TargetType)
	case "target_id":
		return n.TargetID
	case "is_read":
		return n.IsRead
	case "created_at":
		return n.CreatedAt
	}
	return nil
}
