package model

import "time"

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusClosed     TicketStatus = "closed"
)

type MessageAuthor string

const (
	AuthorVendor MessageAuthor = "vendor"
	AuthorAdmin  MessageAuthor = "admin"
)

// Ticket 매장 문의. open → in_progress → closed 순서로만 진행된다.
type Ticket struct {
	ID        string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	VendorID  string       `gorm:"column:vendor_id;type:varchar(36);not null;index" json:"vendorId"`
	Subject   string       `gorm:"column:subject;not null" json:"subject"`
	Status    TicketStatus `gorm:"column:status;type:varchar(20);not null;default:'open';index" json:"status"`
	CreatedAt time.Time    `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"column:updated_at" json:"updatedAt"`
}

func (Ticket) TableName() string {
	return "tickets"
}

func (t Ticket) RecordID() string { return t.ID }

func (t Ticket) Value(column string) any {
	switch column {
	case "id":
		return t.ID
	case "vendor_id":
		return t.VendorID
	case "subject":
		return t.Subject
	case "status":
		return string(t.Status)
	case "created_at":
		return t.CreatedAt
	case "updated_at":
		return t.UpdatedAt
	}
	return nil
}

// TicketMessage is append-only.
type TicketMessage struct {
	ID        string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TicketID  string        `gorm:"column:ticket_id;type:varchar(36);not null;index" json:"ticketId"`
	Author    MessageAuthor `gorm:"column:author;type:varchar(10);not null" json:"author"`
	Message   string        `gorm:"column:message;type:text;not null" json:"message"`
	CreatedAt time.Time     `gorm:"column:created_at" json:"createdAt"`
}

func (TicketMessage) TableName() string {
	return "ticket_messages"
}

func (m TicketMessage) RecordID() string { return m.ID }

func (m TicketMessage) Value(column string) any {
	switch column {
	case "id":
		return m.ID
	case "ticket_id":
		return m.TicketID
	case "author":
		return string(m.Author)
	case "created_at":
		return m.CreatedAt
	}
	return nil
}
