package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/pkg/logger"
	"github.com/ikkim/flyer-backend/pkg/util"
)

// TicketThread is a ticket with its messages in posting order.
type TicketThread struct {
	Ticket   *model.Ticket         `json:"ticket"`
	Messages []model.TicketMessage `json:"messages"`
}

type TicketService interface {
	// vendor side, authenticated by edit token
	Open(ctx context.Context, token, subject, message string) (*TicketThread, error)
	VendorReply(ctx context.Context, token, ticketID, message string) (*model.TicketMessage, error)
	ListForVendor(ctx context.Context, token string) ([]model.Ticket, error)
	VendorMessages(ctx context.Context, token, ticketID string) (*TicketThread, error)

	// admin side
	List(ctx context.Context, status *model.TicketStatus) ([]model.Ticket, error)
	Messages(ctx context.Context, ticketID string) (*TicketThread, error)
	AdminReply(ctx context.Context, ticketID, message string) (*model.TicketMessage, error)
	Close(ctx context.Context, ticketID string) (*model.Ticket, error)
}

type ticketService struct {
	repos *repository.Repositories
}

func NewTicketService(repos *repository.Repositories) TicketService {
	return &ticketService{repos: repos}
}

func (s *ticketService) vendorFor(ctx context.Context, token string) (*model.Vendor, error) {
	vendor, err := s.repos.Vendors.GetByEditToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrInvalidEditToken
	}
	return vendor, nil
}

func (s *ticketService) Open(ctx context.Context, token, subject, message string) (*TicketThread, error) {
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" {
		return nil, fmt.Errorf("%w: 문의 제목을 입력해주세요", util.ErrInvalidArgument)
	}
	if message == "" {
		return nil, fmt.Errorf("%w: 문의 내용을 입력해주세요", util.ErrInvalidArgument)
	}

	vendor, err := s.vendorFor(ctx, token)
	if err != nil {
		return nil, err
	}

	ticket := &model.Ticket{VendorID: vendor.ID, Subject: subject, Status: model.TicketStatusOpen}
	first := &model.TicketMessage{Author: model.AuthorVendor, Message: message}
	err = s.repos.Transact(ctx, func(ctx context.Context) error {
		if err := s.repos.Tickets.Create(ctx, ticket); err != nil {
			return err
		}
		first.TicketID = ticket.ID
		return s.repos.TicketMessages.Create(ctx, first)
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, s.repos.Notifications, adminNotification(
		model.NotificationTypeNewTicket,
		"새 문의",
		fmt.Sprintf("%s: %s", vendor.ShopName, subject),
	))

	logger.Info("Ticket opened", map[string]interface{}{
		"ticket_id": ticket.ID,
		"vendor_id": vendor.ID,
	})
	return &TicketThread{Ticket: ticket, Messages: []model.TicketMessage{*first}}, nil
}

func (s *ticketService) VendorReply(ctx context.Context, token, ticketID, message string) (*model.TicketMessage, error) {
	vendor, err := s.vendorFor(ctx, token)
	if err != nil {
		return nil, err
	}
	msg, _, err := s.reply(ctx, ticketID, vendor.ID, model.AuthorVendor, message)
	return msg, err
}

func (s *ticketService) AdminReply(ctx context.Context, ticketID, message string) (*model.TicketMessage, error) {
	msg, ticket, err := s.reply(ctx, ticketID, "", model.AuthorAdmin, message)
	if err != nil {
		return nil, err
	}
	notify(ctx, s.repos.Notifications, vendorNotification(
		model.NotificationTypeSystem,
		ticket.VendorID,
		"문의에 답변이 등록되었습니다",
		ticket.Subject,
	))
	return msg, nil
}

// reply appends a message. An admin reply moves an open ticket to in_progress.
// vendorID restricts the ticket to one vendor when non-empty.
func (s *ticketService) reply(ctx context.Context, ticketID, vendorID string, author model.MessageAuthor, message string) (*model.TicketMessage, *model.Ticket, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, nil, fmt.Errorf("%w: 메시지를 입력해주세요", util.ErrInvalidArgument)
	}

	msg := &model.TicketMessage{TicketID: ticketID, Author: author, Message: message}
	var ticket *model.Ticket
	err := s.repos.Transact(ctx, func(ctx context.Context) error {
		current, err := s.repos.Tickets.GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		if current == nil || (vendorID != "" && current.VendorID != vendorID) {
			return ErrTicketNotFound
		}
		if current.Status == model.TicketStatusClosed {
			return ErrTicketClosed
		}

		if err := s.repos.TicketMessages.Create(ctx, msg); err != nil {
			return err
		}
		if author == model.AuthorAdmin && current.Status == model.TicketStatusOpen {
			ticket, err = s.repos.Tickets.UpdateStatus(ctx, ticketID, model.TicketStatusInProgress)
		} else {
			ticket, err = s.repos.Tickets.Touch(ctx, ticketID)
		}
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return msg, ticket, nil
}

func (s *ticketService) ListForVendor(ctx context.Context, token string) ([]model.Ticket, error) {
	vendor, err := s.vendorFor(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.repos.Tickets.GetByVendorID(ctx, vendor.ID)
}

func (s *ticketService) VendorMessages(ctx context.Context, token, ticketID string) (*TicketThread, error) {
	vendor, err := s.vendorFor(ctx, token)
	if err != nil {
		return nil, err
	}
	thread, err := s.Messages(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if thread.Ticket.VendorID != vendor.ID {
		return nil, ErrTicketNotFound
	}
	return thread, nil
}

func (s *ticketService) List(ctx context.Context, status *model.TicketStatus) ([]model.Ticket, error) {
	return s.repos.Tickets.GetAll(ctx, status)
}

func (s *ticketService) Messages(ctx context.Context, ticketID string) (*TicketThread, error) {
	ticket, err := s.repos.Tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	messages, err := s.repos.TicketMessages.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return &TicketThread{Ticket: ticket, Messages: messages}, nil
}

func (s *ticketService) Close(ctx context.Context, ticketID string) (*model.Ticket, error) {
	ticket, err := s.repos.Tickets.UpdateStatus(ctx, ticketID, model.TicketStatusClosed)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	logger.Info("Ticket closed", map[string]interface{}{
		"ticket_id": ticketID,
	})
	return ticket, nil
}
