package repository

import (
	"testing"
	"time"

	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRepository_Lifecycle(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		v := createVendor(t, repos, "MyShop")
		ticket := &model.Ticket{VendorID: v.ID, Subject: "사진이 안 올라가요"}
		require.NoError(t, repos.Tickets.Create(bg, ticket))
		assert.Equal(t, model.TicketStatusOpen, ticket.Status)

		open, err := repos.Tickets.CountOpen(bg)
		require.NoError(t, err)
		assert.EqualValues(t, 1, open)

		_, err = repos.Tickets.UpdateStatus(bg, ticket.ID, model.TicketStatusInProgress)
		require.NoError(t, err)
		open, err = repos.Tickets.CountOpen(bg)
		require.NoError(t, err)
		assert.EqualValues(t, 1, open)

		_, err = repos.Tickets.UpdateStatus(bg, ticket.ID, model.TicketStatusClosed)
		require.NoError(t, err)
		open, err = repos.Tickets.CountOpen(bg)
		require.NoError(t, err)
		assert.Zero(t, open)

		closed := model.TicketStatusClosed
		tickets, err := repos.Tickets.GetAll(bg, &closed)
		require.NoError(t, err)
		assert.Len(t, tickets, 1)

		byVendor, err := repos.Tickets.GetByVendorID(bg, v.ID)
		require.NoError(t, err)
		assert.Len(t, byVendor, 1)
	})
}

func TestTicketMessageRepository_OrderedAscending(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		step := 0
		restore := now
		now = func() time.Time {
			step++
			return base.Add(time.Duration(step) * time.Minute)
		}
		defer func() { now = restore }()

		ticket := &model.Ticket{VendorID: "v1", Subject: "문의"}
		require.NoError(t, repos.Tickets.Create(bg, ticket))
		for i, author := range []model.MessageAuthor{model.AuthorVendor, model.AuthorAdmin, model.AuthorVendor} {
			require.NoError(t, repos.TicketMessages.Create(bg, &model.TicketMessage{
				TicketID: ticket.ID,
				Author:   author,
				Message:  string(rune('a' + i)),
			}))
		}

		messages, err := repos.TicketMessages.GetByTicketID(bg, ticket.ID)
		require.NoError(t, err)
		require.Len(t, messages, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{messages[0].Message, messages[1].Message, messages[2].Message})
		assert.Equal(t, model.AuthorAdmin, messages[1].Author)

		deleted, err := repos.Tickets.Delete(bg, ticket.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
		messages, err = repos.TicketMessages.GetByTicketID(bg, ticket.ID)
		require.NoError(t, err)
		assert.Empty(t, messages)
	})
}
