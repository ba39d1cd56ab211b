package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/auth"
	apperrors "helpdesk/internal/shared/errors"
)

func adminActor() auth.Actor {
	return auth.Actor{ID: 1, Email: "staff@example.com", Name: "Staff", Role: "admin"}
}

func TestGetTicketUseCase_Execute_OwnerSeesTicketWithoutInternalMessages(t *testing.T) {
	stored := storedTicket(10, 42, vo.StatusOpen)
	internal, err := ticket.ReconstructMessage(
		3, 10, "internal note", vo.MessageTypeAdmin,
		1, "staff@example.com", "Staff", "admin",
		true, false, nil, nil, time.Now().UTC(),
	)
	require.NoError(t, err)

	mockTickets := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return stored, nil
		},
	}
	mockMessages := &mockMessageRepository{
		ListByTicketIDFunc: func(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
			return []*ticket.Message{
				storedMessage(1, 10, vo.MessageTypeUser, true),
				storedMessage(2, 10, vo.MessageTypeAdmin, false),
				internal,
			}, nil
		},
	}

	useCase := NewGetTicketUseCase(mockTickets, mockMessages, &mockAttachmentRepository{}, &mockCache{}, &mockLogger{})

	result, err := useCase.Execute(context.Background(), GetTicketQuery{Actor: testActor(), TicketID: 10})

	require.NoError(t, err)
	require.Len(t, result.Ticket.Messages, 2)
	for _, m := range result.Ticket.Messages {
		assert.False(t, m.IsInternal)
	}
}

func TestGetTicketUseCase_Execute_NonOwnerGetsForbidden(t *testing.T) {
	mockTickets := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return storedTicket(10, 999, vo.StatusOpen), nil
		},
	}

	useCase := NewGetTicketUseCase(mockTickets, &mockMessageRepository{}, &mockAttachmentRepository{}, &mockCache{}, &mockLogger{})

	result, err := useCase.Execute(context.Background(), GetTicketQuery{Actor: testActor(), TicketID: 10})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestGetTicketUseCase_Execute_CacheHitSkipsStore(t *testing.T) {
	cached := dto.TicketDTO{ID: 10, TicketNumber: "TICKET-20260830-00042", UserID: 42, Status: "open"}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	storeCalled := false
	mockTickets := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			storeCalled = true
			return nil, apperrors.NewNotFoundError("ticket not found")
		},
	}
	cache := &mockCache{
		GetFunc: func(ctx context.Context, key string) ([]byte, bool) {
			assert.Equal(t, detailCacheKey(10, false), key)
			return data, true
		},
	}

	useCase := NewGetTicketUseCase(mockTickets, &mockMessageRepository{}, &mockAttachmentRepository{}, cache, &mockLogger{})

	result, err := useCase.Execute(context.Background(), GetTicketQuery{Actor: testActor(), TicketID: 10})

	require.NoError(t, err)
	assert.False(t, storeCalled)
	assert.Equal(t, uint(10), result.Ticket.ID)
}

func TestGetTicketUseCase_Execute_CacheHitForForeignTicketForbidden(t *testing.T) {
	cached := dto.TicketDTO{ID: 10, UserID: 999}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	cache := &mockCache{
		GetFunc: func(ctx context.Context, key string) ([]byte, bool) {
			return data, true
		},
	}

	useCase := NewGetTicketUseCase(&mockTicketRepository{}, &mockMessageRepository{}, &mockAttachmentRepository{}, cache, &mockLogger{})

	_, err = useCase.Execute(context.Background(), GetTicketQuery{Actor: testActor(), TicketID: 10})

	require.Error(t, err)
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestGetTicketUseCase_Execute_AdminViewMarksUserMessagesRead(t *testing.T) {
	marked := make(chan []uint, 1)

	mockTickets := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return storedTicket(10, 42, vo.StatusOpen), nil
		},
	}
	mockMessages := &mockMessageRepository{
		ListByTicketIDFunc: func(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
			return []*ticket.Message{
				storedMessage(1, 10, vo.MessageTypeUser, false),
				storedMessage(2, 10, vo.MessageTypeUser, true),
				storedMessage(3, 10, vo.MessageTypeAdmin, false),
			}, nil
		},
		MarkReadFunc: func(ctx context.Context, messageIDs []uint, readerID uint) error {
			assert.Equal(t, uint(1), readerID)
			marked <- messageIDs
			return nil
		},
	}

	useCase := NewGetTicketUseCase(mockTickets, mockMessages, &mockAttachmentRepository{}, &mockCache{}, &mockLogger{})

	result, err := useCase.Execute(context.Background(), GetTicketQuery{Actor: adminActor(), TicketID: 10})

	require.NoError(t, err)
	// The response reflects the state before read-marking.
	require.Len(t, result.Ticket.Messages, 3)
	assert.False(t, result.Ticket.Messages[0].IsRead)

	select {
	case ids := <-marked:
		assert.Equal(t, []uint{1}, ids)
	case <-time.After(2 * time.Second):
		t.Fatal("expected messages to be marked read")
	}
}

func TestGetTicketUseCase_Execute_ThreadFetchFailureDegrades(t *testing.T) {
	mockTickets := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return storedTicket(10, 42, vo.StatusOpen), nil
		},
	}
	mockMessages := &mockMessageRepository{
		ListByTicketIDFunc: func(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
			return nil, errors.New("messages down")
		},
	}
	mockAttachments := &mockAttachmentRepository{
		ListByTicketIDFunc: func(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
			return nil, errors.New("attachments down")
		},
	}

	useCase := NewGetTicketUseCase(mockTickets, mockMessages, mockAttachments, &mockCache{}, &mockLogger{})

	result, err := useCase.Execute(context.Background(), GetTicketQuery{Actor: testActor(), TicketID: 10})

	require.NoError(t, err)
	assert.Empty(t, result.Ticket.Messages)
	assert.Empty(t, result.Ticket.Attachments)
}
