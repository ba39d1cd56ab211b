package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc          func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc        func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc        func(ctx context.Context, ticketID uint) error
	GetByIDFunc       func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	ListFunc          func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	CountByStatusFunc func(ctx context.Context, ownerID *uint) (map[vo.Status]int64, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, ticketID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) CountByStatus(ctx context.Context, ownerID *uint) (map[vo.Status]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, ownerID)
	}
	return map[vo.Status]int64{}, nil
}

type mockMessageRepository struct {
	SaveFunc                    func(ctx context.Context, m *ticket.Message) error
	ListByTicketIDFunc          func(ctx context.Context, ticketID uint) ([]*ticket.Message, error)
	MarkReadFunc                func(ctx context.Context, messageIDs []uint, readerID uint) error
	CountUnreadUserMessagesFunc func(ctx context.Context, ownerID *uint) (int64, error)
}

func (m *mockMessageRepository) Save(ctx context.Context, msg *ticket.Message) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	if m.ListByTicketIDFunc != nil {
		return m.ListByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockMessageRepository) MarkRead(ctx context.Context, messageIDs []uint, readerID uint) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, messageIDs, readerID)
	}
	return nil
}

func (m *mockMessageRepository) CountUnreadUserMessages(ctx context.Context, ownerID *uint) (int64, error) {
	if m.CountUnreadUserMessagesFunc != nil {
		return m.CountUnreadUserMessagesFunc(ctx, ownerID)
	}
	return 0, nil
}

type mockAttachmentRepository struct {
	SaveFunc           func(ctx context.Context, a *ticket.Attachment) error
	AssociateFunc      func(ctx context.Context, attachmentIDs []uint, ticketID uint, messageID *uint) error
	ListByTicketIDFunc func(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error)
}

func (m *mockAttachmentRepository) Save(ctx context.Context, a *ticket.Attachment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, a)
	}
	return nil
}

func (m *mockAttachmentRepository) Associate(ctx context.Context, attachmentIDs []uint, ticketID uint, messageID *uint) error {
	if m.AssociateFunc != nil {
		return m.AssociateFunc(ctx, attachmentIDs, ticketID, messageID)
	}
	return nil
}

func (m *mockAttachmentRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	if m.ListByTicketIDFunc != nil {
		return m.ListByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockNumberGenerator struct {
	GenerateFunc func(ctx context.Context) (string, error)
}

func (m *mockNumberGenerator) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "TICKET-20260830-00001", nil
}

// mockCache records operations so tests can assert on invalidation.
type mockCache struct {
	GetFunc func(ctx context.Context, key string) ([]byte, bool)
	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration)

	deletedKeys     []string
	deletedPrefixes []string
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return nil, false
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if m.SetFunc != nil {
		m.SetFunc(ctx, key, value, ttl)
	}
}

func (m *mockCache) Delete(ctx context.Context, key string) {
	m.deletedKeys = append(m.deletedKeys, key)
}

func (m *mockCache) DeleteByPattern(ctx context.Context, prefix string) {
	m.deletedPrefixes = append(m.deletedPrefixes, prefix)
}

type mockNotifier struct {
	SendStatusChangedFunc func(ctx context.Context, recipient, oldStatus, newStatus string, meta NotificationMeta) error
	SendReplyFunc         func(ctx context.Context, recipient, message string, attachmentNames []string, meta NotificationMeta) error
}

func (m *mockNotifier) SendStatusChanged(ctx context.Context, recipient, oldStatus, newStatus string, meta NotificationMeta) error {
	if m.SendStatusChangedFunc != nil {
		return m.SendStatusChangedFunc(ctx, recipient, oldStatus, newStatus, meta)
	}
	return nil
}

func (m *mockNotifier) SendReply(ctx context.Context, recipient, message string, attachmentNames []string, meta NotificationMeta) error {
	if m.SendReplyFunc != nil {
		return m.SendReplyFunc(ctx, recipient, message, attachmentNames, meta)
	}
	return nil
}

func storedTicket(id uint, ownerID uint, status vo.Status) *ticket.Ticket {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	t, err := ticket.ReconstructTicket(
		id,
		"TICKET-20260830-00042",
		"Cannot log in",
		"account",
		vo.PriorityMedium,
		status,
		ownerID,
		"owner@example.com",
		"Owner",
		"user",
		nil, nil, nil, nil,
		1,
		now, now,
	)
	if err != nil {
		panic(err)
	}
	return t
}

func storedMessage(id uint, ticketID uint, messageType vo.MessageType, isRead bool) *ticket.Message {
	now := time.Date(2026, 8, 30, 10, 5, 0, 0, time.UTC)
	m, err := ticket.ReconstructMessage(
		id,
		ticketID,
		"hello there",
		messageType,
		7,
		"sender@example.com",
		"Sender",
		messageType.String(),
		false,
		isRead,
		nil, nil,
		now,
	)
	if err != nil {
		panic(err)
	}
	return m
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                       {}
func (m *mockLogger) Info(msg string, args ...any)                        {}
func (m *mockLogger) Warn(msg string, args ...any)                        {}
func (m *mockLogger) Error(msg string, args ...any)                       {}
func (m *mockLogger) With(args ...any) logger.Interface                   { return m }
func (m *mockLogger) Named(name string) logger.Interface                  { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{})     {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})      {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})      {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{})     {}
