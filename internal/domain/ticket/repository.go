package ticket

import (
	"context"

	vo "helpdesk/internal/domain/ticket/valueobjects"
)

// TicketFilter narrows List queries. Search matches subject and ticket
// number. Ownership scoping for non-admin actors is applied by the caller
// before the filter reaches the store.
type TicketFilter struct {
	Status     *vo.Status
	Priority   *vo.Priority
	Category   *string
	AssignedTo *uint
	UserID     *uint
	Search     string
	Page       int
	PageSize   int
}

type TicketRepository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	// CountByStatus returns ticket counts grouped by status, optionally
	// scoped to a single owner.
	CountByStatus(ctx context.Context, ownerID *uint) (map[vo.Status]int64, error)
}

type MessageRepository interface {
	Save(ctx context.Context, m *Message) error
	// ListByTicketID returns messages in created-at ascending order.
	ListByTicketID(ctx context.Context, ticketID uint) ([]*Message, error)
	// MarkRead flags the given messages as read by readerID in one batch.
	MarkRead(ctx context.Context, messageIDs []uint, readerID uint) error
	// CountUnreadUserMessages counts unread user-authored messages,
	// optionally scoped to tickets owned by ownerID.
	CountUnreadUserMessages(ctx context.Context, ownerID *uint) (int64, error)
}

type AttachmentRepository interface {
	Save(ctx context.Context, a *Attachment) error
	// Associate points previously uploaded attachments at a ticket and,
	// when non-nil, a message.
	Associate(ctx context.Context, attachmentIDs []uint, ticketID uint, messageID *uint) error
	ListByTicketID(ctx context.Context, ticketID uint) ([]*Attachment, error)
}
