package ticket

import (
	"fmt"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/biztime"
)

// Message is one entry in a ticket's conversation thread. Sender fields
// are a snapshot of the author at send time. The is_internal flag can only
// be true on admin-authored messages.
type Message struct {
	id          uint
	ticketID    uint
	body        string
	messageType vo.MessageType
	senderID    uint
	senderEmail string
	senderName  string
	senderRole  string
	isInternal  bool
	isRead      bool
	readAt      *time.Time
	readBy      *uint
	createdAt   time.Time
}

func NewMessage(
	ticketID uint,
	body string,
	messageType vo.MessageType,
	senderID uint,
	senderEmail string,
	senderName string,
	senderRole string,
	isInternal bool,
) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("message body is required")
	}
	if len([]rune(body)) > 5000 {
		return nil, fmt.Errorf("message exceeds maximum length of 5000 characters")
	}
	if !messageType.IsValid() {
		return nil, fmt.Errorf("invalid message type: %s", messageType)
	}
	if isInternal && !messageType.IsAdmin() {
		return nil, fmt.Errorf("internal messages must be admin-authored")
	}
	if senderID == 0 {
		return nil, fmt.Errorf("sender ID is required")
	}

	return &Message{
		ticketID:    ticketID,
		body:        body,
		messageType: messageType,
		senderID:    senderID,
		senderEmail: senderEmail,
		senderName:  senderName,
		senderRole:  senderRole,
		isInternal:  isInternal,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructMessage(
	id uint,
	ticketID uint,
	body string,
	messageType vo.MessageType,
	senderID uint,
	senderEmail string,
	senderName string,
	senderRole string,
	isInternal bool,
	isRead bool,
	readAt *time.Time,
	readBy *uint,
	createdAt time.Time,
) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !messageType.IsValid() {
		return nil, fmt.Errorf("invalid message type: %s", messageType)
	}

	return &Message{
		id:          id,
		ticketID:    ticketID,
		body:        body,
		messageType: messageType,
		senderID:    senderID,
		senderEmail: senderEmail,
		senderName:  senderName,
		senderRole:  senderRole,
		isInternal:  isInternal,
		isRead:      isRead,
		readAt:      readAt,
		readBy:      readBy,
		createdAt:   createdAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) TicketID() uint {
	return m.ticketID
}

func (m *Message) Body() string {
	return m.body
}

func (m *Message) Type() vo.MessageType {
	return m.messageType
}

func (m *Message) SenderID() uint {
	return m.senderID
}

func (m *Message) SenderEmail() string {
	return m.senderEmail
}

func (m *Message) SenderName() string {
	return m.senderName
}

func (m *Message) SenderRole() string {
	return m.senderRole
}

func (m *Message) IsInternal() bool {
	return m.isInternal
}

func (m *Message) IsRead() bool {
	return m.isRead
}

func (m *Message) ReadAt() *time.Time {
	return m.readAt
}

func (m *Message) ReadBy() *uint {
	return m.readBy
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}

// MarkRead records the reader once; already-read messages keep their
// original read stamp.
func (m *Message) MarkRead(readerID uint) {
	if m.isRead {
		return
	}
	now := biztime.NowUTC()
	m.isRead = true
	m.readAt = &now
	m.readBy = &readerID
}
