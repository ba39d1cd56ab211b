package dto

import (
	"time"

	"helpdesk/internal/domain/ticket"
)

type TicketDTO struct {
	ID           uint            `json:"id"`
	TicketNumber string          `json:"ticket_number"`
	Subject      string          `json:"subject"`
	Category     string          `json:"category"`
	Priority     string          `json:"priority"`
	Status       string          `json:"status"`
	UserID       uint            `json:"user_id"`
	UserEmail    string          `json:"user_email"`
	UserName     string          `json:"user_name"`
	UserRole     string          `json:"user_role"`
	AssignedTo   *uint           `json:"assigned_to"`
	AssignedAt   *time.Time      `json:"assigned_at"`
	ResolvedAt   *time.Time      `json:"resolved_at"`
	ClosedAt     *time.Time      `json:"closed_at"`
	MessageCount int             `json:"message_count"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Messages     []MessageDTO    `json:"messages"`
	Attachments  []AttachmentDTO `json:"attachments"`
}

type MessageDTO struct {
	ID          uint       `json:"id"`
	TicketID    uint       `json:"ticket_id"`
	Message     string     `json:"message"`
	MessageType string     `json:"message_type"`
	SenderID    uint       `json:"sender_id"`
	SenderEmail string     `json:"sender_email"`
	SenderName  string     `json:"sender_name"`
	SenderRole  string     `json:"sender_role"`
	IsInternal  bool       `json:"is_internal"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AttachmentDTO struct {
	ID         uint      `json:"id"`
	TicketID   uint      `json:"ticket_id"`
	MessageID  *uint     `json:"message_id"`
	FileName   string    `json:"file_name"`
	FileURL    string    `json:"file_url"`
	FileSize   int64     `json:"file_size"`
	FileType   string    `json:"file_type"`
	UploadedBy uint      `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type TicketListItemDTO struct {
	ID           uint       `json:"id"`
	TicketNumber string     `json:"ticket_number"`
	Subject      string     `json:"subject"`
	Category     string     `json:"category"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	UserID       uint       `json:"user_id"`
	UserEmail    string     `json:"user_email"`
	UserName     string     `json:"user_name"`
	AssignedTo   *uint      `json:"assigned_to"`
	MessageCount int        `json:"message_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ResolvedAt   *time.Time `json:"resolved_at"`
}

// TicketListDTO is the paginated envelope returned by list queries. It is
// cached as a whole so a cache hit reproduces the response byte-for-byte.
type TicketListDTO struct {
	Items      []TicketListItemDTO `json:"items"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

// TicketStatsDTO aggregates dashboard counters.
type TicketStatsDTO struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"by_status"`
	UnreadMessages int64            `json:"unread_messages"`
}

func ToMessageDTO(m *ticket.Message) MessageDTO {
	return MessageDTO{
		ID:          m.ID(),
		TicketID:    m.TicketID(),
		Message:     m.Body(),
		MessageType: m.Type().String(),
		SenderID:    m.SenderID(),
		SenderEmail: m.SenderEmail(),
		SenderName:  m.SenderName(),
		SenderRole:  m.SenderRole(),
		IsInternal:  m.IsInternal(),
		IsRead:      m.IsRead(),
		ReadAt:      m.ReadAt(),
		CreatedAt:   m.CreatedAt(),
	}
}

func ToAttachmentDTO(a *ticket.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:         a.ID(),
		TicketID:   a.TicketID(),
		MessageID:  a.MessageID(),
		FileName:   a.FileName(),
		FileURL:    a.FileURL(),
		FileSize:   a.FileSize(),
		FileType:   a.FileType(),
		UploadedBy: a.UploadedBy(),
		UploadedAt: a.UploadedAt(),
	}
}

// ToTicketDTO materializes a ticket with its thread. Internal messages are
// filtered out unless the viewer is staff.
func ToTicketDTO(t *ticket.Ticket, messages []*ticket.Message, attachments []*ticket.Attachment, isAdmin bool) *TicketDTO {
	if t == nil {
		return nil
	}

	messageDTOs := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		if m.IsInternal() && !isAdmin {
			continue
		}
		messageDTOs = append(messageDTOs, ToMessageDTO(m))
	}

	attachmentDTOs := make([]AttachmentDTO, 0, len(attachments))
	for _, a := range attachments {
		attachmentDTOs = append(attachmentDTOs, ToAttachmentDTO(a))
	}

	return &TicketDTO{
		ID:           t.ID(),
		TicketNumber: t.Number(),
		Subject:      t.Subject(),
		Category:     t.Category(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
		UserID:       t.UserID(),
		UserEmail:    t.UserEmail(),
		UserName:     t.UserName(),
		UserRole:     t.UserRole(),
		AssignedTo:   t.AssignedTo(),
		AssignedAt:   t.AssignedAt(),
		ResolvedAt:   t.ResolvedAt(),
		ClosedAt:     t.ClosedAt(),
		MessageCount: t.MessageCount(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
		Messages:     messageDTOs,
		Attachments:  attachmentDTOs,
	}
}

func ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	return TicketListItemDTO{
		ID:           t.ID(),
		TicketNumber: t.Number(),
		Subject:      t.Subject(),
		Category:     t.Category(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
		UserID:       t.UserID(),
		UserEmail:    t.UserEmail(),
		UserName:     t.UserName(),
		AssignedTo:   t.AssignedTo(),
		MessageCount: t.MessageCount(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
		ResolvedAt:   t.ResolvedAt(),
	}
}
