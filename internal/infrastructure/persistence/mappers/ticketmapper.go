package mappers

import (
	"fmt"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and
// persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
}

type ticketMapper struct{}

func NewTicketMapper() TicketMapper {
	return &ticketMapper{}
}

func (m *ticketMapper) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
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
		AssignedAt:   timePtrToMilli(t.AssignedAt()),
		ResolvedAt:   timePtrToMilli(t.ResolvedAt()),
		ClosedAt:     timePtrToMilli(t.ClosedAt()),
		MessageCount: t.MessageCount(),
		CreatedAt:    t.CreatedAt().UnixMilli(),
		UpdatedAt:    t.UpdatedAt().UnixMilli(),
	}
}

func (m *ticketMapper) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}
	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.TicketNumber,
		model.Subject,
		model.Category,
		priority,
		status,
		model.UserID,
		model.UserEmail,
		model.UserName,
		model.UserRole,
		model.AssignedTo,
		milliPtrToTime(model.AssignedAt),
		milliPtrToTime(model.ResolvedAt),
		milliPtrToTime(model.ClosedAt),
		model.MessageCount,
		milliToTime(model.CreatedAt),
		milliToTime(model.UpdatedAt),
	)
}
