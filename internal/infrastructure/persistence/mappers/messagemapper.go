package mappers

import (
	"fmt"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/infrastructure/persistence/models"
)

type MessageMapper interface {
	ToModel(m *ticket.Message) *models.MessageModel
	ToDomain(model *models.MessageModel) (*ticket.Message, error)
}

type messageMapper struct{}

func NewMessageMapper() MessageMapper {
	return &messageMapper{}
}

func (mm *messageMapper) ToModel(m *ticket.Message) *models.MessageModel {
	return &models.MessageModel{
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
		ReadAt:      timePtrToMilli(m.ReadAt()),
		ReadBy:      m.ReadBy(),
		CreatedAt:   m.CreatedAt().UnixMilli(),
	}
}

func (mm *messageMapper) ToDomain(model *models.MessageModel) (*ticket.Message, error) {
	messageType := vo.MessageType(model.MessageType)
	if !messageType.IsValid() {
		return nil, fmt.Errorf("message %d: invalid message type %q", model.ID, model.MessageType)
	}

	return ticket.ReconstructMessage(
		model.ID,
		model.TicketID,
		model.Message,
		messageType,
		model.SenderID,
		model.SenderEmail,
		model.SenderName,
		model.SenderRole,
		model.IsInternal,
		model.IsRead,
		milliPtrToTime(model.ReadAt),
		model.ReadBy,
		milliToTime(model.CreatedAt),
	)
}
