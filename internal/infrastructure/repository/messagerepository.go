package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
)

type MessageRepository struct {
	db     *gorm.DB
	mapper mappers.MessageMapper
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{
		db:     db,
		mapper: mappers.NewMessageMapper(),
	}
}

func (r *MessageRepository) Save(ctx context.Context, m *ticket.Message) error {
	model := r.mapper.ToModel(m)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	return m.SetID(model.ID)
}

func (r *MessageRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	var rows []models.MessageModel

	if err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*ticket.Message, 0, len(rows))
	for i := range rows {
		m, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, messageIDs []uint, readerID uint) error {
	if len(messageIDs) == 0 {
		return nil
	}

	now := biztime.NowUTC().UnixMilli()
	result := r.db.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("id IN ? AND is_read = ?", messageIDs, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
			"read_by": readerID,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark messages read: %w", result.Error)
	}
	return nil
}

// CountUnreadUserMessages counts unread user-authored messages. When
// ownerID is set, only messages on that owner's tickets count.
func (r *MessageRepository) CountUnreadUserMessages(ctx context.Context, ownerID *uint) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("ticket_messages.is_read = ? AND ticket_messages.message_type = ?", false, "user")

	if ownerID != nil {
		query = query.
			Joins("JOIN tickets ON tickets.id = ticket_messages.ticket_id").
			Where("tickets.user_id = ?", *ownerID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
