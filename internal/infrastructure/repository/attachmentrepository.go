package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
)

type AttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.AttachmentMapper
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{
		db:     db,
		mapper: mappers.NewAttachmentMapper(),
	}
}

func (r *AttachmentRepository) Save(ctx context.Context, a *ticket.Attachment) error {
	model := r.mapper.ToModel(a)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}

	return a.SetID(model.ID)
}

func (r *AttachmentRepository) Associate(ctx context.Context, attachmentIDs []uint, ticketID uint, messageID *uint) error {
	if len(attachmentIDs) == 0 {
		return nil
	}

	updates := map[string]interface{}{"ticket_id": ticketID}
	if messageID != nil {
		updates["message_id"] = *messageID
	}

	result := r.db.WithContext(ctx).
		Model(&models.AttachmentModel{}).
		Where("id IN ?", attachmentIDs).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to associate attachments: %w", result.Error)
	}
	return nil
}

func (r *AttachmentRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	var rows []models.AttachmentModel

	if err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	attachments := make([]*ticket.Attachment, 0, len(rows))
	for i := range rows {
		a, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}

	return attachments, nil
}
