package mappers

import (
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/models"
)

type AttachmentMapper interface {
	ToModel(a *ticket.Attachment) *models.AttachmentModel
	ToDomain(model *models.AttachmentModel) (*ticket.Attachment, error)
}

type attachmentMapper struct{}

func NewAttachmentMapper() AttachmentMapper {
	return &attachmentMapper{}
}

func (am *attachmentMapper) ToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:         a.ID(),
		TicketID:   a.TicketID(),
		MessageID:  a.MessageID(),
		FileName:   a.FileName(),
		FilePath:   a.FilePath(),
		FileURL:    a.FileURL(),
		FileSize:   a.FileSize(),
		FileType:   a.FileType(),
		UploadedBy: a.UploadedBy(),
		CreatedAt:  a.UploadedAt().UnixMilli(),
	}
}

func (am *attachmentMapper) ToDomain(model *models.AttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID,
		model.TicketID,
		model.MessageID,
		model.FileName,
		model.FilePath,
		model.FileURL,
		model.FileSize,
		model.FileType,
		model.UploadedBy,
		milliToTime(model.CreatedAt),
	)
}
