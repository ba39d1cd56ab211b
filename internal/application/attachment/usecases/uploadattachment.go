package usecases

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"time"

	ticketdto "helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/auth"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

// BlobStore abstracts the object storage bucket behind uploads.
type BlobStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// SignedURL returns a time-limited download URL for the key.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	// PublicURL builds an unsigned URL for buckets that cannot sign.
	PublicURL(key string) string
}

// allowedFileTypes is the upload MIME allowlist.
var allowedFileTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"image/webp":         true,
	"application/pdf":    true,
	"text/plain":         true,
	"text/csv":           true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

var unsafeFileNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// UploadAttachmentCommand stores one file. TicketID and MessageID are
// optional: attachments uploaded before the ticket exists land under a
// temporary prefix and are associated later.
type UploadAttachmentCommand struct {
	Actor       auth.Actor
	TicketID    uint
	MessageID   *uint
	FileName    string
	ContentType string
	Data        []byte
}

type UploadAttachmentResult struct {
	Attachment *ticketdto.AttachmentDTO `json:"attachment"`
}

type UploadAttachmentExecutor interface {
	Execute(ctx context.Context, cmd UploadAttachmentCommand) (*UploadAttachmentResult, error)
}

type UploadAttachmentUseCase struct {
	attachments ticket.AttachmentRepository
	tickets     ticket.TicketRepository
	blobs       BlobStore
	logger      logger.Interface
}

func NewUploadAttachmentUseCase(
	attachments ticket.AttachmentRepository,
	tickets ticket.TicketRepository,
	blobs BlobStore,
	log logger.Interface,
) *UploadAttachmentUseCase {
	return &UploadAttachmentUseCase{
		attachments: attachments,
		tickets:     tickets,
		blobs:       blobs,
		logger:      log,
	}
}

func (uc *UploadAttachmentUseCase) Execute(ctx context.Context, cmd UploadAttachmentCommand) (*UploadAttachmentResult, error) {
	if !cmd.Actor.IsValid() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	if len(cmd.Data) == 0 {
		return nil, errors.NewValidationError("file is empty")
	}
	if int64(len(cmd.Data)) > constants.MaxAttachmentSize {
		return nil, errors.NewValidationError(
			fmt.Sprintf("file exceeds maximum size of %d bytes", constants.MaxAttachmentSize))
	}
	if !allowedFileTypes[cmd.ContentType] {
		return nil, errors.NewValidationError("file type not allowed", cmd.ContentType)
	}
	if cmd.FileName == "" {
		return nil, errors.NewValidationError("file name is required")
	}

	// Only owners and staff may attach to an existing ticket.
	if cmd.TicketID != 0 {
		getCtx, cancel := context.WithTimeout(ctx, constants.StoreTimeout)
		defer cancel()
		t, err := uc.tickets.GetByID(getCtx, cmd.TicketID)
		if err != nil {
			if errors.IsNotFoundError(err) {
				return nil, err
			}
			return nil, errors.NewDatabaseError("failed to load ticket", err.Error())
		}
		if !t.CanBeViewedBy(cmd.Actor.ID, cmd.Actor.IsAdmin()) {
			return nil, errors.NewForbiddenError("you do not have access to this ticket")
		}
	}

	key := uc.objectKey(cmd)

	exists, err := uc.blobs.Exists(ctx, key)
	if err != nil {
		return nil, errors.NewInternalError("failed to check storage", err.Error())
	}
	if exists {
		return nil, errors.NewValidationError("a file with this name already exists", key)
	}

	if err := uc.blobs.Put(ctx, key, cmd.Data, cmd.ContentType); err != nil {
		return nil, errors.NewInternalError("failed to store file", err.Error())
	}

	fileURL, err := uc.blobs.SignedURL(ctx, key, constants.SignedURLTTL)
	if err != nil {
		// Buckets without signing keys (local file buckets mostly) fall
		// back to plain public URLs.
		uc.logger.Debugw("signed URL unavailable, using public URL", "key", key, "error", err)
		fileURL = uc.blobs.PublicURL(key)
	}

	a, err := ticket.NewAttachment(
		cmd.TicketID,
		cmd.MessageID,
		cmd.FileName,
		key,
		fileURL,
		int64(len(cmd.Data)),
		cmd.ContentType,
		cmd.Actor.ID,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	saveCtx, cancel := context.WithTimeout(ctx, constants.StoreTimeout)
	defer cancel()
	if err := uc.attachments.Save(saveCtx, a); err != nil {
		return nil, errors.NewDatabaseError("failed to save attachment", err.Error())
	}

	uc.logger.Infow("attachment uploaded",
		"attachment_id", a.ID(),
		"key", key,
		"size", len(cmd.Data),
		"user_id", cmd.Actor.ID,
	)

	result := ticketdto.ToAttachmentDTO(a)
	return &UploadAttachmentResult{Attachment: &result}, nil
}

// objectKey builds the bucket key:
// tickets/{ticketID|tmp}/{messageID|ticket}/{unix-ts}-{sanitized name}.
func (uc *UploadAttachmentUseCase) objectKey(cmd UploadAttachmentCommand) string {
	ticketPart := "tmp"
	if cmd.TicketID != 0 {
		ticketPart = fmt.Sprintf("%d", cmd.TicketID)
	}
	messagePart := "ticket"
	if cmd.MessageID != nil {
		messagePart = fmt.Sprintf("%d", *cmd.MessageID)
	}

	name := unsafeFileNameChars.ReplaceAllString(path.Base(cmd.FileName), "_")
	return fmt.Sprintf("tickets/%s/%s/%d-%s", ticketPart, messagePart, biztime.NowUTC().Unix(), name)
}
