package usecases

import (
	"context"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/auth"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/goroutine"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/sanitize"
)

// AddMessageCommand appends a reply to an existing ticket. IsInternal is
// honored only for staff; owner-authored messages are always visible.
type AddMessageCommand struct {
	Actor         auth.Actor
	TicketID      uint
	Message       string
	IsInternal    bool
	AttachmentIDs []uint
}

type AddMessageResult struct {
	Message *dto.MessageDTO `json:"message"`
}

type AddMessageUseCase struct {
	tickets     ticket.TicketRepository
	messages    ticket.MessageRepository
	attachments ticket.AttachmentRepository
	cache       Cache
	notifier    Notifier
	logger      logger.Interface
}

func NewAddMessageUseCase(
	tickets ticket.TicketRepository,
	messages ticket.MessageRepository,
	attachments ticket.AttachmentRepository,
	cache Cache,
	notifier Notifier,
	log logger.Interface,
) *AddMessageUseCase {
	return &AddMessageUseCase{
		tickets:     tickets,
		messages:    messages,
		attachments: attachments,
		cache:       cache,
		notifier:    notifier,
		logger:      log,
	}
}

func (uc *AddMessageUseCase) Execute(ctx context.Context, cmd AddMessageCommand) (*AddMessageResult, error) {
	if !cmd.Actor.IsValid() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	body := sanitize.Text(cmd.Message, constants.MaxMessageLength)
	if body == "" && len(cmd.AttachmentIDs) == 0 {
		return nil, errors.NewValidationError("message or attachments required")
	}
	if body == "" {
		body = constants.AttachmentOnlyPlaceholder
	}

	isAdmin := cmd.Actor.IsAdmin()

	getCtx, cancel := storeCtx(ctx)
	defer cancel()
	t, err := uc.tickets.GetByID(getCtx, cmd.TicketID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		return nil, errors.NewDatabaseError("failed to load ticket", err.Error())
	}
	if !t.CanBeViewedBy(cmd.Actor.ID, isAdmin) {
		return nil, errors.NewForbiddenError("you do not have access to this ticket")
	}

	msg, err := ticket.NewMessage(
		t.ID(),
		body,
		vo.MessageTypeForRole(isAdmin),
		cmd.Actor.ID,
		cmd.Actor.Email,
		cmd.Actor.Name,
		cmd.Actor.Role,
		cmd.IsInternal && isAdmin,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	saveCtx, cancelSave := storeCtx(ctx)
	defer cancelSave()
	if err := uc.messages.Save(saveCtx, msg); err != nil {
		return nil, errors.NewDatabaseError("failed to save message", err.Error())
	}

	attachmentNames := uc.associateAttachments(ctx, cmd.AttachmentIDs, t.ID(), msg.ID())

	t.IncrementMessageCount()
	// Any staff reply on a fresh ticket moves it to in_progress, internal
	// notes included: someone is working it either way.
	if isAdmin && t.Status().IsOpen() {
		if err := t.ChangeStatus(vo.StatusInProgress); err != nil {
			uc.logger.Warnw("failed to advance ticket status", "ticket_id", t.ID(), "error", err)
		}
	}

	updCtx, cancelUpd := storeCtx(ctx)
	defer cancelUpd()
	if err := uc.tickets.Update(updCtx, t); err != nil {
		uc.logger.Warnw("failed to update ticket after reply", "ticket_id", t.ID(), "error", err)
	}

	invalidateTicketCaches(ctx, uc.cache, t.ID())

	if isAdmin && !msg.IsInternal() {
		uc.notifyOwner(t, body, attachmentNames)
	}

	result := dto.ToMessageDTO(msg)
	return &AddMessageResult{Message: &result}, nil
}

func (uc *AddMessageUseCase) associateAttachments(ctx context.Context, ids []uint, ticketID, messageID uint) []string {
	if len(ids) == 0 {
		return nil
	}

	msgID := messageID
	assocCtx, cancel := storeCtx(ctx)
	defer cancel()
	if err := uc.attachments.Associate(assocCtx, ids, ticketID, &msgID); err != nil {
		uc.logger.Warnw("failed to associate attachments", "ticket_id", ticketID, "error", err)
		return nil
	}

	listCtx, cancelList := storeCtx(ctx)
	defer cancelList()
	attachments, err := uc.attachments.ListByTicketID(listCtx, ticketID)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(ids))
	for _, a := range attachments {
		if a.MessageID() != nil && *a.MessageID() == messageID {
			names = append(names, a.FileName())
		}
	}
	return names
}

func (uc *AddMessageUseCase) notifyOwner(t *ticket.Ticket, body string, attachmentNames []string) {
	recipient := t.UserEmail()
	if recipient == "" {
		return
	}
	meta := NotificationMeta{TicketNumber: t.Number(), Subject: t.Subject()}

	goroutine.SafeGo(uc.logger, "notify-ticket-reply", func() {
		ctx, cancel := detachedCtx()
		defer cancel()
		if err := uc.notifier.SendReply(ctx, recipient, body, attachmentNames, meta); err != nil {
			uc.logger.Warnw("failed to send reply notification",
				"ticket_number", meta.TicketNumber,
				"error", err,
			)
		}
	})
}
