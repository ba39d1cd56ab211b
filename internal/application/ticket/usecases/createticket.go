package usecases

import (
	"context"
	"fmt"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/auth"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/sanitize"
)

// CreateTicketCommand opens a new ticket with its initial message.
// AttachmentIDs reference previously uploaded attachments to associate
// with the initial message.
type CreateTicketCommand struct {
	Actor         auth.Actor
	Subject       string
	Category      string
	Priority      string
	Message       string
	AttachmentIDs []uint
}

type CreateTicketResult struct {
	Ticket *dto.TicketDTO `json:"ticket"`
}

type CreateTicketUseCase struct {
	tickets     ticket.TicketRepository
	messages    ticket.MessageRepository
	attachments ticket.AttachmentRepository
	numberGen   ticket.NumberGenerator
	cache       Cache
	logger      logger.Interface
}

func NewCreateTicketUseCase(
	tickets ticket.TicketRepository,
	messages ticket.MessageRepository,
	attachments ticket.AttachmentRepository,
	numberGen ticket.NumberGenerator,
	cache Cache,
	log logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		tickets:     tickets,
		messages:    messages,
		attachments: attachments,
		numberGen:   numberGen,
		cache:       cache,
		logger:      log,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	if !cmd.Actor.IsValid() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	subject := sanitize.Text(cmd.Subject, constants.MaxSubjectLength)
	category := sanitize.Text(cmd.Category, constants.MaxCategoryLength)
	body := sanitize.Text(cmd.Message, constants.MaxMessageLength)

	if subject == "" {
		return nil, errors.NewValidationError("subject is required")
	}
	if body == "" {
		return nil, errors.NewValidationError("message is required")
	}

	t, err := ticket.NewTicket(
		subject,
		category,
		vo.NormalizePriority(cmd.Priority),
		cmd.Actor.ID,
		cmd.Actor.Email,
		cmd.Actor.Name,
		cmd.Actor.Role,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := t.SetNumber(uc.generateNumber(ctx)); err != nil {
		return nil, errors.NewInternalError("failed to assign ticket number", err.Error())
	}

	saveCtx, cancel := storeCtx(ctx)
	defer cancel()
	if err := uc.tickets.Save(saveCtx, t); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewValidationError("ticket number conflict, please retry")
		}
		return nil, errors.NewDatabaseError("failed to create ticket", err.Error())
	}

	msg, err := ticket.NewMessage(
		t.ID(),
		body,
		vo.MessageTypeForRole(cmd.Actor.IsAdmin()),
		cmd.Actor.ID,
		cmd.Actor.Email,
		cmd.Actor.Name,
		cmd.Actor.Role,
		false,
	)
	if err != nil {
		uc.rollbackTicket(ctx, t.ID())
		return nil, errors.NewValidationError(err.Error())
	}

	msgCtx, cancelMsg := storeCtx(ctx)
	defer cancelMsg()
	if err := uc.messages.Save(msgCtx, msg); err != nil {
		// A ticket without its initial message is unusable, so undo the
		// create rather than leave a half-built aggregate behind.
		uc.rollbackTicket(ctx, t.ID())
		return nil, errors.NewDatabaseError("failed to create initial message", err.Error())
	}

	attachments := uc.associateAttachments(ctx, cmd.AttachmentIDs, t.ID(), msg.ID())

	t.IncrementMessageCount()
	updCtx, cancelUpd := storeCtx(ctx)
	defer cancelUpd()
	if err := uc.tickets.Update(updCtx, t); err != nil {
		uc.logger.Warnw("failed to persist message count", "ticket_id", t.ID(), "error", err)
	}

	invalidateListCaches(ctx, uc.cache)

	uc.logger.Infow("ticket created",
		"ticket_id", t.ID(),
		"ticket_number", t.Number(),
		"user_id", cmd.Actor.ID,
	)

	return &CreateTicketResult{
		Ticket: dto.ToTicketDTO(t, []*ticket.Message{msg}, attachments, cmd.Actor.IsAdmin()),
	}, nil
}

// generateNumber asks the backing sequence for a number, falling back to a
// random local number when the sequence fails or times out.
func (uc *CreateTicketUseCase) generateNumber(ctx context.Context) string {
	genCtx, cancel := storeCtx(ctx)
	defer cancel()

	number, err := uc.numberGen.Generate(genCtx)
	if err != nil {
		uc.logger.Warnw("ticket number generation failed, using fallback", "error", err)
		return ticket.FallbackNumber()
	}
	return number
}

// rollbackTicket compensates a failed create by deleting the just-saved
// ticket. Failure to roll back is logged and swallowed; the orphan row is
// harmless without messages.
func (uc *CreateTicketUseCase) rollbackTicket(ctx context.Context, ticketID uint) {
	delCtx, cancel := storeCtx(ctx)
	defer cancel()
	if err := uc.tickets.Delete(delCtx, ticketID); err != nil {
		uc.logger.Errorw("failed to roll back ticket create", "ticket_id", ticketID, "error", err)
	}
}

// associateAttachments links pre-uploaded attachments to the new ticket and
// message. Best effort: failures are logged and the create still succeeds.
func (uc *CreateTicketUseCase) associateAttachments(ctx context.Context, ids []uint, ticketID, messageID uint) []*ticket.Attachment {
	if len(ids) == 0 {
		return nil
	}

	msgID := messageID
	assocCtx, cancel := storeCtx(ctx)
	defer cancel()
	if err := uc.attachments.Associate(assocCtx, ids, ticketID, &msgID); err != nil {
		uc.logger.Warnw("failed to associate attachments",
			"ticket_id", ticketID,
			"attachment_ids", fmt.Sprint(ids),
			"error", err,
		)
		return nil
	}

	listCtx, cancelList := storeCtx(ctx)
	defer cancelList()
	attachments, err := uc.attachments.ListByTicketID(listCtx, ticketID)
	if err != nil {
		uc.logger.Warnw("failed to load associated attachments", "ticket_id", ticketID, "error", err)
		return nil
	}
	return attachments
}
