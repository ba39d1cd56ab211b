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

// UpdateTicketCommand applies a staff-side change to a ticket. Nil fields
// are left untouched; ClearAssignment removes the current assignee.
// InternalNote, when set, is recorded as an internal message on the ticket.
type UpdateTicketCommand struct {
	Actor           auth.Actor
	TicketID        uint
	Status          *string
	Priority        *string
	AssignedTo      *uint
	ClearAssignment bool
	InternalNote    string
}

type UpdateTicketResult struct {
	Ticket *dto.TicketDTO `json:"ticket"`
}

type UpdateTicketUseCase struct {
	tickets  ticket.TicketRepository
	messages ticket.MessageRepository
	cache    Cache
	notifier Notifier
	logger   logger.Interface
}

func NewUpdateTicketUseCase(
	tickets ticket.TicketRepository,
	messages ticket.MessageRepository,
	cache Cache,
	notifier Notifier,
	log logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		tickets:  tickets,
		messages: messages,
		cache:    cache,
		notifier: notifier,
		logger:   log,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	if !cmd.Actor.IsValid() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	if !cmd.Actor.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	getCtx, cancel := storeCtx(ctx)
	defer cancel()
	t, err := uc.tickets.GetByID(getCtx, cmd.TicketID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		return nil, errors.NewDatabaseError("failed to load ticket", err.Error())
	}

	oldStatus := t.Status()
	statusChanged := false

	if cmd.Status != nil {
		newStatus, err := vo.NewStatus(*cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status", err.Error())
		}
		statusChanged = newStatus != oldStatus
		if err := t.ChangeStatus(newStatus); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if cmd.Priority != nil {
		newPriority, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError("invalid priority", err.Error())
		}
		if err := t.ChangePriority(newPriority); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	switch {
	case cmd.ClearAssignment:
		t.ClearAssignment()
	case cmd.AssignedTo != nil:
		if err := t.AssignTo(*cmd.AssignedTo); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	updCtx, cancelUpd := storeCtx(ctx)
	defer cancelUpd()
	if err := uc.tickets.Update(updCtx, t); err != nil {
		return nil, errors.NewDatabaseError("failed to update ticket", err.Error())
	}

	uc.recordInternalNote(ctx, t, cmd)

	invalidateTicketCaches(ctx, uc.cache, t.ID())

	if statusChanged {
		uc.notifyStatusChange(t, oldStatus)
	}

	uc.logger.Infow("ticket updated",
		"ticket_id", t.ID(),
		"ticket_number", t.Number(),
		"admin_id", cmd.Actor.ID,
	)

	return &UpdateTicketResult{Ticket: dto.ToTicketDTO(t, nil, nil, true)}, nil
}

// recordInternalNote stores the note as an internal admin message. Best
// effort: a failed note does not fail the update.
func (uc *UpdateTicketUseCase) recordInternalNote(ctx context.Context, t *ticket.Ticket, cmd UpdateTicketCommand) {
	note := sanitize.Text(cmd.InternalNote, constants.MaxMessageLength)
	if note == "" {
		return
	}

	msg, err := ticket.NewMessage(
		t.ID(),
		note,
		vo.MessageTypeAdmin,
		cmd.Actor.ID,
		cmd.Actor.Email,
		cmd.Actor.Name,
		cmd.Actor.Role,
		true,
	)
	if err != nil {
		uc.logger.Warnw("invalid internal note", "ticket_id", t.ID(), "error", err)
		return
	}

	saveCtx, cancel := storeCtx(ctx)
	defer cancel()
	if err := uc.messages.Save(saveCtx, msg); err != nil {
		uc.logger.Warnw("failed to save internal note", "ticket_id", t.ID(), "error", err)
	}
}

func (uc *UpdateTicketUseCase) notifyStatusChange(t *ticket.Ticket, oldStatus vo.Status) {
	recipient := t.UserEmail()
	if recipient == "" {
		return
	}
	newStatus := t.Status()
	meta := NotificationMeta{TicketNumber: t.Number(), Subject: t.Subject()}

	goroutine.SafeGo(uc.logger, "notify-status-change", func() {
		ctx, cancel := detachedCtx()
		defer cancel()
		if err := uc.notifier.SendStatusChanged(ctx, recipient, oldStatus.String(), newStatus.String(), meta); err != nil {
			uc.logger.Warnw("failed to send status notification",
				"ticket_number", meta.TicketNumber,
				"error", err,
			)
		}
	})
}
