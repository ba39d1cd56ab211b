package usecases

import (
	"context"
	"encoding/json"
	"sync"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/auth"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/goroutine"
	"helpdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	Actor    auth.Actor
	TicketID uint
}

type GetTicketResult struct {
	Ticket *dto.TicketDTO `json:"ticket"`
}

type GetTicketUseCase struct {
	tickets     ticket.TicketRepository
	messages    ticket.MessageRepository
	attachments ticket.AttachmentRepository
	cache       Cache
	logger      logger.Interface
}

func NewGetTicketUseCase(
	tickets ticket.TicketRepository,
	messages ticket.MessageRepository,
	attachments ticket.AttachmentRepository,
	cache Cache,
	log logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		tickets:     tickets,
		messages:    messages,
		attachments: attachments,
		cache:       cache,
		logger:      log,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*GetTicketResult, error) {
	if !query.Actor.IsValid() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	isAdmin := query.Actor.IsAdmin()
	cacheKey := detailCacheKey(query.TicketID, isAdmin)

	if data, ok := uc.cache.Get(ctx, cacheKey); ok {
		var cached dto.TicketDTO
		if err := json.Unmarshal(data, &cached); err == nil {
			if !isAdmin && cached.UserID != query.Actor.ID {
				return nil, errors.NewForbiddenError("you do not have access to this ticket")
			}
			return &GetTicketResult{Ticket: &cached}, nil
		}
		uc.cache.Delete(ctx, cacheKey)
	}

	getCtx, cancel := storeCtx(ctx)
	defer cancel()
	t, err := uc.tickets.GetByID(getCtx, query.TicketID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		return nil, errors.NewDatabaseError("failed to load ticket", err.Error())
	}
	if !t.CanBeViewedBy(query.Actor.ID, isAdmin) {
		return nil, errors.NewForbiddenError("you do not have access to this ticket")
	}

	messages, attachments := uc.loadThread(ctx, query.TicketID)
	result := dto.ToTicketDTO(t, messages, attachments, isAdmin)

	if data, err := json.Marshal(result); err == nil {
		uc.cache.Set(ctx, cacheKey, data, constants.ListCacheTTL)
	}

	// Staff opening a ticket marks the user-authored messages as read.
	// Runs detached; the response reflects the pre-read state.
	if isAdmin {
		uc.markUserMessagesRead(messages, query.Actor.ID, query.TicketID)
	}

	return &GetTicketResult{Ticket: result}, nil
}

// loadThread fetches messages and attachments concurrently. A failed fetch
// degrades to an empty slice so the ticket itself still renders.
func (uc *GetTicketUseCase) loadThread(ctx context.Context, ticketID uint) ([]*ticket.Message, []*ticket.Attachment) {
	var (
		wg          sync.WaitGroup
		messages    []*ticket.Message
		attachments []*ticket.Attachment
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		msgCtx, cancel := storeCtx(ctx)
		defer cancel()
		var err error
		if messages, err = uc.messages.ListByTicketID(msgCtx, ticketID); err != nil {
			uc.logger.Warnw("failed to load ticket messages", "ticket_id", ticketID, "error", err)
			messages = nil
		}
	}()
	go func() {
		defer wg.Done()
		attCtx, cancel := storeCtx(ctx)
		defer cancel()
		var err error
		if attachments, err = uc.attachments.ListByTicketID(attCtx, ticketID); err != nil {
			uc.logger.Warnw("failed to load ticket attachments", "ticket_id", ticketID, "error", err)
			attachments = nil
		}
	}()
	wg.Wait()

	return messages, attachments
}

func (uc *GetTicketUseCase) markUserMessagesRead(messages []*ticket.Message, readerID uint, ticketID uint) {
	var unreadIDs []uint
	for _, m := range messages {
		if !m.IsRead() && !m.Type().IsAdmin() {
			unreadIDs = append(unreadIDs, m.ID())
		}
	}
	if len(unreadIDs) == 0 {
		return
	}

	goroutine.SafeGo(uc.logger, "mark-messages-read", func() {
		ctx, cancel := detachedCtx()
		defer cancel()
		if err := uc.messages.MarkRead(ctx, unreadIDs, readerID); err != nil {
			uc.logger.Warnw("failed to mark messages read",
				"ticket_id", ticketID,
				"reader_id", readerID,
				"error", err,
			)
			return
		}
		// Cached detail views now carry stale read flags.
		uc.cache.DeleteByPattern(ctx, detailCacheKeyPrefix(ticketID))
		uc.cache.DeleteByPattern(ctx, statsCachePrefix)
	})
}
