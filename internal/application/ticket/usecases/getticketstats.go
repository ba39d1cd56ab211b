package usecases

import (
	"context"
	"encoding/json"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/auth"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type GetTicketStatsQuery struct {
	Actor auth.Actor
}

type GetTicketStatsResult struct {
	Stats *dto.TicketStatsDTO `json:"stats"`
}

// GetTicketStatsUseCase aggregates dashboard counters. Admins see global
// counts; everyone else sees counts over their own tickets.
type GetTicketStatsUseCase struct {
	tickets  ticket.TicketRepository
	messages ticket.MessageRepository
	cache    Cache
	logger   logger.Interface
}

func NewGetTicketStatsUseCase(
	tickets ticket.TicketRepository,
	messages ticket.MessageRepository,
	cache Cache,
	log logger.Interface,
) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{tickets: tickets, messages: messages, cache: cache, logger: log}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, query GetTicketStatsQuery) (*GetTicketStatsResult, error) {
	if !query.Actor.IsValid() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	cacheKey := statsCacheKey(query.Actor.ID, query.Actor.Role)
	if data, ok := uc.cache.Get(ctx, cacheKey); ok {
		var cached dto.TicketStatsDTO
		if err := json.Unmarshal(data, &cached); err == nil {
			return &GetTicketStatsResult{Stats: &cached}, nil
		}
		uc.cache.Delete(ctx, cacheKey)
	}

	var ownerID *uint
	if !query.Actor.IsAdmin() {
		id := query.Actor.ID
		ownerID = &id
	}

	countCtx, cancel := storeCtx(ctx)
	defer cancel()
	counts, err := uc.tickets.CountByStatus(countCtx, ownerID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to count tickets", err.Error())
	}

	stats := &dto.TicketStatsDTO{ByStatus: make(map[string]int64, len(vo.AllStatuses()))}
	for _, status := range vo.AllStatuses() {
		count := counts[status]
		stats.ByStatus[status.String()] = count
		stats.Total += count
	}

	unreadCtx, cancelUnread := storeCtx(ctx)
	defer cancelUnread()
	unread, err := uc.messages.CountUnreadUserMessages(unreadCtx, ownerID)
	if err != nil {
		uc.logger.Warnw("failed to count unread messages", "error", err)
	} else {
		stats.UnreadMessages = unread
	}

	if data, err := json.Marshal(stats); err == nil {
		uc.cache.Set(ctx, cacheKey, data, constants.ListCacheTTL)
	}

	return &GetTicketStatsResult{Stats: stats}, nil
}
