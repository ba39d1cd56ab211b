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
	"helpdesk/internal/shared/utils"
)

// ListTicketsQuery filters the ticket listing. Non-admin actors are always
// scoped to their own tickets regardless of the filters supplied.
type ListTicketsQuery struct {
	Actor      auth.Actor
	Status     string
	Priority   string
	Category   string
	AssignedTo *uint
	Search     string
	Page       int
	PageSize   int
}

type ListTicketsResult struct {
	List *dto.TicketListDTO `json:"list"`
}

type ListTicketsUseCase struct {
	tickets ticket.TicketRepository
	cache   Cache
	logger  logger.Interface
}

func NewListTicketsUseCase(tickets ticket.TicketRepository, cache Cache, log logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{tickets: tickets, cache: cache, logger: log}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	if !query.Actor.IsValid() {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	pagination := utils.ValidatePagination(query.Page, query.PageSize)
	filter := ticket.TicketFilter{
		Search:   query.Search,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	if query.Status != "" {
		status, err := vo.NewStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status filter", err.Error())
		}
		filter.Status = &status
	}
	if query.Priority != "" {
		priority, err := vo.NewPriority(query.Priority)
		if err != nil {
			return nil, errors.NewValidationError("invalid priority filter", err.Error())
		}
		filter.Priority = &priority
	}
	if query.Category != "" {
		category := query.Category
		filter.Category = &category
	}

	isAdmin := query.Actor.IsAdmin()
	if isAdmin {
		filter.AssignedTo = query.AssignedTo
	} else {
		userID := query.Actor.ID
		filter.UserID = &userID
	}

	// Plain listings are cached per actor and page. Filtered or searched
	// listings go straight to the store.
	cacheable := query.Priority == "" && query.Category == "" && query.AssignedTo == nil && query.Search == ""
	cacheKey := listCacheKey(query.Actor.ID, query.Actor.Role, query.Status, pagination.Page, pagination.PageSize)

	if cacheable {
		if data, ok := uc.cache.Get(ctx, cacheKey); ok {
			var cached dto.TicketListDTO
			if err := json.Unmarshal(data, &cached); err == nil {
				return &ListTicketsResult{List: &cached}, nil
			}
			uc.cache.Delete(ctx, cacheKey)
		}
	}

	listCtx, cancel := storeCtx(ctx)
	defer cancel()
	tickets, total, err := uc.tickets.List(listCtx, filter)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list tickets", err.Error())
	}

	items := make([]dto.TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.ToTicketListItemDTO(t))
	}

	list := &dto.TicketListDTO{
		Items:      items,
		Total:      total,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		TotalPages: utils.TotalPages(total, pagination.PageSize),
	}

	if cacheable {
		if data, err := json.Marshal(list); err == nil {
			uc.cache.Set(ctx, cacheKey, data, constants.ListCacheTTL)
		}
	}

	return &ListTicketsResult{List: list}, nil
}
