package ticket

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/ticket/usecases"
	"helpdesk/internal/shared/auth"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/utils"
)

type CreateTicketRequest struct {
	Subject       string `json:"subject" binding:"required,max=255"`
	Category      string `json:"category" binding:"max=100"`
	Priority      string `json:"priority"`
	Message       string `json:"message" binding:"max=5000"`
	AttachmentIDs []uint `json:"attachment_ids,omitempty"`
}

func (r *CreateTicketRequest) ToCommand(actor auth.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Actor:         actor,
		Subject:       r.Subject,
		Category:      r.Category,
		Priority:      r.Priority,
		Message:       r.Message,
		AttachmentIDs: r.AttachmentIDs,
	}
}

type AddMessageRequest struct {
	Message       string `json:"message" binding:"max=5000"`
	IsInternal    bool   `json:"is_internal"`
	AttachmentIDs []uint `json:"attachment_ids,omitempty"`
}

func (r *AddMessageRequest) ToCommand(actor auth.Actor, ticketID uint) usecases.AddMessageCommand {
	return usecases.AddMessageCommand{
		Actor:         actor,
		TicketID:      ticketID,
		Message:       r.Message,
		IsInternal:    r.IsInternal,
		AttachmentIDs: r.AttachmentIDs,
	}
}

// UpdateTicketRequest carries staff-side updates. Omitted fields keep
// their current value. ClearAssignment unassigns the ticket and wins
// over assigned_to when both are sent.
type UpdateTicketRequest struct {
	Status          *string `json:"status"`
	Priority        *string `json:"priority"`
	AssignedTo      *uint   `json:"assigned_to"`
	ClearAssignment bool    `json:"clear_assignment"`
	InternalNote    string  `json:"internal_note"`
}

func (r *UpdateTicketRequest) ToCommand(actor auth.Actor, ticketID uint) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		Actor:           actor,
		TicketID:        ticketID,
		Status:          r.Status,
		Priority:        r.Priority,
		AssignedTo:      r.AssignedTo,
		ClearAssignment: r.ClearAssignment,
		InternalNote:    r.InternalNote,
	}
}

type ListTicketsRequest struct {
	Status     string
	Priority   string
	Category   string
	AssignedTo *uint
	Search     string
	Page       int
	PageSize   int
}

func (r *ListTicketsRequest) ToQuery(actor auth.Actor) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Actor:      actor,
		Status:     r.Status,
		Priority:   r.Priority,
		Category:   r.Category,
		AssignedTo: r.AssignedTo,
		Search:     r.Search,
		Page:       r.Page,
		PageSize:   r.PageSize,
	}
}

func parseListTicketsRequest(c *gin.Context) *ListTicketsRequest {
	pagination := utils.ParsePagination(c)

	req := &ListTicketsRequest{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		if id, err := strconv.ParseUint(assignedTo, 10, 32); err == nil {
			v := uint(id)
			req.AssignedTo = &v
		}
	}

	return req
}

func parseTicketID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid ticket ID")
	}
	return uint(id), nil
}
