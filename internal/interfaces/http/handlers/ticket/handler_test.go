package ticket

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketdto "helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/application/ticket/usecases"
	"helpdesk/internal/interfaces/http/handlers/testutil"
	"helpdesk/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateTicketUC struct {
	result  *usecases.CreateTicketResult
	err     error
	lastCmd usecases.CreateTicketCommand
}

func (m *mockCreateTicketUC) Execute(_ context.Context, cmd usecases.CreateTicketCommand) (*usecases.CreateTicketResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockListTicketsUC struct {
	result    *usecases.ListTicketsResult
	err       error
	lastQuery usecases.ListTicketsQuery
}

func (m *mockListTicketsUC) Execute(_ context.Context, query usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.lastQuery = query
	return m.result, m.err
}

type mockGetTicketUC struct {
	result    *usecases.GetTicketResult
	err       error
	lastQuery usecases.GetTicketQuery
}

func (m *mockGetTicketUC) Execute(_ context.Context, query usecases.GetTicketQuery) (*usecases.GetTicketResult, error) {
	m.lastQuery = query
	return m.result, m.err
}

type mockAddMessageUC struct {
	result  *usecases.AddMessageResult
	err     error
	lastCmd usecases.AddMessageCommand
}

func (m *mockAddMessageUC) Execute(_ context.Context, cmd usecases.AddMessageCommand) (*usecases.AddMessageResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockUpdateTicketUC struct {
	result  *usecases.UpdateTicketResult
	err     error
	lastCmd usecases.UpdateTicketCommand
}

func (m *mockUpdateTicketUC) Execute(_ context.Context, cmd usecases.UpdateTicketCommand) (*usecases.UpdateTicketResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockGetStatsUC struct {
	result *usecases.GetTicketStatsResult
	err    error
}

func (m *mockGetStatsUC) Execute(_ context.Context, _ usecases.GetTicketStatsQuery) (*usecases.GetTicketStatsResult, error) {
	return m.result, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type testDeps struct {
	createTicketUC usecases.CreateTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	getTicketUC    usecases.GetTicketExecutor
	addMessageUC   usecases.AddMessageExecutor
	updateTicketUC usecases.UpdateTicketExecutor
	getStatsUC     usecases.GetTicketStatsExecutor
}

func newTestTicketHandler(deps testDeps) *TicketHandler {
	return NewTicketHandler(
		deps.createTicketUC,
		deps.listTicketsUC,
		deps.getTicketUC,
		deps.addMessageUC,
		deps.updateTicketUC,
		deps.getStatsUC,
	)
}

func sampleTicketDTO() *ticketdto.TicketDTO {
	now := time.Now().UTC()
	return &ticketdto.TicketDTO{
		ID:           1,
		TicketNumber: "TICKET-20260830-00001",
		Subject:      "Cannot log in",
		Category:     "account",
		Priority:     "high",
		Status:       "open",
		UserID:       42,
		UserEmail:    "user@example.com",
		UserName:     "Test User",
		UserRole:     "user",
		MessageCount: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
		Messages:     []ticketdto.MessageDTO{},
		Attachments:  []ticketdto.AttachmentDTO{},
	}
}

// =====================================================================
// CreateTicket
// =====================================================================

func TestTicketHandler_CreateTicket_Success(t *testing.T) {
	mockUC := &mockCreateTicketUC{
		result: &usecases.CreateTicketResult{Ticket: sampleTicketDTO()},
	}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	reqBody := CreateTicketRequest{
		Subject:  "Cannot log in",
		Category: "account",
		Priority: "high",
		Message:  "I keep getting an error on the login page.",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetActorContext(c, testutil.UserActor(42))

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(42), mockUC.lastCmd.Actor.ID)
	assert.Equal(t, "Cannot log in", mockUC.lastCmd.Subject)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestTicketHandler_CreateTicket_BindError(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	// Missing required subject
	reqBody := map[string]string{"message": "no subject"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetActorContext(c, testutil.UserActor(42))

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestTicketHandler_CreateTicket_NotAuthenticated(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	reqBody := CreateTicketRequest{Subject: "Cannot log in", Message: "help"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	// No actor set

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTicketHandler_CreateTicket_UseCaseError(t *testing.T) {
	mockUC := &mockCreateTicketUC{
		err: errors.NewValidationError("subject is required"),
	}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	reqBody := CreateTicketRequest{Subject: "x", Message: "y"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetActorContext(c, testutil.UserActor(42))

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Type)
}

// =====================================================================
// ListTickets
// =====================================================================

func TestTicketHandler_ListTickets_Success(t *testing.T) {
	mockUC := &mockListTicketsUC{
		result: &usecases.ListTicketsResult{
			List: &ticketdto.TicketListDTO{
				Items:    []ticketdto.TicketListItemDTO{},
				Total:    0,
				Page:     1,
				PageSize: 20,
			},
		},
	}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetActorContext(c, testutil.UserActor(42))
	testutil.SetQueryParams(c, map[string]string{
		"status": "open",
		"page":   "2",
		"limit":  "50",
	})

	handler.ListTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "open", mockUC.lastQuery.Status)
	assert.Equal(t, 2, mockUC.lastQuery.Page)
	assert.Equal(t, 50, mockUC.lastQuery.PageSize)
}

func TestTicketHandler_ListTickets_AssignedToFilter(t *testing.T) {
	mockUC := &mockListTicketsUC{
		result: &usecases.ListTicketsResult{List: &ticketdto.TicketListDTO{}},
	}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetActorContext(c, testutil.AdminActor(1))
	testutil.SetQueryParams(c, map[string]string{"assigned_to": "7"})

	handler.ListTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.lastQuery.AssignedTo)
	assert.Equal(t, uint(7), *mockUC.lastQuery.AssignedTo)
}

func TestTicketHandler_ListTickets_UseCaseError(t *testing.T) {
	mockUC := &mockListTicketsUC{
		err: errors.NewDatabaseError("temporary storage error, please retry"),
	}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetActorContext(c, testutil.UserActor(42))

	handler.ListTickets(c)

	assert.NotEqual(t, http.StatusOK, w.Code)
}

// =====================================================================
// GetTicket
// =====================================================================

func TestTicketHandler_GetTicket_Success(t *testing.T) {
	mockUC := &mockGetTicketUC{
		result: &usecases.GetTicketResult{Ticket: sampleTicketDTO()},
	}
	handler := newTestTicketHandler(testDeps{getTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/1", nil)
	testutil.SetActorContext(c, testutil.UserActor(42))
	testutil.SetURLParam(c, "id", "1")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), mockUC.lastQuery.TicketID)
}

func TestTicketHandler_GetTicket_InvalidID(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/abc", nil)
	testutil.SetActorContext(c, testutil.UserActor(42))
	testutil.SetURLParam(c, "id", "abc")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_GetTicket_NotFound(t *testing.T) {
	mockUC := &mockGetTicketUC{
		err: errors.NewNotFoundError("ticket not found"),
	}
	handler := newTestTicketHandler(testDeps{getTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/99", nil)
	testutil.SetActorContext(c, testutil.UserActor(42))
	testutil.SetURLParam(c, "id", "99")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =====================================================================
// AddMessage
// =====================================================================

func TestTicketHandler_AddMessage_Success(t *testing.T) {
	mockUC := &mockAddMessageUC{
		result: &usecases.AddMessageResult{Message: &ticketdto.MessageDTO{ID: 5, TicketID: 1}},
	}
	handler := newTestTicketHandler(testDeps{addMessageUC: mockUC})

	reqBody := AddMessageRequest{Message: "Any update on this?"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/messages", reqBody)
	testutil.SetActorContext(c, testutil.UserActor(42))
	testutil.SetURLParam(c, "id", "1")

	handler.AddMessage(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(1), mockUC.lastCmd.TicketID)
	assert.Equal(t, "Any update on this?", mockUC.lastCmd.Message)
}

func TestTicketHandler_AddMessage_InvalidID(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	reqBody := AddMessageRequest{Message: "hello"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/0/messages", reqBody)
	testutil.SetActorContext(c, testutil.UserActor(42))
	testutil.SetURLParam(c, "id", "0")

	handler.AddMessage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// UpdateTicket
// =====================================================================

func TestTicketHandler_UpdateTicket_Success(t *testing.T) {
	mockUC := &mockUpdateTicketUC{
		result: &usecases.UpdateTicketResult{Ticket: sampleTicketDTO()},
	}
	handler := newTestTicketHandler(testDeps{updateTicketUC: mockUC})

	status := "resolved"
	reqBody := UpdateTicketRequest{Status: &status, InternalNote: "fixed by rotating credentials"}
	c, w := testutil.NewTestContext(http.MethodPatch, "/tickets/1", reqBody)
	testutil.SetActorContext(c, testutil.AdminActor(1))
	testutil.SetURLParam(c, "id", "1")

	handler.UpdateTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.lastCmd.Status)
	assert.Equal(t, "resolved", *mockUC.lastCmd.Status)
	assert.Equal(t, "fixed by rotating credentials", mockUC.lastCmd.InternalNote)
}

func TestTicketHandler_UpdateTicket_ClearAssignment(t *testing.T) {
	mockUC := &mockUpdateTicketUC{
		result: &usecases.UpdateTicketResult{Ticket: sampleTicketDTO()},
	}
	handler := newTestTicketHandler(testDeps{updateTicketUC: mockUC})

	reqBody := UpdateTicketRequest{ClearAssignment: true}
	c, w := testutil.NewTestContext(http.MethodPatch, "/tickets/1", reqBody)
	testutil.SetActorContext(c, testutil.AdminActor(1))
	testutil.SetURLParam(c, "id", "1")

	handler.UpdateTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockUC.lastCmd.ClearAssignment)
}

func TestTicketHandler_UpdateTicket_Forbidden(t *testing.T) {
	mockUC := &mockUpdateTicketUC{
		err: errors.NewForbiddenError("admin access required"),
	}
	handler := newTestTicketHandler(testDeps{updateTicketUC: mockUC})

	status := "closed"
	reqBody := UpdateTicketRequest{Status: &status}
	c, w := testutil.NewTestContext(http.MethodPatch, "/tickets/1", reqBody)
	testutil.SetActorContext(c, testutil.UserActor(42))
	testutil.SetURLParam(c, "id", "1")

	handler.UpdateTicket(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// GetStats
// =====================================================================

func TestTicketHandler_GetStats_Success(t *testing.T) {
	mockUC := &mockGetStatsUC{
		result: &usecases.GetTicketStatsResult{
			Stats: &ticketdto.TicketStatsDTO{Total: 3},
		},
	}
	handler := newTestTicketHandler(testDeps{getStatsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/stats", nil)
	testutil.SetActorContext(c, testutil.AdminActor(1))

	handler.GetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}
