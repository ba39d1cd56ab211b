package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "helpdesk/internal/domain/ticket/valueobjects"
)

func newTestTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("Cannot log in", "account", vo.PriorityMedium, 42, "user@example.com", "Jane Doe", "user")
	require.NoError(t, err)
	require.NoError(t, tk.SetID(1))
	require.NoError(t, tk.SetNumber("TICKET-20260830-00001"))
	return tk
}

func TestNewTicket(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		category string
		priority vo.Priority
		userID   uint
		wantErr  string
	}{
		{
			name:     "valid ticket",
			subject:  "Cannot log in",
			category: "account",
			priority: vo.PriorityHigh,
			userID:   1,
		},
		{
			name:    "empty subject",
			subject: "",
			userID:  1,
			wantErr: "subject is required",
		},
		{
			name:    "subject too long",
			subject: string(make([]rune, 256)),
			userID:  1,
			wantErr: "subject exceeds maximum length",
		},
		{
			name:     "category too long",
			subject:  "ok",
			category: string(make([]rune, 101)),
			userID:   1,
			wantErr:  "category exceeds maximum length",
		},
		{
			name:    "zero user id",
			subject: "ok",
			userID:  0,
			wantErr: "user ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.subject, tt.category, tt.priority, tt.userID, "u@example.com", "U", "user")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.StatusOpen, tk.Status())
			assert.Equal(t, 0, tk.MessageCount())
			assert.Nil(t, tk.ResolvedAt())
			assert.Nil(t, tk.ClosedAt())
		})
	}
}

func TestNewTicket_InvalidPriorityNormalizesToMedium(t *testing.T) {
	tk, err := NewTicket("subject", "", vo.Priority("bogus"), 1, "", "", "user")
	require.NoError(t, err)
	assert.Equal(t, vo.PriorityMedium, tk.Priority())
}

func TestTicket_SetNumberIsImmutable(t *testing.T) {
	tk, err := NewTicket("subject", "", vo.PriorityLow, 1, "", "", "user")
	require.NoError(t, err)

	require.NoError(t, tk.SetNumber("TICKET-20260830-00007"))
	err = tk.SetNumber("TICKET-20260830-00008")
	require.Error(t, err)
	assert.Equal(t, "TICKET-20260830-00007", tk.Number())
}

func TestTicket_ChangeStatus_StampsResolvedAtOnce(t *testing.T) {
	tk := newTestTicket(t)

	require.NoError(t, tk.ChangeStatus(vo.StatusResolved))
	require.NotNil(t, tk.ResolvedAt())
	firstStamp := *tk.ResolvedAt()

	// resolved -> open -> resolved again must keep the first stamp
	require.NoError(t, tk.ChangeStatus(vo.StatusOpen))
	require.NotNil(t, tk.ResolvedAt())
	require.NoError(t, tk.ChangeStatus(vo.StatusResolved))
	assert.Equal(t, firstStamp, *tk.ResolvedAt())
}

func TestTicket_ChangeStatus_StampsClosedAtOnce(t *testing.T) {
	tk := newTestTicket(t)

	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	require.NotNil(t, tk.ClosedAt())
	firstStamp := *tk.ClosedAt()

	require.NoError(t, tk.ChangeStatus(vo.StatusPending))
	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	assert.Equal(t, firstStamp, *tk.ClosedAt())
}

func TestTicket_ChangeStatus_Unconstrained(t *testing.T) {
	// any state is reachable from any state; closed is not terminal
	tk := newTestTicket(t)
	for _, s := range []vo.Status{
		vo.StatusClosed,
		vo.StatusInProgress,
		vo.StatusPending,
		vo.StatusResolved,
		vo.StatusOpen,
	} {
		require.NoError(t, tk.ChangeStatus(s))
		assert.Equal(t, s, tk.Status())
	}
}

func TestTicket_ChangeStatus_Invalid(t *testing.T) {
	tk := newTestTicket(t)
	err := tk.ChangeStatus(vo.Status("bogus"))
	require.Error(t, err)
	assert.Equal(t, vo.StatusOpen, tk.Status())
}

func TestTicket_Assignment(t *testing.T) {
	tk := newTestTicket(t)

	require.NoError(t, tk.AssignTo(7))
	require.NotNil(t, tk.AssignedTo())
	assert.Equal(t, uint(7), *tk.AssignedTo())
	assert.NotNil(t, tk.AssignedAt())

	tk.ClearAssignment()
	assert.Nil(t, tk.AssignedTo())
	assert.Nil(t, tk.AssignedAt())

	err := tk.AssignTo(0)
	require.Error(t, err)
}

func TestTicket_CanBeViewedBy(t *testing.T) {
	tk := newTestTicket(t)

	assert.True(t, tk.CanBeViewedBy(42, false), "owner can view")
	assert.True(t, tk.CanBeViewedBy(99, true), "admin can view")
	assert.False(t, tk.CanBeViewedBy(99, false), "stranger cannot view")
}

func TestTicket_IncrementMessageCount(t *testing.T) {
	tk := newTestTicket(t)
	tk.IncrementMessageCount()
	tk.IncrementMessageCount()
	assert.Equal(t, 2, tk.MessageCount())
}
