package ticket

import (
	"fmt"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/biztime"
)

// Ticket is the aggregate root of a support case. Creator fields are a
// snapshot taken at creation time and never re-synced with the user record.
// resolvedAt/closedAt are stamped on first entry into the state only.
type Ticket struct {
	id           uint
	number       string
	subject      string
	category     string
	priority     vo.Priority
	status       vo.Status
	userID       uint
	userEmail    string
	userName     string
	userRole     string
	assignedTo   *uint
	assignedAt   *time.Time
	resolvedAt   *time.Time
	closedAt     *time.Time
	messageCount int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewTicket(
	subject string,
	category string,
	priority vo.Priority,
	userID uint,
	userEmail string,
	userName string,
	userRole string,
) (*Ticket, error) {
	if len(subject) == 0 {
		return nil, fmt.Errorf("subject is required")
	}
	if len([]rune(subject)) > 255 {
		return nil, fmt.Errorf("subject exceeds maximum length of 255 characters")
	}
	if len([]rune(category)) > 100 {
		return nil, fmt.Errorf("category exceeds maximum length of 100 characters")
	}
	if !priority.IsValid() {
		priority = vo.PriorityMedium
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	now := biztime.NowUTC()
	return &Ticket{
		subject:      subject,
		category:     category,
		priority:     priority,
		status:       vo.StatusOpen,
		userID:       userID,
		userEmail:    userEmail,
		userName:     userName,
		userRole:     userRole,
		messageCount: 0,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructTicket(
	id uint,
	number string,
	subject string,
	category string,
	priority vo.Priority,
	status vo.Status,
	userID uint,
	userEmail string,
	userName string,
	userRole string,
	assignedTo *uint,
	assignedAt *time.Time,
	resolvedAt *time.Time,
	closedAt *time.Time,
	messageCount int,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Ticket{
		id:           id,
		number:       number,
		subject:      subject,
		category:     category,
		priority:     priority,
		status:       status,
		userID:       userID,
		userEmail:    userEmail,
		userName:     userName,
		userRole:     userRole,
		assignedTo:   assignedTo,
		assignedAt:   assignedAt,
		resolvedAt:   resolvedAt,
		closedAt:     closedAt,
		messageCount: messageCount,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Number() string {
	return t.number
}

func (t *Ticket) Subject() string {
	return t.subject
}

func (t *Ticket) Category() string {
	return t.category
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Status() vo.Status {
	return t.status
}

func (t *Ticket) UserID() uint {
	return t.userID
}

func (t *Ticket) UserEmail() string {
	return t.userEmail
}

func (t *Ticket) UserName() string {
	return t.userName
}

func (t *Ticket) UserRole() string {
	return t.userRole
}

func (t *Ticket) AssignedTo() *uint {
	return t.assignedTo
}

func (t *Ticket) AssignedAt() *time.Time {
	return t.assignedAt
}

func (t *Ticket) ResolvedAt() *time.Time {
	return t.resolvedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) MessageCount() int {
	return t.messageCount
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// SetNumber assigns the ticket number once. The number is immutable after
// assignment.
func (t *Ticket) SetNumber(number string) error {
	if len(t.number) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// ChangeStatus moves the ticket to newStatus. Transitions are
// administrator-driven and unconstrained; resolvedAt/closedAt are stamped
// only on first entry into the respective state and never cleared.
func (t *Ticket) ChangeStatus(newStatus vo.Status) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}

	if t.status == newStatus {
		return nil
	}

	t.status = newStatus
	t.updatedAt = biztime.NowUTC()

	if newStatus.IsResolved() && t.resolvedAt == nil {
		now := biztime.NowUTC()
		t.resolvedAt = &now
	}

	if newStatus.IsClosed() && t.closedAt == nil {
		now := biztime.NowUTC()
		t.closedAt = &now
	}

	return nil
}

// AssignTo sets the assignee and stamps assignedAt.
func (t *Ticket) AssignTo(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}

	now := biztime.NowUTC()
	t.assignedTo = &assigneeID
	t.assignedAt = &now
	t.updatedAt = now
	return nil
}

// ClearAssignment removes the assignee without stamping assignedAt.
func (t *Ticket) ClearAssignment() {
	t.assignedTo = nil
	t.assignedAt = nil
	t.updatedAt = biztime.NowUTC()
}

func (t *Ticket) ChangePriority(newPriority vo.Priority) error {
	if !newPriority.IsValid() {
		return fmt.Errorf("invalid priority: %s", newPriority)
	}

	if t.priority == newPriority {
		return nil
	}

	t.priority = newPriority
	t.updatedAt = biztime.NowUTC()
	return nil
}

// IncrementMessageCount bumps the denormalized counter. Messages remain
// the source of truth; the counter is advisory.
func (t *Ticket) IncrementMessageCount() {
	t.messageCount++
	t.updatedAt = biztime.NowUTC()
}

// CanBeViewedBy reports whether the given actor may read this ticket:
// staff or the ticket owner.
func (t *Ticket) CanBeViewedBy(actorID uint, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return t.userID == actorID
}
