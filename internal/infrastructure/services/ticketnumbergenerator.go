package services

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/biztime"
)

// TicketNumberGenerator issues sequential per-day ticket numbers backed by
// the tickets table. The in-memory counter avoids a MAX() query per ticket;
// it is seeded from the database once per day per process. Multi-instance
// deployments can collide on the same sequence value, which the unique
// index on ticket_number turns into a retryable error.
type TicketNumberGenerator struct {
	db    *gorm.DB
	mu    sync.Mutex
	cache map[string]int
}

func NewTicketNumberGenerator(db *gorm.DB) *TicketNumberGenerator {
	return &TicketNumberGenerator{
		db:    db,
		cache: make(map[string]int),
	}
}

func (g *TicketNumberGenerator) Generate(ctx context.Context) (string, error) {
	dateKey := biztime.DateKey(biztime.NowUTC())

	if seq, ok := g.increment(dateKey); ok {
		return ticket.FormatNumber(dateKey, seq), nil
	}

	// First request of the day in this process. The seeding query runs
	// without the mutex so concurrent generators are not serialized behind
	// the database round-trip.
	seeded, err := g.maxSequence(ctx, dateKey)
	if err != nil {
		return "", err
	}

	seq := g.seed(dateKey, seeded)
	return ticket.FormatNumber(dateKey, seq), nil
}

// increment bumps the counter for dateKey if one is already seeded.
func (g *TicketNumberGenerator) increment(dateKey string) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	seq, ok := g.cache[dateKey]
	if !ok {
		return 0, false
	}
	g.cache[dateKey] = seq + 1
	return seq + 1, true
}

// seed installs the counter for dateKey unless another goroutine won the
// race while the seeding query ran, then returns the next value.
func (g *TicketNumberGenerator) seed(dateKey string, seeded int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if seq, ok := g.cache[dateKey]; ok {
		g.cache[dateKey] = seq + 1
		return seq + 1
	}
	g.cache[dateKey] = seeded
	return seeded
}

func (g *TicketNumberGenerator) maxSequence(ctx context.Context, dateKey string) (int, error) {
	prefix := fmt.Sprintf("%s-%s-", ticket.NumberPrefix, dateKey)

	var maxNumber string
	err := g.db.WithContext(ctx).
		Table("tickets").
		Select("MAX(ticket_number)").
		Where("ticket_number LIKE ?", prefix+"%").
		Scan(&maxNumber).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return 0, fmt.Errorf("failed to get max ticket number: %w", err)
	}

	seq := 1
	if maxNumber != "" {
		var parsed int
		if _, err := fmt.Sscanf(maxNumber, prefix+"%d", &parsed); err == nil {
			seq = parsed + 1
		}
	}
	return seq, nil
}
