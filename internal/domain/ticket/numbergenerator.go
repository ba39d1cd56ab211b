package ticket

import (
	"context"
	"fmt"
	"math/rand"

	"helpdesk/internal/shared/biztime"
)

// NumberPrefix is the leading segment of every ticket number.
const NumberPrefix = "TICKET"

// NumberGenerator produces globally unique, human-readable ticket numbers.
// Implementations may depend on a backing sequence; callers fall back to
// FallbackNumber when generation fails or times out.
type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// FormatNumber builds a ticket number from a date key and sequence value:
// TICKET-{yyyymmdd}-{5 digits}.
func FormatNumber(dateKey string, seq int) string {
	return fmt.Sprintf("%s-%s-%05d", NumberPrefix, dateKey, seq)
}

// FallbackNumber produces a locally generated ticket number of the form
// TICKET-{yyyymmdd}-{5-digit random}. It never blocks and is used when the
// backing sequence is unavailable. Uniqueness is enforced by the store's
// unique index; a collision surfaces as a duplicate-key error.
func FallbackNumber() string {
	return FormatNumber(biztime.DateKey(biztime.NowUTC()), rand.Intn(100000))
}
