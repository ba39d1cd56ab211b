package usecases

import (
	"context"
	"fmt"
	"time"

	"helpdesk/internal/shared/constants"
)

// Cache is an advisory key/value store with TTL and prefix invalidation.
// Implementations never surface errors: a failing cache behaves as
// always-miss and must not block or fail the request.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	DeleteByPattern(ctx context.Context, prefix string)
}

// NotificationMeta carries the ticket context included in outbound mail.
type NotificationMeta struct {
	TicketNumber string
	Subject      string
}

// Notifier delivers owner-facing email. Calls are fire-and-forget from the
// caller's perspective: results are logged, never retried, never surfaced.
type Notifier interface {
	SendStatusChanged(ctx context.Context, recipient string, oldStatus, newStatus string, meta NotificationMeta) error
	SendReply(ctx context.Context, recipient string, message string, attachmentNames []string, meta NotificationMeta) error
}

// Cache key families. Mutations wildcard-delete whole families rather than
// tracking derived keys individually.
const (
	listCachePrefix   = "tickets:list:"
	statsCachePrefix  = "tickets:stats:"
	detailCachePrefix = "tickets:detail:"
)

func listCacheKey(actorID uint, role string, status string, page, pageSize int) string {
	if status == "" {
		status = "all"
	}
	return fmt.Sprintf("%s%d:%s:%s:%d:%d", listCachePrefix, actorID, role, status, page, pageSize)
}

func statsCacheKey(actorID uint, role string) string {
	return fmt.Sprintf("%s%d:%s", statsCachePrefix, actorID, role)
}

// detailCacheKey includes the viewer audience: staff views contain internal
// messages and must never be served to ticket owners.
func detailCacheKey(ticketID uint, isAdmin bool) string {
	audience := "user"
	if isAdmin {
		audience = "admin"
	}
	return fmt.Sprintf("%s%d:%s", detailCachePrefix, ticketID, audience)
}

func detailCacheKeyPrefix(ticketID uint) string {
	return fmt.Sprintf("%s%d:", detailCachePrefix, ticketID)
}

// invalidateListCaches drops every list and stats entry. Over-invalidation
// is deliberate: correctness over hit rate.
func invalidateListCaches(ctx context.Context, cache Cache) {
	cache.DeleteByPattern(ctx, listCachePrefix)
	cache.DeleteByPattern(ctx, statsCachePrefix)
}

// invalidateTicketCaches drops the ticket's detail entries plus all list
// and stats entries.
func invalidateTicketCaches(ctx context.Context, cache Cache, ticketID uint) {
	cache.DeleteByPattern(ctx, detailCacheKeyPrefix(ticketID))
	invalidateListCaches(ctx, cache)
}

// storeCtx bounds a critical-path persistence call.
func storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, constants.StoreTimeout)
}

// detachedCtx builds a context for fire-and-forget work. It is deliberately
// not derived from the request context so the side effect survives the
// response being written.
func detachedCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.SideEffectTimeout)
}
