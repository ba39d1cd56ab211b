// Package constants defines shared application-wide constants.
package constants

import "time"

// Actor roles. Role resolution itself happens upstream; the core only
// distinguishes staff from ticket owners.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Pagination defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Field length limits applied before persistence.
const (
	MaxSubjectLength  = 255
	MaxCategoryLength = 100
	MaxMessageLength  = 5000
)

// AttachmentOnlyPlaceholder is stored as the message body when a reply
// carries attachments but no text.
const AttachmentOnlyPlaceholder = "[Attachment]"

// MaxAttachmentSize is the upload size cap in bytes (10 MiB).
const MaxAttachmentSize = 10 << 20

// Timeouts and cache policy.
const (
	// StoreTimeout bounds every persistence call on the critical path.
	StoreTimeout = 5 * time.Second

	// SideEffectTimeout bounds detached best-effort work (notifications,
	// read-marking, attachment association).
	SideEffectTimeout = 10 * time.Second

	// ListCacheTTL is the TTL for list, detail and stats cache entries.
	ListCacheTTL = 180 * time.Second

	// SignedURLTTL is the requested lifetime for attachment download URLs.
	SignedURLTTL = 365 * 24 * time.Hour
)
