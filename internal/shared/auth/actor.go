// Package auth holds the actor identity resolved by the surrounding
// application. The core treats it as a snapshot: role and profile fields
// are captured at call time and never re-synced.
package auth

import "helpdesk/internal/shared/constants"

// Actor is the caller of an operation: the authenticated user id plus the
// resolved profile used for snapshot fields on tickets and messages.
type Actor struct {
	ID    uint
	Email string
	Name  string
	Role  string
}

// IsAdmin reports whether the actor has staff capabilities. Every
// permission decision in the core goes through this single check.
func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// IsValid reports whether the actor carries a usable identity.
func (a Actor) IsValid() bool {
	return a.ID != 0
}
