package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Grant is the resolved principal of a validated delegation token:
// who is acted for, which bot is acting, and what it may do.
// Grants exist only in memory; the token itself is the source of truth.
type Grant struct {
	DelegatorID uuid.UUID
	DelegateID  uuid.UUID
	Scopes      []ScopeName
	JTI         uuid.UUID
	ExpiresAt   time.Time
}

// HasScope reports whether the grant includes the given scope. Action
// handlers must call this for the specific scope they need.
func (g Grant) HasScope(scope ScopeName) bool {
	return slices.Contains(g.Scopes, scope)
}
