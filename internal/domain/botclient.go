package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DelegateClient is a registered bot allowed to request delegated tokens.
// Its secret is stored only as a bcrypt hash; the raw secret is shown exactly
// once at creation or rotation.
type DelegateClient struct {
	ID               uuid.UUID
	DisplayName      string
	SecretHash       string
	AllowedScopes    []ScopeName
	Active           bool
	SuspendedAt      *time.Time
	SuspensionReason *string
	RateLimitPerHour int
	TokensIssued     int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ScopeAllowed reports whether the scope is in the client's allowed set.
func (c DelegateClient) ScopeAllowed(scope ScopeName) bool {
	return slices.Contains(c.AllowedScopes, scope)
}
