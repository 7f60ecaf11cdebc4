package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdentityBinding maps an external chat identity to an internal clinician.
// A binding resolves to a usable delegator only when it is verified, has
// delegation enabled, and the referenced clinician is active.
type IdentityBinding struct {
	ID                uuid.UUID
	ClinicianID       uuid.UUID
	ExternalIdentity  string
	Verified          bool
	VerificationHash  *string // SHA-256 hex of the out-of-band token; nil once verified
	VerificationUntil *time.Time
	DelegationEnabled bool
	RevokedAt         *time.Time
	RevokedReason     *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Revoked reports whether the binding has been revoked.
func (b IdentityBinding) Revoked() bool { return b.RevokedAt != nil }

// VerificationExpired reports whether the pending verification window has
// passed. Always false for verified bindings.
func (b IdentityBinding) VerificationExpired(now time.Time) bool {
	return !b.Verified && b.VerificationUntil != nil && now.After(*b.VerificationUntil)
}
