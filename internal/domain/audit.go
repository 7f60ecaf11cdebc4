package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditEventType classifies an entry of the delegation audit log.
type AuditEventType string

const (
	EventTokenIssued       AuditEventType = "token_issued"
	EventTokenDenied       AuditEventType = "token_denied"
	EventDraftCreated      AuditEventType = "draft_created"
	EventDraftPromoted     AuditEventType = "draft_promoted"
	EventDraftRejected     AuditEventType = "draft_rejected"
	EventBindingCreated    AuditEventType = "binding_created"
	EventBindingVerified   AuditEventType = "binding_verified"
	EventBindingRevoked    AuditEventType = "binding_revoked"
	EventClientSuspended   AuditEventType = "client_suspended"
	EventClientReactivated AuditEventType = "client_reactivated"
	EventSecretRotated     AuditEventType = "client_secret_rotated"
	EventKillSwitchChanged AuditEventType = "killswitch_changed"
)

// AuditOutcome is the final disposition of the audited event.
type AuditOutcome string

const (
	OutcomeIssued AuditOutcome = "issued"
	OutcomeDenied AuditOutcome = "denied"
)

// AuditRecord is one immutable entry of the delegation audit log.
// The storage layer exposes no update or delete operation for it.
type AuditRecord struct {
	ID              uuid.UUID
	EventType       AuditEventType
	DelegateID      *uuid.UUID
	DelegatorID     *uuid.UUID
	RequestedScopes []ScopeName
	GrantedScopes   []ScopeName
	TokenJTI        *uuid.UUID
	Outcome         AuditOutcome
	DenialReason    *DenialReason
	CallerAddr      string
	Context         map[string]any
	CreatedAt       time.Time
}

// AuditReport aggregates audit entries over a time range for compliance
// reporting.
type AuditReport struct {
	Since       time.Time
	Until       time.Time
	Total       int64
	ByOutcome   map[AuditOutcome]int64
	ByDelegate  map[uuid.UUID]int64
	ByDelegator map[uuid.UUID]int64
	ByReason    map[DenialReason]int64
}
