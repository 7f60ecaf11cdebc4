package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActionType names a kind of clinical-action record the bot may draft.
type ActionType string

const (
	ActionDailyNote    ActionType = "dailynote"
	ActionPrescription ActionType = "prescription"
	ActionForm         ActionType = "form"
)

// DraftMeta is the draft lifecycle state shared by every clinical-action
// record type via composition. A record with IsDraft=false is authoritative
// and carries no delegate provenance in its content (the audit log keeps it).
type DraftMeta struct {
	IsDraft            bool
	CreatedViaDelegate *uuid.UUID
	DelegatedBy        *uuid.UUID
	ExpiresAt          *time.Time
	PromotedAt         *time.Time
	PromotedBy         *uuid.UUID
}

// Expired reports whether the draft's review window has passed.
// Always false for non-drafts.
func (m DraftMeta) Expired(now time.Time) bool {
	return m.IsDraft && m.ExpiresAt != nil && now.After(*m.ExpiresAt)
}

// ClinicalAction is a generic clinical-action record (note, prescription,
// form submission). The host application owns the payload semantics; this
// subsystem owns the draft lifecycle fields.
type ClinicalAction struct {
	ID          uuid.UUID
	PatientID   uuid.UUID
	Type        ActionType
	Description string
	Payload     map[string]any
	CreatedBy   *uuid.UUID // authoring clinician; nil while the record is an unreviewed draft
	CreatedAt   time.Time
	UpdatedAt   time.Time

	DraftMeta
}
