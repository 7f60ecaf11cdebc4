package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

// PromoteInput carries one promotion attempt. Description and Payload are
// optional modifications; nil keeps the draft's content.
type PromoteInput struct {
	DraftID     uuid.UUID
	ApproverID  uuid.UUID
	Description *string
	Payload     map[string]any
}

// Promote converts a draft into an authoritative record. Authorship moves to
// the approver and bot references are scrubbed from the description; the
// draft provenance columns and the audit log keep the delegate id for
// traceability. The underlying update carries an is_draft precondition, so
// of two concurrent attempts exactly one wins and the loser gets
// ErrAlreadyPromoted.
func (s *Service) Promote(ctx context.Context, in PromoteInput) (domain.ClinicalAction, error) {
	now := time.Now()

	d, err := s.actions.GetByID(ctx, in.DraftID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ClinicalAction{}, ErrDraftNotFound
		}
		return domain.ClinicalAction{}, fmt.Errorf("draft.Promote: %w", err)
	}
	if !d.IsDraft {
		return domain.ClinicalAction{}, ErrAlreadyPromoted
	}
	if d.Expired(now) {
		return domain.ClinicalAction{}, ErrDraftExpired
	}

	approver, err := s.clinicians.GetByID(ctx, in.ApproverID)
	if err != nil {
		return domain.ClinicalAction{}, fmt.Errorf("draft.Promote get approver: %w", err)
	}
	if !approver.EligibleDelegator() || !approver.Role.CanAuthor() {
		return domain.ClinicalAction{}, fmt.Errorf("approver not eligible for clinical authorship: %w", domain.ErrForbidden)
	}
	if s.promoCfg.RestrictToDelegator && (d.DelegatedBy == nil || *d.DelegatedBy != in.ApproverID) {
		return domain.ClinicalAction{}, fmt.Errorf("promotion restricted to the delegating clinician: %w", domain.ErrForbidden)
	}

	description := d.Description
	if in.Description != nil {
		description = *in.Description
	}
	description = scrubDescription(description, s.delegateName(ctx, d.CreatedViaDelegate))

	payload := d.Payload
	if in.Payload != nil {
		payload = in.Payload
	}

	promoted, err := s.actions.Promote(ctx, in.DraftID, in.ApproverID, description, payload, now)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ClinicalAction{}, s.classifyLostRace(ctx, in.DraftID, now)
		}
		return domain.ClinicalAction{}, fmt.Errorf("draft.Promote: %w", err)
	}

	rec := domain.AuditRecord{
		EventType:   domain.EventDraftPromoted,
		DelegateID:  d.CreatedViaDelegate,
		DelegatorID: d.DelegatedBy,
		Outcome:     domain.OutcomeIssued,
		Context: map[string]any{
			"draft_id":    in.DraftID.String(),
			"promoted_by": in.ApproverID.String(),
			"action_type": string(d.Type),
		},
	}
	if err := s.audit.Log(ctx, rec); err != nil {
		s.log.ErrorContext(ctx, "audit promotion", slog.String("error", err.Error()))
	}
	s.metrics.RecordDraftPromoted()

	s.log.InfoContext(ctx, "draft promoted",
		slog.String("draft_id", in.DraftID.String()),
		slog.String("promoted_by", in.ApproverID.String()))

	return promoted, nil
}

// classifyLostRace re-reads a draft after a failed conditional update to
// report why the precondition no longer held. A lost promotion race is
// expected and recoverable, not a system error.
func (s *Service) classifyLostRace(ctx context.Context, draftID uuid.UUID, now time.Time) error {
	d, err := s.actions.GetByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrDraftNotFound
		}
		return fmt.Errorf("draft.Promote classify: %w", err)
	}
	if !d.IsDraft {
		return ErrAlreadyPromoted
	}
	if d.Expired(now) {
		return ErrDraftExpired
	}
	return ErrDraftNotFound
}

// delegateName looks up the display name of the delegate that produced a
// draft, for description scrubbing. Best effort: scrubbing falls back to a
// no-op if the client is gone.
func (s *Service) delegateName(ctx context.Context, delegateID *uuid.UUID) string {
	if delegateID == nil {
		return ""
	}
	client, err := s.clients.GetByID(ctx, *delegateID)
	if err != nil {
		return ""
	}
	return client.DisplayName
}
