package draft

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

// CreateInput carries one delegated draft creation. The grant has already
// been validated and scope-checked by the caller.
type CreateInput struct {
	Grant       domain.Grant
	PatientID   uuid.UUID
	Type        domain.ActionType
	Description string
	Payload     map[string]any
}

// Validate checks the input shape.
func (in CreateInput) Validate() error {
	if in.PatientID == uuid.Nil {
		return domain.NewValidationError("patient_id", "is required")
	}
	if !validActionType(in.Type) {
		return domain.NewValidationError("type", fmt.Sprintf("unknown action type %q", in.Type))
	}
	if in.Description == "" {
		return domain.NewValidationError("description", "is required")
	}
	return nil
}

// Create records bot output as a draft. The record always enters the ledger
// with is_draft=true and an expiry; it never appears in the authoritative
// record views until a clinician promotes it.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.ClinicalAction, error) {
	if err := in.Validate(); err != nil {
		return domain.ClinicalAction{}, err
	}

	expiresAt := time.Now().Add(s.draftCfg.TTL)
	created, err := s.actions.CreateDraft(ctx, domain.ClinicalAction{
		PatientID:   in.PatientID,
		Type:        in.Type,
		Description: in.Description,
		Payload:     in.Payload,
		DraftMeta: domain.DraftMeta{
			IsDraft:            true,
			CreatedViaDelegate: &in.Grant.DelegateID,
			DelegatedBy:        &in.Grant.DelegatorID,
			ExpiresAt:          &expiresAt,
		},
	})
	if err != nil {
		return domain.ClinicalAction{}, fmt.Errorf("draft.Create: %w", err)
	}

	rec := domain.AuditRecord{
		EventType:     domain.EventDraftCreated,
		DelegateID:    &in.Grant.DelegateID,
		DelegatorID:   &in.Grant.DelegatorID,
		GrantedScopes: in.Grant.Scopes,
		TokenJTI:      &in.Grant.JTI,
		Outcome:       domain.OutcomeIssued,
		Context: map[string]any{
			"draft_id":    created.ID.String(),
			"action_type": string(in.Type),
		},
	}
	if err := s.audit.Log(ctx, rec); err != nil {
		s.log.ErrorContext(ctx, "audit draft creation", slog.String("error", err.Error()))
	}
	s.metrics.RecordDraftCreated()

	s.log.InfoContext(ctx, "draft created",
		slog.String("draft_id", created.ID.String()),
		slog.String("action_type", string(in.Type)),
		slog.String("delegate_id", in.Grant.DelegateID.String()))

	return created, nil
}
