package draft

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

// PendingDraft is a draft awaiting review, with the remaining review window
// for the clinician-facing surface.
type PendingDraft struct {
	Action           domain.ClinicalAction
	ExpiresInSeconds int64
}

// ListPending returns the non-expired drafts delegated by the given
// clinician, soonest-expiring first.
func (s *Service) ListPending(ctx context.Context, clinicianID uuid.UUID) ([]PendingDraft, error) {
	now := time.Now()
	actions, err := s.actions.ListPendingFor(ctx, clinicianID, now)
	if err != nil {
		return nil, fmt.Errorf("draft.ListPending: %w", err)
	}

	pending := make([]PendingDraft, len(actions))
	for i, a := range actions {
		p := PendingDraft{Action: a}
		if a.ExpiresAt != nil {
			p.ExpiresInSeconds = int64(a.ExpiresAt.Sub(now).Seconds())
		}
		pending[i] = p
	}
	return pending, nil
}

// ListAuthoritative returns the promoted, non-draft records for a patient.
// This is the default record view: unreviewed bot output never appears here.
func (s *Service) ListAuthoritative(ctx context.Context, patientID uuid.UUID, actionType *domain.ActionType) ([]domain.ClinicalAction, error) {
	actions, err := s.actions.ListAuthoritative(ctx, patientID, actionType)
	if err != nil {
		return nil, fmt.Errorf("draft.ListAuthoritative: %w", err)
	}
	return actions, nil
}
