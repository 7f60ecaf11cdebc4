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

// Reject hard-deletes a draft. Drafts carry no clinical value once a
// clinician declines them, so rejection is destructive; the audit log keeps
// the record of what was rejected and why.
func (s *Service) Reject(ctx context.Context, draftID, rejectorID uuid.UUID, reason string) error {
	if reason == "" {
		return domain.NewValidationError("reason", "is required")
	}

	d, err := s.actions.GetByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrDraftNotFound
		}
		return fmt.Errorf("draft.Reject: %w", err)
	}
	if !d.IsDraft {
		return ErrAlreadyPromoted
	}

	if err := s.actions.DeleteDraft(ctx, draftID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Lost a race against promotion or purge.
			return s.classifyLostRace(ctx, draftID, time.Now())
		}
		return fmt.Errorf("draft.Reject: %w", err)
	}

	rec := domain.AuditRecord{
		EventType:   domain.EventDraftRejected,
		DelegateID:  d.CreatedViaDelegate,
		DelegatorID: d.DelegatedBy,
		Outcome:     domain.OutcomeIssued,
		Context: map[string]any{
			"draft_id":    draftID.String(),
			"rejected_by": rejectorID.String(),
			"reason":      reason,
		},
	}
	if err := s.audit.Log(ctx, rec); err != nil {
		s.log.ErrorContext(ctx, "audit rejection", slog.String("error", err.Error()))
	}
	s.metrics.RecordDraftRejected()

	s.log.InfoContext(ctx, "draft rejected",
		slog.String("draft_id", draftID.String()),
		slog.String("rejected_by", rejectorID.String()),
		slog.String("reason", reason))

	return nil
}
