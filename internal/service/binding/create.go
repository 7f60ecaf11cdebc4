package binding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/auth"
	"github.com/clinicore/delegation/internal/domain"
)

// CreateResult carries the pending binding and the raw verification token.
// The token is delivered to the clinician over a separate channel and is
// never shown again.
type CreateResult struct {
	Binding           domain.IdentityBinding
	VerificationToken string
}

// Create binds an external chat identity to a clinician, pending out-of-band
// verification. Fails with domain.ErrAlreadyExists if the identity is
// already bound and not revoked, and with domain.ErrValidation if the
// clinician does not exist or cannot act as a delegator.
func (s *Service) Create(ctx context.Context, clinicianID uuid.UUID, externalIdentity string) (CreateResult, error) {
	if externalIdentity == "" {
		return CreateResult{}, domain.NewValidationError("external_identity", "is required")
	}

	clinician, err := s.clinicians.GetByID(ctx, clinicianID)
	if err != nil {
		return CreateResult{}, fmt.Errorf("binding.Create get clinician: %w", err)
	}
	if !clinician.EligibleDelegator() {
		return CreateResult{}, domain.NewValidationError("clinician_id", "clinician is not eligible to delegate")
	}

	token, hash, err := auth.GenerateVerificationToken()
	if err != nil {
		return CreateResult{}, fmt.Errorf("binding.Create generate token: %w", err)
	}

	until := time.Now().Add(s.cfg.VerificationTTL)
	created, err := s.bindings.Create(ctx, domain.IdentityBinding{
		ClinicianID:       clinicianID,
		ExternalIdentity:  externalIdentity,
		VerificationHash:  &hash,
		VerificationUntil: &until,
		DelegationEnabled: true,
	})
	if err != nil {
		return CreateResult{}, fmt.Errorf("binding.Create: %w", err)
	}

	s.logEvent(ctx, domain.EventBindingCreated, clinicianID, map[string]any{
		"binding_id":        created.ID.String(),
		"external_identity": externalIdentity,
	})
	s.log.InfoContext(ctx, "binding created",
		slog.String("binding_id", created.ID.String()),
		slog.String("clinician_id", clinicianID.String()))

	return CreateResult{Binding: created, VerificationToken: token}, nil
}
