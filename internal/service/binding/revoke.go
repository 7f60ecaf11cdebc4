package binding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

// Revoke severs a binding immediately and permanently. Idempotent: revoking
// an already-revoked binding succeeds without a second audit entry.
func (s *Service) Revoke(ctx context.Context, bindingID uuid.UUID, reason string) error {
	if reason == "" {
		return domain.NewValidationError("reason", "is required")
	}

	if err := s.bindings.Revoke(ctx, bindingID, reason); err != nil {
		return fmt.Errorf("binding.Revoke: %w", err)
	}

	s.logEvent(ctx, domain.EventBindingRevoked, uuid.Nil, map[string]any{
		"binding_id": bindingID.String(),
		"reason":     reason,
	})
	s.log.InfoContext(ctx, "binding revoked",
		slog.String("binding_id", bindingID.String()),
		slog.String("reason", reason))
	return nil
}

// SetDelegationEnabled toggles delegation on a live binding without touching
// its verification state. Lets a clinician pause their bot without losing
// the verified link.
func (s *Service) SetDelegationEnabled(ctx context.Context, bindingID uuid.UUID, enabled bool) error {
	if err := s.bindings.SetDelegationEnabled(ctx, bindingID, enabled); err != nil {
		return fmt.Errorf("binding.SetDelegationEnabled: %w", err)
	}

	s.log.InfoContext(ctx, "binding delegation toggled",
		slog.String("binding_id", bindingID.String()),
		slog.Bool("enabled", enabled))
	return nil
}
