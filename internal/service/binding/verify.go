package binding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clinicore/delegation/internal/auth"
	"github.com/clinicore/delegation/internal/domain"
)

// Verify confirms a pending binding with its out-of-band token. An unknown,
// already-used or expired token fails with domain.ErrTokenInvalid; the caller
// cannot distinguish which, by design.
func (s *Service) Verify(ctx context.Context, rawToken string) (domain.IdentityBinding, error) {
	if rawToken == "" {
		return domain.IdentityBinding{}, fmt.Errorf("%w: empty verification token", domain.ErrTokenInvalid)
	}

	b, err := s.bindings.GetByVerificationHash(ctx, auth.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.IdentityBinding{}, fmt.Errorf("%w: unknown verification token", domain.ErrTokenInvalid)
		}
		return domain.IdentityBinding{}, fmt.Errorf("binding.Verify: %w", err)
	}

	if b.VerificationExpired(time.Now()) {
		return domain.IdentityBinding{}, fmt.Errorf("%w: verification token expired", domain.ErrTokenInvalid)
	}

	verified, err := s.bindings.MarkVerified(ctx, b.ID)
	if err != nil {
		return domain.IdentityBinding{}, fmt.Errorf("binding.Verify: %w", err)
	}

	s.logEvent(ctx, domain.EventBindingVerified, verified.ClinicianID, map[string]any{
		"binding_id": verified.ID.String(),
	})
	s.log.InfoContext(ctx, "binding verified",
		slog.String("binding_id", verified.ID.String()),
		slog.String("clinician_id", verified.ClinicianID.String()))

	return verified, nil
}
