package botclient

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

// Suspend deactivates a client immediately. Because the token validator
// re-checks client liveness on every call, suspension also invalidates all
// of the client's outstanding tokens. The state change and its audit record
// commit in one transaction.
func (s *Service) Suspend(ctx context.Context, clientID uuid.UUID, reason string) error {
	if reason == "" {
		return domain.NewValidationError("reason", "is required")
	}
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return fmt.Errorf("botclient.Suspend: %w", err)
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.clients.Suspend(ctx, clientID, reason); err != nil {
			return err
		}
		return s.audit.Log(ctx, domain.AuditRecord{
			EventType:  domain.EventClientSuspended,
			DelegateID: &clientID,
			Outcome:    domain.OutcomeIssued,
			Context:    map[string]any{"reason": reason},
		})
	})
	if err != nil {
		return fmt.Errorf("botclient.Suspend: %w", err)
	}

	s.log.WarnContext(ctx, "delegate client suspended",
		slog.String("client_id", clientID.String()),
		slog.String("reason", reason))
	return nil
}

// Reactivate clears a suspension.
func (s *Service) Reactivate(ctx context.Context, clientID uuid.UUID) error {
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return fmt.Errorf("botclient.Reactivate: %w", err)
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.clients.Reactivate(ctx, clientID); err != nil {
			return err
		}
		return s.audit.Log(ctx, domain.AuditRecord{
			EventType:  domain.EventClientReactivated,
			DelegateID: &clientID,
			Outcome:    domain.OutcomeIssued,
		})
	})
	if err != nil {
		return fmt.Errorf("botclient.Reactivate: %w", err)
	}

	s.log.InfoContext(ctx, "delegate client reactivated", slog.String("client_id", clientID.String()))
	return nil
}
