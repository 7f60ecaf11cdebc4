package botclient

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/auth"
	"github.com/clinicore/delegation/internal/domain"
)

// RotateSecret replaces the client's secret and returns the new raw value.
// The hash swap and its audit record commit in one transaction, so the old
// secret is invalid the instant this returns and the rotation is provable.
func (s *Service) RotateSecret(ctx context.Context, clientID uuid.UUID) (string, error) {
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return "", fmt.Errorf("botclient.RotateSecret: %w", err)
	}

	secret, hash, err := auth.GenerateClientSecret(s.cfg.SecretHashCost)
	if err != nil {
		return "", fmt.Errorf("botclient.RotateSecret generate secret: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.clients.UpdateSecretHash(ctx, clientID, hash); err != nil {
			return err
		}
		return s.audit.Log(ctx, domain.AuditRecord{
			EventType:  domain.EventSecretRotated,
			DelegateID: &clientID,
			Outcome:    domain.OutcomeIssued,
		})
	})
	if err != nil {
		return "", fmt.Errorf("botclient.RotateSecret: %w", err)
	}

	s.log.InfoContext(ctx, "client secret rotated", slog.String("client_id", clientID.String()))

	return secret, nil
}
