package botclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/auth"
	"github.com/clinicore/delegation/internal/domain"
)

// dummyHash is a bcrypt hash of a random value that no secret ever matches.
// Comparing against it when the client id is unknown keeps the failure path
// timing identical to a wrong-secret failure.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// ValidateCredentials authenticates a delegate client. It returns
// domain.ErrUnauthorized for an unknown id, a wrong secret or a suspended
// client, without distinguishing between them. The secret comparison runs in
// constant time on every path.
func (s *Service) ValidateCredentials(ctx context.Context, clientID uuid.UUID, secret string) (domain.DelegateClient, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			auth.CompareClientSecret(dummyHash, secret)
			return domain.DelegateClient{}, fmt.Errorf("unknown client: %w", domain.ErrUnauthorized)
		}
		return domain.DelegateClient{}, fmt.Errorf("botclient.ValidateCredentials: %w", err)
	}

	if !auth.CompareClientSecret(client.SecretHash, secret) {
		return domain.DelegateClient{}, fmt.Errorf("wrong secret: %w", domain.ErrUnauthorized)
	}

	if !client.Active {
		return domain.DelegateClient{}, fmt.Errorf("client suspended: %w", domain.ErrUnauthorized)
	}

	return client, nil
}
