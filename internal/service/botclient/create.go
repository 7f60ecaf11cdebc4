package botclient

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clinicore/delegation/internal/auth"
	"github.com/clinicore/delegation/internal/domain"
)

// CreateInput carries the parameters for registering a delegate client.
type CreateInput struct {
	DisplayName      string
	AllowedScopes    []domain.ScopeName
	RateLimitPerHour int // 0 means the configured default
}

// Validate checks the input against the scope catalog. Every allowed scope
// must be bot eligible: a client is never allowed to hold a scope it could
// never be granted.
func (in CreateInput) Validate(catalog scopeCatalog) error {
	if in.DisplayName == "" {
		return domain.NewValidationError("display_name", "is required")
	}
	if len(in.AllowedScopes) == 0 {
		return domain.NewValidationError("allowed_scopes", "is required")
	}
	if in.RateLimitPerHour < 0 {
		return domain.NewValidationError("rate_limit_per_hour", "must not be negative")
	}
	for _, scope := range in.AllowedScopes {
		if !catalog.IsBotEligible(scope) {
			return domain.NewValidationError("allowed_scopes",
				fmt.Sprintf("scope %q is not bot eligible", scope))
		}
	}
	return nil
}

// CreateResult carries the registered client and its secret. The secret is
// shown exactly once and never retrievable again.
type CreateResult struct {
	Client domain.DelegateClient
	Secret string
}

// Create registers a new delegate client and returns the one-time secret.
func (s *Service) Create(ctx context.Context, in CreateInput) (CreateResult, error) {
	if err := in.Validate(s.catalog); err != nil {
		return CreateResult{}, err
	}

	secret, hash, err := auth.GenerateClientSecret(s.cfg.SecretHashCost)
	if err != nil {
		return CreateResult{}, fmt.Errorf("botclient.Create generate secret: %w", err)
	}

	rateLimit := in.RateLimitPerHour
	if rateLimit == 0 {
		rateLimit = s.cfg.DefaultRateLimitPerHour
	}

	client, err := s.clients.Create(ctx, domain.DelegateClient{
		DisplayName:      in.DisplayName,
		SecretHash:       hash,
		AllowedScopes:    in.AllowedScopes,
		RateLimitPerHour: rateLimit,
	})
	if err != nil {
		return CreateResult{}, fmt.Errorf("botclient.Create: %w", err)
	}

	s.log.InfoContext(ctx, "delegate client created",
		slog.String("client_id", client.ID.String()),
		slog.String("display_name", client.DisplayName))

	return CreateResult{Client: client, Secret: secret}, nil
}
