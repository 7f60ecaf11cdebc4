// Package tokencheck implements bearer token validation for delegated
// action calls. Validation is stateless and side-effect-free apart from an
// observability counter: signature and expiry come from the token itself,
// while delegate and delegator liveness are re-checked against the store on
// every call, so suspending a client or offboarding a clinician invalidates
// all outstanding tokens immediately.
package tokencheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

// tokenVerifier defines the token parsing interface needed by the service.
type tokenVerifier interface {
	Verify(tokenString string) (domain.Grant, error)
}

// clientSource defines the delegate-client lookup interface needed by the service.
type clientSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.DelegateClient, error)
}

// clinicianSource defines the clinician lookup interface needed by the service.
type clinicianSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Clinician, error)
}

// validationMetrics defines the counter the service reports to.
type validationMetrics interface {
	RecordTokenValidation(result string)
}

// Service implements live bearer token validation.
type Service struct {
	log        *slog.Logger
	tokens     tokenVerifier
	clients    clientSource
	clinicians clinicianSource
	metrics    validationMetrics
}

// NewService creates a new token validation service instance.
func NewService(
	logger *slog.Logger,
	tokens tokenVerifier,
	clients clientSource,
	clinicians clinicianSource,
	metrics validationMetrics,
) *Service {
	return &Service{
		log:        logger.With("service", "tokencheck"),
		tokens:     tokens,
		clients:    clients,
		clinicians: clinicians,
		metrics:    metrics,
	}
}

// Validate checks the bearer token and returns the delegator/delegate/scopes
// triple. The caller is responsible for checking that the specific scope it
// needs is present in the grant.
func (s *Service) Validate(ctx context.Context, bearerToken string) (domain.Grant, error) {
	grant, err := s.tokens.Verify(bearerToken)
	if err != nil {
		s.metrics.RecordTokenValidation("rejected")
		return domain.Grant{}, err
	}

	client, err := s.clients.GetByID(ctx, grant.DelegateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.RecordTokenValidation("rejected")
			return domain.Grant{}, fmt.Errorf("%w: unknown delegate", domain.ErrTokenInvalid)
		}
		return domain.Grant{}, fmt.Errorf("tokencheck.Validate get client: %w", err)
	}
	if !client.Active {
		s.metrics.RecordTokenValidation("rejected")
		s.log.InfoContext(ctx, "token for suspended delegate rejected",
			slog.String("client_id", client.ID.String()),
			slog.String("jti", grant.JTI.String()))
		return domain.Grant{}, fmt.Errorf("%w: delegate suspended", domain.ErrTokenInvalid)
	}

	clinician, err := s.clinicians.GetByID(ctx, grant.DelegatorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.RecordTokenValidation("rejected")
			return domain.Grant{}, fmt.Errorf("%w: unknown delegator", domain.ErrTokenInvalid)
		}
		return domain.Grant{}, fmt.Errorf("tokencheck.Validate get clinician: %w", err)
	}
	if !clinician.EligibleDelegator() {
		s.metrics.RecordTokenValidation("rejected")
		s.log.InfoContext(ctx, "token for ineligible delegator rejected",
			slog.String("delegator_id", clinician.ID.String()),
			slog.String("jti", grant.JTI.String()))
		return domain.Grant{}, fmt.Errorf("%w: delegator no longer eligible", domain.ErrTokenInvalid)
	}

	s.metrics.RecordTokenValidation("ok")
	return grant, nil
}
