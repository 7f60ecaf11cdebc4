// Package delegation implements the token issuance pipeline: the strictly
// ordered checks a bot request passes before a short-lived delegated token
// is minted, with one audit record per exit path.
package delegation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

// clientRegistry defines the delegate-client operations needed by the service.
type clientRegistry interface {
	ValidateCredentials(ctx context.Context, clientID uuid.UUID, secret string) (domain.DelegateClient, error)
	ConsumeWindow(ctx context.Context, clientID uuid.UUID, limit int, now time.Time) (bool, error)
	ReleaseWindow(ctx context.Context, clientID uuid.UUID, now time.Time) error
	RecordIssuance(ctx context.Context, clientID uuid.UUID) error
}

// delegatorResolver defines the binding resolution interface needed by the service.
type delegatorResolver interface {
	Resolve(ctx context.Context, externalIdentity string) (domain.Clinician, error)
}

// switchReader defines the kill-switch read interface needed by the service.
type switchReader interface {
	Current(ctx context.Context) (domain.KillSwitchState, error)
}

// scopeCatalog defines the scope lookup interface needed by the service.
type scopeCatalog interface {
	Get(name domain.ScopeName) (domain.ScopeDefinition, error)
	IsBotEligible(name domain.ScopeName) bool
}

// tokenMinter defines the token creation interface needed by the service.
type tokenMinter interface {
	Mint(delegatorID, delegateID uuid.UUID, scopes []domain.ScopeName, ttl time.Duration) (string, uuid.UUID, time.Time, error)
}

// auditRepo defines the audit append interface needed by the service.
type auditRepo interface {
	Log(ctx context.Context, rec domain.AuditRecord) error
}

// issuanceMetrics defines the counters the service reports to.
type issuanceMetrics interface {
	RecordTokenIssued()
	RecordTokenDenied(reason string)
}

// Service implements delegated token issuance.
type Service struct {
	log      *slog.Logger
	clients  clientRegistry
	resolver delegatorResolver
	killsw   switchReader
	catalog  scopeCatalog
	tokens   tokenMinter
	audit    auditRepo
	metrics  issuanceMetrics
}

// NewService creates a new delegation service instance.
func NewService(
	logger *slog.Logger,
	clients clientRegistry,
	resolver delegatorResolver,
	killsw switchReader,
	catalog scopeCatalog,
	tokens tokenMinter,
	audit auditRepo,
	metrics issuanceMetrics,
) *Service {
	return &Service{
		log:      logger.With("service", "delegation"),
		clients:  clients,
		resolver: resolver,
		killsw:   killsw,
		catalog:  catalog,
		tokens:   tokens,
		audit:    audit,
		metrics:  metrics,
	}
}
