// Package botclient implements the delegate client registry: creation with
// one-time secrets, constant-time credential validation, secret rotation,
// suspension and the per-client fixed-window issuance limit.
package botclient

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/config"
	"github.com/clinicore/delegation/internal/domain"
)

// clientRepo defines the delegate-client repository interface needed by the service.
type clientRepo interface {
	Create(ctx context.Context, c domain.DelegateClient) (domain.DelegateClient, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.DelegateClient, error)
	UpdateSecretHash(ctx context.Context, id uuid.UUID, hash string) error
	Suspend(ctx context.Context, id uuid.UUID, reason string) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	IncrementIssued(ctx context.Context, id uuid.UUID) error
	IncrementWindow(ctx context.Context, clientID uuid.UUID, windowStart time.Time) (int, error)
	DecrementWindow(ctx context.Context, clientID uuid.UUID, windowStart time.Time) error
}

// scopeCatalog defines the scope lookup interface needed by the service.
type scopeCatalog interface {
	IsBotEligible(name domain.ScopeName) bool
}

// auditRepo defines the audit append interface needed by the service.
type auditRepo interface {
	Log(ctx context.Context, rec domain.AuditRecord) error
}

// txRunner runs a function inside one database transaction.
type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements delegate-client registry operations.
type Service struct {
	log     *slog.Logger
	clients clientRepo
	catalog scopeCatalog
	audit   auditRepo
	tx      txRunner
	cfg     config.DelegationConfig
}

// NewService creates a new delegate-client service instance.
func NewService(
	logger *slog.Logger,
	clients clientRepo,
	catalog scopeCatalog,
	audit auditRepo,
	tx txRunner,
	cfg config.DelegationConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "botclient"),
		clients: clients,
		catalog: catalog,
		audit:   audit,
		tx:      tx,
		cfg:     cfg,
	}
}

// Get returns a delegate client by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.DelegateClient, error) {
	return s.clients.GetByID(ctx, id)
}
