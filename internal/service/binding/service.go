// Package binding implements the identity binding registry: linking external
// chat identities to clinicians through out-of-band verification, resolving
// delegators at issuance time, and revocation.
package binding

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/config"
	"github.com/clinicore/delegation/internal/domain"
)

// bindingRepo defines the binding repository interface needed by the service.
type bindingRepo interface {
	Create(ctx context.Context, b domain.IdentityBinding) (domain.IdentityBinding, error)
	GetByExternalIdentity(ctx context.Context, externalIdentity string) (domain.IdentityBinding, error)
	GetByVerificationHash(ctx context.Context, hash string) (domain.IdentityBinding, error)
	MarkVerified(ctx context.Context, id uuid.UUID) (domain.IdentityBinding, error)
	Revoke(ctx context.Context, id uuid.UUID, reason string) error
	SetDelegationEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
}

// clinicianRepo defines the clinician lookup interface needed by the service.
type clinicianRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Clinician, error)
}

// auditRepo defines the audit append interface needed by the service.
type auditRepo interface {
	Log(ctx context.Context, rec domain.AuditRecord) error
}

// Service implements identity-binding operations.
type Service struct {
	log        *slog.Logger
	bindings   bindingRepo
	clinicians clinicianRepo
	audit      auditRepo
	cfg        config.BindingConfig
}

// NewService creates a new binding service instance.
func NewService(
	logger *slog.Logger,
	bindings bindingRepo,
	clinicians clinicianRepo,
	audit auditRepo,
	cfg config.BindingConfig,
) *Service {
	return &Service{
		log:        logger.With("service", "binding"),
		bindings:   bindings,
		clinicians: clinicians,
		audit:      audit,
		cfg:        cfg,
	}
}

// logEvent appends a binding lifecycle audit record. Audit failures on admin
// operations are logged, not propagated.
func (s *Service) logEvent(ctx context.Context, eventType domain.AuditEventType, clinicianID uuid.UUID, details map[string]any) {
	rec := domain.AuditRecord{
		EventType: eventType,
		Outcome:   domain.OutcomeIssued,
		Context:   details,
	}
	if clinicianID != uuid.Nil {
		rec.DelegatorID = &clinicianID
	}
	if err := s.audit.Log(ctx, rec); err != nil {
		s.log.ErrorContext(ctx, "audit binding event",
			slog.String("event", string(eventType)),
			slog.String("error", err.Error()))
	}
}
