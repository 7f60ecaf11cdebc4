// Package audit exposes the delegation audit trail: append-only logging and
// range aggregation for compliance reporting.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clinicore/delegation/internal/domain"
)

// auditRepo defines the audit persistence interface needed by the service.
// There is intentionally no update or delete method.
type auditRepo interface {
	Log(ctx context.Context, rec domain.AuditRecord) error
	Report(ctx context.Context, since, until time.Time) (domain.AuditReport, error)
}

// Service implements audit-trail operations.
type Service struct {
	log  *slog.Logger
	repo auditRepo
}

// NewService creates a new audit service instance.
func NewService(logger *slog.Logger, repo auditRepo) *Service {
	return &Service{
		log:  logger.With("service", "audit"),
		repo: repo,
	}
}

// Log appends one audit record.
func (s *Service) Log(ctx context.Context, rec domain.AuditRecord) error {
	if err := s.repo.Log(ctx, rec); err != nil {
		return fmt.Errorf("audit.Log: %w", err)
	}
	return nil
}

// Report aggregates audit entries in [since, until).
func (s *Service) Report(ctx context.Context, since, until time.Time) (domain.AuditReport, error) {
	if !until.After(since) {
		return domain.AuditReport{}, domain.NewValidationError("until", "must be after since")
	}

	report, err := s.repo.Report(ctx, since, until)
	if err != nil {
		return domain.AuditReport{}, fmt.Errorf("audit.Report: %w", err)
	}
	return report, nil
}
