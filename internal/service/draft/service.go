// Package draft implements the draft ledger and promotion workflow: bot
// output enters as expiring drafts, clinicians promote drafts into
// authoritative records or reject them, and a purge job removes stale drafts.
package draft

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/config"
	"github.com/clinicore/delegation/internal/domain"
)

// Draft state failures a caller is expected to handle.
var (
	ErrDraftNotFound   = fmt.Errorf("draft not found: %w", domain.ErrDraftState)
	ErrAlreadyPromoted = fmt.Errorf("already promoted: %w", domain.ErrDraftState)
	ErrDraftExpired    = fmt.Errorf("draft expired: %w", domain.ErrDraftState)
)

// actionRepo defines the clinical-action repository interface needed by the service.
type actionRepo interface {
	CreateDraft(ctx context.Context, a domain.ClinicalAction) (domain.ClinicalAction, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.ClinicalAction, error)
	ListPendingFor(ctx context.Context, clinicianID uuid.UUID, now time.Time) ([]domain.ClinicalAction, error)
	ListAuthoritative(ctx context.Context, patientID uuid.UUID, actionType *domain.ActionType) ([]domain.ClinicalAction, error)
	Promote(ctx context.Context, id, approverID uuid.UUID, description string, payload map[string]any, now time.Time) (domain.ClinicalAction, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
	CountExpired(ctx context.Context, now time.Time) (int64, error)
}

// clinicianRepo defines the clinician lookup interface needed by the service.
type clinicianRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Clinician, error)
}

// clientRepo defines the delegate-client lookup interface needed by the service.
type clientRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.DelegateClient, error)
}

// auditRepo defines the audit append interface needed by the service.
type auditRepo interface {
	Log(ctx context.Context, rec domain.AuditRecord) error
}

// draftMetrics defines the counters the service reports to.
type draftMetrics interface {
	RecordDraftCreated()
	RecordDraftPromoted()
	RecordDraftRejected()
	RecordDraftsPurged(count int64)
}

// Service implements the draft lifecycle.
type Service struct {
	log        *slog.Logger
	actions    actionRepo
	clinicians clinicianRepo
	clients    clientRepo
	audit      auditRepo
	metrics    draftMetrics
	draftCfg   config.DraftConfig
	promoCfg   config.PromotionConfig
}

// NewService creates a new draft service instance.
func NewService(
	logger *slog.Logger,
	actions actionRepo,
	clinicians clinicianRepo,
	clients clientRepo,
	audit auditRepo,
	metrics draftMetrics,
	draftCfg config.DraftConfig,
	promoCfg config.PromotionConfig,
) *Service {
	return &Service{
		log:        logger.With("service", "draft"),
		actions:    actions,
		clinicians: clinicians,
		clients:    clients,
		audit:      audit,
		metrics:    metrics,
		draftCfg:   draftCfg,
		promoCfg:   promoCfg,
	}
}

// validActionType reports whether t names a registered action type.
func validActionType(t domain.ActionType) bool {
	switch t {
	case domain.ActionDailyNote, domain.ActionPrescription, domain.ActionForm:
		return true
	}
	return false
}
