// Package killswitch implements the process-wide delegation switch with a
// read-mostly cache over the durable singleton row. Issuance reads the
// switch on every request, so reads are served from the cache with bounded
// staleness; every mutation invalidates the cache immediately.
package killswitch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/config"
	"github.com/clinicore/delegation/internal/domain"
)

// stateRepo defines the kill-switch persistence interface needed by the service.
type stateRepo interface {
	Get(ctx context.Context) (domain.KillSwitchState, error)
	SetDisabled(ctx context.Context, adminID uuid.UUID, reason string, at time.Time) error
	SetEnabled(ctx context.Context) error
	SetMaintenance(ctx context.Context, message *string) error
}

// auditRepo defines the audit append interface needed by the service.
type auditRepo interface {
	Log(ctx context.Context, rec domain.AuditRecord) error
}

// Service serves kill-switch reads from a short-lived cache and writes
// through to the durable row.
type Service struct {
	log   *slog.Logger
	repo  stateRepo
	audit auditRepo
	cfg   config.KillSwitchConfig

	mu        sync.RWMutex
	cached    domain.KillSwitchState
	fetchedAt time.Time
}

// NewService creates a new kill-switch service instance.
func NewService(logger *slog.Logger, repo stateRepo, audit auditRepo, cfg config.KillSwitchConfig) *Service {
	return &Service{
		log:   logger.With("service", "killswitch"),
		repo:  repo,
		audit: audit,
		cfg:   cfg,
	}
}

// Current returns the kill-switch state, served from cache while it is
// fresher than the configured TTL. Disabling the switch therefore propagates
// within at most one TTL on other instances; on this instance the mutation
// invalidates the cache immediately.
func (s *Service) Current(ctx context.Context) (domain.KillSwitchState, error) {
	s.mu.RLock()
	cached, fetchedAt := s.cached, s.fetchedAt
	s.mu.RUnlock()

	if !fetchedAt.IsZero() && time.Since(fetchedAt) < s.cfg.CacheTTL {
		return cached, nil
	}

	state, err := s.repo.Get(ctx)
	if err != nil {
		return domain.KillSwitchState{}, fmt.Errorf("killswitch.Current: %w", err)
	}

	s.mu.Lock()
	s.cached = state
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	return state, nil
}

// Invalidate drops the cached state so the next read hits the store.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}

// Disable halts all new token issuance, recording who pulled the switch and
// why. The cache is invalidated before returning.
func (s *Service) Disable(ctx context.Context, adminID uuid.UUID, reason string) error {
	if reason == "" {
		return domain.NewValidationError("reason", "is required")
	}

	if err := s.repo.SetDisabled(ctx, adminID, reason, time.Now()); err != nil {
		return fmt.Errorf("killswitch.Disable: %w", err)
	}
	s.Invalidate()

	s.logChange(ctx, adminID, map[string]any{"delegation_enabled": false, "reason": reason})
	s.log.WarnContext(ctx, "delegation disabled",
		slog.String("admin_id", adminID.String()),
		slog.String("reason", reason))
	return nil
}

// Enable restores token issuance and clears the disable bookkeeping.
func (s *Service) Enable(ctx context.Context, adminID uuid.UUID) error {
	if err := s.repo.SetEnabled(ctx); err != nil {
		return fmt.Errorf("killswitch.Enable: %w", err)
	}
	s.Invalidate()

	s.logChange(ctx, adminID, map[string]any{"delegation_enabled": true})
	s.log.InfoContext(ctx, "delegation enabled", slog.String("admin_id", adminID.String()))
	return nil
}

// SetMaintenance enters maintenance mode with the given operator message,
// or leaves it when message is nil.
func (s *Service) SetMaintenance(ctx context.Context, adminID uuid.UUID, message *string) error {
	if err := s.repo.SetMaintenance(ctx, message); err != nil {
		return fmt.Errorf("killswitch.SetMaintenance: %w", err)
	}
	s.Invalidate()

	details := map[string]any{"maintenance_mode": message != nil}
	if message != nil {
		details["message"] = *message
	}
	s.logChange(ctx, adminID, details)
	s.log.InfoContext(ctx, "maintenance mode changed",
		slog.String("admin_id", adminID.String()),
		slog.Bool("maintenance", message != nil))
	return nil
}

// logChange appends a killswitch_changed audit record. Audit failures are
// logged but do not roll back the switch mutation: safety of the switch
// itself takes precedence.
func (s *Service) logChange(ctx context.Context, adminID uuid.UUID, details map[string]any) {
	rec := domain.AuditRecord{
		EventType:   domain.EventKillSwitchChanged,
		DelegatorID: &adminID,
		Outcome:     domain.OutcomeIssued,
		Context:     details,
	}
	if err := s.audit.Log(ctx, rec); err != nil {
		s.log.ErrorContext(ctx, "audit killswitch change", slog.String("error", err.Error()))
	}
}
