// Package killswitch implements the singleton kill-switch row using
// PostgreSQL. A read-mostly cache sits above this repository in the service
// layer; the row itself is the durable source of truth.
package killswitch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/clinicore/delegation/internal/adapter/postgres"
	"github.com/clinicore/delegation/internal/domain"
)

// Repo provides kill-switch persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new kill-switch repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the current kill-switch state.
func (r *Repo) Get(ctx context.Context) (domain.KillSwitchState, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.KillSwitchState
	err := q.QueryRow(ctx, `
		SELECT delegation_enabled, maintenance_mode, maintenance_message,
		       disabled_at, disabled_by, disabled_reason, updated_at
		FROM kill_switch
		WHERE id`,
	).Scan(
		&s.DelegationEnabled, &s.MaintenanceMode, &s.MaintenanceMessage,
		&s.DisabledAt, &s.DisabledBy, &s.DisabledReason, &s.UpdatedAt,
	)
	if err != nil {
		return domain.KillSwitchState{}, postgres.MapError(err, "kill_switch")
	}
	return s, nil
}

// SetDisabled turns delegation off, recording who disabled it and why.
func (r *Repo) SetDisabled(ctx context.Context, adminID uuid.UUID, reason string, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		UPDATE kill_switch
		SET delegation_enabled = FALSE, disabled_at = $1, disabled_by = $2,
		    disabled_reason = $3, updated_at = now()
		WHERE id`,
		at, adminID, reason,
	)
	return postgres.MapError(err, "kill_switch")
}

// SetEnabled turns delegation back on and clears the disable bookkeeping.
func (r *Repo) SetEnabled(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		UPDATE kill_switch
		SET delegation_enabled = TRUE, disabled_at = NULL, disabled_by = NULL,
		    disabled_reason = NULL, updated_at = now()
		WHERE id`,
	)
	return postgres.MapError(err, "kill_switch")
}

// SetMaintenance enters or leaves maintenance mode. A nil message leaves
// maintenance; a non-nil message enters it.
func (r *Repo) SetMaintenance(ctx context.Context, message *string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		UPDATE kill_switch
		SET maintenance_mode = $1, maintenance_message = $2, updated_at = now()
		WHERE id`,
		message != nil, message,
	)
	return postgres.MapError(err, "kill_switch")
}
