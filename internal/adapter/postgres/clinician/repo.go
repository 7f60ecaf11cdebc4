// Package clinician implements a read-only view onto the host application's
// clinician records. The delegation subsystem never writes here; it only
// checks eligibility live at issuance, validation and promotion time.
package clinician

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/clinicore/delegation/internal/adapter/postgres"
	"github.com/clinicore/delegation/internal/domain"
)

// Repo provides read access to clinician records.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new clinician repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns the clinician's current eligibility fields.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Clinician, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Clinician
	err := q.QueryRow(ctx, `
		SELECT id, active, state, role
		FROM clinicians
		WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Active, &c.State, &c.Role)
	if err != nil {
		return domain.Clinician{}, postgres.MapError(err, "clinician")
	}
	return c, nil
}
