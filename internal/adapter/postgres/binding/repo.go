// Package binding implements the IdentityBinding repository using PostgreSQL.
package binding

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/clinicore/delegation/internal/adapter/postgres"
	"github.com/clinicore/delegation/internal/domain"
)

// Repo provides identity-binding persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new binding repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const bindingColumns = `id, clinician_id, external_identity, verified, verification_hash,
	verification_until, delegation_enabled, revoked_at, revoked_reason, created_at, updated_at`

// Create inserts a new unverified binding. Returns domain.ErrAlreadyExists
// if the external identity is already bound and not revoked.
func (r *Repo) Create(ctx context.Context, b domain.IdentityBinding) (domain.IdentityBinding, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `
		INSERT INTO identity_bindings
			(clinician_id, external_identity, verification_hash, verification_until, delegation_enabled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+bindingColumns,
		b.ClinicianID, b.ExternalIdentity, b.VerificationHash, b.VerificationUntil, b.DelegationEnabled,
	)

	created, err := scanBinding(row)
	if err != nil {
		return domain.IdentityBinding{}, postgres.MapError(err, "identity_binding")
	}
	return created, nil
}

// GetByExternalIdentity returns the live (non-revoked) binding for the given
// external identity. Returns domain.ErrNotFound if none exists.
func (r *Repo) GetByExternalIdentity(ctx context.Context, externalIdentity string) (domain.IdentityBinding, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `
		SELECT `+bindingColumns+`
		FROM identity_bindings
		WHERE external_identity = $1 AND revoked_at IS NULL`,
		externalIdentity,
	)

	b, err := scanBinding(row)
	if err != nil {
		return domain.IdentityBinding{}, postgres.MapError(err, "identity_binding")
	}
	return b, nil
}

// GetByVerificationHash returns the unverified, non-revoked binding matching
// the hashed verification token.
func (r *Repo) GetByVerificationHash(ctx context.Context, hash string) (domain.IdentityBinding, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `
		SELECT `+bindingColumns+`
		FROM identity_bindings
		WHERE verification_hash = $1 AND NOT verified AND revoked_at IS NULL`,
		hash,
	)

	b, err := scanBinding(row)
	if err != nil {
		return domain.IdentityBinding{}, postgres.MapError(err, "identity_binding")
	}
	return b, nil
}

// MarkVerified flips the binding to verified and clears the single-use
// verification token fields.
func (r *Repo) MarkVerified(ctx context.Context, id uuid.UUID) (domain.IdentityBinding, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `
		UPDATE identity_bindings
		SET verified = TRUE, verification_hash = NULL, verification_until = NULL, updated_at = now()
		WHERE id = $1 AND NOT verified AND revoked_at IS NULL
		RETURNING `+bindingColumns,
		id,
	)

	b, err := scanBinding(row)
	if err != nil {
		return domain.IdentityBinding{}, postgres.MapError(err, "identity_binding")
	}
	return b, nil
}

// Revoke marks the binding revoked. Idempotent: revoking an already-revoked
// binding is not an error and keeps the original revocation timestamp.
func (r *Repo) Revoke(ctx context.Context, id uuid.UUID, reason string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		UPDATE identity_bindings
		SET revoked_at = now(), revoked_reason = $2, updated_at = now()
		WHERE id = $1 AND revoked_at IS NULL`,
		id, reason,
	)
	if err != nil {
		return postgres.MapError(err, "identity_binding")
	}
	return nil
}

// SetDelegationEnabled toggles delegation on a live binding without touching
// its verification state.
func (r *Repo) SetDelegationEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `
		UPDATE identity_bindings
		SET delegation_enabled = $2, updated_at = now()
		WHERE id = $1 AND revoked_at IS NULL`,
		id, enabled,
	)
	if err != nil {
		return postgres.MapError(err, "identity_binding")
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "identity_binding")
	}
	return nil
}

// scanBinding reads one identity_bindings row into the domain type.
func scanBinding(row pgx.Row) (domain.IdentityBinding, error) {
	var (
		b                 domain.IdentityBinding
		verificationUntil *time.Time
	)
	err := row.Scan(
		&b.ID, &b.ClinicianID, &b.ExternalIdentity, &b.Verified, &b.VerificationHash,
		&verificationUntil, &b.DelegationEnabled, &b.RevokedAt, &b.RevokedReason,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return domain.IdentityBinding{}, err
	}
	b.VerificationUntil = verificationUntil
	return b, nil
}
