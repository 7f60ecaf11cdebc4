// Package botclient implements the DelegateClient repository using
// PostgreSQL, including the per-client fixed-window issuance counters.
package botclient

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/clinicore/delegation/internal/adapter/postgres"
	"github.com/clinicore/delegation/internal/domain"
)

// Repo provides delegate-client persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new delegate-client repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const clientColumns = `id, display_name, secret_hash, allowed_scopes, active, suspended_at,
	suspension_reason, rate_limit_per_hour, tokens_issued, created_at, updated_at`

// Create inserts a new delegate client.
func (r *Repo) Create(ctx context.Context, c domain.DelegateClient) (domain.DelegateClient, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `
		INSERT INTO delegate_clients (display_name, secret_hash, allowed_scopes, rate_limit_per_hour)
		VALUES ($1, $2, $3, $4)
		RETURNING `+clientColumns,
		c.DisplayName, c.SecretHash, scopesToStrings(c.AllowedScopes), c.RateLimitPerHour,
	)

	created, err := scanClient(row)
	if err != nil {
		return domain.DelegateClient{}, postgres.MapError(err, "delegate_client")
	}
	return created, nil
}

// GetByID returns a delegate client by id, active or not.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.DelegateClient, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `
		SELECT `+clientColumns+`
		FROM delegate_clients
		WHERE id = $1`,
		id,
	)

	c, err := scanClient(row)
	if err != nil {
		return domain.DelegateClient{}, postgres.MapError(err, "delegate_client")
	}
	return c, nil
}

// UpdateSecretHash replaces the stored secret hash in a single statement,
// so the old secret stops validating the instant the new one exists.
func (r *Repo) UpdateSecretHash(ctx context.Context, id uuid.UUID, hash string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `
		UPDATE delegate_clients
		SET secret_hash = $2, updated_at = now()
		WHERE id = $1`,
		id, hash,
	)
	if err != nil {
		return postgres.MapError(err, "delegate_client")
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "delegate_client")
	}
	return nil
}

// Suspend deactivates the client immediately. Idempotent.
func (r *Repo) Suspend(ctx context.Context, id uuid.UUID, reason string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		UPDATE delegate_clients
		SET active = FALSE, suspended_at = now(), suspension_reason = $2, updated_at = now()
		WHERE id = $1 AND active`,
		id, reason,
	)
	if err != nil {
		return postgres.MapError(err, "delegate_client")
	}
	return nil
}

// Reactivate clears a suspension. Idempotent.
func (r *Repo) Reactivate(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		UPDATE delegate_clients
		SET active = TRUE, suspended_at = NULL, suspension_reason = NULL, updated_at = now()
		WHERE id = $1`,
		id,
	)
	if err != nil {
		return postgres.MapError(err, "delegate_client")
	}
	return nil
}

// IncrementIssued advances the client's cumulative issuance counter.
// Called only after a token has actually been minted.
func (r *Repo) IncrementIssued(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		UPDATE delegate_clients
		SET tokens_issued = tokens_issued + 1, updated_at = now()
		WHERE id = $1`,
		id,
	)
	if err != nil {
		return postgres.MapError(err, "delegate_client")
	}
	return nil
}

// IncrementWindow atomically bumps the client's counter for the given fixed
// window and returns the post-increment count. The upsert makes concurrent
// callers serialize on the same row, so two requests can never both observe
// a pre-limit count that only one of them should have seen.
func (r *Repo) IncrementWindow(ctx context.Context, clientID uuid.UUID, windowStart time.Time) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var issued int
	err := q.QueryRow(ctx, `
		INSERT INTO issuance_windows (client_id, window_start, issued)
		VALUES ($1, $2, 1)
		ON CONFLICT (client_id, window_start)
		DO UPDATE SET issued = issuance_windows.issued + 1
		RETURNING issued`,
		clientID, windowStart,
	).Scan(&issued)
	if err != nil {
		return 0, postgres.MapError(err, "issuance_window")
	}
	return issued, nil
}

// DecrementWindow releases one unit from the window counter. Used to undo
// the optimistic increment when a request is denied after the rate check,
// so denied requests do not consume issuance budget.
func (r *Repo) DecrementWindow(ctx context.Context, clientID uuid.UUID, windowStart time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
		UPDATE issuance_windows
		SET issued = GREATEST(issued - 1, 0)
		WHERE client_id = $1 AND window_start = $2`,
		clientID, windowStart,
	)
	return postgres.MapError(err, "issuance_window")
}

// DeleteWindowsBefore drops fixed-window rows older than the cutoff.
// Counters are only read for the current window, so old rows are dead weight.
func (r *Repo) DeleteWindowsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM issuance_windows WHERE window_start < $1`, cutoff)
	if err != nil {
		return 0, postgres.MapError(err, "issuance_window")
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

// scanClient reads one delegate_clients row into the domain type.
func scanClient(row pgx.Row) (domain.DelegateClient, error) {
	var (
		c      domain.DelegateClient
		scopes []string
	)
	err := row.Scan(
		&c.ID, &c.DisplayName, &c.SecretHash, &scopes, &c.Active, &c.SuspendedAt,
		&c.SuspensionReason, &c.RateLimitPerHour, &c.TokensIssued, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.DelegateClient{}, err
	}
	c.AllowedScopes = stringsToScopes(scopes)
	return c, nil
}

func scopesToStrings(scopes []domain.ScopeName) []string {
	out := make([]string, len(scopes))
	for i, s := range scopes {
		out[i] = string(s)
	}
	return out
}

func stringsToScopes(raw []string) []domain.ScopeName {
	out := make([]domain.ScopeName, len(raw))
	for i, s := range raw {
		out[i] = domain.ScopeName(s)
	}
	return out
}
