// Package draft implements the clinical-action repository with the draft
// lifecycle operations: creation under delegation, pending listing, the
// one-winner promotion update, rejection and expiry purge.
package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/clinicore/delegation/internal/adapter/postgres"
	"github.com/clinicore/delegation/internal/domain"
)

// Repo provides clinical-action persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new clinical-action repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const actionColumns = `id, patient_id, action_type, description, payload, created_by, is_draft,
	created_via_delegate, delegated_by, expires_at, promoted_at, promoted_by, created_at, updated_at`

// CreateDraft inserts a draft-flagged clinical action created under
// delegation. The draft carries no author; authorship is assigned at
// promotion.
func (r *Repo) CreateDraft(ctx context.Context, a domain.ClinicalAction) (domain.ClinicalAction, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	payload, err := json.Marshal(a.Payload)
	if err != nil {
		return domain.ClinicalAction{}, fmt.Errorf("clinical_action marshal payload: %w", err)
	}

	row := q.QueryRow(ctx, `
		INSERT INTO clinical_actions
			(patient_id, action_type, description, payload, is_draft,
			 created_via_delegate, delegated_by, expires_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, $6, $7)
		RETURNING `+actionColumns,
		a.PatientID, a.Type, a.Description, payload,
		a.CreatedViaDelegate, a.DelegatedBy, a.ExpiresAt,
	)

	created, err := scanAction(row)
	if err != nil {
		return domain.ClinicalAction{}, postgres.MapError(err, "clinical_action")
	}
	return created, nil
}

// GetByID returns a clinical action regardless of draft state. Callers that
// serve the normal record views must use ListAuthoritative instead.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.ClinicalAction, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `
		SELECT `+actionColumns+`
		FROM clinical_actions
		WHERE id = $1`,
		id,
	)

	a, err := scanAction(row)
	if err != nil {
		return domain.ClinicalAction{}, postgres.MapError(err, "clinical_action")
	}
	return a, nil
}

// ListPendingFor returns the non-expired drafts delegated by the given
// clinician, soonest-expiring first.
func (r *Repo) ListPendingFor(ctx context.Context, clinicianID uuid.UUID, now time.Time) ([]domain.ClinicalAction, error) {
	query := psql.Select(actionColumns).
		From("clinical_actions").
		Where(sq.Eq{"delegated_by": clinicianID}).
		Where("is_draft").
		Where(sq.Gt{"expires_at": now}).
		OrderBy("expires_at ASC")

	return r.list(ctx, query)
}

// ListAuthoritative returns the non-draft actions for a patient, newest
// first. This is the default record view: drafts never appear in it.
func (r *Repo) ListAuthoritative(ctx context.Context, patientID uuid.UUID, actionType *domain.ActionType) ([]domain.ClinicalAction, error) {
	query := psql.Select(actionColumns).
		From("clinical_actions").
		Where(sq.Eq{"patient_id": patientID}).
		Where("NOT is_draft").
		OrderBy("created_at DESC")
	if actionType != nil {
		query = query.Where(sq.Eq{"action_type": *actionType})
	}

	return r.list(ctx, query)
}

// Promote finalizes a draft in a single conditional update: the row must
// still be an unexpired draft, so of two concurrent callers exactly one
// wins. The loser gets domain.ErrNotFound and must re-read the row to learn
// why. Authorship moves to the approver and the draft provenance columns
// stay behind for traceability.
func (r *Repo) Promote(ctx context.Context, id, approverID uuid.UUID, description string, payload map[string]any, now time.Time) (domain.ClinicalAction, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	raw, err := json.Marshal(payload)
	if err != nil {
		return domain.ClinicalAction{}, fmt.Errorf("clinical_action marshal payload: %w", err)
	}

	row := q.QueryRow(ctx, `
		UPDATE clinical_actions
		SET is_draft = FALSE,
		    created_by = $2,
		    description = $3,
		    payload = $4,
		    promoted_at = $5,
		    promoted_by = $2,
		    expires_at = NULL,
		    updated_at = now()
		WHERE id = $1 AND is_draft AND expires_at > $5
		RETURNING `+actionColumns,
		id, approverID, description, raw, now,
	)

	promoted, err := scanAction(row)
	if err != nil {
		return domain.ClinicalAction{}, postgres.MapError(err, "clinical_action")
	}
	return promoted, nil
}

// DeleteDraft hard-deletes a draft. Only draft rows are deletable; the
// authoritative record is never removed through this repository.
func (r *Repo) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM clinical_actions WHERE id = $1 AND is_draft`, id)
	if err != nil {
		return postgres.MapError(err, "clinical_action")
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "clinical_action")
	}
	return nil
}

// PurgeExpired hard-deletes every draft whose expiry has passed and returns
// the count. Destructive and unrecoverable by design.
func (r *Repo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM clinical_actions WHERE is_draft AND expires_at <= $1`, now)
	if err != nil {
		return 0, postgres.MapError(err, "clinical_action")
	}
	return tag.RowsAffected(), nil
}

// CountExpired reports how many drafts PurgeExpired would delete, without
// deleting them. Used by the purge command's dry-run mode.
func (r *Repo) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int64
	err := q.QueryRow(ctx, `SELECT count(*) FROM clinical_actions WHERE is_draft AND expires_at <= $1`, now).Scan(&n)
	if err != nil {
		return 0, postgres.MapError(err, "clinical_action")
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Query execution and mapping helpers
// ---------------------------------------------------------------------------

func (r *Repo) list(ctx context.Context, query sq.SelectBuilder) ([]domain.ClinicalAction, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build clinical_actions query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "clinical_action")
	}
	defer rows.Close()

	var actions []domain.ClinicalAction
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, postgres.MapError(err, "clinical_action")
		}
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "clinical_action")
	}

	return actions, nil
}

// scanAction reads one clinical_actions row into the domain type.
func scanAction(row pgx.Row) (domain.ClinicalAction, error) {
	var (
		a       domain.ClinicalAction
		payload []byte
	)
	err := row.Scan(
		&a.ID, &a.PatientID, &a.Type, &a.Description, &payload, &a.CreatedBy, &a.IsDraft,
		&a.CreatedViaDelegate, &a.DelegatedBy, &a.ExpiresAt, &a.PromotedAt, &a.PromotedBy,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.ClinicalAction{}, err
	}

	if len(payload) > 0 {
		m := make(map[string]any)
		if err := json.Unmarshal(payload, &m); err != nil {
			return domain.ClinicalAction{}, fmt.Errorf("clinical_action %s unmarshal payload: %w", a.ID, err)
		}
		a.Payload = m
	}

	return a, nil
}
