// Package audit implements the delegation audit log repository using
// PostgreSQL. The repository is append-only: it exposes no update or delete
// operation, and the table itself rejects both via trigger.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/clinicore/delegation/internal/adapter/postgres"
	"github.com/clinicore/delegation/internal/domain"
)

// Repo provides audit-log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Log appends one audit record. There is deliberately no way to change or
// remove a record once written.
func (r *Repo) Log(ctx context.Context, rec domain.AuditRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	contextJSON, err := json.Marshal(rec.Context)
	if err != nil {
		return fmt.Errorf("audit_record marshal context: %w", err)
	}

	_, err = q.Exec(ctx, `
		INSERT INTO delegation_audit_log
			(event_type, delegate_id, delegator_id, requested_scopes, granted_scopes,
			 token_jti, outcome, denial_reason, caller_addr, context)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.EventType, rec.DelegateID, rec.DelegatorID,
		scopesToStrings(rec.RequestedScopes), scopesToStrings(rec.GrantedScopes),
		rec.TokenJTI, rec.Outcome, rec.DenialReason, rec.CallerAddr, contextJSON,
	)
	if err != nil {
		return postgres.MapError(err, "audit_record")
	}
	return nil
}

// Report aggregates audit entries in [since, until) for compliance
// reporting: total, by outcome, by delegate, by delegator, by denial reason.
func (r *Repo) Report(ctx context.Context, since, until time.Time) (domain.AuditReport, error) {
	report := domain.AuditReport{
		Since:       since,
		Until:       until,
		ByOutcome:   make(map[domain.AuditOutcome]int64),
		ByDelegate:  make(map[uuid.UUID]int64),
		ByDelegator: make(map[uuid.UUID]int64),
		ByReason:    make(map[domain.DenialReason]int64),
	}

	if err := r.countBy(ctx, since, until, "outcome", func(key string, n int64) {
		report.ByOutcome[domain.AuditOutcome(key)] = n
		report.Total += n
	}); err != nil {
		return domain.AuditReport{}, err
	}

	if err := r.countByUUID(ctx, since, until, "delegate_id", report.ByDelegate); err != nil {
		return domain.AuditReport{}, err
	}

	if err := r.countByUUID(ctx, since, until, "delegator_id", report.ByDelegator); err != nil {
		return domain.AuditReport{}, err
	}

	if err := r.countBy(ctx, since, until, "denial_reason", func(key string, n int64) {
		report.ByReason[domain.DenialReason(key)] = n
	}); err != nil {
		return domain.AuditReport{}, err
	}

	return report, nil
}

// countBy runs a grouped count over a text column, skipping NULL groups.
func (r *Repo) countBy(ctx context.Context, since, until time.Time, column string, visit func(key string, n int64)) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(column, "count(*)").
		From("delegation_audit_log").
		Where(sq.GtOrEq{"created_at": since}).
		Where(sq.Lt{"created_at": until}).
		Where(sq.NotEq{column: nil}).
		GroupBy(column).
		ToSql()
	if err != nil {
		return fmt.Errorf("build audit report query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "audit_record")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key string
			n   int64
		)
		if err := rows.Scan(&key, &n); err != nil {
			return postgres.MapError(err, "audit_record")
		}
		visit(key, n)
	}
	return postgres.MapError(rows.Err(), "audit_record")
}

// countByUUID runs a grouped count over a UUID column, skipping NULL groups.
func (r *Repo) countByUUID(ctx context.Context, since, until time.Time, column string, dest map[uuid.UUID]int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(column, "count(*)").
		From("delegation_audit_log").
		Where(sq.GtOrEq{"created_at": since}).
		Where(sq.Lt{"created_at": until}).
		Where(sq.NotEq{column: nil}).
		GroupBy(column).
		ToSql()
	if err != nil {
		return fmt.Errorf("build audit report query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "audit_record")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key uuid.UUID
			n   int64
		)
		if err := rows.Scan(&key, &n); err != nil {
			return postgres.MapError(err, "audit_record")
		}
		dest[key] = n
	}
	return postgres.MapError(rows.Err(), "audit_record")
}

func scopesToStrings(scopes []domain.ScopeName) []string {
	out := make([]string, len(scopes))
	for i, s := range scopes {
		out[i] = string(s)
	}
	return out
}
