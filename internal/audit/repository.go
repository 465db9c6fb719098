package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines persistence operations for the audit trail.
type Repository interface {
	Insert(ctx context.Context, decision Decision) error
	Select(ctx context.Context, filters Filters, limit int) ([]Decision, error)
}

const schemaAccessAudit = `
CREATE TABLE IF NOT EXISTS access_audit (
	id BIGSERIAL PRIMARY KEY,
	user_id TEXT NOT NULL,
	role TEXT NOT NULL,
	action TEXT NOT NULL,
	resource TEXT NOT NULL,
	allowed BOOLEAN NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Schema returns the DDL owned by this module.
func Schema() []string {
	return []string{schemaAccessAudit}
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Insert appends one decision. The write is durable once this returns.
func (r *PGRepository) Insert(ctx context.Context, decision Decision) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO access_audit (user_id, role, action, resource, allowed, reason, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))`,
		decision.UserID, decision.Role, decision.Action, decision.Resource,
		decision.Allowed, decision.Reason, decision.OccurredAt)
	if err != nil {
		return fmt.Errorf("audit: insert: %w", err)
	}
	return nil
}

// Select returns decisions matching the filters, most recent first.
func (r *PGRepository) Select(ctx context.Context, filters Filters, limit int) ([]Decision, error) {
	query := `SELECT id, user_id, role, action, resource, allowed, reason, occurred_at FROM access_audit`
	var (
		conditions []string
		args       []any
	)
	arg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}
	if filters.UserID != "" {
		conditions = append(conditions, "user_id = "+arg(filters.UserID))
	}
	if !filters.From.IsZero() {
		conditions = append(conditions, "occurred_at >= "+arg(filters.From))
	}
	if !filters.To.IsZero() {
		conditions = append(conditions, "occurred_at <= "+arg(filters.To))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY occurred_at DESC, id DESC LIMIT " + arg(limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit: select: %w", err)
	}
	defer rows.Close()

	var decisions []Decision
	for rows.Next() {
		var d Decision
		if err := rows.Scan(&d.ID, &d.UserID, &d.Role, &d.Action, &d.Resource, &d.Allowed, &d.Reason, &d.OccurredAt); err != nil {
			return nil, fmt.Errorf("audit: scan: %w", err)
		}
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit: rows: %w", err)
	}
	return decisions, nil
}

var _ Repository = (*PGRepository)(nil)
