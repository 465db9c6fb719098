package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/datavault-fs/accessd/internal/shared"
)

// Repository defines persistence operations for sessions.
type Repository interface {
	Insert(ctx context.Context, sess Session) error
	Get(ctx context.Context, id string) (Session, error)
	Deactivate(ctx context.Context, id string) error
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

const schemaUserSessions = `
CREATE TABLE IF NOT EXISTS user_sessions (
	session_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	role TEXT NOT NULL,
	region TEXT NOT NULL DEFAULT 'global',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at TIMESTAMPTZ NOT NULL,
	ip_address TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT TRUE
)`

// Schema returns the DDL owned by this module.
func Schema() []string {
	return []string{schemaUserSessions}
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Insert persists a new session record.
func (r *PGRepository) Insert(ctx context.Context, sess Session) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_sessions (session_id, user_id, role, region, created_at, expires_at, ip_address, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sess.ID, sess.UserID, sess.Role, sess.Region, sess.CreatedAt, sess.ExpiresAt, sess.IPAddress, sess.IsActive)
	if err != nil {
		return fmt.Errorf("session: insert: %w", err)
	}
	return nil
}

// Get fetches a session by id.
func (r *PGRepository) Get(ctx context.Context, id string) (Session, error) {
	var sess Session
	err := r.pool.QueryRow(ctx,
		`SELECT session_id, user_id, role, region, created_at, expires_at, ip_address, is_active
		 FROM user_sessions WHERE session_id = $1`, id).
		Scan(&sess.ID, &sess.UserID, &sess.Role, &sess.Region, &sess.CreatedAt, &sess.ExpiresAt, &sess.IPAddress, &sess.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, shared.ErrNotFound
		}
		return Session{}, fmt.Errorf("session: get: %w", err)
	}
	return sess, nil
}

// Deactivate flips is_active to false. The update is idempotent.
func (r *PGRepository) Deactivate(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE user_sessions SET is_active = FALSE WHERE session_id = $1`, id)
	if err != nil {
		return fmt.Errorf("session: deactivate: %w", err)
	}
	return nil
}

// SweepExpired deactivates every active session past its expiry.
func (r *PGRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE user_sessions SET is_active = FALSE WHERE is_active AND expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("session: sweep expired: %w", err)
	}
	return tag.RowsAffected(), nil
}

var _ Repository = (*PGRepository)(nil)
