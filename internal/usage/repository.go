package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines persistence operations for usage tracking.
type Repository interface {
	Insert(ctx context.Context, record Record) error
	Summarize(ctx context.Context, from, to time.Time) (Summary, error)
	RollupDaily(ctx context.Context, day time.Time) error
}

const schemaUsageTracking = `
CREATE TABLE IF NOT EXISTS usage_tracking (
	id BIGSERIAL PRIMARY KEY,
	operation TEXT NOT NULL,
	resource_id TEXT NOT NULL DEFAULT '',
	user_id TEXT NOT NULL DEFAULT '',
	cost DOUBLE PRECISION NOT NULL,
	saved_by_optimization BOOLEAN NOT NULL DEFAULT FALSE,
	occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const schemaUsageDaily = `
CREATE TABLE IF NOT EXISTS usage_daily (
	day DATE NOT NULL,
	operation TEXT NOT NULL,
	total_cost DOUBLE PRECISION NOT NULL,
	total_saved DOUBLE PRECISION NOT NULL,
	record_count BIGINT NOT NULL,
	PRIMARY KEY (day, operation)
)`

// Schema returns the DDL owned by this module.
func Schema() []string {
	return []string{schemaUsageTracking, schemaUsageDaily}
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Insert appends a usage record.
func (r *PGRepository) Insert(ctx context.Context, record Record) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO usage_tracking (operation, resource_id, user_id, cost, saved_by_optimization, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		record.Operation, record.ResourceID, record.UserID, record.Cost, record.Saved, record.OccurredAt)
	if err != nil {
		return fmt.Errorf("usage: insert: %w", err)
	}
	return nil
}

// Summarize aggregates cost and savings inside the window.
func (r *PGRepository) Summarize(ctx context.Context, from, to time.Time) (Summary, error) {
	summary := Summary{From: from, To: to, ByOperation: make(map[string]float64)}

	rows, err := r.pool.Query(ctx,
		`SELECT operation,
		        COALESCE(SUM(cost) FILTER (WHERE NOT saved_by_optimization), 0),
		        COALESCE(SUM(cost) FILTER (WHERE saved_by_optimization), 0),
		        COUNT(*)
		 FROM usage_tracking
		 WHERE occurred_at >= $1 AND occurred_at <= $2
		 GROUP BY operation`, from, to)
	if err != nil {
		return Summary{}, fmt.Errorf("usage: summarize: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			op     string
			spent  float64
			saved  float64
			rcount int64
		)
		if err := rows.Scan(&op, &spent, &saved, &rcount); err != nil {
			return Summary{}, fmt.Errorf("usage: scan: %w", err)
		}
		summary.ByOperation[op] = spent
		summary.TotalCost += spent
		summary.TotalSaved += saved
		summary.RecordCount += rcount
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("usage: rows: %w", err)
	}
	return summary, nil
}

// RollupDaily folds one day of usage_tracking into usage_daily. The upsert
// keeps the job idempotent under retry.
func (r *PGRepository) RollupDaily(ctx context.Context, day time.Time) error {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	_, err := r.pool.Exec(ctx,
		`INSERT INTO usage_daily (day, operation, total_cost, total_saved, record_count)
		 SELECT $1::date, operation,
		        COALESCE(SUM(cost) FILTER (WHERE NOT saved_by_optimization), 0),
		        COALESCE(SUM(cost) FILTER (WHERE saved_by_optimization), 0),
		        COUNT(*)
		 FROM usage_tracking
		 WHERE occurred_at >= $2 AND occurred_at < $3
		 GROUP BY operation
		 ON CONFLICT (day, operation) DO UPDATE SET
		        total_cost = EXCLUDED.total_cost,
		        total_saved = EXCLUDED.total_saved,
		        record_count = EXCLUDED.record_count`,
		start, start, end)
	if err != nil {
		return fmt.Errorf("usage: rollup daily: %w", err)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
