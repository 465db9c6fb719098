package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/datavault-fs/accessd/internal/session"
)

// SessionSweeper is the slice of the session service the sweep job needs.
type SessionSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

var _ SessionSweeper = (*session.Service)(nil)

// HandleSessionSweepTask returns a handler that deactivates expired
// sessions. Swept records stay in the table for the audit trail.
func HandleSessionSweepTask(sessions SessionSweeper, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SessionSweepPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		swept, err := sessions.SweepExpired(ctx)
		if err != nil {
			logger.Error("session sweep failed", slog.Any("error", err))
			return err
		}
		logger.Info("session sweep complete", slog.Int64("swept", swept))
		return nil
	}
}
