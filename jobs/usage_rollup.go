package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/datavault-fs/accessd/internal/usage"
)

// UsageRoller is the slice of the usage tracker the rollup job needs.
type UsageRoller interface {
	RollupDaily(ctx context.Context) error
}

var _ UsageRoller = (*usage.Tracker)(nil)

// HandleUsageRollupTask returns a handler that folds yesterday's raw
// usage records into the daily aggregate table.
func HandleUsageRollupTask(tracker UsageRoller, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload UsageRollupPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if err := tracker.RollupDaily(ctx); err != nil {
			logger.Error("usage rollup failed", slog.Any("error", err))
			return err
		}
		logger.Info("usage rollup complete")
		return nil
	}
}
