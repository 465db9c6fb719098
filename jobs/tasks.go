package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionSweep deactivates sessions past their expiry.
	TaskSessionSweep = "session:sweep"
	// TaskUsageRollup folds raw usage records into daily aggregates.
	TaskUsageRollup = "usage:rollup"
)

// SessionSweepPayload carries scheduling metadata for a sweep run.
type SessionSweepPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewSessionSweepTask constructs an Asynq task for the session sweep.
func NewSessionSweepTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(SessionSweepPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSessionSweep, body, asynq.Queue(QueueDefault)), nil
}

// UsageRollupPayload carries scheduling metadata for a rollup run.
type UsageRollupPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewUsageRollupTask constructs an Asynq task for the usage rollup.
func NewUsageRollupTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(UsageRollupPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskUsageRollup, body, asynq.Queue(QueueDefault)), nil
}
