package audit

import "time"

// Decision is a single access-control outcome. Records are append-only:
// once written they are never updated or deleted.
type Decision struct {
	ID         int64     `json:"id,omitempty"`
	UserID     string    `json:"user_id"`
	Role       string    `json:"role"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	Allowed    bool      `json:"allowed"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Filters narrow an audit query. Zero values impose no constraint; set
// fields combine conjunctively.
type Filters struct {
	UserID string
	From   time.Time
	To     time.Time
}
