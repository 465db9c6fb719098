package audit

import (
	"context"
	"errors"
	"time"
)

// queryLimit caps how many records a single query returns.
const queryLimit = 100

// Service coordinates the append-only audit trail.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs an audit service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record persists one access decision. Callers must not proceed with the
// guarded operation when this fails; there is no retry here.
func (s *Service) Record(ctx context.Context, decision Decision) error {
	if s == nil || s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if decision.UserID == "" || decision.Action == "" || decision.Resource == "" {
		return errors.New("audit: decision requires user_id/action/resource")
	}
	if decision.OccurredAt.IsZero() {
		decision.OccurredAt = s.now().UTC()
	}
	return s.repo.Insert(ctx, decision)
}

// Query returns matching decisions, most recent first, capped at 100.
func (s *Service) Query(ctx context.Context, filters Filters) ([]Decision, error) {
	if s == nil || s.repo == nil {
		return nil, errors.New("audit: repository not configured")
	}
	return s.repo.Select(ctx, filters, queryLimit)
}

var _ Recorder = (*Service)(nil)

// Recorder is the write-side contract consumed by the access validator.
type Recorder interface {
	Record(ctx context.Context, decision Decision) error
}
