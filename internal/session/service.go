package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/datavault-fs/accessd/internal/shared"
)

// Service issues, validates and invalidates sessions.
type Service struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
}

// NewService constructs a session service. A non-positive ttl falls back to
// the 8-hour default.
func NewService(repo Repository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{repo: repo, ttl: ttl, now: time.Now}
}

// Create issues a new session for the user. The token is a one-way hash of
// the identity and issue time plus a random salt, so it is opaque and
// unique with high probability.
func (s *Service) Create(ctx context.Context, userID, role, region, ipAddress string) (Session, error) {
	now := s.now().UTC()
	sess := Session{
		ID:        newToken(userID, now),
		UserID:    userID,
		Role:      role,
		Region:    region,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		IPAddress: ipAddress,
		IsActive:  true,
	}
	if err := s.repo.Insert(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Validate resolves a session id. Unknown ids, invalidated sessions and
// expired sessions all surface as shared.ErrNotFound so callers simply
// re-authenticate. Expiry additionally flips the stored record inactive.
func (s *Service) Validate(ctx context.Context, id string) (Session, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Expired(s.now().UTC()) {
		if err := s.repo.Deactivate(ctx, id); err != nil {
			return Session{}, err
		}
		return Session{}, shared.ErrNotFound
	}
	if !sess.IsActive {
		return Session{}, shared.ErrNotFound
	}
	return sess, nil
}

// Invalidate idempotently deactivates a session. Deactivation is terminal;
// there is no re-activation path.
func (s *Service) Invalidate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

// SweepExpired deactivates every session past its expiry and reports how
// many records were touched. Records are kept for the audit trail.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	return s.repo.SweepExpired(ctx, s.now().UTC())
}

func newToken(userID string, now time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s%s%s", userID, now.Format(time.RFC3339Nano), uuid.NewString())))
	return hex.EncodeToString(sum[:])
}
