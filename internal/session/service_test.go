package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/datavault-fs/accessd/internal/shared"
)

type memoryRepo struct {
	sessions map[string]Session
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{sessions: make(map[string]Session)}
}

func (m *memoryRepo) Insert(ctx context.Context, sess Session) error {
	m.sessions[sess.ID] = sess
	return nil
}

func (m *memoryRepo) Get(ctx context.Context, id string) (Session, error) {
	sess, ok := m.sessions[id]
	if !ok {
		return Session{}, shared.ErrNotFound
	}
	return sess, nil
}

func (m *memoryRepo) Deactivate(ctx context.Context, id string) error {
	if sess, ok := m.sessions[id]; ok {
		sess.IsActive = false
		m.sessions[id] = sess
	}
	return nil
}

func (m *memoryRepo) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	for id, sess := range m.sessions {
		if sess.IsActive && sess.Expired(now) {
			sess.IsActive = false
			m.sessions[id] = sess
			count++
		}
	}
	return count, nil
}

func newTestService(repo Repository, at time.Time) *Service {
	svc := NewService(repo, 0)
	svc.now = func() time.Time { return at }
	return svc
}

func TestCreateThenValidate(t *testing.T) {
	repo := newMemoryRepo()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, start)

	sess, err := svc.Create(context.Background(), "srodriguez", "compliance_us", "us", "192.168.1.100")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(sess.ID) != 64 {
		t.Fatalf("token length = %d, want 64 hex chars", len(sess.ID))
	}
	if !sess.ExpiresAt.Equal(start.Add(8 * time.Hour)) {
		t.Fatalf("expires at %v, want +8h", sess.ExpiresAt)
	}

	got, err := svc.Validate(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.UserID != "srodriguez" || got.Role != "compliance_us" {
		t.Fatalf("unexpected session %+v", got)
	}
}

func TestCreateTokensAreUnique(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	a, err := svc.Create(context.Background(), "srodriguez", "compliance_us", "us", "")
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := svc.Create(context.Background(), "srodriguez", "compliance_us", "us", "")
	if err != nil {
		t.Fatalf("create b: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("tokens collide for identical identity and clock")
	}
}

func TestValidateUnknownToken(t *testing.T) {
	svc := newTestService(newMemoryRepo(), time.Now())
	if _, err := svc.Validate(context.Background(), "deadbeef"); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestValidateExpiredFlipsInactive(t *testing.T) {
	repo := newMemoryRepo()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, start)

	sess, err := svc.Create(context.Background(), "lthompson", "analyst", "global", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	svc.now = func() time.Time { return start.Add(8*time.Hour + time.Minute) }
	if _, err := svc.Validate(context.Background(), sess.ID); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if repo.sessions[sess.ID].IsActive {
		t.Fatalf("expired session still marked active")
	}
}

func TestInvalidateIsIdempotentAndTerminal(t *testing.T) {
	repo := newMemoryRepo()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, start)

	sess, err := svc.Create(context.Background(), "mchen", "executive", "global", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Invalidate(context.Background(), sess.ID); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if err := svc.Invalidate(context.Background(), sess.ID); err != nil {
		t.Fatalf("second invalidate: %v", err)
	}
	// Invalidation holds even before the expiry window elapses.
	if _, err := svc.Validate(context.Background(), sess.ID); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSweepExpiredOnlyTouchesExpired(t *testing.T) {
	repo := newMemoryRepo()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, start)

	old, err := svc.Create(context.Background(), "a", "employee", "global", "")
	if err != nil {
		t.Fatalf("create old: %v", err)
	}
	svc.now = func() time.Time { return start.Add(7 * time.Hour) }
	fresh, err := svc.Create(context.Background(), "b", "employee", "global", "")
	if err != nil {
		t.Fatalf("create fresh: %v", err)
	}

	count, err := repo.SweepExpired(context.Background(), start.Add(9*time.Hour))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if count != 1 {
		t.Fatalf("swept %d sessions, want 1", count)
	}
	if repo.sessions[old.ID].IsActive {
		t.Fatalf("expired session not deactivated")
	}
	if !repo.sessions[fresh.ID].IsActive {
		t.Fatalf("fresh session deactivated")
	}
}
