package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
)

type stubSweeper struct {
	swept int64
	err   error
	calls int
}

func (s *stubSweeper) SweepExpired(ctx context.Context) (int64, error) {
	s.calls++
	return s.swept, s.err
}

type stubRoller struct {
	err   error
	calls int
}

func (s *stubRoller) RollupDaily(ctx context.Context) error {
	s.calls++
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSessionSweepHandler(t *testing.T) {
	sweeper := &stubSweeper{swept: 3}
	handler := HandleSessionSweepTask(sweeper, discardLogger())

	task, err := NewSessionSweepTask(time.Now())
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := handler(context.Background(), task); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if sweeper.calls != 1 {
		t.Fatalf("sweeper calls = %d, want 1", sweeper.calls)
	}
}

func TestSessionSweepHandlerPropagatesError(t *testing.T) {
	wantErr := errors.New("db down")
	handler := HandleSessionSweepTask(&stubSweeper{err: wantErr}, discardLogger())

	task, err := NewSessionSweepTask(time.Now())
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := handler(context.Background(), task); !errors.Is(err, wantErr) {
		t.Fatalf("handler error = %v, want %v", err, wantErr)
	}
}

func TestSessionSweepHandlerSkipsBadPayload(t *testing.T) {
	sweeper := &stubSweeper{}
	handler := HandleSessionSweepTask(sweeper, discardLogger())

	task := asynq.NewTask(TaskSessionSweep, []byte("not json"))
	if err := handler(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("handler error = %v, want SkipRetry", err)
	}
	if sweeper.calls != 0 {
		t.Fatalf("sweeper calls = %d, want 0", sweeper.calls)
	}
}

func TestUsageRollupHandler(t *testing.T) {
	roller := &stubRoller{}
	handler := HandleUsageRollupTask(roller, discardLogger())

	task, err := NewUsageRollupTask(time.Now())
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := handler(context.Background(), task); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if roller.calls != 1 {
		t.Fatalf("roller calls = %d, want 1", roller.calls)
	}
}

type stubEnqueuer struct {
	sweeps  int
	rollups int
	err     error
}

func (s *stubEnqueuer) EnqueueSessionSweep(ctx context.Context, at time.Time) (*asynq.TaskInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sweeps++
	return &asynq.TaskInfo{ID: "task-1", Queue: QueueDefault}, nil
}

func (s *stubEnqueuer) EnqueueUsageRollup(ctx context.Context, at time.Time) (*asynq.TaskInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.rollups++
	return &asynq.TaskInfo{ID: "task-2", Queue: QueueDefault}, nil
}

func newJobsRouter(enqueuer Enqueuer) http.Handler {
	h := NewHandler(nil, enqueuer, discardLogger())
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestHandlerEnqueuesManualRuns(t *testing.T) {
	enqueuer := &stubEnqueuer{}
	router := newJobsRouter(enqueuer)

	for _, path := range []string{"/session-sweep", "/usage-rollup"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		if rec.Code != http.StatusAccepted {
			t.Fatalf("%s status = %d, want 202", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"queue":"default"`) {
			t.Fatalf("%s body = %q, want queue name", path, rec.Body.String())
		}
	}
	if enqueuer.sweeps != 1 || enqueuer.rollups != 1 {
		t.Fatalf("enqueue counts = %d/%d, want 1/1", enqueuer.sweeps, enqueuer.rollups)
	}
}

func TestHandlerEnqueueUnavailable(t *testing.T) {
	router := newJobsRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/session-sweep", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestHandlerEnqueueErrorSurfaces(t *testing.T) {
	router := newJobsRouter(&stubEnqueuer{err: errors.New("redis down")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/usage-rollup", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestUsageRollupHandlerSkipsBadPayload(t *testing.T) {
	roller := &stubRoller{}
	handler := HandleUsageRollupTask(roller, discardLogger())

	task := asynq.NewTask(TaskUsageRollup, []byte("{"))
	if err := handler(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("handler error = %v, want SkipRetry", err)
	}
	if roller.calls != 0 {
		t.Fatalf("roller calls = %d, want 0", roller.calls)
	}
}
