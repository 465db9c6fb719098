package audithttp

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/datavault-fs/accessd/internal/audit"
)

type stubQueryService struct {
	decisions []audit.Decision
	lastFilt  audit.Filters
}

func (s *stubQueryService) Query(ctx context.Context, f audit.Filters) ([]audit.Decision, error) {
	s.lastFilt = f
	return s.decisions, nil
}

func TestHandleListParsesFilters(t *testing.T) {
	svc := &stubQueryService{decisions: []audit.Decision{{UserID: "srodriguez", Action: "read", Resource: "us_compliance", Allowed: true}}}
	h := NewHandler(nil, svc)

	req := httptest.NewRequest("GET", "/?user_id=srodriguez&from=2025-06-01T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	h.handleList(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.lastFilt.UserID != "srodriguez" {
		t.Fatalf("user filter = %q", svc.lastFilt.UserID)
	}
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !svc.lastFilt.From.Equal(want) {
		t.Fatalf("from filter = %v", svc.lastFilt.From)
	}
	var body struct {
		Decisions []audit.Decision `json:"decisions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Decisions) != 1 {
		t.Fatalf("expected 1 decision, got %d", len(body.Decisions))
	}
}

func TestHandleListRejectsBadTimestamp(t *testing.T) {
	h := NewHandler(nil, &stubQueryService{})
	req := httptest.NewRequest("GET", "/?from=yesterday", nil)
	rec := httptest.NewRecorder()
	h.handleList(rec, req)
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleExportWritesCSV(t *testing.T) {
	svc := &stubQueryService{decisions: []audit.Decision{{
		UserID: "mchen", Role: "executive", Action: "export", Resource: "client_analytics",
		Allowed: true, OccurredAt: time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
	}}}
	h := NewHandler(nil, svc)

	req := httptest.NewRequest("GET", "/export.csv", nil)
	rec := httptest.NewRecorder()
	h.handleExport(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "mchen") {
		t.Fatalf("csv missing row: %q", rec.Body.String())
	}
}
