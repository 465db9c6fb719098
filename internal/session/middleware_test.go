package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/datavault-fs/accessd/internal/shared"
)

func authedRouter(svc *Service) (http.Handler, *shared.Principal) {
	var seen shared.Principal
	mw := Middleware{Service: svc}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := shared.PrincipalFromContext(r.Context()); ok {
			seen = p
		}
		w.WriteHeader(http.StatusOK)
	})
	return mw.Authenticate(next), &seen
}

func TestAuthenticateMissingTokenUnauthorized(t *testing.T) {
	handler, _ := authedRouter(NewService(newMemoryRepo(), 0))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing bearer token") {
		t.Fatalf("body = %q, want missing-token detail", rec.Body.String())
	}
}

func TestAuthenticateUnknownTokenUnauthorized(t *testing.T) {
	handler, _ := authedRouter(NewService(newMemoryRepo(), 0))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer deadbeef")
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateResolvesPrincipal(t *testing.T) {
	svc := NewService(newMemoryRepo(), 0)
	sess, err := svc.Create(context.Background(), "srodriguez", "compliance_us", "us", "192.168.1.100")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	handler, seen := authedRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+sess.ID)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen.UserID != "srodriguez" || seen.Role != "compliance_us" || seen.Region != "us" {
		t.Fatalf("principal = %+v, want srodriguez/compliance_us/us", *seen)
	}
	if seen.SessionID != sess.ID {
		t.Fatalf("principal session id mismatch")
	}
}
