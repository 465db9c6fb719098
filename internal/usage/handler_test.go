package usage

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/datavault-fs/accessd/internal/shared"
)

func newTestHandler(repo Repository, cache *QueryCache) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, NewTracker(repo, cache))
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func trackReq(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/track", strings.NewReader(body))
	principal := shared.Principal{UserID: "lthompson", Role: "analyst"}
	return req.WithContext(shared.ContextWithPrincipal(req.Context(), principal))
}

func TestHandleTrackInsertsRecord(t *testing.T) {
	repo := &stubUsageRepo{}
	router := newTestHandler(repo, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, trackReq(`{"operation":"api_call","resource_id":"kb-main"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.records, 1)
	require.Equal(t, OpAPICall, repo.records[0].Operation)
	require.Equal(t, "lthompson", repo.records[0].UserID)
	require.Contains(t, rec.Body.String(), `"cost":0.0001`)
}

func TestHandleTrackRepeatQuerySaved(t *testing.T) {
	cache, cleanup := newTestCache(t)
	defer cleanup()
	repo := &stubUsageRepo{}
	router := newTestHandler(repo, cache)

	body := `{"operation":"search_query","query":"quarterly revenue trend"}`
	first := httptest.NewRecorder()
	router.ServeHTTP(first, trackReq(body))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, trackReq(body))

	require.Equal(t, http.StatusCreated, first.Code)
	require.Contains(t, first.Body.String(), `"saved_by_optimization":false`)
	require.Equal(t, http.StatusCreated, second.Code)
	require.Contains(t, second.Body.String(), `"saved_by_optimization":true`)
	require.Len(t, repo.records, 2)
}

func TestHandleTrackRejectsUnknownOperation(t *testing.T) {
	router := newTestHandler(&stubUsageRepo{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, trackReq(`{"operation":"teleportation"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTrackRequiresPrincipal(t *testing.T) {
	router := newTestHandler(&stubUsageRepo{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/track", strings.NewReader(`{"operation":"api_call"}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
