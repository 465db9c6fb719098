package session

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/datavault-fs/accessd/internal/platform/httpx"
	"github.com/datavault-fs/accessd/internal/shared"
)

// Middleware resolves bearer tokens into a request principal.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// Authenticate requires a valid session token and stores the principal in
// the request context. Expired and invalidated sessions look identical to
// unknown tokens: the caller gets 401 and must log in again.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			httpx.RespondError(w, fmt.Errorf("%w: missing bearer token", shared.ErrUnauthenticated))
			return
		}
		sess, err := m.Service.Validate(r.Context(), token)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				httpx.RespondError(w, fmt.Errorf("%w: session expired or unknown", shared.ErrUnauthenticated))
				return
			}
			if m.Logger != nil {
				m.Logger.Error("validate session", slog.Any("error", err))
			}
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			return
		}
		principal := shared.Principal{
			UserID:    sess.UserID,
			Role:      sess.Role,
			Region:    sess.Region,
			SessionID: sess.ID,
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), principal)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
