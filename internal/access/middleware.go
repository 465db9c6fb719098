package access

import (
	"log/slog"
	"net/http"

	"github.com/datavault-fs/accessd/internal/platform/httpx"
	"github.com/datavault-fs/accessd/internal/shared"
)

// Middleware guards HTTP routes with permission-matrix checks.
type Middleware struct {
	Validator *Validator
	Logger    *slog.Logger
}

// Require ensures the current principal may perform action on resource.
// Unauthenticated requests are rejected; denied decisions return 403 with
// the decision reason. Either way the attempt lands in the audit trail.
func (m Middleware) Require(action Action, resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := shared.PrincipalFromContext(r.Context())
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
				return
			}
			role, _ := ParseRole(principal.Role)
			decision, err := m.Validator.ValidateAccess(r.Context(), principal.UserID, action, resource, role)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("access check", slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if !decision.Allowed {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", decision.Reason)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
