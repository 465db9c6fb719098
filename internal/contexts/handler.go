package contexts

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datavault-fs/accessd/internal/access"
	"github.com/datavault-fs/accessd/internal/platform/httpx"
	"github.com/datavault-fs/accessd/internal/shared"
)

// Handler serves the caller's accessible knowledge contexts.
type Handler struct{}

// NewHandler constructs a Handler instance.
func NewHandler() *Handler {
	return &Handler{}
}

// MountRoutes registers context routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	principal, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	role, _ := access.ParseRole(principal.Role)
	accessible := Accessible(role, access.Region(principal.Region))
	if accessible == nil {
		accessible = []Context{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"role":     principal.Role,
		"region":   principal.Region,
		"contexts": accessible,
	})
}
