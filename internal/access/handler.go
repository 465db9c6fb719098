package access

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/datavault-fs/accessd/internal/platform/httpx"
	"github.com/datavault-fs/accessd/internal/shared"
)

// Handler exposes the access check endpoint.
type Handler struct {
	logger    *slog.Logger
	service   *Validator
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Validator) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers access routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/check", h.handleCheck)
}

type checkRequest struct {
	Action   string `json:"action" validate:"required,oneof=read write delete export admin"`
	Resource string `json:"resource" validate:"required"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	principal, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	var req checkRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	action, _ := ParseAction(req.Action)
	role, _ := ParseRole(principal.Role)
	decision, err := h.service.ValidateAccess(r.Context(), principal.UserID, action, req.Resource, role)
	if err != nil {
		h.logger.Error("validate access", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, decision)
}
