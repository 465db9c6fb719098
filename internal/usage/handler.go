package usage

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/datavault-fs/accessd/internal/platform/httpx"
	"github.com/datavault-fs/accessd/internal/shared"
)

const defaultSummaryWindow = 30 * 24 * time.Hour

// Handler serves usage tracking and cost reporting endpoints.
type Handler struct {
	logger    *slog.Logger
	tracker   *Tracker
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, tracker *Tracker) *Handler {
	return &Handler{logger: logger, tracker: tracker, validator: validator.New()}
}

// MountRoutes registers usage routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/track", h.handleTrack)
	r.Get("/summary", h.handleSummary)
}

type trackRequest struct {
	Operation  string `json:"operation" validate:"required"`
	ResourceID string `json:"resource_id"`
	Query      string `json:"query"`
	Saved      bool   `json:"saved_by_optimization"`
}

type trackResponse struct {
	Operation string  `json:"operation"`
	Cost      float64 `json:"cost"`
	Saved     bool    `json:"saved_by_optimization"`
}

func (h *Handler) handleTrack(w http.ResponseWriter, r *http.Request) {
	principal, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	var req trackRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	op := Operation(req.Operation)
	if _, known := Cost(op); !known {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unknown operation")
		return
	}

	var (
		cost  float64
		saved = req.Saved
		err   error
	)
	if op == OpSearchQuery && req.Query != "" {
		cost, saved, err = h.tracker.TrackQuery(r.Context(), req.Query, req.ResourceID, principal.UserID)
	} else {
		cost, err = h.tracker.Track(r.Context(), op, req.ResourceID, principal.UserID, req.Saved)
	}
	if err != nil {
		h.logger.Error("track usage", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, trackResponse{Operation: string(op), Cost: cost, Saved: saved})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	window := defaultSummaryWindow
	if raw := r.URL.Query().Get("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "window must be a positive duration")
			return
		}
		window = parsed
	}
	summary, err := h.tracker.Summarize(r.Context(), window)
	if err != nil {
		h.logger.Error("summarize usage", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}
