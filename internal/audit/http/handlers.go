package audithttp

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/datavault-fs/accessd/internal/audit"
	"github.com/datavault-fs/accessd/internal/platform/httpx"
)

// QueryService is the read-side contract for the audit trail.
type QueryService interface {
	Query(ctx context.Context, filters audit.Filters) ([]audit.Decision, error)
}

// Handler serves audit trail queries and exports.
type Handler struct {
	logger  *slog.Logger
	service QueryService
}

// NewHandler constructs an audit HTTP handler.
func NewHandler(logger *slog.Logger, service QueryService) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	decisions, err := h.service.Query(r.Context(), filters)
	if err != nil {
		h.logger.Error("query audit trail", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if decisions == nil {
		decisions = []audit.Decision{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"decisions": decisions})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	decisions, err := h.service.Query(r.Context(), filters)
	if err != nil {
		h.logger.Error("export audit trail", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	var buf bytes.Buffer
	if err := audit.WriteCSV(&buf, decisions); err != nil {
		h.logger.Error("encode csv", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="access-audit.csv"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("write csv", slog.Any("error", err))
	}
}

func parseFilters(r *http.Request) (audit.Filters, error) {
	q := r.URL.Query()
	filters := audit.Filters{UserID: q.Get("user_id")}
	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return audit.Filters{}, err
		}
		filters.From = from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return audit.Filters{}, err
		}
		filters.To = to
	}
	return filters, nil
}
