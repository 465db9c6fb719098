package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/datavault-fs/accessd/internal/access"
	audithttp "github.com/datavault-fs/accessd/internal/audit/http"
	"github.com/datavault-fs/accessd/internal/contexts"
	"github.com/datavault-fs/accessd/internal/identity"
	"github.com/datavault-fs/accessd/internal/observability"
	"github.com/datavault-fs/accessd/internal/session"
	"github.com/datavault-fs/accessd/internal/usage"
	"github.com/datavault-fs/accessd/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	SessionMiddleware session.Middleware
	AccessMiddleware  access.Middleware
	IdentityHandler   *identity.Handler
	AccessHandler     *access.Handler
	AuditHandler      *audithttp.Handler
	ContextsHandler   *contexts.Handler
	UsageHandler      *usage.Handler
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with accessd defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		if params.IdentityHandler != nil {
			api.Route("/auth", params.IdentityHandler.MountPublicRoutes)
		}

		api.Group(func(authed chi.Router) {
			authed.Use(params.SessionMiddleware.Authenticate)

			if params.IdentityHandler != nil {
				authed.Route("/identity", params.IdentityHandler.MountRoutes)
			}
			if params.AccessHandler != nil {
				authed.Route("/access", params.AccessHandler.MountRoutes)
			}
			if params.ContextsHandler != nil {
				authed.Route("/contexts", params.ContextsHandler.MountRoutes)
			}
			if params.AuditHandler != nil {
				authed.Group(func(gr chi.Router) {
					gr.Use(params.AccessMiddleware.Require(access.ActionAdmin, "view_audit"))
					gr.Route("/audit", params.AuditHandler.MountRoutes)
				})
			}
			if params.UsageHandler != nil {
				authed.Group(func(gr chi.Router) {
					gr.Use(params.AccessMiddleware.Require(access.ActionAdmin, "view_audit"))
					gr.Route("/usage", params.UsageHandler.MountRoutes)
				})
			}
			if params.JobHandler != nil {
				authed.Group(func(gr chi.Router) {
					gr.Use(params.AccessMiddleware.Require(access.ActionAdmin, "manage_users"))
					gr.Route("/jobs", params.JobHandler.MountRoutes)
				})
			}
		})
	})

	return r
}
