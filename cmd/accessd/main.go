package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/datavault-fs/accessd/internal/access"
	"github.com/datavault-fs/accessd/internal/app"
	"github.com/datavault-fs/accessd/internal/audit"
	audithttp "github.com/datavault-fs/accessd/internal/audit/http"
	"github.com/datavault-fs/accessd/internal/contexts"
	"github.com/datavault-fs/accessd/internal/identity"
	"github.com/datavault-fs/accessd/internal/observability"
	"github.com/datavault-fs/accessd/internal/platform/cache"
	"github.com/datavault-fs/accessd/internal/platform/db"
	"github.com/datavault-fs/accessd/internal/session"
	"github.com/datavault-fs/accessd/internal/usage"
	"github.com/datavault-fs/accessd/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	schema := append(identity.Schema(), session.Schema()...)
	schema = append(schema, audit.Schema()...)
	schema = append(schema, usage.Schema()...)
	if err := db.EnsureSchema(ctx, pool, schema...); err != nil {
		logger.Error("ensure schema", slog.Any("error", err))
		os.Exit(1)
	}

	var redisClient *redis.Client
	if client, err := cache.New(ctx, cfg.RedisAddr); err != nil {
		logger.Warn("redis unavailable, query cache disabled", slog.Any("error", err))
	} else {
		redisClient = client
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	auditRepo := audit.NewRepository(pool)
	auditService := audit.NewService(auditRepo)
	auditHandler := audithttp.NewHandler(logger, auditService)

	metrics := observability.NewMetrics()

	validator := access.NewValidator(access.DefaultMatrix(), auditService)
	validator.Observe(metrics)
	accessHandler := access.NewHandler(logger, validator)
	accessMiddleware := access.Middleware{Validator: validator, Logger: logger}

	sessionRepo := session.NewRepository(pool)
	sessionService := session.NewService(sessionRepo, cfg.SessionTTL)
	sessionMiddleware := session.Middleware{Service: sessionService, Logger: logger}

	identityRepo := identity.NewRepository(pool)
	identityService := identity.NewService(identityRepo)
	identityHandler := identity.NewHandler(logger, identityService, sessionService)

	contextsHandler := contexts.NewHandler()

	usageRepo := usage.NewRepository(pool)
	usageCache := usage.NewQueryCache(redisClient, cfg.UsageCacheTTL)
	usageTracker := usage.NewTracker(usageRepo, usageCache)
	usageHandler := usage.NewHandler(logger, usageTracker)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, jobsClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		SessionMiddleware: sessionMiddleware,
		AccessMiddleware:  accessMiddleware,
		IdentityHandler:   identityHandler,
		AccessHandler:     accessHandler,
		AuditHandler:      auditHandler,
		ContextsHandler:   contextsHandler,
		UsageHandler:      usageHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("http server", slog.Any("error", err))
		os.Exit(1)
	}
}
