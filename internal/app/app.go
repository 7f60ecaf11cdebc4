// Package app wires configuration, storage, services, and transport into a
// running delegation server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/clinicore/delegation/internal/adapter/postgres"
	pgaudit "github.com/clinicore/delegation/internal/adapter/postgres/audit"
	pgbinding "github.com/clinicore/delegation/internal/adapter/postgres/binding"
	pgbotclient "github.com/clinicore/delegation/internal/adapter/postgres/botclient"
	pgclinician "github.com/clinicore/delegation/internal/adapter/postgres/clinician"
	pgdraft "github.com/clinicore/delegation/internal/adapter/postgres/draft"
	pgkillswitch "github.com/clinicore/delegation/internal/adapter/postgres/killswitch"
	"github.com/clinicore/delegation/internal/auth"
	"github.com/clinicore/delegation/internal/config"
	"github.com/clinicore/delegation/internal/metrics"
	"github.com/clinicore/delegation/internal/scopes"
	"github.com/clinicore/delegation/internal/service/binding"
	"github.com/clinicore/delegation/internal/service/botclient"
	"github.com/clinicore/delegation/internal/service/delegation"
	"github.com/clinicore/delegation/internal/service/draft"
	"github.com/clinicore/delegation/internal/service/killswitch"
	"github.com/clinicore/delegation/internal/service/tokencheck"
	"github.com/clinicore/delegation/internal/transport/middleware"
	"github.com/clinicore/delegation/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires the delegation services, and serves HTTP until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting delegation server",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.RunMigrations(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories.
	bindingRepo := pgbinding.New(pool)
	clinicianRepo := pgclinician.New(pool)
	clientRepo := pgbotclient.New(pool)
	draftRepo := pgdraft.New(pool)
	auditRepo := pgaudit.New(pool)
	killswitchRepo := pgkillswitch.New(pool)

	// Shared infrastructure.
	catalog := scopes.Default()
	tokenManager := auth.NewTokenManager(
		cfg.Delegation.JWTSecret,
		cfg.Delegation.JWTIssuer,
		cfg.Delegation.JWTAudience,
		cfg.Delegation.MaxTokenTTL,
	)
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Services.
	killswitchSvc := killswitch.NewService(logger, killswitchRepo, auditRepo, cfg.KillSwitch)
	txManager := postgres.NewTxManager(pool)
	botclientSvc := botclient.NewService(logger, clientRepo, catalog, auditRepo, txManager, cfg.Delegation)
	bindingSvc := binding.NewService(logger, bindingRepo, clinicianRepo, auditRepo, cfg.Binding)
	delegationSvc := delegation.NewService(
		logger, botclientSvc, bindingSvc, killswitchSvc, catalog, tokenManager, auditRepo, collector,
	)
	tokencheckSvc := tokencheck.NewService(logger, tokenManager, clientRepo, clinicianRepo, collector)
	draftSvc := draft.NewService(
		logger, draftRepo, clinicianRepo, clientRepo, auditRepo, collector, cfg.Draft, cfg.Promotion,
	)

	// Handlers.
	tokenHandler := rest.NewTokenHandler(delegationSvc, logger)
	actionsHandler := rest.NewActionsHandler(draftSvc, logger)
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle("POST /delegated-token",
		rateLimiter.Limit(cfg.Server.TokenEndpointRPM)(http.HandlerFunc(tokenHandler.Issue)))
	mux.Handle("POST /delegated/actions/{type}",
		middleware.DelegationAuth(tokencheckSvc)(http.HandlerFunc(actionsHandler.Create)))
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", metrics.Handler(registry))

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)(mux)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
