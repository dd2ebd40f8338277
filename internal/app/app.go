package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/adapter/gemini"
	"github.com/workdeskhq/workdesk-backend/internal/adapter/postgres"
	notificationrepo "github.com/workdeskhq/workdesk-backend/internal/adapter/postgres/notification"
	profilerepo "github.com/workdeskhq/workdesk-backend/internal/adapter/postgres/profile"
	requestrepo "github.com/workdeskhq/workdesk-backend/internal/adapter/postgres/request"
	"github.com/workdeskhq/workdesk-backend/internal/auth"
	"github.com/workdeskhq/workdesk-backend/internal/config"
	"github.com/workdeskhq/workdesk-backend/internal/service/analytics"
	"github.com/workdeskhq/workdesk-backend/internal/service/notify"
	"github.com/workdeskhq/workdesk-backend/internal/service/review"
	"github.com/workdeskhq/workdesk-backend/internal/service/triage"
	"github.com/workdeskhq/workdesk-backend/internal/transport/middleware"
	"github.com/workdeskhq/workdesk-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires the services and HTTP transport, and serves until the
// context is canceled. Shutdown is graceful within the configured timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	requests := requestrepo.New(pool)
	notifications := notificationrepo.New(pool)
	profiles := profilerepo.New(pool)

	ai := gemini.NewClient(cfg.Gemini, logger)
	if !ai.Enabled() {
		logger.Warn("gemini disabled, classification uses keyword fallback only")
	}

	triageSvc := triage.NewService(logger, requests, ai, cfg.Triage.MaxReasonLength)
	reviewSvc := review.NewService(logger, requests, notifications, profiles, cfg.Triage.EscalationAfter)
	notifySvc := notify.NewService(logger, notifications, profiles)
	analyticsSvc := analytics.NewService(logger, requests, profiles, ai)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTTL)

	mux := http.NewServeMux()

	healthHandler := rest.NewHealthHandler(pool, BuildVersion())
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	requestHandler := rest.NewRequestHandler(triageSvc, reviewSvc, logger)
	mux.HandleFunc("POST /api/requests", requestHandler.Submit)
	mux.HandleFunc("GET /api/requests", requestHandler.ListMine)
	mux.HandleFunc("GET /api/requests/queue", requestHandler.Queue)
	mux.HandleFunc("GET /api/requests/{id}", requestHandler.Get)
	mux.HandleFunc("POST /api/requests/{id}/decision", requestHandler.Decide)

	notificationHandler := rest.NewNotificationHandler(notifySvc, logger)
	mux.HandleFunc("GET /api/notifications", notificationHandler.ListMine)
	mux.HandleFunc("POST /api/notifications", notificationHandler.CreateNotice)
	mux.HandleFunc("GET /api/notifications/unread-count", notificationHandler.UnreadCount)
	mux.HandleFunc("PATCH /api/notifications/{id}/read", notificationHandler.MarkRead)

	analyticsHandler := rest.NewAnalyticsHandler(analyticsSvc, logger)
	mux.HandleFunc("GET /api/analytics/performance", analyticsHandler.Performance)
	mux.HandleFunc("GET /api/analytics/my-stats", analyticsHandler.MyStats)

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.Middleware(middleware.RequestID),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimit),
		middleware.Auth(jwtManager),
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
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
