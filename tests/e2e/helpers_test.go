//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/workdeskhq/workdesk-backend/internal/adapter/gemini"
	notificationrepo "github.com/workdeskhq/workdesk-backend/internal/adapter/postgres/notification"
	profilerepo "github.com/workdeskhq/workdesk-backend/internal/adapter/postgres/profile"
	requestrepo "github.com/workdeskhq/workdesk-backend/internal/adapter/postgres/request"
	"github.com/workdeskhq/workdesk-backend/internal/adapter/postgres/testhelper"
	authpkg "github.com/workdeskhq/workdesk-backend/internal/auth"
	"github.com/workdeskhq/workdesk-backend/internal/config"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
	"github.com/workdeskhq/workdesk-backend/internal/service/analytics"
	"github.com/workdeskhq/workdesk-backend/internal/service/notify"
	"github.com/workdeskhq/workdesk-backend/internal/service/review"
	"github.com/workdeskhq/workdesk-backend/internal/service/triage"
	"github.com/workdeskhq/workdesk-backend/internal/transport/middleware"
	"github.com/workdeskhq/workdesk-backend/internal/transport/rest"
)

const testJWTSecret = "e2e-test-secret-needs-32-characters!"

// testServer wraps the full-stack HTTP server for E2E tests. The gemini
// adapter runs disabled, so triage always takes the keyword fallback.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	requests := requestrepo.New(pool)
	notifications := notificationrepo.New(pool)
	profiles := profilerepo.New(pool)

	ai := gemini.NewClient(config.GeminiConfig{}, logger)

	triageSvc := triage.NewService(logger, requests, ai, 0)
	reviewSvc := review.NewService(logger, requests, notifications, profiles, 0)
	notifySvc := notify.NewService(logger, notifications, profiles)
	analyticsSvc := analytics.NewService(logger, requests, profiles, ai)

	jwtManager := authpkg.NewJWTManager(testJWTSecret, "workdesk", time.Hour)

	mux := http.NewServeMux()

	healthHandler := rest.NewHealthHandler(pool, "e2e")
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

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.Middleware(middleware.RequestID),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		}),
		middleware.Auth(jwtManager),
	)(mux)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &testServer{
		URL:    server.URL,
		Client: server.Client(),
		Pool:   pool,
		jwt:    jwtManager,
	}
}

// token mints an access token for the given profile.
func (s *testServer) token(t *testing.T, p domain.Profile) string {
	t.Helper()
	token, err := s.jwt.GenerateAccessToken(p.ID, p.Role.String())
	require.NoError(t, err)
	return token
}

// do sends a JSON request with optional auth and decodes the response body.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decodeJSON[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), "body: %s", raw)
	return v
}

func requireStatus(t *testing.T, want, got int, body []byte) {
	t.Helper()
	require.Equal(t, want, got, "unexpected status, body: %s", body)
}

func seedEmployee(t *testing.T, s *testServer) domain.Profile {
	t.Helper()
	return testhelper.SeedProfile(t, s.Pool, domain.RoleEmployee)
}

func seedManager(t *testing.T, s *testServer) domain.Profile {
	t.Helper()
	return testhelper.SeedProfile(t, s.Pool, domain.RoleManager)
}
