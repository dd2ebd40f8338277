//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAuthorization verifies role and ownership boundaries across the API.
func TestAuthorization(t *testing.T) {
	srv := newTestServer(t)

	employee := seedEmployee(t, srv)
	other := seedEmployee(t, srv)
	manager := seedManager(t, srv)
	employeeToken := srv.token(t, employee)
	otherToken := srv.token(t, other)
	managerToken := srv.token(t, manager)

	// Anonymous requests are rejected by the services, not the middleware.
	status, raw := srv.do(t, http.MethodGet, "/api/requests", "", nil)
	requireStatus(t, http.StatusUnauthorized, status, raw)

	// A garbage token is rejected by the middleware.
	status, raw = srv.do(t, http.MethodGet, "/api/requests", "not-a-jwt", nil)
	requireStatus(t, http.StatusUnauthorized, status, raw)

	// Submit as the first employee.
	status, raw = srv.do(t, http.MethodPost, "/api/requests", employeeToken, map[string]any{
		"type":   "Fund Request",
		"reason": "New monitors for the team, budget attached.",
	})
	requireStatus(t, http.StatusCreated, status, raw)
	created := decodeJSON[requestBody](t, raw)

	// The owner and the manager can read it; a stranger cannot.
	status, raw = srv.do(t, http.MethodGet, "/api/requests/"+created.ID, employeeToken, nil)
	requireStatus(t, http.StatusOK, status, raw)
	status, raw = srv.do(t, http.MethodGet, "/api/requests/"+created.ID, managerToken, nil)
	requireStatus(t, http.StatusOK, status, raw)
	status, raw = srv.do(t, http.MethodGet, "/api/requests/"+created.ID, otherToken, nil)
	requireStatus(t, http.StatusForbidden, status, raw)

	// Manager-only surfaces reject employees.
	status, raw = srv.do(t, http.MethodGet, "/api/requests/queue", employeeToken, nil)
	requireStatus(t, http.StatusForbidden, status, raw)
	status, raw = srv.do(t, http.MethodPost, "/api/requests/"+created.ID+"/decision", employeeToken, map[string]any{
		"decision": "Accepted",
	})
	requireStatus(t, http.StatusForbidden, status, raw)
	status, raw = srv.do(t, http.MethodPost, "/api/notifications", employeeToken, map[string]any{
		"employeeId": other.ID.String(),
		"type":       "notice",
		"message":    "x",
	})
	requireStatus(t, http.StatusForbidden, status, raw)
	status, raw = srv.do(t, http.MethodGet, "/api/analytics/performance", employeeToken, nil)
	requireStatus(t, http.StatusForbidden, status, raw)

	// Notices cannot target managers.
	status, raw = srv.do(t, http.MethodPost, "/api/notifications", managerToken, map[string]any{
		"employeeId": manager.ID.String(),
		"type":       "notice",
		"message":    "self-notice",
	})
	requireStatus(t, http.StatusBadRequest, status, raw)

	// A foreign notification cannot be marked read; ownership is concealed
	// as not-found.
	status, raw = srv.do(t, http.MethodPost, "/api/notifications", managerToken, map[string]any{
		"employeeId": other.ID.String(),
		"type":       "notice",
		"message":    "please see me",
	})
	requireStatus(t, http.StatusCreated, status, raw)
	notice := decodeJSON[notificationBody](t, raw)

	status, raw = srv.do(t, http.MethodPatch, "/api/notifications/"+notice.ID+"/read", employeeToken, nil)
	requireStatus(t, http.StatusNotFound, status, raw)
}

// TestAnalytics verifies the manager report aggregates per employee and the
// employee self-stats endpoint works.
func TestAnalytics(t *testing.T) {
	srv := newTestServer(t)

	employee := seedEmployee(t, srv)
	manager := seedManager(t, srv)
	employeeToken := srv.token(t, employee)
	managerToken := srv.token(t, manager)

	for _, reason := range []string{
		"Requesting reimbursement for travel expenses.",
		"Need budget for the conference, urgent.",
	} {
		status, raw := srv.do(t, http.MethodPost, "/api/requests", employeeToken, map[string]any{
			"type":   "Fund Request",
			"reason": reason,
		})
		requireStatus(t, http.StatusCreated, status, raw)
	}

	status, raw := srv.do(t, http.MethodGet, "/api/analytics/my-stats", employeeToken, nil)
	requireStatus(t, http.StatusOK, status, raw)
	stats := decodeJSON[map[string]int](t, raw)
	require.Equal(t, 2, stats["total"])
	require.Equal(t, 2, stats["pending"])

	type performance struct {
		Employees []struct {
			ID    string         `json:"id"`
			Stats map[string]int `json:"stats"`
		} `json:"employees"`
		Suggestions []any `json:"suggestions"`
	}

	status, raw = srv.do(t, http.MethodGet, "/api/analytics/performance", managerToken, nil)
	requireStatus(t, http.StatusOK, status, raw)
	report := decodeJSON[performance](t, raw)

	var found bool
	for _, emp := range report.Employees {
		if emp.ID == employee.ID.String() {
			found = true
			require.Equal(t, 2, emp.Stats["total"])
		}
	}
	require.True(t, found, "employee missing from report")
	require.NotNil(t, report.Suggestions, "suggestions must degrade to empty, not null")
}
