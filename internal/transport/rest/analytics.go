package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
	"github.com/workdeskhq/workdesk-backend/internal/service/analytics"
)

// analyticsService defines the minimal interface needed by AnalyticsHandler.
type analyticsService interface {
	Performance(ctx context.Context) (*analytics.PerformanceReport, error)
	MyStats(ctx context.Context) (*domain.RequestStats, error)
}

// AnalyticsHandler serves the analytics REST endpoints.
type AnalyticsHandler struct {
	svc analyticsService
	log *slog.Logger
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(svc analyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, log: logger.With("handler", "analytics")}
}

type statsResponse struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Accepted     int `json:"accepted"`
	Rejected     int `json:"rejected"`
	HighPriority int `json:"highPriority"`
}

type employeeSummaryResponse struct {
	ID       string        `json:"id"`
	FullName string        `json:"fullName"`
	Email    string        `json:"email"`
	Stats    statsResponse `json:"stats"`
}

type suggestionResponse struct {
	EmployeeID string `json:"employeeId"`
	Suggestion string `json:"suggestion"`
	Reason     string `json:"reason,omitempty"`
}

type performanceResponse struct {
	Employees   []employeeSummaryResponse `json:"employees"`
	Suggestions []suggestionResponse      `json:"suggestions"`
}

// Performance handles GET /api/analytics/performance. Manager only.
func (h *AnalyticsHandler) Performance(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Performance(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := performanceResponse{
		Employees:   make([]employeeSummaryResponse, 0, len(report.Employees)),
		Suggestions: make([]suggestionResponse, 0, len(report.Suggestions)),
	}
	for _, emp := range report.Employees {
		resp.Employees = append(resp.Employees, employeeSummaryResponse{
			ID:       emp.Profile.ID.String(),
			FullName: emp.Profile.FullName,
			Email:    emp.Profile.Email,
			Stats:    toStatsResponse(emp.Stats),
		})
	}
	for _, sug := range report.Suggestions {
		suggestion := "none"
		if sug.Suggestion != "" {
			suggestion = sug.Suggestion.String()
		}
		resp.Suggestions = append(resp.Suggestions, suggestionResponse{
			EmployeeID: sug.EmployeeID.String(),
			Suggestion: suggestion,
			Reason:     sug.Reason,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// MyStats handles GET /api/analytics/my-stats.
func (h *AnalyticsHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.MyStats(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatsResponse(*stats))
}

func toStatsResponse(s domain.RequestStats) statsResponse {
	return statsResponse{
		Total:        s.Total,
		Pending:      s.Pending,
		Accepted:     s.Accepted,
		Rejected:     s.Rejected,
		HighPriority: s.HighPriority,
	}
}
