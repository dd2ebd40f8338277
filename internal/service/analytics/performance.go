package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/adapter/gemini"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
	"github.com/workdeskhq/workdesk-backend/pkg/ctxutil"
)

// EmployeeSummary pairs an employee with their aggregated request counts.
type EmployeeSummary struct {
	Profile *domain.Profile
	Stats   domain.RequestStats
}

// PerformanceReport is the manager's workforce overview. Suggestions is empty
// whenever AI analysis is disabled or failed; the stats are always present.
type PerformanceReport struct {
	Employees   []EmployeeSummary
	Suggestions []gemini.Suggestion
}

// Performance aggregates every employee's request history and, when the AI
// client is available, asks it for salary-review and notice suggestions.
// Suggestion failure degrades to an empty list, never to an error.
func (s *Service) Performance(ctx context.Context) (*PerformanceReport, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.Role(ctxutil.RoleFromCtx(ctx)).IsManager() {
		return nil, domain.ErrForbidden
	}

	employees, err := s.profiles.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	reqs, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	summaries := make([]EmployeeSummary, len(employees))
	index := make(map[uuid.UUID]*EmployeeSummary, len(employees))
	for i, p := range employees {
		summaries[i] = EmployeeSummary{Profile: p}
		index[p.ID] = &summaries[i]
	}

	for _, r := range reqs {
		summary, ok := index[r.EmployeeID]
		if !ok {
			// Requests from managers or deleted profiles stay out of the report.
			continue
		}
		summary.Stats.Total++
		switch r.Status {
		case domain.StatusAccepted:
			summary.Stats.Accepted++
		case domain.StatusRejected:
			summary.Stats.Rejected++
		default:
			summary.Stats.Pending++
		}
		if r.Priority == domain.PriorityHigh {
			summary.Stats.HighPriority++
		}
	}

	return &PerformanceReport{
		Employees:   summaries,
		Suggestions: s.suggest(ctx, summaries),
	}, nil
}

// MyStats returns the authenticated employee's own aggregate counts.
func (s *Service) MyStats(ctx context.Context) (*domain.RequestStats, error) {
	employeeID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	stats, err := s.requests.StatsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("request stats: %w", err)
	}

	return stats, nil
}

func (s *Service) suggest(ctx context.Context, summaries []EmployeeSummary) []gemini.Suggestion {
	if s.ai == nil || !s.ai.Enabled() || len(summaries) == 0 {
		return []gemini.Suggestion{}
	}

	stats := make([]gemini.EmployeeStats, len(summaries))
	for i, e := range summaries {
		stats[i] = gemini.EmployeeStats{
			ID:            e.Profile.ID,
			FullName:      e.Profile.FullName,
			TotalRequests: e.Stats.Total,
			Accepted:      e.Stats.Accepted,
			Rejected:      e.Stats.Rejected,
			Pending:       e.Stats.Pending,
		}
	}

	suggestions, err := s.ai.SuggestActions(ctx, stats)
	if err != nil {
		s.log.WarnContext(ctx, "ai suggestions unavailable", slog.String("error", err.Error()))
		return []gemini.Suggestion{}
	}

	return suggestions
}
