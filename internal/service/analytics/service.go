// Package analytics implements workforce reporting: per-employee request
// statistics and optional AI-backed HR action suggestions.
package analytics

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/adapter/gemini"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

type requestRepo interface {
	ListAll(ctx context.Context) ([]*domain.Request, error)
	StatsByEmployee(ctx context.Context, employeeID uuid.UUID) (*domain.RequestStats, error)
}

type profileRepo interface {
	ListEmployees(ctx context.Context) ([]*domain.Profile, error)
}

// suggester produces HR action hints from aggregated stats.
type suggester interface {
	Enabled() bool
	SuggestActions(ctx context.Context, stats []gemini.EmployeeStats) ([]gemini.Suggestion, error)
}

// Service provides reporting operations.
type Service struct {
	requests requestRepo
	profiles profileRepo
	ai       suggester
	log      *slog.Logger
}

// NewService creates a new analytics service.
func NewService(
	log *slog.Logger,
	requests requestRepo,
	profiles profileRepo,
	ai suggester,
) *Service {
	return &Service{
		requests: requests,
		profiles: profiles,
		ai:       ai,
		log:      log.With("service", "analytics"),
	}
}
