// Package triage implements request intake: validation, classification,
// and persistence of new workplace requests.
package triage

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/adapter/gemini"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

// DefaultMaxReasonLength bounds the free-text reason when no limit is configured.
const DefaultMaxReasonLength = 4000

type requestRepo interface {
	Create(ctx context.Context, req *domain.Request) (*domain.Request, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Request, error)
}

// analyzer is the external classification client. Enabled reports whether the
// client is configured at all; Analyze may still fail at runtime.
type analyzer interface {
	Enabled() bool
	Analyze(ctx context.Context, text string, requestedType domain.RequestType, requesterRole domain.Role) (*gemini.Result, error)
}

// Service provides request intake operations.
type Service struct {
	requests  requestRepo
	ai        analyzer
	maxReason int
	log       *slog.Logger

	now func() time.Time
}

// NewService creates a new triage service. maxReasonLength <= 0 selects
// DefaultMaxReasonLength.
func NewService(
	log *slog.Logger,
	requests requestRepo,
	ai analyzer,
	maxReasonLength int,
) *Service {
	if maxReasonLength <= 0 {
		maxReasonLength = DefaultMaxReasonLength
	}
	return &Service{
		requests:  requests,
		ai:        ai,
		maxReason: maxReasonLength,
		log:       log.With("service", "triage"),
		now:       time.Now,
	}
}
