// Package review implements the manager side of the request lifecycle:
// the review queue and accept/reject decisions.
package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

type requestRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	ListAll(ctx context.Context) ([]*domain.Request, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, expectedStatus, newStatus domain.Status, reviewerID uuid.UUID, comment *string, reviewedAt time.Time) (bool, error)
}

type notificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
}

type profileRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Profile, error)
}

// Service provides review queue and decision operations.
type Service struct {
	requests      requestRepo
	notifications notificationRepo
	profiles      profileRepo
	escalateAfter time.Duration
	log           *slog.Logger

	now func() time.Time
}

// NewService creates a new review service. escalateAfter <= 0 selects
// domain.DefaultEscalationThreshold.
func NewService(
	log *slog.Logger,
	requests requestRepo,
	notifications notificationRepo,
	profiles profileRepo,
	escalateAfter time.Duration,
) *Service {
	if escalateAfter <= 0 {
		escalateAfter = domain.DefaultEscalationThreshold
	}
	return &Service{
		requests:      requests,
		notifications: notifications,
		profiles:      profiles,
		escalateAfter: escalateAfter,
		log:           log.With("service", "review"),
		now:           time.Now,
	}
}
