// Package notify implements notification delivery and the employee's
// notification feed.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

type notificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, employeeID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, employeeID uuid.UUID, readAt time.Time) error
}

type profileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// Service provides notification operations.
type Service struct {
	notifications notificationRepo
	profiles      profileRepo
	log           *slog.Logger

	now func() time.Time
}

// NewService creates a new notify service.
func NewService(
	log *slog.Logger,
	notifications notificationRepo,
	profiles profileRepo,
) *Service {
	return &Service{
		notifications: notifications,
		profiles:      profiles,
		log:           log.With("service", "notify"),
		now:           time.Now,
	}
}
