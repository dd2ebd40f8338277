package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
	"github.com/workdeskhq/workdesk-backend/pkg/ctxutil"
)

// ListMine returns the authenticated employee's notifications, newest first.
func (s *Service) ListMine(ctx context.Context) ([]*domain.Notification, error) {
	employeeID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	ns, err := s.notifications.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return ns, nil
}

// UnreadCount returns the authenticated employee's unread notification count.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	employeeID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	count, err := s.notifications.CountUnread(ctx, employeeID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead marks one of the caller's notifications as read. Marking an
// already-read notification succeeds and keeps the original read time.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	employeeID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.notifications.MarkRead(ctx, id, employeeID, s.now().UTC()); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	return nil
}
