package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
	"github.com/workdeskhq/workdesk-backend/pkg/ctxutil"
)

// Decide moves a pending request to Accepted or Rejected. The transition is a
// conditional update: if the request already left Pending, Decide returns
// domain.ErrConflict and the stored decision stands. On success the employee
// is notified best-effort; a notification failure is logged, never propagated,
// and the decision is not rolled back.
func (s *Service) Decide(ctx context.Context, input DecideInput) (*domain.Request, error) {
	reviewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.Role(ctxutil.RoleFromCtx(ctx)).IsManager() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	comment := trimOrNil(input.Comment)
	reviewedAt := s.now().UTC()

	updated, err := s.requests.UpdateStatus(ctx, input.RequestID, domain.StatusPending, input.Decision, reviewerID, comment, reviewedAt)
	if err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("request %s: already decided: %w", input.RequestID, domain.ErrConflict)
	}

	req, err := s.requests.GetByID(ctx, input.RequestID)
	if err != nil {
		return nil, fmt.Errorf("get decided request: %w", err)
	}

	s.log.InfoContext(ctx, "request decided",
		slog.String("request_id", req.ID.String()),
		slog.String("reviewer_id", reviewerID.String()),
		slog.String("decision", string(input.Decision)),
	)

	s.notifyDecision(ctx, req, reviewerID)

	return req, nil
}

// notifyDecision delivers the decision outcome to the requester.
// Failures are logged and swallowed.
func (s *Service) notifyDecision(ctx context.Context, req *domain.Request, reviewerID uuid.UUID) {
	notifType := domain.NotificationNotice
	if req.Status == domain.StatusAccepted {
		notifType = domain.NotificationRecognition
	}

	message := fmt.Sprintf("Your %s has been %s.", strings.ToLower(string(req.Type)), strings.ToLower(string(req.Status)))
	if req.Comment != nil {
		message += " Comment: " + *req.Comment
	}

	_, err := s.notifications.Create(ctx, &domain.Notification{
		ID:         uuid.New(),
		EmployeeID: req.EmployeeID,
		Type:       notifType,
		Title:      "Request " + string(req.Status),
		Message:    message,
		CreatedBy:  reviewerID,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		s.log.WarnContext(ctx, "decision notification failed",
			slog.String("request_id", req.ID.String()),
			slog.String("employee_id", req.EmployeeID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
