package triage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
	"github.com/workdeskhq/workdesk-backend/pkg/ctxutil"
)

// Submit validates, classifies, and persists a new request on behalf of the
// authenticated employee. The request is always created: classification
// failure degrades to the keyword fallback, never to an error.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.Request, error) {
	employeeID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(input.Reason)
	if len(reason) > s.maxReason {
		return nil, domain.NewValidationError("reason", fmt.Sprintf("max %d characters", s.maxReason))
	}

	role := domain.Role(ctxutil.RoleFromCtx(ctx))

	category, priority, insights := s.classify(ctx, reason, input.Type, role)

	req, err := s.requests.Create(ctx, &domain.Request{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Type:       input.Type,
		FromDate:   input.FromDate,
		ToDate:     input.ToDate,
		Reason:     reason,
		Category:   category,
		Priority:   priority,
		Status:     domain.StatusPending,
		Insights:   insights,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.log.InfoContext(ctx, "request submitted",
		slog.String("employee_id", employeeID.String()),
		slog.String("request_id", req.ID.String()),
		slog.String("category", string(req.Category)),
		slog.String("priority", string(req.Priority)),
	)

	return req, nil
}
