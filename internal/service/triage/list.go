package triage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
	"github.com/workdeskhq/workdesk-backend/pkg/ctxutil"
)

// ListMine returns the authenticated employee's requests, newest first.
func (s *Service) ListMine(ctx context.Context) ([]*domain.Request, error) {
	employeeID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	reqs, err := s.requests.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	return reqs, nil
}

// GetByID returns a single request. Employees may only read their own
// requests; managers may read any.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}

	role := domain.Role(ctxutil.RoleFromCtx(ctx))
	if req.EmployeeID != userID && !role.IsManager() {
		return nil, domain.ErrForbidden
	}

	return req, nil
}
