package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
	"github.com/workdeskhq/workdesk-backend/pkg/ctxutil"
)

func TestListMine(t *testing.T) {
	t.Parallel()

	employeeID := uuid.New()
	requests := &requestRepoMock{
		ListByEmployeeFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.Request, error) {
			if id != employeeID {
				t.Errorf("ListByEmployee called with %s, want %s", id, employeeID)
			}
			return []*domain.Request{{ID: uuid.New(), EmployeeID: id}}, nil
		},
	}

	svc := newTestService(requests, nil)

	got, err := svc.ListMine(employeeCtx(employeeID))
	if err != nil {
		t.Fatalf("ListMine: unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("ListMine returned %d requests, want 1", len(got))
	}
}

func TestListMine_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc := newTestService(&requestRepoMock{}, nil)

	_, err := svc.ListMine(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestGetByID_OwnerAllowed(t *testing.T) {
	t.Parallel()

	employeeID := uuid.New()
	reqID := uuid.New()
	requests := &requestRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
			return &domain.Request{ID: id, EmployeeID: employeeID}, nil
		},
	}

	svc := newTestService(requests, nil)

	got, err := svc.GetByID(employeeCtx(employeeID), reqID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.ID != reqID {
		t.Errorf("ID = %s, want %s", got.ID, reqID)
	}
}

func TestGetByID_StrangerForbidden(t *testing.T) {
	t.Parallel()

	requests := &requestRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
			return &domain.Request{ID: id, EmployeeID: uuid.New()}, nil
		},
	}

	svc := newTestService(requests, nil)

	_, err := svc.GetByID(employeeCtx(uuid.New()), uuid.New())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("got %v, want ErrForbidden", err)
	}
}

func TestGetByID_ManagerAllowed(t *testing.T) {
	t.Parallel()

	requests := &requestRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
			return &domain.Request{ID: id, EmployeeID: uuid.New()}, nil
		},
	}

	svc := newTestService(requests, nil)

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	ctx = ctxutil.WithRole(ctx, string(domain.RoleManager))

	if _, err := svc.GetByID(ctx, uuid.New()); err != nil {
		t.Errorf("manager GetByID: unexpected error: %v", err)
	}
}

func TestGetByID_NilID(t *testing.T) {
	t.Parallel()

	svc := newTestService(&requestRepoMock{}, nil)

	_, err := svc.GetByID(employeeCtx(uuid.New()), uuid.Nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}
