package review

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

// requestRepoMock is a hand-rolled mock of requestRepo.
type requestRepoMock struct {
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	ListAllFunc      func(ctx context.Context) ([]*domain.Request, error)
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, expectedStatus, newStatus domain.Status, reviewerID uuid.UUID, comment *string, reviewedAt time.Time) (bool, error)
}

func (m *requestRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *requestRepoMock) ListAll(ctx context.Context) ([]*domain.Request, error) {
	return m.ListAllFunc(ctx)
}

func (m *requestRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, expectedStatus, newStatus domain.Status, reviewerID uuid.UUID, comment *string, reviewedAt time.Time) (bool, error) {
	return m.UpdateStatusFunc(ctx, id, expectedStatus, newStatus, reviewerID, comment, reviewedAt)
}

// notificationRepoMock is a hand-rolled mock of notificationRepo.
type notificationRepoMock struct {
	CreateFunc func(ctx context.Context, n *domain.Notification) (*domain.Notification, error)

	mu          sync.Mutex
	createCalls []*domain.Notification
}

func (m *notificationRepoMock) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, n)
	m.mu.Unlock()
	return m.CreateFunc(ctx, n)
}

func (m *notificationRepoMock) CreateCalls() []*domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

// profileRepoMock is a hand-rolled mock of profileRepo.
type profileRepoMock struct {
	GetByIDsFunc func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Profile, error)
}

func (m *profileRepoMock) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Profile, error) {
	return m.GetByIDsFunc(ctx, ids)
}
