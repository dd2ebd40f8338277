package triage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/adapter/gemini"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

// requestRepoMock is a hand-rolled mock of requestRepo.
type requestRepoMock struct {
	CreateFunc         func(ctx context.Context, req *domain.Request) (*domain.Request, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	ListByEmployeeFunc func(ctx context.Context, employeeID uuid.UUID) ([]*domain.Request, error)

	mu          sync.Mutex
	createCalls []*domain.Request
}

func (m *requestRepoMock) Create(ctx context.Context, req *domain.Request) (*domain.Request, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, req)
	m.mu.Unlock()
	return m.CreateFunc(ctx, req)
}

func (m *requestRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *requestRepoMock) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Request, error) {
	return m.ListByEmployeeFunc(ctx, employeeID)
}

func (m *requestRepoMock) CreateCalls() []*domain.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

// analyzerMock is a hand-rolled mock of analyzer.
type analyzerMock struct {
	EnabledFunc func() bool
	AnalyzeFunc func(ctx context.Context, text string, requestedType domain.RequestType, requesterRole domain.Role) (*gemini.Result, error)

	mu           sync.Mutex
	analyzeCalls int
}

func (m *analyzerMock) Enabled() bool {
	return m.EnabledFunc()
}

func (m *analyzerMock) Analyze(ctx context.Context, text string, requestedType domain.RequestType, requesterRole domain.Role) (*gemini.Result, error) {
	m.mu.Lock()
	m.analyzeCalls++
	m.mu.Unlock()
	return m.AnalyzeFunc(ctx, text, requestedType, requesterRole)
}

func (m *analyzerMock) AnalyzeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.analyzeCalls
}
