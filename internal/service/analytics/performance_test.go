package analytics

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/adapter/gemini"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
	"github.com/workdeskhq/workdesk-backend/pkg/ctxutil"
)

type requestRepoMock struct {
	ListAllFunc         func(ctx context.Context) ([]*domain.Request, error)
	StatsByEmployeeFunc func(ctx context.Context, employeeID uuid.UUID) (*domain.RequestStats, error)
}

func (m *requestRepoMock) ListAll(ctx context.Context) ([]*domain.Request, error) {
	return m.ListAllFunc(ctx)
}

func (m *requestRepoMock) StatsByEmployee(ctx context.Context, employeeID uuid.UUID) (*domain.RequestStats, error) {
	return m.StatsByEmployeeFunc(ctx, employeeID)
}

type profileRepoMock struct {
	ListEmployeesFunc func(ctx context.Context) ([]*domain.Profile, error)
}

func (m *profileRepoMock) ListEmployees(ctx context.Context) ([]*domain.Profile, error) {
	return m.ListEmployeesFunc(ctx)
}

type suggesterMock struct {
	EnabledFunc        func() bool
	SuggestActionsFunc func(ctx context.Context, stats []gemini.EmployeeStats) ([]gemini.Suggestion, error)
}

func (m *suggesterMock) Enabled() bool { return m.EnabledFunc() }

func (m *suggesterMock) SuggestActions(ctx context.Context, stats []gemini.EmployeeStats) ([]gemini.Suggestion, error) {
	return m.SuggestActionsFunc(ctx, stats)
}

func newTestService(requests *requestRepoMock, profiles *profileRepoMock, ai *suggesterMock) *Service {
	s := &Service{
		requests: requests,
		profiles: profiles,
		log:      slog.Default(),
	}
	if ai != nil {
		s.ai = ai
	}
	return s
}

func managerCtx(id uuid.UUID) context.Context {
	ctx := ctxutil.WithUserID(context.Background(), id)
	return ctxutil.WithRole(ctx, string(domain.RoleManager))
}

func employeeCtx(id uuid.UUID) context.Context {
	ctx := ctxutil.WithUserID(context.Background(), id)
	return ctxutil.WithRole(ctx, string(domain.RoleEmployee))
}

func TestPerformance_Aggregation(t *testing.T) {
	t.Parallel()

	alice := &domain.Profile{ID: uuid.New(), FullName: "Alice", Role: domain.RoleEmployee}
	bob := &domain.Profile{ID: uuid.New(), FullName: "Bob", Role: domain.RoleEmployee}
	managerID := uuid.New()

	requests := &requestRepoMock{
		ListAllFunc: func(ctx context.Context) ([]*domain.Request, error) {
			return []*domain.Request{
				{EmployeeID: alice.ID, Status: domain.StatusAccepted, Priority: domain.PriorityHigh},
				{EmployeeID: alice.ID, Status: domain.StatusRejected, Priority: domain.PriorityLow},
				{EmployeeID: alice.ID, Status: domain.StatusPending, Priority: domain.PriorityMedium},
				// Request from someone outside the employee directory is skipped.
				{EmployeeID: managerID, Status: domain.StatusPending, Priority: domain.PriorityHigh},
			}, nil
		},
	}
	profiles := &profileRepoMock{
		ListEmployeesFunc: func(ctx context.Context) ([]*domain.Profile, error) {
			return []*domain.Profile{alice, bob}, nil
		},
	}

	svc := newTestService(requests, profiles, nil)

	report, err := svc.Performance(managerCtx(managerID))
	if err != nil {
		t.Fatalf("Performance: unexpected error: %v", err)
	}

	if len(report.Employees) != 2 {
		t.Fatalf("got %d employees, want 2", len(report.Employees))
	}

	byName := map[string]domain.RequestStats{}
	for _, e := range report.Employees {
		byName[e.Profile.FullName] = e.Stats
	}

	a := byName["Alice"]
	if a.Total != 3 || a.Accepted != 1 || a.Rejected != 1 || a.Pending != 1 || a.HighPriority != 1 {
		t.Errorf("Alice stats = %+v, want total 3, one of each status, one high", a)
	}

	b := byName["Bob"]
	if b.Total != 0 {
		t.Errorf("Bob stats = %+v, want all zero (no requests)", b)
	}

	if report.Suggestions == nil || len(report.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want empty non-nil slice without AI", report.Suggestions)
	}
}

func TestPerformance_SuggestionsAttached(t *testing.T) {
	t.Parallel()

	alice := &domain.Profile{ID: uuid.New(), FullName: "Alice", Role: domain.RoleEmployee}

	requests := &requestRepoMock{
		ListAllFunc: func(ctx context.Context) ([]*domain.Request, error) { return nil, nil },
	}
	profiles := &profileRepoMock{
		ListEmployeesFunc: func(ctx context.Context) ([]*domain.Profile, error) {
			return []*domain.Profile{alice}, nil
		},
	}
	ai := &suggesterMock{
		EnabledFunc: func() bool { return true },
		SuggestActionsFunc: func(ctx context.Context, stats []gemini.EmployeeStats) ([]gemini.Suggestion, error) {
			if len(stats) != 1 || stats[0].ID != alice.ID {
				t.Errorf("SuggestActions stats = %+v", stats)
			}
			return []gemini.Suggestion{
				{EmployeeID: alice.ID, Suggestion: domain.NotificationSalaryReview, Reason: "strong"},
			}, nil
		},
	}

	svc := newTestService(requests, profiles, ai)

	report, err := svc.Performance(managerCtx(uuid.New()))
	if err != nil {
		t.Fatalf("Performance: unexpected error: %v", err)
	}
	if len(report.Suggestions) != 1 || report.Suggestions[0].Suggestion != domain.NotificationSalaryReview {
		t.Errorf("Suggestions = %+v, want one salary_review", report.Suggestions)
	}
}

func TestPerformance_SuggestionFailureDegrades(t *testing.T) {
	t.Parallel()

	requests := &requestRepoMock{
		ListAllFunc: func(ctx context.Context) ([]*domain.Request, error) { return nil, nil },
	}
	profiles := &profileRepoMock{
		ListEmployeesFunc: func(ctx context.Context) ([]*domain.Profile, error) {
			return []*domain.Profile{{ID: uuid.New(), Role: domain.RoleEmployee}}, nil
		},
	}
	ai := &suggesterMock{
		EnabledFunc: func() bool { return true },
		SuggestActionsFunc: func(ctx context.Context, stats []gemini.EmployeeStats) ([]gemini.Suggestion, error) {
			return nil, errors.New("model unavailable")
		},
	}

	svc := newTestService(requests, profiles, ai)

	report, err := svc.Performance(managerCtx(uuid.New()))
	if err != nil {
		t.Fatalf("Performance must not fail on suggestion errors: %v", err)
	}
	if len(report.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want empty on AI failure", report.Suggestions)
	}
	if len(report.Employees) != 1 {
		t.Errorf("stats must survive AI failure, got %d employees", len(report.Employees))
	}
}

func TestPerformance_EmployeeForbidden(t *testing.T) {
	t.Parallel()

	svc := newTestService(&requestRepoMock{}, &profileRepoMock{}, nil)

	_, err := svc.Performance(employeeCtx(uuid.New()))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("got %v, want ErrForbidden", err)
	}
}

func TestMyStats(t *testing.T) {
	t.Parallel()

	employeeID := uuid.New()
	requests := &requestRepoMock{
		StatsByEmployeeFunc: func(ctx context.Context, id uuid.UUID) (*domain.RequestStats, error) {
			if id != employeeID {
				t.Errorf("StatsByEmployee called with %s, want %s", id, employeeID)
			}
			return &domain.RequestStats{Total: 4, Pending: 1, Accepted: 2, Rejected: 1}, nil
		},
	}

	svc := newTestService(requests, &profileRepoMock{}, nil)

	got, err := svc.MyStats(employeeCtx(employeeID))
	if err != nil {
		t.Fatalf("MyStats: unexpected error: %v", err)
	}
	if got.Total != 4 {
		t.Errorf("Total = %d, want 4", got.Total)
	}
}

func TestMyStats_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc := newTestService(&requestRepoMock{}, &profileRepoMock{}, nil)

	_, err := svc.MyStats(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}
