package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedProfile creates a profile with the given role.
// Returns a filled domain.Profile.
func SeedProfile(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.Profile {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	p := domain.Profile{
		ID:         uuid.New(),
		Email:      "user-" + suffix + "@example.com",
		FullName:   "Test User " + suffix,
		Role:       role,
		Department: "Engineering",
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO profiles (id, email, full_name, role, department, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Email, p.FullName, string(p.Role), p.Department, p.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile insert: %v", err)
	}

	return p
}

// SeedRequest creates a pending request for the employee with the given
// priority and a created_at in the past by the given age.
// Returns a filled domain.Request.
func SeedRequest(t *testing.T, pool *pgxpool.Pool, employeeID uuid.UUID, priority domain.Priority, age time.Duration) domain.Request {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	req := domain.Request{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Type:       domain.RequestTypeLeave,
		Reason:     "Seeded request " + suffix,
		Category:   domain.CategoryLeave,
		Priority:   priority,
		Status:     domain.StatusPending,
		Insights: domain.Insights{
			CategoryReason:  "seed",
			PriorityReason:  "seed",
			ConfidenceScore: 70,
			SuggestedAction: domain.SuggestedActionApprove,
			RiskLevel:       domain.RiskLevelLow,
		},
		CreatedAt: time.Now().UTC().Add(-age).Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO requests (id, employee_id, type, reason, category, priority, status, insights, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		req.ID, req.EmployeeID, string(req.Type), req.Reason,
		string(req.Category), string(req.Priority), string(req.Status),
		[]byte(`{"category_reason":"seed","priority_reason":"seed","confidence_score":70,"suggested_action":"Approve","risk_level":"Low"}`),
		req.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRequest insert: %v", err)
	}

	return req
}

// SeedNotification creates an unread notification for the employee.
// Returns a filled domain.Notification.
func SeedNotification(t *testing.T, pool *pgxpool.Pool, employeeID, createdBy uuid.UUID) domain.Notification {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	n := domain.Notification{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Type:       domain.NotificationNotice,
		Title:      "Seeded notification " + suffix,
		Message:    "Message " + suffix,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO notifications (id, employee_id, type, title, message, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.EmployeeID, string(n.Type), n.Title, n.Message, n.CreatedBy, n.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNotification insert: %v", err)
	}

	return n
}
