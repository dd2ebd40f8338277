package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
	"github.com/workdeskhq/workdesk-backend/pkg/ctxutil"
)

// MaxMessageLength bounds the free-text notice body.
const MaxMessageLength = 2000

// Titles shown to employees for manager-sent notices.
const (
	titleSalaryReview = "Performance recognition – salary review"
	titleNotice       = "Performance notice"
)

// CreateNoticeInput holds the parameters for a manager-sent notice.
type CreateNoticeInput struct {
	EmployeeID uuid.UUID
	Type       domain.NotificationType
	Message    string
}

// Validate checks all fields and collects all errors.
func (i CreateNoticeInput) Validate() error {
	var errs []domain.FieldError

	if i.EmployeeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "employee_id", Message: "required"})
	}

	if i.Type != domain.NotificationNotice && i.Type != domain.NotificationSalaryReview {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be notice or salary_review"})
	}

	msg := strings.TrimSpace(i.Message)
	if msg == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	if len(msg) > MaxMessageLength {
		errs = append(errs, domain.FieldError{Field: "message", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateNotice sends a performance notice or salary-review recognition to an
// employee. Manager only; the target must be an existing employee profile.
func (s *Service) CreateNotice(ctx context.Context, input CreateNoticeInput) (*domain.Notification, error) {
	managerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.Role(ctxutil.RoleFromCtx(ctx)).IsManager() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	target, err := s.profiles.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("get target profile: %w", err)
	}
	if target.Role.IsManager() {
		return nil, domain.NewValidationError("employee_id", "target must be an employee")
	}

	title := titleNotice
	if input.Type == domain.NotificationSalaryReview {
		title = titleSalaryReview
	}

	n, err := s.notifications.Create(ctx, &domain.Notification{
		ID:         uuid.New(),
		EmployeeID: input.EmployeeID,
		Type:       input.Type,
		Title:      title,
		Message:    strings.TrimSpace(input.Message),
		CreatedBy:  managerID,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create notice: %w", err)
	}

	s.log.InfoContext(ctx, "notice sent",
		slog.String("manager_id", managerID.String()),
		slog.String("employee_id", input.EmployeeID.String()),
		slog.String("type", string(input.Type)),
	)

	return n, nil
}
