package triage

import (
	"strings"
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

// SubmitInput holds the parameters for submitting a request.
type SubmitInput struct {
	Type     domain.RequestType
	FromDate *time.Time
	ToDate   *time.Time
	Reason   string
}

// Validate checks all fields and collects all errors.
// The reason length limit is enforced by the service, which knows the
// configured maximum.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown request type"})
	}

	if strings.TrimSpace(i.Reason) == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	}

	if i.Type == domain.RequestTypeLeave && i.FromDate == nil {
		errs = append(errs, domain.FieldError{Field: "from_date", Message: "required for leave applications"})
	}

	if i.FromDate != nil && i.ToDate != nil && i.ToDate.Before(*i.FromDate) {
		errs = append(errs, domain.FieldError{Field: "to_date", Message: "must not be before from_date"})
	}

	if i.ToDate != nil && i.FromDate == nil {
		errs = append(errs, domain.FieldError{Field: "from_date", Message: "required when to_date is set"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
