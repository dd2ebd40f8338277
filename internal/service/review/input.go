package review

import (
	"strings"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

// MaxCommentLength bounds the optional reviewer comment.
const MaxCommentLength = 2000

// DecideInput holds the parameters for deciding a pending request.
type DecideInput struct {
	RequestID uuid.UUID
	Decision  domain.Status
	Comment   *string
}

// Validate checks all fields and collects all errors.
func (i DecideInput) Validate() error {
	var errs []domain.FieldError

	if i.RequestID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "request_id", Message: "required"})
	}

	if !i.Decision.IsTerminal() {
		errs = append(errs, domain.FieldError{Field: "decision", Message: "must be Accepted or Rejected"})
	}

	if i.Comment != nil && len(strings.TrimSpace(*i.Comment)) > MaxCommentLength {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
