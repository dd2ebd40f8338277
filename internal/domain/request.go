package domain

import (
	"time"

	"github.com/google/uuid"
)

// Request is an employee request moving through the review lifecycle.
// Category, Priority, and Insights are stamped together at creation by the
// triage coordinator; the record is mutated exactly once, by a review
// decision, and is never deleted.
type Request struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	Type       RequestType
	FromDate   *time.Time
	ToDate     *time.Time
	Reason     string
	Category   Category
	Priority   Priority
	Status     Status
	ReviewedBy *uuid.UUID
	ReviewedAt *time.Time
	Comment    *string
	Insights   Insights
	CreatedAt  time.Time
}

// Insights is the explanation bundle attached to a request at triage time.
// Enum-typed fields sourced from the external classifier are validated at
// the adapter boundary; a Request never carries raw untrusted values.
type Insights struct {
	CategoryReason  string
	PriorityReason  string
	IntentSignals   []string
	ConfidenceScore float64
	SuggestedAction SuggestedAction
	RiskLevel       RiskLevel
	BusinessImpact  string
}

// RequestStats aggregates an employee's request history for analytics.
type RequestStats struct {
	Total        int
	Pending      int
	Accepted     int
	Rejected     int
	HighPriority int
}

// MaxIntentSignals bounds the intent_signals list on any Insights bundle.
const MaxIntentSignals = 10

// ConfidenceScore bounds (inclusive). The confidence scale is 0–100; the
// fallback classifier reports a fixed 70.
const (
	MinConfidenceScore = 0
	MaxConfidenceScore = 100
)

// ClampConfidence bounds a confidence score to the declared range.
func ClampConfidence(score float64) float64 {
	if score < MinConfidenceScore {
		return MinConfidenceScore
	}
	if score > MaxConfidenceScore {
		return MaxConfidenceScore
	}
	return score
}

// DefaultCategoryFor maps a request type to its baseline category, used when
// classification has nothing better to say about an explicit form choice.
func DefaultCategoryFor(t RequestType) Category {
	switch t {
	case RequestTypeLeave:
		return CategoryLeave
	case RequestTypePromotion:
		return CategoryPromotion
	case RequestTypeFund, RequestTypeSponsorship:
		return CategoryFunds
	default:
		return CategoryOther
	}
}
