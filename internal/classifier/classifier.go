// Package classifier implements the deterministic keyword classifier used
// when the external AI gateway is unavailable or returns an invalid payload.
// It is pure and total: every input yields a complete Insights bundle.
package classifier

import (
	"strings"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

// FallbackConfidence is the fixed confidence reported by the keyword
// classifier. It is deliberately lower than a genuine AI result so the
// source of a classification stays visible downstream.
const FallbackConfidence = 70

var leaveKeywords = []string{
	"leave", "vacation", "sick", "absent", "time off", "pto", "holiday",
	"day off", "medical",
}

var fundsKeywords = []string{
	"fund", "money", "budget", "expense", "reimbursement", "payment",
	"purchase", "cost", "financial", "allowance",
}

var promotionKeywords = []string{
	"promotion", "raise", "salary", "career", "position", "advancement",
	"growth", "increment", "appraisal",
}

var highPriorityKeywords = []string{
	"urgent", "asap", "immediately", "critical", "emergency", "important",
	"pressing",
}

var lowPriorityKeywords = []string{
	"whenever", "no rush", "flexible", "eventually", "someday",
}

var categoryReasons = map[domain.Category]string{
	domain.CategoryLeave:     "Keywords indicate time-off or absence (leave, vacation, sick, PTO, etc.).",
	domain.CategoryFunds:     "Keywords indicate financial request (funds, expense, reimbursement, etc.).",
	domain.CategoryPromotion: "Keywords indicate career or compensation (promotion, raise, advancement, etc.).",
}

var priorityReasons = map[domain.Priority]string{
	domain.PriorityHigh:   "Urgency keywords detected (urgent, ASAP, emergency).",
	domain.PriorityLow:    "Flexibility keywords detected (no rush, flexible, whenever).",
	domain.PriorityMedium: "No strong urgency or flexibility signals; defaulting to medium priority.",
}

// Result is the outcome of a fallback classification: the category and
// priority to stamp on the request plus the full explanation bundle.
type Result struct {
	Category domain.Category
	Priority domain.Priority
	Insights domain.Insights
}

// Classify scores the text against fixed keyword sets and returns a
// deterministic classification. It never fails.
//
// Tie-break: Funds wins only on a strict win over both Leave and Promotion,
// Promotion likewise; everything else falls back to Leave, even when Leave
// scored zero and two other categories tied above it. Leave is the baseline
// category here on purpose; do not "fix" this without a product decision.
func Classify(text string, requestedType domain.RequestType) Result {
	lower := strings.ToLower(text)

	var leaveScore, fundsScore, promotionScore int
	var signals []string
	seen := make(map[string]bool)

	collect := func(keyword string) {
		if len(signals) >= domain.MaxIntentSignals || seen[keyword] {
			return
		}
		seen[keyword] = true
		signals = append(signals, keyword)
	}

	for _, k := range leaveKeywords {
		if strings.Contains(lower, k) {
			leaveScore++
			collect(k)
		}
	}
	for _, k := range fundsKeywords {
		if strings.Contains(lower, k) {
			fundsScore++
			collect(k)
		}
	}
	for _, k := range promotionKeywords {
		if strings.Contains(lower, k) {
			promotionScore++
			collect(k)
		}
	}

	category := domain.CategoryLeave
	switch {
	case fundsScore > leaveScore && fundsScore > promotionScore:
		category = domain.CategoryFunds
	case promotionScore > leaveScore && promotionScore > fundsScore:
		category = domain.CategoryPromotion
	}

	// Priority is checked independently of category scoring.
	priority := domain.PriorityMedium
	if containsAny(lower, highPriorityKeywords) {
		priority = domain.PriorityHigh
		for _, k := range highPriorityKeywords {
			if strings.Contains(lower, k) {
				collect(k)
			}
		}
	} else if containsAny(lower, lowPriorityKeywords) {
		priority = domain.PriorityLow
		for _, k := range lowPriorityKeywords {
			if strings.Contains(lower, k) {
				collect(k)
			}
		}
	}

	risk := domain.RiskLevelLow
	if priority == domain.PriorityHigh {
		risk = domain.RiskLevelMedium
	}

	action := domain.SuggestedActionApprove
	if priority == domain.PriorityHigh {
		action = domain.SuggestedActionReview
	}

	return Result{
		Category: category,
		Priority: priority,
		Insights: domain.Insights{
			CategoryReason:  categoryReasons[category],
			PriorityReason:  priorityReasons[priority],
			IntentSignals:   signals,
			ConfidenceScore: FallbackConfidence,
			SuggestedAction: action,
			RiskLevel:       risk,
			BusinessImpact:  businessImpact(category, priority),
		},
	}
}

func businessImpact(category domain.Category, priority domain.Priority) string {
	switch {
	case priority == domain.PriorityHigh:
		return "May impact team availability or deadlines; recommend quick review."
	case category == domain.CategoryLeave:
		return "Standard leave request; check team coverage if needed."
	default:
		return "Routine request; low operational impact."
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
