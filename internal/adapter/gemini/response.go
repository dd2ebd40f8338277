package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

// Safe substitutes for recoverable fields, matching the service's own
// defaults when an explanation is missing.
const (
	defaultCategoryReason = "AI classification based on request content."
	defaultPriorityReason = "Priority based on urgency signals."
	defaultBusinessImpact = "Review request for impact."
	defaultConfidence     = 75
)

// payload mirrors the JSON contract with the upstream model. Every field is
// kept raw so one malformed field cannot poison the rest of the document.
type payload struct {
	Category        json.RawMessage `json:"category"`
	Priority        json.RawMessage `json:"priority"`
	CategoryReason  json.RawMessage `json:"category_reason"`
	PriorityReason  json.RawMessage `json:"priority_reason"`
	IntentSignals   json.RawMessage `json:"intent_signals"`
	ConfidenceScore json.RawMessage `json:"confidence_score"`
	SuggestedAction json.RawMessage `json:"suggested_action"`
	RiskLevel       json.RawMessage `json:"risk_level"`
	BusinessImpact  json.RawMessage `json:"business_impact"`
}

// parseResult validates a raw model response against the Insights schema.
//
// Classification-critical fields are strict: a missing or out-of-enum
// priority is unrecoverable, as is an out-of-enum category. A missing
// category is tolerated and derived from the requested type. Every other
// field degrades to a safe substitute, so a sloppy-but-classifiable answer
// is still usable. Nothing from the raw document reaches the caller
// unvalidated.
func parseResult(raw string, requestedType domain.RequestType) (*Result, error) {
	jsonStr, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var p payload
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}

	priorityStr, ok := decodeString(p.Priority)
	if !ok {
		return nil, errors.New("priority missing or not a string")
	}
	priority := domain.Priority(priorityStr)
	if !priority.IsValid() {
		return nil, fmt.Errorf("priority %q outside enum", priorityStr)
	}

	category := domain.DefaultCategoryFor(requestedType)
	if len(p.Category) > 0 {
		categoryStr, ok := decodeString(p.Category)
		if !ok {
			return nil, errors.New("category not a string")
		}
		category = domain.Category(categoryStr)
		if !category.IsValid() {
			return nil, fmt.Errorf("category %q outside enum", categoryStr)
		}
	}

	var confidence float64
	if len(p.ConfidenceScore) > 0 {
		if err := json.Unmarshal(p.ConfidenceScore, &confidence); err != nil {
			return nil, fmt.Errorf("confidence_score not numeric: %w", err)
		}
	} else {
		confidence = defaultConfidence
	}

	action := domain.SuggestedActionReview
	if s, ok := decodeString(p.SuggestedAction); ok && domain.SuggestedAction(s).IsValid() {
		action = domain.SuggestedAction(s)
	}

	risk := domain.RiskLevelLow
	if s, ok := decodeString(p.RiskLevel); ok && domain.RiskLevel(s).IsValid() {
		risk = domain.RiskLevel(s)
	}

	return &Result{
		Category: category,
		Priority: priority,
		Insights: domain.Insights{
			CategoryReason:  stringOr(p.CategoryReason, defaultCategoryReason),
			PriorityReason:  stringOr(p.PriorityReason, defaultPriorityReason),
			IntentSignals:   decodeSignals(p.IntentSignals),
			ConfidenceScore: domain.ClampConfidence(confidence),
			SuggestedAction: action,
			RiskLevel:       risk,
			BusinessImpact:  stringOr(p.BusinessImpact, defaultBusinessImpact),
		},
	}, nil
}

// extractJSON strips markdown fences and returns the first complete JSON
// object in the text.
func extractJSON(s string) (string, error) {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", errors.New("no JSON object found in response")
	}
	return s[start : end+1], nil
}

func decodeString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func stringOr(raw json.RawMessage, def string) string {
	s, ok := decodeString(raw)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// decodeSignals tolerates a missing or malformed list and bounds the result:
// deduplicated, first-occurrence order, at most MaxIntentSignals entries.
func decodeSignals(raw json.RawMessage) []string {
	var in []string
	if len(raw) == 0 || json.Unmarshal(raw, &in) != nil {
		return []string{}
	}

	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == domain.MaxIntentSignals {
			break
		}
	}
	return out
}
