package gemini

import (
	"strings"
	"testing"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

func TestParseResult_MissingPriority(t *testing.T) {
	t.Parallel()

	_, err := parseResult(`{"category":"Funds"}`, domain.RequestTypeFund)
	if err == nil {
		t.Fatal("expected error for missing priority")
	}
}

func TestParseResult_InvalidPriority(t *testing.T) {
	t.Parallel()

	_, err := parseResult(`{"category":"Funds","priority":"Urgent"}`, domain.RequestTypeFund)
	if err == nil {
		t.Fatal("expected error for out-of-enum priority")
	}
}

func TestParseResult_InvalidCategory(t *testing.T) {
	t.Parallel()

	_, err := parseResult(`{"category":"Money","priority":"High"}`, domain.RequestTypeFund)
	if err == nil {
		t.Fatal("expected error for out-of-enum category")
	}
}

func TestParseResult_MissingCategoryDerivedFromType(t *testing.T) {
	t.Parallel()

	res, err := parseResult(`{"priority":"Medium"}`, domain.RequestTypePromotion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Category != domain.CategoryPromotion {
		t.Errorf("category = %q, want Promotion (derived from request type)", res.Category)
	}
}

func TestParseResult_NonNumericConfidence(t *testing.T) {
	t.Parallel()

	_, err := parseResult(`{"category":"Leave","priority":"Low","confidence_score":"very sure"}`, domain.RequestTypeLeave)
	if err == nil {
		t.Fatal("expected error for non-numeric confidence")
	}
}

func TestParseResult_ConfidenceClamped(t *testing.T) {
	t.Parallel()

	res, err := parseResult(`{"category":"Leave","priority":"Low","confidence_score":250}`, domain.RequestTypeLeave)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Insights.ConfidenceScore != domain.MaxConfidenceScore {
		t.Errorf("confidence = %v, want clamped to %v", res.Insights.ConfidenceScore, domain.MaxConfidenceScore)
	}
}

func TestParseResult_RecoverableFieldsGetDefaults(t *testing.T) {
	t.Parallel()

	res, err := parseResult(`{
		"category": "Leave",
		"priority": "Medium",
		"suggested_action": "Ignore",
		"risk_level": "Severe",
		"intent_signals": "not-a-list"
	}`, domain.RequestTypeLeave)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Insights.SuggestedAction != domain.SuggestedActionReview {
		t.Errorf("action = %q, want default Review", res.Insights.SuggestedAction)
	}
	if res.Insights.RiskLevel != domain.RiskLevelLow {
		t.Errorf("risk = %q, want default Low", res.Insights.RiskLevel)
	}
	if len(res.Insights.IntentSignals) != 0 {
		t.Errorf("signals = %v, want empty for malformed list", res.Insights.IntentSignals)
	}
	if res.Insights.CategoryReason != defaultCategoryReason {
		t.Errorf("category reason = %q, want default", res.Insights.CategoryReason)
	}
	if res.Insights.PriorityReason != defaultPriorityReason {
		t.Errorf("priority reason = %q, want default", res.Insights.PriorityReason)
	}
	if res.Insights.BusinessImpact != defaultBusinessImpact {
		t.Errorf("business impact = %q, want default", res.Insights.BusinessImpact)
	}
	if res.Insights.ConfidenceScore != defaultConfidence {
		t.Errorf("confidence = %v, want default %v", res.Insights.ConfidenceScore, float64(defaultConfidence))
	}
}

func TestParseResult_SignalsDedupedAndCapped(t *testing.T) {
	t.Parallel()

	res, err := parseResult(`{
		"category": "Funds",
		"priority": "High",
		"intent_signals": ["a","b","a","c","d","e","f","g","h","i","j","k"]
	}`, domain.RequestTypeFund)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Insights.IntentSignals) != domain.MaxIntentSignals {
		t.Fatalf("signals = %d, want %d", len(res.Insights.IntentSignals), domain.MaxIntentSignals)
	}
	if res.Insights.IntentSignals[0] != "a" || res.Insights.IntentSignals[1] != "b" || res.Insights.IntentSignals[2] != "c" {
		t.Errorf("signals = %v, want deduplicated first-occurrence order", res.Insights.IntentSignals)
	}
}

func TestParseResult_NotJSON(t *testing.T) {
	t.Parallel()

	_, err := parseResult("I cannot classify this request, sorry!", domain.RequestTypeOther)
	if err == nil {
		t.Fatal("expected error for prose response")
	}
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	got, err := extractJSON("```json\n{\"a\":1}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "{") || !strings.HasSuffix(got, "}") {
		t.Errorf("extractJSON = %q, want a braced object", got)
	}

	if _, err := extractJSON("no braces here"); err == nil {
		t.Error("expected error when no JSON object present")
	}
}
