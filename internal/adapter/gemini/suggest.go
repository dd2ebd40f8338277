package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

// EmployeeStats is the per-employee request summary fed to the model.
type EmployeeStats struct {
	ID            uuid.UUID `json:"id"`
	FullName      string    `json:"full_name"`
	TotalRequests int       `json:"total_requests"`
	Accepted      int       `json:"accepted"`
	Rejected      int       `json:"rejected"`
	Pending       int       `json:"pending"`
}

// Suggestion is a per-employee HR action hint. An empty Suggestion field
// means the model recommends no action.
type Suggestion struct {
	EmployeeID uuid.UUID
	Suggestion domain.NotificationType
	Reason     string
}

// SuggestActions asks the model which employees deserve a salary review and
// which need a performance notice. IDs the model invents are discarded;
// unrecognized suggestion values degrade to "no action".
func (c *Client) SuggestActions(ctx context.Context, stats []EmployeeStats) ([]Suggestion, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	if len(stats) == 0 {
		return []Suggestion{}, nil
	}

	statsJSON, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal stats: %w", err)
	}

	prompt := buildSuggestPrompt(string(statsJSON))

	var lastErr error
	for _, model := range c.candidateModels(ctx) {
		raw, err := c.generate(ctx, model, prompt)
		if err != nil {
			c.log.WarnContext(ctx, "gemini model failed",
				slog.String("model", model),
				slog.String("error", err.Error()),
			)
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		suggestions, err := parseSuggestions(raw, stats)
		if err != nil {
			c.log.WarnContext(ctx, "gemini suggestions rejected",
				slog.String("model", model),
				slog.String("error", err.Error()),
			)
			lastErr = err
			continue
		}

		return suggestions, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no models available")
	}
	return nil, fmt.Errorf("gemini: suggest actions: %w", lastErr)
}

func buildSuggestPrompt(statsJSON string) string {
	return `You are an HR analyst. Given these employee request statistics, suggest which employees deserve a salary review (hardworking, many accepted requests, high engagement) and which need a performance notice (low output, many rejected, or very few requests indicating poor engagement).

Employee stats (JSON array):
` + statsJSON + `

Respond with ONLY a JSON array. Each item: {"id":"<employee uuid>","suggestion":"salary_review"|"notice"|null,"reason":"brief reason"}. Use "salary_review" for strong performers, "notice" for underperformers, null if no action needed. Keep reasons professional and one short sentence.`
}

func parseSuggestions(raw string, stats []EmployeeStats) ([]Suggestion, error) {
	cleaned, err := extractJSONArray(raw)
	if err != nil {
		return nil, err
	}

	var items []struct {
		ID         string `json:"id"`
		Suggestion string `json:"suggestion"`
		Reason     string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}

	known := make(map[uuid.UUID]bool, len(stats))
	for _, s := range stats {
		known[s.ID] = true
	}

	out := make([]Suggestion, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.ID)
		if err != nil || !known[id] {
			continue
		}

		var action domain.NotificationType
		switch item.Suggestion {
		case string(domain.NotificationSalaryReview):
			action = domain.NotificationSalaryReview
		case string(domain.NotificationNotice):
			action = domain.NotificationNotice
		}

		out = append(out, Suggestion{
			EmployeeID: id,
			Suggestion: action,
			Reason:     item.Reason,
		})
	}

	return out, nil
}

// extractJSONArray strips markdown fences and trims to the outermost array.
func extractJSONArray(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end < start {
		return "", errors.New("no JSON array in response")
	}
	return s[start : end+1], nil
}
