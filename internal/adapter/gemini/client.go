// Package gemini implements the AI gateway adapter for request triage.
// It calls the Generative Language API for a strict-JSON classification and
// validates the payload field by field; any transport error, timeout, or
// unrecoverable schema violation is returned as a plain error so the triage
// coordinator can fall back to the keyword classifier. Nothing in this
// package panics across its boundary.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/config"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// fallbackModels is tried when model discovery fails. Order matters:
// faster variants first.
var fallbackModels = []string{"gemini-1.5-flash", "gemini-1.5-pro", "gemini-pro"}

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("gemini: adapter disabled, no API key")

// Result is a validated classification from the external service.
type Result struct {
	Category domain.Category
	Priority domain.Priority
	Insights domain.Insights
}

// Client calls the Generative Language API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger

	mu     sync.Mutex
	models []string // discovered model names, cached per process
}

// NewClient creates a Client from configuration. An empty API key yields a
// disabled client: Analyze returns ErrDisabled immediately.
func NewClient(cfg config.GeminiConfig, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "gemini"),
	}
}

// Enabled reports whether the client has credentials to call the API.
func (c *Client) Enabled() bool { return c.apiKey != "" }

// Analyze classifies a request text. It tries available model variants in
// preference order; a failure at one variant does not prevent trying the
// next. The returned Result carries only validated enum values.
func (c *Client) Analyze(ctx context.Context, text string, requestedType domain.RequestType, requesterRole domain.Role) (*Result, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	prompt := buildPrompt(text, requestedType, requesterRole)

	var lastErr error
	for _, model := range c.candidateModels(ctx) {
		raw, err := c.generate(ctx, model, prompt)
		if err != nil {
			c.log.WarnContext(ctx, "gemini model failed",
				slog.String("model", model),
				slog.String("error", err.Error()),
			)
			lastErr = err
			// Stop iterating once the context is gone; every remaining
			// attempt would fail the same way.
			if ctx.Err() != nil {
				break
			}
			continue
		}

		result, err := parseResult(raw, requestedType)
		if err != nil {
			c.log.WarnContext(ctx, "gemini payload rejected",
				slog.String("model", model),
				slog.String("error", err.Error()),
			)
			lastErr = err
			continue
		}

		c.log.DebugContext(ctx, "gemini classification",
			slog.String("model", model),
			slog.String("category", string(result.Category)),
			slog.String("priority", string(result.Priority)),
			slog.Float64("confidence", result.Insights.ConfidenceScore),
		)
		return result, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no models available")
	}
	return nil, fmt.Errorf("gemini: analyze: %w", lastErr)
}

// candidateModels returns discovered models in preference order, or the
// hardcoded fallback list when discovery fails. Discovery runs once per
// process; its failure is not cached so a later call may retry it.
func (c *Client) candidateModels(ctx context.Context) []string {
	c.mu.Lock()
	cached := c.models
	c.mu.Unlock()
	if len(cached) > 0 {
		return cached
	}

	models, err := c.listModels(ctx)
	if err != nil || len(models) == 0 {
		if err != nil {
			c.log.WarnContext(ctx, "gemini model discovery failed", slog.String("error", err.Error()))
		}
		return fallbackModels
	}

	c.mu.Lock()
	c.models = models
	c.mu.Unlock()
	return models
}

// listModels fetches the upstream model list, keeps variants that support
// generateContent, and orders flash variants before the rest (latency
// preference only; output semantics do not depend on the variant).
func (c *Client) listModels(ctx context.Context) ([]string, error) {
	reqURL := fmt.Sprintf("%s/v1/models?key=%s", c.baseURL, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list models: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Models []struct {
			Name                       string   `json:"name"`
			SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode model list: %w", err)
	}

	var names []string
	for _, m := range payload.Models {
		supported := false
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				supported = true
				break
			}
		}
		if !supported {
			continue
		}
		name := strings.TrimPrefix(m.Name, "models/")
		if strings.Contains(name, "flash") || strings.Contains(name, "pro") {
			names = append(names, name)
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		return strings.Contains(names[i], "flash") && !strings.Contains(names[j], "flash")
	})

	return names, nil
}

// generate calls generateContent on one model and returns the raw text of
// the first candidate part.
func (c *Client) generate(ctx context.Context, model, prompt string) (string, error) {
	reqURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)

	body, err := json.Marshal(map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
			"temperature":      0.2,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	var payload struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response")
	}

	text := strings.TrimSpace(payload.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", errors.New("empty candidate text")
	}
	return text, nil
}

func buildPrompt(text string, requestedType domain.RequestType, requesterRole domain.Role) string {
	return fmt.Sprintf(`You are an enterprise workflow classifier. Classify this employee request and provide transparent explanations.

Request type: %s
Requester role: %s
Request message: %q

Respond with ONLY valid JSON (no markdown). Use this exact structure:
{
  "category": "Leave" | "Funds" | "Promotion",
  "priority": "High" | "Medium" | "Low",
  "category_reason": "One sentence explaining why this category was chosen.",
  "priority_reason": "One sentence explaining why this priority was chosen.",
  "intent_signals": ["keyword1", "keyword2"],
  "confidence_score": 0-100,
  "suggested_action": "Approve" | "Review" | "Escalate",
  "risk_level": "Low" | "Medium" | "High",
  "business_impact": "One sentence on business/team impact."
}

Rules:
- category: Leave (time off, sick, vacation), Funds (money, expense), Promotion (raise, career).
- priority: High = urgent/ASAP/emergency, Low = flexible/no rush, else Medium.
- intent_signals: list 2-6 words or phrases from the message that drove the classification.
- suggested_action: Escalate only for high-risk or ambiguous; Review for high-priority; Approve for clear low-risk.
- risk_level: based on urgency and impact.
- business_impact: human-readable note for the manager.`, requestedType, requesterRole, text)
}
