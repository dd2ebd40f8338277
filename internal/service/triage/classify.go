package triage

import (
	"context"
	"log/slog"

	"github.com/workdeskhq/workdesk-backend/internal/classifier"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

// classify runs the external analyzer first and falls back to the keyword
// classifier on any failure: disabled client, transport error, or a response
// that did not validate. The caller always gets a usable classification.
func (s *Service) classify(
	ctx context.Context,
	reason string,
	requestedType domain.RequestType,
	requesterRole domain.Role,
) (domain.Category, domain.Priority, domain.Insights) {
	if s.ai != nil && s.ai.Enabled() {
		result, err := s.ai.Analyze(ctx, reason, requestedType, requesterRole)
		if err == nil {
			return result.Category, result.Priority, result.Insights
		}
		s.log.WarnContext(ctx, "ai classification failed, using keyword fallback",
			slog.String("error", err.Error()),
		)
	}

	fb := classifier.Classify(reason, requestedType)
	return fb.Category, fb.Priority, fb.Insights
}
