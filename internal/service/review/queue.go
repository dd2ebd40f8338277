package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/domain"
	"github.com/workdeskhq/workdesk-backend/pkg/ctxutil"
)

// QueueItem is a request enriched for the manager review queue.
type QueueItem struct {
	Request   *domain.Request
	Requester *domain.Profile
	Escalated bool
}

// Queue returns every request with its requester profile and a lazily
// computed escalation flag. Nothing is written: escalation is a property of
// the current clock, not stored state.
func (s *Service) Queue(ctx context.Context) ([]QueueItem, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.Role(ctxutil.RoleFromCtx(ctx)).IsManager() {
		return nil, domain.ErrForbidden
	}

	reqs, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(reqs))
	seen := make(map[uuid.UUID]bool, len(reqs))
	for _, r := range reqs {
		if !seen[r.EmployeeID] {
			seen[r.EmployeeID] = true
			ids = append(ids, r.EmployeeID)
		}
	}

	profiles, err := s.profiles.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get requester profiles: %w", err)
	}

	now := s.now().UTC()
	items := make([]QueueItem, len(reqs))
	for i, r := range reqs {
		items[i] = QueueItem{
			Request:   r,
			Requester: profiles[r.EmployeeID],
			Escalated: domain.IsEscalated(r, now, s.escalateAfter),
		}
	}

	return items, nil
}
