package domain

import "time"

// DefaultEscalationThreshold is how long a high-priority request may sit
// pending before it is considered escalated.
const DefaultEscalationThreshold = 24 * time.Hour

// IsEscalated reports whether a request has breached the escalation
// threshold: pending, high priority, and at least threshold old at now.
// The flag is derived on every read and never persisted; there is no
// background job behind it. Any other status or priority is never
// escalated, regardless of age.
func IsEscalated(r *Request, now time.Time, threshold time.Duration) bool {
	if r.Status != StatusPending || r.Priority != PriorityHigh {
		return false
	}
	return now.Sub(r.CreatedAt) >= threshold
}
