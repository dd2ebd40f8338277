package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a message delivered to an employee: the outcome of a
// review decision, or a manager-initiated notice or recognition.
// ReadAt, once set, is never cleared.
type Notification struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	Type       NotificationType
	Title      string
	Message    string
	CreatedBy  uuid.UUID
	CreatedAt  time.Time
	ReadAt     *time.Time
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool { return n.ReadAt != nil }
