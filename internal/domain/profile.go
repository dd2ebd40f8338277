package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the directory record for a user. Identity and profile storage
// are owned by an external system; this is the read-side projection the
// review and analytics services join against.
type Profile struct {
	ID         uuid.UUID
	Email      string
	FullName   string
	Role       Role
	Department string
	CreatedAt  time.Time
}
