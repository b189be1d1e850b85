package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a persisted, single-use token that can be exchanged for a
// new token pair until ExpiresAt.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
