package repositories

import (
	"context"

	"github.com/google/uuid"

	"blogpost-generator/domain/models"
)

type SessionRepository interface {
	// Save stores the session and restarts its expiry
	Save(ctx context.Context, session *models.Session) error

	// Get returns nil when the session is unknown or expired
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes expired sessions and reports how many went away
	DeleteExpired() int

	Count() int

	// OnEvicted registers a callback run whenever a session leaves the store
	OnEvicted(fn func(id uuid.UUID))
}
