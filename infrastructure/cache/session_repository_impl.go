package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"blogpost-generator/domain/models"
	"blogpost-generator/domain/repositories"
)

// SessionRepositoryImpl keeps sessions in memory with a sliding TTL.
// The janitor is disabled; expired sessions are swept by the scheduler.
type SessionRepositoryImpl struct {
	store *gocache.Cache
	ttl   time.Duration
}

func NewSessionRepository(ttl time.Duration) repositories.SessionRepository {
	return &SessionRepositoryImpl{
		store: gocache.New(ttl, 0),
		ttl:   ttl,
	}
}

func (r *SessionRepositoryImpl) Save(ctx context.Context, session *models.Session) error {
	r.store.Set(session.ID.String(), session, r.ttl)
	return nil
}

func (r *SessionRepositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	v, ok := r.store.Get(id.String())
	if !ok {
		return nil, nil
	}
	session, ok := v.(*models.Session)
	if !ok {
		return nil, nil
	}
	return session, nil
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.Delete(id.String())
	return nil
}

func (r *SessionRepositoryImpl) DeleteExpired() int {
	before := r.store.ItemCount()
	r.store.DeleteExpired()
	return before - r.store.ItemCount()
}

// Count includes expired sessions that have not been swept yet.
func (r *SessionRepositoryImpl) Count() int {
	return r.store.ItemCount()
}

func (r *SessionRepositoryImpl) OnEvicted(fn func(id uuid.UUID)) {
	r.store.OnEvicted(func(key string, _ interface{}) {
		if id, err := uuid.Parse(key); err == nil {
			fn(id)
		}
	})
}
