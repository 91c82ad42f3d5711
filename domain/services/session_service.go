package services

import (
	"context"

	"github.com/google/uuid"

	"blogpost-generator/domain/models"
)

// SessionListener receives the display view after every session change. It is
// called with the session locked and must not call back into the service.
type SessionListener func(sessionID uuid.UUID, view *models.DisplayView)

// SessionService is the form and display controller for one browser session.
type SessionService interface {
	Create(ctx context.Context, initial *models.GenerationParameters) (*models.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)

	// UpdateField replaces exactly one parameter and keeps the others.
	UpdateField(ctx context.Context, id uuid.UUID, field models.Field, value string) (*models.Session, error)

	// Submit validates the form and starts a generation attempt in the background.
	// It returns the request id of the attempt.
	Submit(ctx context.Context, id uuid.UUID) (uint64, error)

	View(ctx context.Context, id uuid.UUID) (*models.DisplayView, error)

	// Describe returns the session and its view from the same snapshot.
	Describe(ctx context.Context, id uuid.UUID) (*models.Session, *models.DisplayView, error)

	Copy(ctx context.Context, id uuid.UUID, caps models.ClientCapabilities) (string, error)
	Share(ctx context.Context, id uuid.UUID, caps models.ClientCapabilities) (*models.ShareData, error)
	ExportHTML(ctx context.Context, id uuid.UUID) (string, error)

	Subscribe(listener SessionListener)
	SweepExpired() int
	Count() int

	// Wait blocks until background attempts have finished.
	Wait()
}
