package services

import (
	"context"

	"blogpost-generator/domain/models"
)

// GenerationService turns form parameters into an article.
type GenerationService interface {
	// Generate runs the text-only or illustrated path depending on params.GenerateImages.
	// Errors are *apperrors.AppError of kind generation or malformed_response.
	Generate(ctx context.Context, params models.GenerationParameters) (*models.GenerationResult, error)
}
