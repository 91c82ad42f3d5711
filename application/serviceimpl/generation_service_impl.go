package serviceimpl

import (
	"context"

	"blogpost-generator/domain/models"
	"blogpost-generator/domain/services"
	"blogpost-generator/pkg/apperrors"
)

// GenerationServiceImpl is the stateless one-shot generator behind POST /articles/generate.
type GenerationServiceImpl struct {
	generator services.GenerationService
}

func NewGenerationService(generator services.GenerationService) services.GenerationService {
	return &GenerationServiceImpl{generator: generator}
}

// Generate rejects an empty product URL before any provider call.
func (s *GenerationServiceImpl) Generate(ctx context.Context, params models.GenerationParameters) (*models.GenerationResult, error) {
	if params.ProductURL == "" {
		return nil, apperrors.Validation(apperrors.MsgProductURLRequired)
	}
	return s.generator.Generate(ctx, params.WithDefaults())
}
