// Package generation talks to the AI provider through one of two explicit paths.
package generation

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"blogpost-generator/domain/models"
	"blogpost-generator/domain/services"
	"blogpost-generator/pkg/apperrors"
	"blogpost-generator/pkg/logger"
)

type Options struct {
	TextModel  string
	ImageModel string
	// ImageRatePerSec paces image requests; 0 disables pacing.
	ImageRatePerSec float64
	ImageBurst      int
}

// Generator implements services.GenerationService.
type Generator struct {
	provider    services.AIProvider
	textOnly    *TextOnlyPath
	illustrated *IllustratedPath
}

func NewGenerator(provider services.AIProvider, opts Options) *Generator {
	var limiter *rate.Limiter
	if opts.ImageRatePerSec > 0 {
		burst := opts.ImageBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.ImageRatePerSec), burst)
	}

	return &Generator{
		provider:    provider,
		textOnly:    NewTextOnlyPath(provider, opts.TextModel),
		illustrated: NewIllustratedPath(provider, opts.TextModel, opts.ImageModel, limiter),
	}
}

// SelectPath picks the path for the generateImages flag.
func (g *Generator) SelectPath(generateImages bool) Path {
	if generateImages {
		return g.illustrated
	}
	return g.textOnly
}

func (g *Generator) Generate(ctx context.Context, params models.GenerationParameters) (*models.GenerationResult, error) {
	path := g.SelectPath(params.GenerateImages)
	start := time.Now()

	logger.Generation("started", "Generating blog post", 0, map[string]interface{}{
		"path":     path.Name(),
		"provider": g.provider.Name(),
	})

	result, err := path.Run(ctx, params)
	if err != nil {
		normalized := normalizeError(err)
		logger.GenerationError("failed", "Blog post generation failed", err, map[string]interface{}{
			"path":     path.Name(),
			"kind":     string(normalized.Kind),
			"duration": time.Since(start).String(),
		})
		return nil, normalized
	}

	logger.Generation("completed", "Blog post generated", time.Since(start), map[string]interface{}{
		"path":   path.Name(),
		"images": len(result.Images),
	})
	return result, nil
}

// normalizeError keeps malformed responses distinct and folds everything else
// into the generation error shown to the user.
func normalizeError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.As(err); ok && appErr.Kind == apperrors.KindMalformedResponse {
		return appErr
	}
	return apperrors.Generation(err)
}
