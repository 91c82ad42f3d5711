package generation

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"blogpost-generator/application/prompt"
	"blogpost-generator/domain/models"
	"blogpost-generator/domain/services"
	"blogpost-generator/pkg/logger"
)

var errEmptyImage = errors.New("image generation returned no image")

const (
	defaultImageMIMEType = "image/jpeg"
	imageAspectRatio     = "16:9"
)

// Path is one way of producing an article.
type Path interface {
	Name() string
	Run(ctx context.Context, params models.GenerationParameters) (*models.GenerationResult, error)
}

// TextOnlyPath asks for a grounded markdown article and returns no images.
type TextOnlyPath struct {
	provider services.AIProvider
	model    string
}

func NewTextOnlyPath(provider services.AIProvider, model string) *TextOnlyPath {
	return &TextOnlyPath{provider: provider, model: model}
}

func (p *TextOnlyPath) Name() string { return "text_only" }

func (p *TextOnlyPath) Run(ctx context.Context, params models.GenerationParameters) (*models.GenerationResult, error) {
	text, err := p.provider.GenerateText(ctx, services.TextRequest{
		Model:     p.model,
		Prompt:    prompt.Build(params, false),
		WebSearch: true,
	})
	if err != nil {
		return nil, err
	}
	return models.NewGenerationResult(text, nil), nil
}

// IllustratedPath asks for a structured article plus image prompts, then renders
// every prompt concurrently. Any image failure fails the whole attempt.
type IllustratedPath struct {
	provider   services.AIProvider
	textModel  string
	imageModel string
	limiter    *rate.Limiter
}

// NewIllustratedPath builds the path. A nil limiter sends all image requests at once.
func NewIllustratedPath(provider services.AIProvider, textModel, imageModel string, limiter *rate.Limiter) *IllustratedPath {
	return &IllustratedPath{
		provider:   provider,
		textModel:  textModel,
		imageModel: imageModel,
		limiter:    limiter,
	}
}

func (p *IllustratedPath) Name() string { return "illustrated" }

func (p *IllustratedPath) Run(ctx context.Context, params models.GenerationParameters) (*models.GenerationResult, error) {
	text, err := p.provider.GenerateText(ctx, services.TextRequest{
		Model:  p.textModel,
		Prompt: prompt.Build(params, true),
		Schema: illustratedSchema,
	})
	if err != nil {
		return nil, err
	}

	decoded, err := DecodeIllustratedResponse(text)
	if err != nil {
		return nil, err
	}
	if len(decoded.ImagePrompts) == 0 {
		return models.NewGenerationResult(decoded.Article, nil), nil
	}

	images, err := p.renderImages(ctx, decoded.ImagePrompts)
	if err != nil {
		return nil, err
	}
	return models.NewGenerationResult(decoded.Article, images), nil
}

// renderImages fans out one request per prompt and returns data URIs in prompt order.
func (p *IllustratedPath) renderImages(ctx context.Context, prompts []string) ([]string, error) {
	images := make([]string, len(prompts))
	eg, egCtx := errgroup.WithContext(ctx)
	start := time.Now()

	for i, imagePrompt := range prompts {
		eg.Go(func() error {
			if p.limiter != nil {
				if err := p.limiter.Wait(egCtx); err != nil {
					return err
				}
			}

			img, err := p.provider.GenerateImage(egCtx, services.ImageRequest{
				Model:       p.imageModel,
				Prompt:      imagePrompt,
				MIMEType:    defaultImageMIMEType,
				AspectRatio: imageAspectRatio,
			})
			if err != nil {
				logger.GenerationError("image_failed", "Image generation failed", err, map[string]interface{}{"image": i + 1})
				return err
			}
			if img == nil || len(img.Data) == 0 {
				return errEmptyImage
			}

			images[i] = DataURI(img)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logger.Generation("images_rendered", "All images generated", time.Since(start), map[string]interface{}{
		"count": len(images),
	})
	return images, nil
}

// DataURI encodes an image as data:<mime>;base64,<payload>.
func DataURI(img *services.GeneratedImage) string {
	mime := img.MIMEType
	if mime == "" {
		mime = defaultImageMIMEType
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
