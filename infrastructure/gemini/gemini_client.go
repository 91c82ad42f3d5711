package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"blogpost-generator/domain/services"
)

// GeminiClient wraps the Google Gemini API client
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

func (c *GeminiClient) Name() string { return "gemini" }

// GenerateText runs a single content request, either grounded with Google Search
// or constrained to a JSON schema.
func (c *GeminiClient) GenerateText(ctx context.Context, req services.TextRequest) (string, error) {
	config := &genai.GenerateContentConfig{}
	if req.WebSearch {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = toGenaiSchema(req.Schema)
	}

	result, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	return result.Text(), nil
}

// GenerateImage asks Imagen for exactly one image.
func (c *GeminiClient) GenerateImage(ctx context.Context, req services.ImageRequest) (*services.GeneratedImage, error) {
	resp, err := c.client.Models.GenerateImages(ctx, req.Model, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: req.MIMEType,
		AspectRatio:    req.AspectRatio,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("no image generated")
	}

	img := resp.GeneratedImages[0].Image
	mime := img.MIMEType
	if mime == "" {
		mime = req.MIMEType
	}
	return &services.GeneratedImage{Data: img.ImageBytes, MIMEType: mime}, nil
}

func toGenaiSchema(s *services.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Items:       toGenaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

func genaiType(t services.SchemaType) genai.Type {
	switch t {
	case services.SchemaObject:
		return genai.TypeObject
	case services.SchemaArray:
		return genai.TypeArray
	default:
		return genai.TypeString
	}
}
