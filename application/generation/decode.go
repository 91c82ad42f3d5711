package generation

import (
	"encoding/json"
	"strings"

	"blogpost-generator/domain/services"
	"blogpost-generator/pkg/apperrors"
)

// illustratedSchema is the structured shape requested on the illustrated path.
var illustratedSchema = &services.Schema{
	Type: services.SchemaObject,
	Properties: map[string]*services.Schema{
		"article": {
			Type:        services.SchemaString,
			Description: "The full blog post content in markdown format, including three image placeholders: [IMAGE_1], [IMAGE_2], and [IMAGE_3].",
		},
		"imagePrompts": {
			Type:        services.SchemaArray,
			Description: "An array of exactly 3 detailed, descriptive prompts for an AI image generator.",
			Items:       &services.Schema{Type: services.SchemaString},
		},
	},
	Required: []string{"article", "imagePrompts"},
}

// IllustratedResponse is the decoded structured reply.
type IllustratedResponse struct {
	Article      string
	ImagePrompts []string
}

type illustratedPayload struct {
	Article      *string  `json:"article"`
	ImagePrompts []string `json:"imagePrompts"`
}

// DecodeIllustratedResponse parses the structured reply. Invalid JSON or a missing
// article is a malformed response; a missing or empty prompt list means no images.
func DecodeIllustratedResponse(text string) (*IllustratedResponse, error) {
	raw := extractJSONObject(text)
	if raw == "" {
		return nil, apperrors.Malformed("empty response", nil)
	}

	var payload illustratedPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, apperrors.Malformed("invalid JSON", err)
	}
	if payload.Article == nil {
		return nil, apperrors.Malformed("missing field: article", nil)
	}

	prompts := payload.ImagePrompts
	if prompts == nil {
		prompts = []string{}
	}
	return &IllustratedResponse{Article: *payload.Article, ImagePrompts: prompts}, nil
}

// extractJSONObject trims anything around the outermost object, such as a
// ```json fence.
func extractJSONObject(s string) string {
	raw := strings.TrimSpace(s)
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
