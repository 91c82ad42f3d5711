package services

import "context"

// SchemaType names a JSON schema type understood by every provider adapter.
type SchemaType string

const (
	SchemaString SchemaType = "string"
	SchemaArray  SchemaType = "array"
	SchemaObject SchemaType = "object"
)

// Schema is a provider-neutral description of a structured response.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
}

// TextRequest is one text generation call. WebSearch and Schema are exclusive:
// grounding is used for free-form articles, the schema for the illustrated path.
type TextRequest struct {
	Model     string
	Prompt    string
	WebSearch bool
	Schema    *Schema
}

// ImageRequest asks for exactly one image.
type ImageRequest struct {
	Model       string
	Prompt      string
	MIMEType    string
	AspectRatio string
}

type GeneratedImage struct {
	Data     []byte
	MIMEType string
}

// AIProvider is the port implemented by the Gemini and OpenAI adapters.
type AIProvider interface {
	Name() string
	GenerateText(ctx context.Context, req TextRequest) (string, error)
	GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error)
}
