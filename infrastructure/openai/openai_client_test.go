package openai

import (
	"reflect"
	"testing"

	"blogpost-generator/domain/services"
)

func TestToJSONSchema(t *testing.T) {
	in := &services.Schema{
		Type: services.SchemaObject,
		Properties: map[string]*services.Schema{
			"article":      {Type: services.SchemaString},
			"imagePrompts": {Type: services.SchemaArray, Items: &services.Schema{Type: services.SchemaString}},
		},
		Required: []string{"article", "imagePrompts"},
	}

	want := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"article":      map[string]any{"type": "string"},
			"imagePrompts": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"article", "imagePrompts"},
	}

	if got := ToJSONSchema(in); !reflect.DeepEqual(got, want) {
		t.Errorf("ToJSONSchema() = %#v, want %#v", got, want)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", ""); err == nil {
		t.Fatal("expected error without API key")
	}
	c, err := NewClient("sk-test", "http://localhost:9999/v1")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if c.Name() != "openai" {
		t.Errorf("Name() = %q", c.Name())
	}
}
