package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestGenerationNormalization(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, MsgUnknownAIError},
		{"empty message", errors.New(""), MsgUnknownAIError},
		{"quota", errors.New("quota exceeded"), "Failed to generate blog post: quota exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generation(tt.err)
			if got.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.want)
			}
			if got.Kind != KindGeneration {
				t.Errorf("Kind = %q", got.Kind)
			}
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("submit: %w", Validation(MsgProductURLRequired))
	if !IsKind(err, KindValidation) {
		t.Fatalf("expected validation kind, got %q", KindOf(err))
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("plain errors should be internal")
	}
	if IsKind(nil, KindInternal) {
		t.Error("nil should not match any kind")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:        http.StatusBadRequest,
		KindNotFound:          http.StatusNotFound,
		KindCapability:        http.StatusUnprocessableEntity,
		KindGeneration:        http.StatusBadGateway,
		KindMalformedResponse: http.StatusBadGateway,
		KindInternal:          http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := New(kind, "x").HTTPStatus(); got != want {
			t.Errorf("%s: status = %d, want %d", kind, got, want)
		}
	}
}
