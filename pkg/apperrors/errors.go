// Package apperrors defines the error kinds surfaced by the generator.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindGeneration        Kind = "generation"
	KindMalformedResponse Kind = "malformed_response"
	KindNotFound          Kind = "not_found"
	KindCapability        Kind = "capability"
	KindConfig            Kind = "config"
	KindInternal          Kind = "internal"
)

const (
	MsgProductURLRequired  = "Please enter a product URL."
	MsgUnknownAIError      = "An unknown error occurred while communicating with the AI."
	MsgGenerationPrefix    = "Failed to generate blog post: "
	MsgShareUnsupported    = "Web Share API is not supported in your browser."
	MsgClipboardFailed     = "Failed to copy text."
	MsgNoArticle           = "There is no generated article yet."
	MsgSessionNotFound     = "Session not found."
	MsgMalformedAIResponse = "The AI returned a response that could not be understood."
)

// AppError carries a user-visible message and the kind used for HTTP mapping.
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Err     error  `json:"-"`
}

// Error returns the user-visible message.
func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the kind to a response status code.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindCapability:
		return http.StatusUnprocessableEntity
	case KindGeneration, KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(err error, kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *AppError {
	return New(KindValidation, message)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message)
}

func Capability(message string) *AppError {
	return New(KindCapability, message)
}

// Generation normalizes a provider failure into the user-facing generation error.
// A nil error or one with an empty message becomes the unknown-error text.
func Generation(err error) *AppError {
	if err == nil || err.Error() == "" {
		return &AppError{Kind: KindGeneration, Message: MsgUnknownAIError, Err: err}
	}
	return &AppError{Kind: KindGeneration, Message: MsgGenerationPrefix + err.Error(), Err: err}
}

// Malformed reports a structured response that did not match the expected shape.
func Malformed(detail string, err error) *AppError {
	return &AppError{Kind: KindMalformedResponse, Message: MsgMalformedAIResponse, Detail: detail, Err: err}
}

// As extracts an *AppError from the chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
