package utils

import (
	"github.com/gofiber/fiber/v2"

	"blogpost-generator/pkg/apperrors"
)

// Response is the JSON envelope returned by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Detail  string            `json:"detail,omitempty"`
	Fields  []ValidationIssue `json:"fields,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func CreatedResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func AcceptedResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusAccepted).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes a plain error with an explicit status.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	body := &ErrorBody{Kind: string(apperrors.KindInternal), Message: message}
	if err != nil {
		body.Detail = err.Error()
	}
	return c.Status(status).JSON(Response{
		Success: false,
		Message: message,
		Error:   body,
	})
}

// AppErrorResponse maps err to a status by its kind. Errors that are not
// AppErrors become a 500 without leaking their text.
func AppErrorResponse(c *fiber.Ctx, err error) error {
	appErr, ok := apperrors.As(err)
	if !ok {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	return c.Status(appErr.HTTPStatus()).JSON(Response{
		Success: false,
		Message: appErr.Message,
		Error: &ErrorBody{
			Kind:    string(appErr.Kind),
			Message: appErr.Message,
			Detail:  appErr.Detail,
		},
	})
}

func ValidationErrorResponse(c *fiber.Ctx, message string, issues []ValidationIssue) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Success: false,
		Message: message,
		Error: &ErrorBody{
			Kind:    string(apperrors.KindValidation),
			Message: message,
			Fields:  issues,
		},
	})
}

func UnauthorizedResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(Response{
		Success: false,
		Message: message,
		Error:   &ErrorBody{Kind: "unauthorized", Message: message},
	})
}
