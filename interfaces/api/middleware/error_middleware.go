package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"blogpost-generator/pkg/apperrors"
	"blogpost-generator/pkg/logger"
	"blogpost-generator/pkg/utils"
)

// ErrorHandler renders errors that escape a handler. AppErrors keep their kind and
// status, fiber errors keep their code, anything else is a 500.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if _, ok := apperrors.As(err); ok {
			logger.Warn(logger.CategoryAPI, "error_handler", "Request failed", map[string]interface{}{
				"path":   c.Path(),
				"method": c.Method(),
				"kind":   string(apperrors.KindOf(err)),
				"error":  err.Error(),
			})
			return utils.AppErrorResponse(c, err)
		}

		code := fiber.StatusInternalServerError
		message := "An error occurred"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		logger.Error(logger.CategoryAPI, "error_handler", "Request error occurred", err, map[string]interface{}{"status_code": code, "path": c.Path(), "method": c.Method()})

		return utils.ErrorResponse(c, code, message, err)
	}
}
