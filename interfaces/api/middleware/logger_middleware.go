package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"blogpost-generator/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware keeps an incoming X-Request-ID or generates one.
func RequestIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    RequestIDHeader,
		Generator: func() string { return uuid.New().String() },
	})
}

// RecoverMiddleware turns handler panics into a 500 and logs them.
func RecoverMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.Error(logger.CategoryAPI, "panic_recovered", "Handler panicked", nil, map[string]interface{}{
				"panic":  fmt.Sprint(e),
				"path":   c.Path(),
				"method": c.Method(),
			})
		},
	})
}

// LoggerMiddleware writes one api log line per request. Health probes are skipped.
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/health" {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		level := logger.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = logger.LevelError
		} else if status >= fiber.StatusBadRequest {
			level = logger.LevelWarn
		}

		rid, _ := c.Locals("requestid").(string)
		logger.Default().Log(logger.LogEntry{
			Level:     level,
			Category:  logger.CategoryAPI,
			Action:    "request",
			Message:   c.Method() + " " + c.Path(),
			RequestID: rid,
			Duration:  time.Since(start).String(),
			Data: map[string]interface{}{
				"status": status,
				"ip":     c.IP(),
			},
		})
		return err
	}
}

// CorsMiddleware allows the configured origins, comma separated.
func CorsMiddleware(allowOrigins string) fiber.Handler {
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, X-Admin-Token, " + RequestIDHeader,
		ExposeHeaders: RequestIDHeader,
		MaxAge:        int((12 * time.Hour).Seconds()),
	})
}
