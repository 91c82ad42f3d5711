package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"blogpost-generator/pkg/config"
)

func passThrough(c *fiber.Ctx) error {
	return c.Next()
}

// RateLimiter returns a general rate limiting middleware. A nil storage keeps
// counters in process memory.
func RateLimiter(cfg *config.RateLimitConfig, storage fiber.Storage) fiber.Handler {
	if !cfg.Enabled {
		return passThrough
	}

	return limiter.New(limiter.Config{
		Max:        cfg.MaxRequests,
		Expiration: time.Duration(cfg.WindowSeconds) * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests. Please try again later.",
				"error": fiber.Map{
					"kind":    "rate_limit_exceeded",
					"message": "Too many requests. Please try again later.",
				},
			})
		},
		Storage: storage,
	})
}

// GenerateRateLimiter is the stricter limit for endpoints that call the AI provider.
func GenerateRateLimiter(cfg *config.RateLimitConfig, storage fiber.Storage) fiber.Handler {
	if !cfg.Enabled {
		return passThrough
	}

	return limiter.New(limiter.Config{
		Max:        cfg.GenerateMaxRequests,
		Expiration: time.Duration(cfg.GenerateWindowSeconds) * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "generate:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many generation requests. Please wait before generating again.",
				"error": fiber.Map{
					"kind":    "generate_rate_limit_exceeded",
					"message": "Too many generation requests. Please wait before generating again.",
				},
			})
		},
		Storage: storage,
	})
}
