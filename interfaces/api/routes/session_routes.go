package routes

import (
	"github.com/gofiber/fiber/v2"

	"blogpost-generator/interfaces/api/handlers"
	"blogpost-generator/interfaces/api/middleware"
	"blogpost-generator/pkg/config"
)

func SetupSessionRoutes(router fiber.Router, h *handlers.Handlers, rateLimit *config.RateLimitConfig, storage fiber.Storage) {
	sessions := router.Group("/sessions")

	sessions.Post("/", h.Session.CreateSession)
	sessions.Get("/:id", h.Session.GetSession)
	sessions.Patch("/:id/fields", h.Session.UpdateField)
	sessions.Get("/:id/view", h.Session.GetView)
	sessions.Get("/:id/article.html", h.Session.ExportHTML)
	sessions.Post("/:id/copy", h.Session.Copy)
	sessions.Post("/:id/share", h.Session.Share)

	// Submitting calls the AI provider
	sessions.Post("/:id/submit", middleware.GenerateRateLimiter(rateLimit, storage), h.Session.Submit)
}
