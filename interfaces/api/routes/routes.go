package routes

import (
	"github.com/gofiber/fiber/v2"

	"blogpost-generator/domain/services"
	"blogpost-generator/interfaces/api/handlers"
	"blogpost-generator/interfaces/api/middleware"
	"blogpost-generator/pkg/config"
)

// SetupRoutes mounts every route. limiterStorage may be nil.
func SetupRoutes(app *fiber.App, h *handlers.Handlers, sessionService services.SessionService, cfg *config.Config, limiterStorage fiber.Storage) {
	// Setup health and root routes
	SetupHealthRoutes(app, h.Health)

	// API version group
	api := app.Group("/api/v1", middleware.RateLimiter(&cfg.RateLimit, limiterStorage))

	SetupOptionsRoutes(api, h)
	SetupArticleRoutes(api, h, &cfg.RateLimit, limiterStorage)
	SetupSessionRoutes(api, h, &cfg.RateLimit, limiterStorage)
	SetupLogRoutes(api, h)

	// Setup WebSocket routes (needs app, not api group)
	SetupWebSocketRoutes(app, sessionService)
}
