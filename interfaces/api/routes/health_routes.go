package routes

import (
	"github.com/gofiber/fiber/v2"

	"blogpost-generator/interfaces/api/handlers"
)

func SetupHealthRoutes(app *fiber.App, healthHandler *handlers.HealthHandler) {
	app.Get("/health", healthHandler.Health)

	// Detailed health check (checks all components)
	app.Get("/health/detailed", healthHandler.DetailedHealth)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Welcome to the Affiliate Blog Post Generator API",
			"version":   "1.0.0",
			"docs":      "/api/v1",
			"health":    "/health",
			"websocket": "/ws?session=<id>",
		})
	})
}
