package routes

import (
	"github.com/gofiber/fiber/v2"

	"blogpost-generator/interfaces/api/handlers"
)

func SetupOptionsRoutes(router fiber.Router, h *handlers.Handlers) {
	router.Get("/options", h.Options.GetOptions)
}
