package routes

import (
	"github.com/gofiber/fiber/v2"

	"blogpost-generator/interfaces/api/handlers"
	"blogpost-generator/interfaces/api/middleware"
	"blogpost-generator/pkg/config"
)

func SetupArticleRoutes(router fiber.Router, h *handlers.Handlers, rateLimit *config.RateLimitConfig, storage fiber.Storage) {
	articles := router.Group("/articles")

	articles.Post("/generate", middleware.GenerateRateLimiter(rateLimit, storage), h.Article.GenerateArticle)
}
