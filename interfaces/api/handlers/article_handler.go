package handlers

import (
	"github.com/gofiber/fiber/v2"

	"blogpost-generator/application/render"
	"blogpost-generator/domain/models"
	"blogpost-generator/domain/services"
	"blogpost-generator/pkg/logger"
	"blogpost-generator/pkg/utils"
)

type ArticleHandler struct {
	generationService services.GenerationService
}

func NewArticleHandler(generationService services.GenerationService) *ArticleHandler {
	return &ArticleHandler{
		generationService: generationService,
	}
}

// ArticleResponse is a generated article together with its parsed display nodes
type ArticleResponse struct {
	Article string              `json:"article"`
	Images  []string            `json:"images"`
	Nodes   []models.RenderNode `json:"nodes"`
}

// GenerateArticle runs one generation synchronously, without a session
// @Summary Generate an article
// @Tags Articles
// @Accept json
// @Produce json
// @Param request body models.GenerationParameters true "Generation parameters"
// @Success 200 {object} utils.Response
// @Router /api/v1/articles/generate [post]
func (h *ArticleHandler) GenerateArticle(c *fiber.Ctx) error {
	var params models.GenerationParameters
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	params = params.WithDefaults()
	if issues := utils.ValidateStruct(params); len(issues) > 0 {
		return utils.ValidationErrorResponse(c, "Invalid generation parameters", issues)
	}

	result, err := h.generationService.Generate(c.UserContext(), params)
	if err != nil {
		logger.Warn(logger.CategoryAPI, "generate_article_failed", "Article generation failed", map[string]interface{}{
			"error":      err.Error(),
			"request_id": requestID(c),
		})
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Article generated", ArticleResponse{
		Article: result.Article,
		Images:  result.Images,
		Nodes:   render.ParseArticle(result.Article, result.Images),
	})
}

// requestID returns the id set by the requestid middleware, if any.
func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
