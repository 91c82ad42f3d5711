package handlers

import (
	"github.com/gofiber/fiber/v2"

	"blogpost-generator/domain/models"
	"blogpost-generator/pkg/utils"
)

type OptionsHandler struct{}

func NewOptionsHandler() *OptionsHandler {
	return &OptionsHandler{}
}

// GetOptions returns the closed option sets and the default form values
// @Summary List form options
// @Tags Options
// @Produce json
// @Success 200 {object} utils.Response
// @Router /api/v1/options [get]
func (h *OptionsHandler) GetOptions(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, "Options retrieved", models.Options())
}
