package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"blogpost-generator/domain/models"
	"blogpost-generator/domain/services"
	"blogpost-generator/pkg/apperrors"
	"blogpost-generator/pkg/utils"
)

type SessionHandler struct {
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// UpdateFieldRequest edits one form field. Value may be a JSON string or boolean.
type UpdateFieldRequest struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

// SessionResponse is the form state together with what the display shows
type SessionResponse struct {
	Session *models.Session     `json:"session"`
	View    *models.DisplayView `json:"view"`
}

type SubmitResponse struct {
	SessionID string `json:"sessionId"`
	RequestID uint64 `json:"requestId"`
}

type CopyResponse struct {
	Text string `json:"text"`
}

func parseSessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperrors.NotFound(apperrors.MsgSessionNotFound)
	}
	return id, nil
}

// CreateSession starts a new form session
// @Summary Create a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body models.GenerationParameters false "Initial parameters"
// @Success 201 {object} utils.Response
// @Router /api/v1/sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var initial *models.GenerationParameters
	if len(c.Body()) > 0 {
		initial = &models.GenerationParameters{}
		if err := c.BodyParser(initial); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
		}
	}

	created, err := h.sessionService.Create(c.UserContext(), initial)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	session, view, err := h.sessionService.Describe(c.UserContext(), created.ID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, "Session created", SessionResponse{Session: session, View: view})
}

// GetSession returns the form state and display view
// @Summary Get a session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	session, view, err := h.sessionService.Describe(c.UserContext(), id)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Session retrieved", SessionResponse{Session: session, View: view})
}

// UpdateField replaces a single form field
// @Summary Edit one field
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body UpdateFieldRequest true "Field edit"
// @Success 200 {object} utils.Response
// @Router /api/v1/sessions/{id}/fields [patch]
func (h *SessionHandler) UpdateField(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	var req UpdateFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	value := ""
	if req.Value != nil {
		value = fmt.Sprint(req.Value)
	}

	session, err := h.sessionService.UpdateField(c.UserContext(), id, models.Field(req.Field), value)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Field updated", session.Params)
}

// Submit starts a generation attempt; progress is pushed over the websocket
// @Summary Submit the form
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 202 {object} utils.Response
// @Router /api/v1/sessions/{id}/submit [post]
func (h *SessionHandler) Submit(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	requestID, err := h.sessionService.Submit(c.UserContext(), id)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.AcceptedResponse(c, "Generation started", SubmitResponse{
		SessionID: id.String(),
		RequestID: requestID,
	})
}

// GetView returns what the display currently shows
// @Summary Get the display view
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/sessions/{id}/view [get]
func (h *SessionHandler) GetView(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	view, err := h.sessionService.View(c.UserContext(), id)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "View retrieved", view)
}

// Copy returns the raw article for the clipboard
// @Summary Copy the article
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body models.ClientCapabilities true "Client capabilities"
// @Success 200 {object} utils.Response
// @Router /api/v1/sessions/{id}/copy [post]
func (h *SessionHandler) Copy(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	var caps models.ClientCapabilities
	if err := c.BodyParser(&caps); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	text, err := h.sessionService.Copy(c.UserContext(), id, caps)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Copied!", CopyResponse{Text: text})
}

// Share returns the payload for the native share sheet
// @Summary Share the article
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body models.ClientCapabilities true "Client capabilities"
// @Success 200 {object} utils.Response
// @Router /api/v1/sessions/{id}/share [post]
func (h *SessionHandler) Share(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	var caps models.ClientCapabilities
	if err := c.BodyParser(&caps); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	data, err := h.sessionService.Share(c.UserContext(), id, caps)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Share data ready", data)
}

// ExportHTML renders the current article as a standalone HTML page
// @Summary Export the article as HTML
// @Tags Sessions
// @Produce html
// @Param id path string true "Session ID"
// @Success 200 {string} string
// @Router /api/v1/sessions/{id}/article.html [get]
func (h *SessionHandler) ExportHTML(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	doc, err := h.sessionService.ExportHTML(c.UserContext(), id)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	c.Type("html", "utf-8")
	return c.SendString(doc)
}
