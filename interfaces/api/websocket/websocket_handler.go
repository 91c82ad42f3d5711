package websocket

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"blogpost-generator/domain/services"
	websocketManager "blogpost-generator/infrastructure/websocket"
	"blogpost-generator/pkg/logger"
	"blogpost-generator/pkg/utils"
)

type WebSocketHandler struct {
	sessionService services.SessionService
}

func NewWebSocketHandler(sessionService services.SessionService) *WebSocketHandler {
	return &WebSocketHandler{sessionService: sessionService}
}

// WebSocketUpgrade only lets upgrades through for an existing session.
func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	sessionID, err := uuid.Parse(c.Query("session"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing or invalid session query parameter", err)
	}
	if _, err := h.sessionService.Get(c.UserContext(), sessionID); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	c.Locals("session_id", sessionID)
	return c.Next()
}

// HandleWebSocket joins the connection to the session room and sends the
// current view right away; later views arrive through the session listener.
func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	sessionID, _ := c.Locals("session_id").(uuid.UUID)
	clientID := uuid.New()
	room := sessionID.String()

	websocketManager.Manager.RegisterClient(c, clientID, room)
	defer websocketManager.Manager.UnregisterClient(c)

	logger.WebSocket("client_connected", "Client connected", map[string]interface{}{
		"client_id":  clientID.String(),
		"session_id": room,
	})

	if view, err := h.sessionService.View(context.Background(), sessionID); err == nil {
		_ = websocketManager.Manager.SendToClient(c, websocketManager.MessageTypeState, view)
	}

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			logger.WebSocketError("read_message", "WebSocket read error", err, map[string]interface{}{"client_id": clientID.String()})
			break
		}

		websocketManager.Manager.HandleWebSocketMessage(c, message)
	}
}
