package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"blogpost-generator/domain/services"
	websocketHandler "blogpost-generator/interfaces/api/websocket"
)

func SetupWebSocketRoutes(app *fiber.App, sessionService services.SessionService) {
	wsHandler := websocketHandler.NewWebSocketHandler(sessionService)

	// Clients subscribe to one session with ?session=<id>
	app.Use("/ws", wsHandler.WebSocketUpgrade)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
