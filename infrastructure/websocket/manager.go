package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"blogpost-generator/pkg/logger"
)

// Conn is the part of a websocket connection the manager writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

const (
	MessageTypeState = "session_state"
	MessageTypePong  = "pong"
	MessageTypeError = "error"
)

// Message is the envelope pushed to clients.
type Message struct {
	Type      string      `json:"type"`
	Room      string      `json:"room,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type client struct {
	id   uuid.UUID
	room string
	conn Conn
	mu   sync.Mutex
}

func (c *client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// ConnectionManager groups connections into rooms, one room per session.
type ConnectionManager struct {
	mu      sync.RWMutex
	clients map[Conn]*client
	rooms   map[string]map[*client]struct{}
}

var errUnknownClient = errors.New("websocket client not registered")

// Manager is the process-wide connection manager.
var Manager = NewConnectionManager()

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients: make(map[Conn]*client),
		rooms:   make(map[string]map[*client]struct{}),
	}
}

func (m *ConnectionManager) RegisterClient(conn Conn, clientID uuid.UUID, room string) {
	c := &client{id: clientID, room: room, conn: conn}

	m.mu.Lock()
	m.clients[conn] = c
	if room != "" {
		if m.rooms[room] == nil {
			m.rooms[room] = make(map[*client]struct{})
		}
		m.rooms[room][c] = struct{}{}
	}
	m.mu.Unlock()

	logger.WebSocket("client_registered", "Client joined room", map[string]interface{}{
		"client_id": clientID.String(),
		"room":      room,
	})
}

func (m *ConnectionManager) UnregisterClient(conn Conn) {
	m.mu.Lock()
	c, ok := m.clients[conn]
	if ok {
		delete(m.clients, conn)
		if members, exists := m.rooms[c.room]; exists {
			delete(members, c)
			if len(members) == 0 {
				delete(m.rooms, c.room)
			}
		}
	}
	m.mu.Unlock()

	if ok {
		conn.Close()
		logger.WebSocket("client_unregistered", "Client left room", map[string]interface{}{
			"client_id": c.id.String(),
			"room":      c.room,
		})
	}
}

// SendToClient writes one message to a registered connection.
func (m *ConnectionManager) SendToClient(conn Conn, msgType string, data interface{}) error {
	m.mu.RLock()
	c, ok := m.clients[conn]
	m.mu.RUnlock()
	if !ok {
		return errUnknownClient
	}
	return c.send(Message{Type: msgType, Room: c.room, Data: data, Timestamp: time.Now()})
}

// BroadcastToRoom sends data to every client in room and returns how many received it.
func (m *ConnectionManager) BroadcastToRoom(room, msgType string, data interface{}) int {
	m.mu.RLock()
	members := make([]*client, 0, len(m.rooms[room]))
	for c := range m.rooms[room] {
		members = append(members, c)
	}
	m.mu.RUnlock()

	msg := Message{Type: msgType, Room: room, Data: data, Timestamp: time.Now()}
	sent := 0
	for _, c := range members {
		if err := c.send(msg); err != nil {
			logger.WebSocketError("broadcast", "Failed to send message", err, map[string]interface{}{
				"client_id": c.id.String(),
				"room":      room,
			})
			continue
		}
		sent++
	}
	return sent
}

func (m *ConnectionManager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *ConnectionManager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

type incoming struct {
	Type string `json:"type"`
}

// HandleWebSocketMessage answers client pings; everything else is ignored since
// clients only listen on this channel.
func (m *ConnectionManager) HandleWebSocketMessage(conn Conn, payload []byte) {
	var in incoming
	if err := json.Unmarshal(payload, &in); err != nil {
		return
	}

	m.mu.RLock()
	c, ok := m.clients[conn]
	m.mu.RUnlock()
	if !ok {
		return
	}

	if in.Type == "ping" {
		_ = c.send(Message{Type: MessageTypePong, Room: c.room, Timestamp: time.Now()})
	}
}
