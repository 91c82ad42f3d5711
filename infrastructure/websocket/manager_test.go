package websocket

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"

	"blogpost-generator/pkg/logger"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "websocket-logs")
	if err == nil {
		_ = logger.Init(dir, false)
	}
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type fakeConn struct {
	mu      sync.Mutex
	sent    []Message
	closed  bool
	failing bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("broken pipe")
	}
	f.sent = append(f.sent, v.(Message))
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestBroadcastToRoom(t *testing.T) {
	m := NewConnectionManager()
	a, b, other := &fakeConn{}, &fakeConn{}, &fakeConn{}

	m.RegisterClient(a, uuid.New(), "session-1")
	m.RegisterClient(b, uuid.New(), "session-1")
	m.RegisterClient(other, uuid.New(), "session-2")

	if n := m.BroadcastToRoom("session-1", MessageTypeState, map[string]string{"kind": "requesting"}); n != 2 {
		t.Fatalf("sent to %d clients, want 2", n)
	}
	if len(a.sent) != 1 || len(b.sent) != 1 || len(other.sent) != 0 {
		t.Errorf("unexpected deliveries a=%d b=%d other=%d", len(a.sent), len(b.sent), len(other.sent))
	}
	if a.sent[0].Type != MessageTypeState || a.sent[0].Room != "session-1" {
		t.Errorf("message = %+v", a.sent[0])
	}
}

func TestBroadcastSkipsFailingClient(t *testing.T) {
	m := NewConnectionManager()
	good, bad := &fakeConn{}, &fakeConn{failing: true}
	m.RegisterClient(good, uuid.New(), "r")
	m.RegisterClient(bad, uuid.New(), "r")

	if n := m.BroadcastToRoom("r", MessageTypeState, nil); n != 1 {
		t.Errorf("sent = %d, want 1", n)
	}
}

func TestUnregisterClient(t *testing.T) {
	m := NewConnectionManager()
	conn := &fakeConn{}
	m.RegisterClient(conn, uuid.New(), "room")

	m.UnregisterClient(conn)

	if !conn.closed {
		t.Error("connection should be closed")
	}
	if m.ClientCount() != 0 || m.RoomCount() != 0 {
		t.Errorf("clients=%d rooms=%d after unregister", m.ClientCount(), m.RoomCount())
	}
	if n := m.BroadcastToRoom("room", MessageTypeState, nil); n != 0 {
		t.Errorf("broadcast after unregister reached %d clients", n)
	}
}

func TestHandleWebSocketMessagePing(t *testing.T) {
	m := NewConnectionManager()
	conn := &fakeConn{}
	m.RegisterClient(conn, uuid.New(), "room")

	m.HandleWebSocketMessage(conn, []byte(`{"type":"ping"}`))
	m.HandleWebSocketMessage(conn, []byte(`not json`))

	if len(conn.sent) != 1 || conn.sent[0].Type != MessageTypePong {
		t.Errorf("sent = %+v", conn.sent)
	}
}

func TestSendToClient(t *testing.T) {
	m := NewConnectionManager()
	conn := &fakeConn{}

	if err := m.SendToClient(conn, MessageTypeState, "x"); err == nil {
		t.Fatal("expected error for unregistered connection")
	}

	m.RegisterClient(conn, uuid.New(), "room-1")
	if err := m.SendToClient(conn, MessageTypeState, "hello"); err != nil {
		t.Fatalf("SendToClient() error = %v", err)
	}

	conn.mu.Lock()
	defer conn.mu.Unlock()
	if len(conn.sent) != 1 || conn.sent[0].Room != "room-1" || conn.sent[0].Data != "hello" {
		t.Errorf("sent = %+v", conn.sent)
	}
}
