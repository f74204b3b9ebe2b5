// Package ws streams command execution events to connected controllers.
package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the listener binds to loopback only
	},
}

// Event is one entry on the execution stream.
type Event struct {
	Type    string `json:"type"`
	Command string `json:"command,omitempty"`
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Hub tracks connected clients and fans execution events out to them.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	log   *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{conns: make(map[*websocket.Conn]struct{}), log: logger}
}

// Broadcast sends ev to every connected client, dropping clients whose
// connection errors.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(ev); err != nil {
			h.log.Debug("dropping stream client", zap.Error(err))
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// HandleConnection upgrades the request and keeps the connection open,
// answering pings, until the client goes away.
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	// Registration and the welcome share the lock: gorilla allows only one
	// concurrent writer, so a Broadcast must never overlap this write.
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	err = conn.WriteJSON(Event{Type: "system", Message: "connected to automation stream"})
	h.mu.Unlock()
	if err != nil {
		return
	}

	for {
		var msg map[string]any
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if t, _ := msg["type"].(string); t == "ping" {
			h.mu.Lock()
			err := conn.WriteJSON(Event{Type: "pong"})
			h.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
