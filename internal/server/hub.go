package server

import (
	"encoding/json"
	"net/http"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "physerver"})

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local control surface
	},
}

// WSMessage is the envelope of every WebSocket message.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// FramePayload carries one received frame to the clients.
type FramePayload struct {
	Length int    `json:"length"`
	Data   string `json:"data"` // payload bytes, base64
}

// WSHub manages WebSocket connections and broadcasts decoded frames.
type WSHub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewWSHub creates a WebSocket hub.
func NewWSHub() *WSHub {
	return &WSHub{clients: make(map[*websocket.Conn]bool)}
}

// AddClient registers a new WebSocket connection.
func (h *WSHub) AddClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	logger.Info("websocket client connected", "total", len(h.clients))
}

// RemoveClient removes a WebSocket connection.
func (h *WSHub) RemoveClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
	logger.Info("websocket client disconnected", "remaining", len(h.clients))
}

// Broadcast sends a message to all connected clients.
func (h *WSHub) Broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("websocket marshal", "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.Warn("websocket write", "err", err)
			go h.RemoveClient(conn)
		}
	}
}
