// Package realtime pushes alerts to connected websocket clients.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jwulff/glucowise-go/internal/domain"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 25 * time.Second
)

// Client is one websocket connection of a user.
type Client struct {
	UserID string

	conn *websocket.Conn
	mu   sync.Mutex // serializes writes
	once sync.Once
	done chan struct{}
}

// NewClient wraps a websocket connection.
func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{UserID: userID, conn: conn, done: make(chan struct{})}
}

func (c *Client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// Hub tracks connected clients per user.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	logger  *zap.Logger
}

// NewHub creates an empty hub. A nil logger discards logs.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*Client]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("client connected", zap.String("user_id", c.UserID))
}

// Unregister removes a client and closes its connection.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	c.close()

	h.logger.Debug("client disconnected", zap.String("user_id", c.UserID))
}

// Count returns the number of connections a user has open.
func (h *Hub) Count(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish sends an alert to every connection of a user. Connections that
// fail to receive it are dropped.
func (h *Hub) Publish(userID string, alert domain.Alert) {
	msg, err := json.Marshal(alert)
	if err != nil {
		h.logger.Error("failed to encode alert", zap.String("kind", alert.Kind), zap.Error(err))
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			h.logger.Debug("dropping client", zap.String("user_id", userID), zap.Error(err))
			h.Unregister(c)
		}
	}
}

// Serve registers c and blocks until the client goes away. Incoming
// messages are discarded; pings keep the connection alive through proxies.
func (h *Hub) Serve(c *Client) {
	h.Register(c)
	defer h.Unregister(c)

	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-c.done:
				return
			case <-t.C:
				if err := c.write(websocket.PingMessage, nil); err != nil {
					h.Unregister(c)
					return
				}
			}
		}
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
