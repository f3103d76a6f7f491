package services

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Record event types pushed to a user's open sessions.
const (
	EventPRRecordCreated  = "pr_record_created"
	EventPRRecordUpdated  = "pr_record_updated"
	EventPRRecordDeleted  = "pr_record_deleted"
	EventWODResultCreated = "wod_result_created"
	EventWODResultUpdated = "wod_result_updated"
	EventWODResultDeleted = "wod_result_deleted"
)

const (
	sendBuffer = 64
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// WebSocketMessage is the envelope for every frame sent to clients.
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// RecordDeleted is the payload of a *_deleted event.
type RecordDeleted struct {
	ID uint `json:"id"`
}

// Client is one open websocket session.
type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub
}

// Hub tracks open sessions per user and fans record events out to them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	upgrader   websocket.Upgrader
	log        *zap.Logger
}

func NewHub(allowedOrigins []string, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
		log: log,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// Run owns registration until ctx is cancelled, then closes every session.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			h.log.Debug("websocket connected", zap.Uint("user_id", client.UserID))

		case client := <-h.unregister:
			h.remove(client)
			h.log.Debug("websocket disconnected", zap.Uint("user_id", client.UserID))
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

// SendToUser delivers an event to every session of userID. Sessions whose
// buffer is full are dropped.
func (h *Hub) SendToUser(userID uint, eventType string, data interface{}) {
	payload, err := json.Marshal(WebSocketMessage{Type: eventType, Data: data})
	if err != nil {
		h.log.Error("marshal websocket event", zap.String("type", eventType), zap.Error(err))
		return
	}

	var slow []*Client
	h.mutex.RLock()
	for client := range h.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.Send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	h.mutex.RUnlock()

	for _, client := range slow {
		h.log.Warn("dropping slow websocket client", zap.Uint("user_id", client.UserID))
		h.remove(client)
	}
}

// ConnectedClients returns the number of open sessions.
func (h *Hub) ConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Serve upgrades the request and attaches the session to userID.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		Hub:    h,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump only keeps the connection alive. Clients do not send commands.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.log.Debug("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Hub.log.Debug("websocket write error", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
