// Package live pushes notification and timer updates to open pages over a
// websocket.
package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4 * 1024

	sendBuffer = 64
)

const (
	TypeNotifications = "notifications"
	TypeTimer         = "timer"
)

type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type envelope struct {
	sessionID string // empty means every client
	payload   []byte
}

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub maintains the set of active clients and routes messages to them.
type Hub struct {
	clients    map[*Client]bool
	mu         sync.Mutex
	sessions   map[string]int
	outbound   chan envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		sessions:   make(map[string]int),
		outbound:   make(chan envelope),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Broadcast sends msg to every connected page.
func (h *Hub) Broadcast(msg Message) {
	h.publish("", msg)
}

// SendTo sends msg only to pages opened by the given session.
func (h *Hub) SendTo(sessionID string, msg Message) {
	if sessionID == "" {
		return
	}
	h.publish(sessionID, msg)
}

func (h *Hub) publish(sessionID string, msg Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("live_marshal_failed", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	select {
	case h.outbound <- envelope{sessionID: sessionID, payload: b}:
	case <-h.done:
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.send)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Clients reports the number of registered clients. It is only accurate
// when called from the Run goroutine or after Run returns.
func (h *Hub) Clients() int {
	return len(h.clients)
}

// Connected reports whether any page of the session holds an open socket.
func (h *Hub) Connected(sessionID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[sessionID] > 0
}

func (h *Hub) add(c *Client) {
	h.clients[c] = true
	h.mu.Lock()
	h.sessions[c.sessionID]++
	h.mu.Unlock()
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.mu.Lock()
	if h.sessions[c.sessionID]--; h.sessions[c.sessionID] <= 0 {
		delete(h.sessions, c.sessionID)
	}
	h.mu.Unlock()
}

// Run is the hub's main loop. It returns when ctx is cancelled, after
// closing every client's send channel.
func (h *Hub) Run(ctx context.Context) error {
	defer func() {
		close(h.done)
		for c := range h.clients {
			h.drop(c)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-h.register:
			h.add(c)
			h.logger.Debug("live_client_connected", zap.String("session_id", c.sessionID))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.logger.Debug("live_client_disconnected", zap.String("session_id", c.sessionID))
			}
		case env := <-h.outbound:
			for c := range h.clients {
				if env.sessionID != "" && c.sessionID != env.sessionID {
					continue
				}
				select {
				case c.send <- env.payload:
				default:
					h.logger.Warn("live_client_slow", zap.String("session_id", c.sessionID))
					h.drop(c)
				}
			}
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("live_read_failed", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
