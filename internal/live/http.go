package live

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	hub             *Hub
	upgrader        websocket.Upgrader
	sessionResolver func(*http.Request) string
	snapshot        func(sessionID string) []Message
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *Handler) SetSessionResolver(fn func(*http.Request) string) {
	h.sessionResolver = fn
}

// SetSnapshot registers the messages queued for a page as soon as it connects.
func (h *Handler) SetSnapshot(fn func(sessionID string) []Message) {
	h.snapshot = fn
}

// GET /live
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := ""
	if h.sessionResolver != nil {
		sessionID = h.sessionResolver(r)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.hub.logger.Warn("live_upgrade_failed", zap.Error(err))
		return
	}

	c := &Client{hub: h.hub, conn: conn, send: make(chan []byte, sendBuffer), sessionID: sessionID}
	if h.snapshot != nil {
		for _, m := range h.snapshot(sessionID) {
			b, err := json.Marshal(m)
			if err != nil {
				continue
			}
			select {
			case c.send <- b:
			default:
			}
		}
	}

	h.hub.Register(c)
	go c.writePump()
	go c.readPump()
}
