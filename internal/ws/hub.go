package ws

import (
	"encoding/json"
	"sync"

	"petfarm_webapp/internal/logger"
)

// Hub fans server events out to a user's connected clients. The feed is
// one-way: clients get balance and pet-status pushes (training finished,
// auto-claim settled) and never send game actions over the socket.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.UserID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.UserID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
}

// NotifyUser implements service.Notifier. A slow client's full send buffer
// drops the event rather than blocking the claim path.
func (h *Hub) NotifyUser(userID int64, event string, payload interface{}) {
	msg, err := json.Marshal(Event{Type: event, Payload: payload})
	if err != nil {
		logger.Error("ws: marshal event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("ws: dropping event for slow client", "user", userID, "event", event)
		}
	}
}
