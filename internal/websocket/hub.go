package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Entities carried in chart messages.
const (
	EntityChart    = "chart"
	EntityTask     = "task"
	EntityChore    = "chore"
	EntityReward   = "reward"
	EntityProgress = "progress"
)

// Message is a change notification for one child's chart.
type Message struct {
	Type   string         `json:"type"`
	Child  string         `json:"child"`
	Entity string         `json:"entity"`
	Action string         `json:"action"`
	ID     string         `json:"id,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
}

// NewMessage builds a Message whose Type is "<entity>_<action>".
func NewMessage(child, entity, action, id string, extra map[string]any) Message {
	return Message{
		Type:   entity + "_" + action,
		Child:  child,
		Entity: entity,
		Action: action,
		ID:     id,
		Extra:  extra,
	}
}

// Hub tracks connected clients and fans messages out to them. A client
// subscribed to a child only sees that child's messages; an unscoped
// client sees everything.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client and closes its send channel. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast delivers msg to every interested client without blocking.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if c.child != "" && c.child != msg.Child {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.logger.Debug("dropping message for slow client", "child", c.child, "type", msg.Type)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
