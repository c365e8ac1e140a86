// Package realtime fans board and chat events out to websocket clients
// grouped in rooms.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
)

// userRoomPrefix marks rooms that carry one user's events rather than a
// project's.
const userRoomPrefix = "user:"

// Message is the JSON frame sent to clients. ProjectID is set for project
// rooms only.
type Message struct {
	Type      string `json:"type"`
	Room      string `json:"room"`
	ProjectID string `json:"projectId,omitempty"`
	Data      any    `json:"data"`
}

type envelope struct {
	room    string
	payload []byte
}

// Hub tracks clients per room and owns every client's send channel.
type Hub struct {
	rooms      map[string]map[*Client]struct{}
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *slog.Logger
	origins    map[string]bool

	mu     sync.Mutex
	counts map[string]int
}

// NewHub creates a hub. Call Run to start it.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		broadcast:  make(chan envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
		counts:     make(map[string]int),
	}
}

// Publish sends an event to every client in room. It never blocks; when the
// hub is backed up the event is dropped.
func (h *Hub) Publish(room, eventType string, data any) {
	msg := Message{Type: eventType, Room: room, Data: data}
	if !strings.HasPrefix(room, userRoomPrefix) {
		msg.ProjectID = room
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Warn("realtime event not encoded", "type", eventType, "error", err)
		return
	}
	select {
	case h.broadcast <- envelope{room: room, payload: payload}:
	default:
		h.logger.Warn("realtime hub saturated, event dropped", "room", room, "type", eventType)
	}
}

// ClientCount reports how many clients are subscribed to room.
func (h *Hub) ClientCount(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[room]
}

// Run serves registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.rooms {
				for c := range clients {
					h.remove(c)
				}
			}
			return
		case c := <-h.register:
			clients, ok := h.rooms[c.room]
			if !ok {
				clients = make(map[*Client]struct{})
				h.rooms[c.room] = clients
			}
			clients[c] = struct{}{}
			h.setCount(c.room, len(clients))
			h.logger.Debug("realtime client joined", "room", c.room, "user_id", c.userID)
		case c := <-h.unregister:
			h.remove(c)
		case e := <-h.broadcast:
			for c := range h.rooms[e.room] {
				select {
				case c.send <- e.payload:
				default:
					h.logger.Info("dropping slow realtime client", "room", e.room, "user_id", c.userID)
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	clients, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.rooms, c.room)
	}
	h.setCount(c.room, len(clients))
	h.logger.Debug("realtime client left", "room", c.room, "user_id", c.userID)
}

func (h *Hub) setCount(room string, n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n == 0 {
		delete(h.counts, room)
		return
	}
	h.counts[room] = n
}
