// Package websocket delivers notifications to connected clients. The hub
// keys connections by user id and pushes server-generated events; clients
// never send application messages, so the read side only services pings.
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event is a payload pushed to a single user's open connections
type Event struct {
	// Kind of event, e.g. "notification"
	Kind string `json:"kind"`

	// Recipient of the event
	RecipientID int64 `json:"recipientId"`

	// Arbitrary event payload
	Payload interface{} `json:"payload"`

	// Timestamp when the event was produced
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and pushes events to them
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	// Channel for outbound events
	events chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		events:     make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run starts the hub loop, handling registrations and event delivery
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.events:
			h.deliver(event)
		}
	}
}

// Push queues an event for delivery to the recipient's open connections.
// Delivery is best-effort; the persisted notification row is the source
// of truth and a disconnected user catches up over REST.
func (h *Hub) Push(event *Event) {
	select {
	case h.events <- event:
	default:
		h.logger.Warn().Int64("recipientId", event.RecipientID).Msg("Event queue full, dropping push")
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Notification client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.userID]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			close(client.send)

			if len(conns) == 0 {
				delete(h.clients, client.userID)
			}

			h.logger.Info().
				Int64("userID", client.userID).
				Msg("Notification client unregistered")
		}
	}
}

func (h *Hub) deliver(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal event")
		return
	}

	h.mu.RLock()
	conns := h.clients[event.RecipientID]
	targets := make([]*Client, 0, len(conns))
	for client := range conns {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		select {
		case client.send <- data:
		default:
			// Slow consumer, drop the connection rather than block the hub
			h.unregisterClient(client)
		}
	}
}
