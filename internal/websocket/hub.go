// internal/websocket/hub.go
package websocket

import (
	"encoding/json"
	"sync"

	"parkreg-service/internal/service/lifecycle"

	"go.uber.org/zap"
)

// Hub pushes lifecycle events to connected UI clients so vehicle lists stay
// in sync without a page reload. Applicant clients are keyed by applicant id
// and only receive events for their own vehicles; admin clients receive
// everything.
type Hub struct {
	clients map[int64]map[*Client]bool
	admins  map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan *routedMessage

	logger *zap.Logger
}

// routedMessage targets the owning applicant's clients plus admins.
type routedMessage struct {
	applicantID int64
	data        []byte
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		admins:     make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *routedMessage, 256),
		logger:     logger,
	}
}

// Run processes client registration and message routing. Call in its own
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.isAdmin {
		h.admins[client] = true
		h.logger.Debug("admin client connected", zap.Int64("admin_id", client.adminID))
		return
	}

	if h.clients[client.applicantID] == nil {
		h.clients[client.applicantID] = make(map[*Client]bool)
	}
	h.clients[client.applicantID][client] = true
	h.logger.Debug("applicant client connected", zap.Int64("applicant_id", client.applicantID))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.isAdmin {
		if _, ok := h.admins[client]; ok {
			delete(h.admins, client)
			close(client.send)
		}
		return
	}

	if clients, ok := h.clients[client.applicantID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			close(client.send)
			if len(clients) == 0 {
				delete(h.clients, client.applicantID)
			}
		}
	}
}

func (h *Hub) deliver(message *routedMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[message.applicantID] {
		h.send(client, message.data)
	}
	for client := range h.admins {
		h.send(client, message.data)
	}
}

func (h *Hub) send(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		// Slow consumer; drop it rather than block the hub.
		go func() { h.unregister <- client }()
	}
}

// Publish implements lifecycle.EventPublisher. Events are routed to the
// owning applicant's connections and to admin consoles.
func (h *Hub) Publish(event lifecycle.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("failed to marshal lifecycle event", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- &routedMessage{applicantID: event.ApplicantID, data: data}:
	default:
		h.logger.Warn("event broadcast buffer full, dropping event",
			zap.String("type", event.Type),
			zap.Int64("vehicle_id", event.VehicleID),
		)
	}
}
