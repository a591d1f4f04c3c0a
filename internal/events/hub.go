// Package events fans complaint lifecycle events out to connected
// dashboard clients and any registered sinks (e.g. the Telegram
// notifier). It replaces the re-render-on-store-change behaviour of the
// original single-page client.
package events

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hosteldesk/backend/internal/models"
)

// Event types published by the API layer.
const (
	TypeComplaintCreated  = "complaint.created"
	TypeComplaintUpdated  = "complaint.status_changed"
	TypeComplaintAssigned = "complaint.assigned"
	TypeComplaintDeleted  = "complaint.deleted"
)

// Event is one complaint lifecycle notification. Complaint is the state
// after the mutation; for deletes only the ID survives.
type Event struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Complaint *models.Complaint `json:"complaint,omitempty"`
	At        time.Time         `json:"at"`
}

// Sink receives every event. Sinks must not block: slow work belongs in
// the sink's own goroutine.
type Sink func(Event)

// Hub owns the subscriber set. All registration and broadcast goes
// through its channels, serialized by the Run loop, so the maps need no
// lock.
type Hub struct {
	clients map[string]*Client
	sinks   []Sink

	publishCh    chan Event
	registerCh   chan *Client
	unregisterCh chan *Client

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:      make(map[string]*Client),
		publishCh:    make(chan Event, 64),
		registerCh:   make(chan *Client),
		unregisterCh: make(chan *Client),
		logger:       logger,
	}
}

// AddSink registers an in-process subscriber. Call before Run starts.
func (h *Hub) AddSink(s Sink) {
	h.sinks = append(h.sinks, s)
}

// Publish queues an event for broadcast. Stamps id and timestamp.
func (h *Hub) Publish(evtType string, c *models.Complaint) {
	h.publishCh <- Event{
		ID:        uuid.New().String(),
		Type:      evtType,
		Complaint: c,
		At:        time.Now(),
	}
}

// Register hands a new websocket client to the hub.
func (h *Hub) Register(c *Client) {
	h.registerCh <- c
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.unregisterCh <- c
}

// Run is the dispatcher loop. Start it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.registerCh:
			h.clients[c.ID] = c
			h.logger.Debug("ws client registered", zap.String("client", c.ID), zap.String("user", c.UserID))

		case c := <-h.unregisterCh:
			if _, ok := h.clients[c.ID]; ok {
				delete(h.clients, c.ID)
				close(c.send)
			}

		case evt := <-h.publishCh:
			for _, sink := range h.sinks {
				sink(evt)
			}
			for _, c := range h.clients {
				select {
				case c.send <- evt:
				default:
					// Client can't keep up; drop it rather than stall
					// the broadcast.
					delete(h.clients, c.ID)
					close(c.send)
					h.logger.Warn("dropping slow ws client", zap.String("client", c.ID))
				}
			}
		}
	}
}
