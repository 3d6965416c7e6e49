package handler

import (
	"net/http"

	"github.com/palaro/guessquiz/internal/sse"
)

// EventsHandler streams game events to chat clients
type EventsHandler struct {
	hub *sse.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *sse.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
	}
}

// Stream handles GET /api/v1/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sse.ServeSSE(h.hub, w, r)
}
