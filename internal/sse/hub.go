package sse

import (
	"log/slog"
	"sync"
)

// Hub fans events out to connected clients.
//
// There is one hub for the whole chat; every connected client sees
// every event. Slow clients are dropped rather than blocking the
// broadcast.
type Hub struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	clients map[chan []byte]struct{}
	closed  bool
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: map[chan []byte]struct{}{},
	}
}

// Subscribe registers a client and returns its event channel.
func (h *Hub) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.clients[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a client. Safe to call more than once.
func (h *Hub) Unsubscribe(ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

// Publish delivers an event to every connected client. A client
// whose buffer is full is disconnected.
func (h *Hub) Publish(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for ch := range h.clients {
		select {
		case ch <- data:
		default:
			h.logger.Warn("Dropping slow event client")
			delete(h.clients, ch)
			close(ch)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects all clients and rejects new subscriptions.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}
