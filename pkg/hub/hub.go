package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Subscriber is anything the hub can deliver messages to. *Client is the
// websocket implementation.
type Subscriber interface {
	ID() string
	Send() chan Message
}

// Hub maintains the set of active subscribers and broadcasts messages to them
type Hub struct {
	name   string
	logger *slog.Logger

	clients    map[Subscriber]bool
	broadcast  chan Message
	register   chan Subscriber
	unregister chan Subscriber
	done       chan struct{}

	mu sync.RWMutex
}

func New(name string, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		name:       name,
		logger:     logger.With("hub", name),
		clients:    make(map[Subscriber]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan Subscriber),
		unregister: make(chan Subscriber),
		done:       make(chan struct{}),
	}
}

// Run is the hub's main loop. It returns when ctx is done, closing every
// subscriber's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send())
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client connected", "client", c.ID(), "total", count)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send())
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client disconnected", "client", c.ID(), "remaining", count)

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send() <- msg:
				default:
					// too slow, drop it
					close(c.Send())
					delete(h.clients, c)
					h.logger.Warn("dropped slow client", "client", c.ID())
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register blocks until the running hub accepts c. If the hub has
// already stopped, c's send channel is closed instead.
func (h *Hub) Register(c Subscriber) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.Send())
	}
}

func (h *Hub) Unregister(c Subscriber) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues msg for every subscriber; drops it if the queue is full.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("broadcast channel full, dropping message")
	}
}

func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(NewJSONMessage(data))
	return nil
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// PublishJSON lets the hub act as a monitor sink.
func (h *Hub) PublishJSON(v any) error {
	return h.BroadcastJSON(v)
}
