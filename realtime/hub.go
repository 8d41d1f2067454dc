// Package realtime pushes the dashboard to connected admin screens over websockets
// whenever the bookings collection changes.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"bookingadmin/services/booking"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	MessageTypeBookings = "bookings"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBuffer     = 8
	rewatchBackoff = 5 * time.Second
)

// ErrHubStopped is returned to connections that arrive after Run has returned.
var ErrHubStopped = errors.New("realtime hub stopped")

// Message is the payload of every push.
type Message struct {
	Type string `json:"type"`
	*booking.Dashboard
}

// Source produces the dashboard and change signals. booking.BookingService satisfies it.
type Source interface {
	Dashboard(ctx context.Context) (*booking.Dashboard, error)
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Client is one connected screen. Writes go through send so only writePump touches the conn.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of active clients and broadcasts dashboard snapshots.
type Hub struct {
	source     Source
	logger     *zap.Logger
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	last       []byte

	// Backoff is the wait before reopening a bookings watch that failed or ended.
	Backoff time.Duration
}

func NewHub(source Source, logger *zap.Logger) *Hub {
	return &Hub{
		source:     source,
		logger:     logger,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		Backoff:    rewatchBackoff,
	}
}

// Run starts the hub's event loop and the bookings watch. It returns when ctx ends,
// closing every client. A watch that cannot be opened or that ends is retried after Backoff.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	changes := h.watch(ctx)
	h.refresh(ctx)

	var retry <-chan time.Time
	if changes == nil {
		retry = time.After(h.Backoff)
	}

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			snapshot := h.last
			h.mu.Unlock()
			if snapshot != nil {
				h.deliver(client, snapshot)
			}
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		case <-retry:
			retry = nil
			if changes = h.watch(ctx); changes == nil {
				retry = time.After(h.Backoff)
				continue
			}
			if msg := h.refresh(ctx); msg != nil {
				h.broadcast(msg)
			}
		case _, ok := <-changes:
			if !ok {
				changes = nil
				if ctx.Err() == nil {
					h.logger.Warn("Bookings watch ended, reopening", zap.Duration("backoff", h.Backoff))
					retry = time.After(h.Backoff)
				}
				continue
			}
			if msg := h.refresh(ctx); msg != nil {
				h.broadcast(msg)
			}
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) watch(ctx context.Context) <-chan struct{} {
	ch, err := h.source.Watch(ctx)
	if err != nil {
		h.logger.Error("Failed to watch bookings, retrying", zap.Duration("backoff", h.Backoff), zap.Error(err))
		return nil
	}
	return ch
}

// refresh rebuilds the snapshot. On failure the previous one is kept and nil is returned.
func (h *Hub) refresh(ctx context.Context) []byte {
	dash, err := h.source.Dashboard(ctx)
	if err != nil {
		h.logger.Error("Failed to load dashboard", zap.Error(err))
		return nil
	}
	msg, err := json.Marshal(Message{Type: MessageTypeBookings, Dashboard: dash})
	if err != nil {
		h.logger.Error("Failed to encode dashboard", zap.Error(err))
		return nil
	}
	h.mu.Lock()
	h.last = msg
	h.mu.Unlock()
	return msg
}

func (h *Hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			// Too slow to keep up; it reconnects and gets a fresh snapshot.
			delete(h.clients, client)
			close(client.send)
		}
	}
}

func (h *Hub) deliver(client *Client, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[client] {
		return
	}
	select {
	case client.send <- msg:
	default:
	}
}

// readPump discards incoming messages and detects disconnection.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
