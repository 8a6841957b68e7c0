package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"talently/internal/domain"
	"talently/internal/events"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// BusinessLookup supplies the notification preferences of a business.
type BusinessLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Business, error)
}

// connection is one open socket of a business.
type connection struct {
	businessID string
	conn       *websocket.Conn
	send       chan []byte
}

// Hub pushes booking events to the sockets of the owning business. It
// implements events.Publisher.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]map[*connection]struct{}
	businesses  BusinessLookup
	closed      bool
}

func NewHub(businesses BusinessLookup) *Hub {
	return &Hub{
		connections: make(map[string]map[*connection]struct{}),
		businesses:  businesses,
	}
}

// register adds c unless the hub is shut down.
func (h *Hub) register(c *connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	set, ok := h.connections[c.businessID]
	if !ok {
		set = make(map[*connection]struct{})
		h.connections[c.businessID] = set
	}
	set[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.connections[c.businessID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.connections, c.businessID)
	}
}

// IsOnline reports whether the business has at least one open socket.
func (h *Hub) IsOnline(businessID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[businessID]) > 0
}

// Publish delivers e to every socket of e.BusinessID unless the business has
// turned booking notifications off. Slow sockets drop the event.
func (h *Hub) Publish(ctx context.Context, e events.Event) error {
	if !h.IsOnline(e.BusinessID) {
		return nil
	}

	if h.businesses != nil {
		b, err := h.businesses.GetByID(ctx, e.BusinessID)
		if err != nil {
			return err
		}
		if !b.EmailPreferences.BookingNotifications {
			return nil
		}
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections[e.BusinessID] {
		select {
		case c.send <- data:
		default:
			slog.Warn("dropping notification for slow socket", "business_id", e.BusinessID, "type", e.Type)
		}
	}
	return nil
}

// Serve registers conn for businessID and blocks until the socket closes.
// After Close the socket is closed straight away.
func (h *Hub) Serve(conn *websocket.Conn, businessID string) {
	c := &connection{
		businessID: businessID,
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
	}
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

// readPump only drains control frames; clients never send data.
func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
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

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
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

// Close drops every socket and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, set := range h.connections {
		for c := range set {
			close(c.send)
		}
		delete(h.connections, id)
	}
}
