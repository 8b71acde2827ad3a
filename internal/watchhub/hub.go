// Package watchhub is the broadcast hub behind the oracle-watch binary: a
// small gorilla/websocket hub that pushes re-parse notifications to every
// connected client whenever a watched Oracle-text file changes.
// The design mirrors a connections-map-plus-channels hub, trimmed down to a
// single broadcast group since oracle-watch has no notion of separate games
// or rooms to partition clients by.
package watchhub

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/obslog"
)

// CardUpdate is the message broadcast to every connected client when a
// watched file is parsed, successfully or not.
type CardUpdate struct {
	Type     string         `json:"type"`
	File     string         `json:"file"`
	CardName string         `json:"cardName,omitempty"`
	Ir       *ParsedSummary `json:"ir,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// ParsedSummary flattens an oracle.Ir down to wire-friendly strings; the IR's
// Step values are a closed interface without JSON tags, so the hub reports
// what each step parsed as rather than shipping the typed IR across the wire.
type ParsedSummary struct {
	Abilities []AbilitySummary `json:"abilities"`
}

type AbilitySummary struct {
	Type  string        `json:"type"`
	Steps []StepSummary `json:"steps"`
}

type StepSummary struct {
	Kind string `json:"kind"`
	Raw  string `json:"raw"`
}

// Connection wraps one client's websocket with a buffered outbound queue, so
// a slow reader can't block the hub's broadcast loop.
type Connection struct {
	ID   string
	conn *websocket.Conn
	send chan CardUpdate
	hub  *Hub
}

func newConnection(id string, conn *websocket.Conn, hub *Hub) *Connection {
	return &Connection{ID: id, conn: conn, send: make(chan CardUpdate, 32), hub: hub}
}

// WritePump drains queued updates to the client until the connection closes
// or ctx is cancelled.
func (c *Connection) WritePump(ctx context.Context) {
	defer c.conn.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				obslog.Get().Warn("watch connection write failed", zap.String("connection_id", c.ID), zap.Error(err))
				return
			}
		}
	}
}

// ReadPump discards inbound frames (clients only listen) and unregisters the
// connection on the first read error, which is how disconnects are detected.
// No read deadline is set.
func (c *Connection) ReadPump() {
	defer func() { c.hub.Unregister <- c }()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Hub fans CardUpdate messages out to every registered connection.
type Hub struct {
	connections map[*Connection]bool
	Register    chan *Connection
	Unregister  chan *Connection
	Broadcast   chan CardUpdate

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*Connection]bool),
		Register:    make(chan *Connection),
		Unregister:  make(chan *Connection),
		Broadcast:   make(chan CardUpdate, 16),
	}
}

// Run owns the hub's state and must be called from a single goroutine.
func (h *Hub) Run(ctx context.Context) {
	logger := obslog.Get()
	logger.Info("watch hub starting")
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case c := <-h.Register:
			h.mu.Lock()
			h.connections[c] = true
			h.mu.Unlock()
			logger.Info("watch client connected", zap.String("connection_id", c.ID))
		case c := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.connections[c]; ok {
				delete(h.connections, c)
				close(c.send)
			}
			h.mu.Unlock()
			logger.Info("watch client disconnected", zap.String("connection_id", c.ID))
		case msg := <-h.Broadcast:
			h.mu.RLock()
			for c := range h.connections {
				select {
				case c.send <- msg:
				default:
					logger.Warn("watch client send buffer full, dropping update", zap.String("connection_id", c.ID))
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections {
		close(c.send)
		c.conn.Close()
	}
}

// Connect upgrades conn into a registered Connection and starts its pumps.
// Callers are responsible for performing the HTTP upgrade beforehand.
func (h *Hub) Connect(ctx context.Context, id string, conn *websocket.Conn) {
	c := newConnection(id, conn, h)
	h.Register <- c
	go c.WritePump(ctx)
	go c.ReadPump()
}
