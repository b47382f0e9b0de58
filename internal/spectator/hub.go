// Package spectator streams live games to websocket clients as JSON
// snapshots, one message per game event.
package spectator

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/briscola/internal/game"
)

// Hub fans game events out to every connected spectator. It implements
// game.EventSubscriber so it can be attached to a game's event bus.
// Messages of the game in progress are kept so late joiners can catch up.
type Hub struct {
	mu          sync.RWMutex
	connections map[*Connection]bool
	current     []*Message
	logger      *log.Logger
}

var _ game.EventSubscriber = (*Hub)(nil)

// NewHub creates an empty hub
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		connections: make(map[*Connection]bool),
		logger:      logger.WithPrefix("hub"),
	}
}

// Register adds a connection, greets it and replays the game in progress
func (h *Hub) Register(conn *Connection) error {
	welcome, err := NewMessage(TypeWelcome, WelcomeData{ClientID: conn.ID()})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := conn.Send(welcome); err != nil {
		return err
	}
	for _, msg := range h.current {
		if err := conn.Send(msg); err != nil {
			return err
		}
	}
	h.connections[conn] = true
	h.logger.Info("Spectator connected", "client", conn.ID(), "total", len(h.connections))
	return nil
}

// Unregister removes and closes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	if _, ok := h.connections[conn]; ok {
		delete(h.connections, conn)
		h.logger.Info("Spectator disconnected", "client", conn.ID(), "total", len(h.connections))
	}
	h.mu.Unlock()
	_ = conn.Close()
}

// OnEvent converts the event to a message and broadcasts it
func (h *Hub) OnEvent(event game.GameEvent) {
	msg, err := messageForEvent(event)
	if err != nil {
		h.logger.Error("Failed to encode event", "type", event.EventType(), "error", err)
		return
	}
	if msg == nil {
		return
	}

	// Recording the message and choosing its recipients happen under one
	// lock so a spectator registering concurrently sees it exactly once.
	h.mu.Lock()
	if msg.Type == TypeGameStart {
		h.current = h.current[:0]
	}
	h.current = append(h.current, msg)
	conns := h.snapshotLocked()
	h.mu.Unlock()

	h.deliver(conns, msg)
}

// Broadcast sends a message to every spectator. Spectators that cannot keep
// up are dropped.
func (h *Hub) Broadcast(msg *Message) {
	h.mu.RLock()
	conns := h.snapshotLocked()
	h.mu.RUnlock()

	h.deliver(conns, msg)
}

func (h *Hub) snapshotLocked() []*Connection {
	conns := make([]*Connection, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	return conns
}

func (h *Hub) deliver(conns []*Connection, msg *Message) {
	for _, conn := range conns {
		if err := conn.Send(msg); err != nil {
			h.logger.Debug("Dropping spectator", "client", conn.ID(), "error", err)
			h.Unregister(conn)
		}
	}
}

// Count returns the number of connected spectators
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// CloseAll disconnects every spectator
func (h *Hub) CloseAll() {
	h.mu.Lock()
	conns := h.connections
	h.connections = make(map[*Connection]bool)
	h.mu.Unlock()

	for conn := range conns {
		_ = conn.Close()
	}
}
