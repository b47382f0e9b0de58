package game

import (
	"sync"
	"time"

	"github.com/lox/briscola/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeGameStart EventType = "game_start"
	EventTypeTrick     EventType = "trick"
	EventTypeGameEnd   EventType = "game_end"
	EventTypeGameAbort EventType = "game_abort"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published once the cards are dealt
type GameStartEvent struct {
	GameID    string
	Names     [NumSeats]string
	TrumpCard deck.Card
	Leader    Seat
	Snapshot  Snapshot
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// NewGameStartEvent creates a new game start event
func NewGameStartEvent(snap Snapshot) GameStartEvent {
	return GameStartEvent{
		GameID:    snap.GameID,
		Names:     [NumSeats]string{snap.Seats[Seat0].Name, snap.Seats[Seat1].Name},
		TrumpCard: snap.TrumpCard,
		Leader:    snap.Leader,
		Snapshot:  snap,
		timestamp: time.Now(),
	}
}

// TrickEvent is published after every resolved trick, cards already drawn
type TrickEvent struct {
	Record    TrickRecord
	Snapshot  Snapshot
	timestamp time.Time
}

func (e TrickEvent) EventType() EventType { return EventTypeTrick }
func (e TrickEvent) Timestamp() time.Time { return e.timestamp }

// NewTrickEvent creates a new trick event
func NewTrickEvent(record TrickRecord, snap Snapshot) TrickEvent {
	return TrickEvent{
		Record:    record,
		Snapshot:  snap,
		timestamp: time.Now(),
	}
}

// GameEndEvent is published when the last trick has been played
type GameEndEvent struct {
	Result    Result
	timestamp time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// NewGameEndEvent creates a new game end event
func NewGameEndEvent(result Result) GameEndEvent {
	return GameEndEvent{
		Result:    result,
		timestamp: time.Now(),
	}
}

// GameAbortEvent is published when a fatal error stops the game
type GameAbortEvent struct {
	GameID    string
	Err       error
	timestamp time.Time
}

func (e GameAbortEvent) EventType() EventType { return EventTypeGameAbort }
func (e GameAbortEvent) Timestamp() time.Time { return e.timestamp }

// NewGameAbortEvent creates a new game abort event
func NewGameAbortEvent(gameID string, err error) GameAbortEvent {
	return GameAbortEvent{
		GameID:    gameID,
		Err:       err,
		timestamp: time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus. Delivery is synchronous on
// the publishing goroutine.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Function
// subscribers cannot be compared and are never removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}

type noopEventBus struct{}

func (noopEventBus) Subscribe(EventSubscriber)   {}
func (noopEventBus) Unsubscribe(EventSubscriber) {}
func (noopEventBus) Publish(GameEvent)           {}
