package spectator

import (
	"encoding/json"
	"time"

	"github.com/lox/briscola/internal/game"
)

// MessageType identifies the payload carried by a Message
type MessageType string

const (
	TypeWelcome   MessageType = "welcome"
	TypeGameStart MessageType = "game_start"
	TypeTrick     MessageType = "trick"
	TypeGameEnd   MessageType = "game_end"
	TypeGameAbort MessageType = "game_abort"
)

// Message is the envelope for everything sent to spectators
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

type WelcomeData struct {
	ClientID string `json:"clientId"`
}

type SnapshotData struct {
	Snapshot game.Snapshot     `json:"snapshot"`
	Trick    *game.TrickRecord `json:"trick,omitempty"`
}

type GameEndData struct {
	Result game.Result `json:"result"`
}

type GameAbortData struct {
	GameID string `json:"gameId"`
	Error  string `json:"error"`
}

// messageForEvent converts a game event into a spectator message. Unknown
// events return nil.
func messageForEvent(event game.GameEvent) (*Message, error) {
	switch e := event.(type) {
	case game.GameStartEvent:
		return NewMessage(TypeGameStart, SnapshotData{Snapshot: e.Snapshot})
	case game.TrickEvent:
		record := e.Record
		return NewMessage(TypeTrick, SnapshotData{Snapshot: e.Snapshot, Trick: &record})
	case game.GameEndEvent:
		return NewMessage(TypeGameEnd, GameEndData{Result: e.Result})
	case game.GameAbortEvent:
		return NewMessage(TypeGameAbort, GameAbortData{GameID: e.GameID, Error: e.Err.Error()})
	default:
		return nil, nil
	}
}
