package game

import "github.com/lox/briscola/internal/deck"

// Player is the capability every strategy implements. The engine deals with
// ReceiveCard, asks for a card with SelectCard and checks HasCards to detect
// the end of the game. It never looks inside a strategy.
type Player interface {
	Name() string

	// ReceiveCard adds a dealt card to the player's hand. It must fail with
	// ErrHandFull when the hand already holds three cards.
	ReceiveCard(card deck.Card) error

	// SelectCard removes one card from the player's hand and returns it.
	// It returns false only when the hand is empty.
	SelectCard(view TrickView) (deck.Card, bool)

	HasCards() bool
}

// TrickView is the read-only table information handed to a player when it
// must play. Strategies are free to ignore it.
type TrickView struct {
	Seat          Seat
	Trick         int // 1-based number of the trick being played
	Trump         deck.Suit
	TrumpCard     deck.Card
	Lead          deck.Card // zero when the player is leading
	DeckRemaining int
	OwnScore      int
	OpponentScore int
}

// IsLeading reports whether the player opens the trick
func (v TrickView) IsLeading() bool {
	return v.Lead.IsZero()
}
