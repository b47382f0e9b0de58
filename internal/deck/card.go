package deck

import "fmt"

// Suit represents one of the four Italian suits.
// The ordinal order is fixed and used by feature encoders.
type Suit int

const (
	Bastoni Suit = iota
	Coppe
	Denari
	Spade
)

// NumSuits is the number of suits in an Italian deck
const NumSuits = 4

// Suits lists every suit in ordinal order
var Suits = [NumSuits]Suit{Bastoni, Coppe, Denari, Spade}

// String returns the Italian name of the suit
func (s Suit) String() string {
	switch s {
	case Bastoni:
		return "Bastoni"
	case Coppe:
		return "Coppe"
	case Denari:
		return "Denari"
	case Spade:
		return "Spade"
	default:
		return "?"
	}
}

// Letter returns the single-letter code used by ParseCard
func (s Suit) Letter() byte {
	switch s {
	case Bastoni:
		return 'b'
	case Coppe:
		return 'c'
	case Denari:
		return 'd'
	case Spade:
		return 's'
	default:
		return '?'
	}
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Bastoni && s <= Spade
}

const (
	// MinValue is the lowest card value (the ace)
	MinValue = 1
	// MaxValue is the highest card value (the king)
	MaxValue = 10
)

// pointsByValue maps card value to its score weight; index 0 is unused.
var pointsByValue = [MaxValue + 1]int{
	1:  11,
	3:  10,
	10: 4,
	9:  3,
	8:  2,
}

// Card is an immutable value+suit pair. Two cards are equal iff both fields match.
type Card struct {
	Value int
	Suit  Suit
}

// NewCard creates a new card
func NewCard(value int, suit Suit) Card {
	return Card{Value: value, Suit: suit}
}

// Points returns the score weight of the card (0-11).
// It is unrelated to Value, which is only used to compare cards of the same suit.
func (c Card) Points() int {
	if !c.Valid() {
		return 0
	}
	return pointsByValue[c.Value]
}

// Valid reports whether the card is one of the 40 cards of the deck
func (c Card) Valid() bool {
	return c.Value >= MinValue && c.Value <= MaxValue && c.Suit.Valid()
}

// IsZero reports whether c is the zero Card, used as the "no card" value
func (c Card) IsZero() bool {
	return c == Card{}
}

// String returns the short code of the card (e.g. "7b", "10d")
func (c Card) String() string {
	if !c.Valid() {
		return "--"
	}
	return fmt.Sprintf("%d%c", c.Value, c.Suit.Letter())
}

// Name returns the long Italian form of the card (e.g. "7 di Bastoni")
func (c Card) Name() string {
	if !c.Valid() {
		return "no card"
	}
	return fmt.Sprintf("%d di %s", c.Value, c.Suit)
}

// TotalPoints sums the points of the given cards
func TotalPoints(cards ...Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}
