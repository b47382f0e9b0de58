package game

import (
	"fmt"
	"slices"

	"github.com/lox/briscola/internal/deck"
)

// MaxHandSize is the number of cards a player holds between tricks
const MaxHandSize = 3

// Hand is an ordered set of at most three cards. Strategies embed it to
// track their own cards; the engine keeps its own copy per seat.
type Hand struct {
	cards []deck.Card
}

// NewHand builds a hand from the given cards
func NewHand(cards ...deck.Card) (Hand, error) {
	var h Hand
	for _, c := range cards {
		if err := h.Add(c); err != nil {
			return Hand{}, err
		}
	}
	return h, nil
}

// Add appends a card to the hand
func (h *Hand) Add(card deck.Card) error {
	if len(h.cards) >= MaxHandSize {
		return fmt.Errorf("%w: cannot add %s", ErrHandFull, card)
	}
	h.cards = append(h.cards, card)
	return nil
}

// Remove takes the given card out of the hand, reporting whether it was present
func (h *Hand) Remove(card deck.Card) bool {
	i := slices.Index(h.cards, card)
	if i < 0 {
		return false
	}
	h.cards = slices.Delete(h.cards, i, i+1)
	return true
}

// RemoveAt takes the card at index i out of the hand
func (h *Hand) RemoveAt(i int) (deck.Card, bool) {
	if i < 0 || i >= len(h.cards) {
		return deck.Card{}, false
	}
	card := h.cards[i]
	h.cards = slices.Delete(h.cards, i, i+1)
	return card, true
}

// At returns the card at index i
func (h *Hand) At(i int) deck.Card {
	return h.cards[i]
}

func (h *Hand) Contains(card deck.Card) bool {
	return slices.Contains(h.cards, card)
}

func (h *Hand) Len() int {
	return len(h.cards)
}

func (h *Hand) IsEmpty() bool {
	return len(h.cards) == 0
}

// Cards returns a copy of the cards in hand order
func (h *Hand) Cards() []deck.Card {
	return slices.Clone(h.cards)
}

func (h *Hand) String() string {
	return fmt.Sprint(h.cards)
}
