// Package bot contains the built-in Briscola strategies.
package bot

import (
	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/game"
)

// base holds the name and hand every strategy needs
type base struct {
	name string
	hand game.Hand
}

func (b *base) Name() string { return b.name }

func (b *base) ReceiveCard(card deck.Card) error { return b.hand.Add(card) }

func (b *base) HasCards() bool { return !b.hand.IsEmpty() }

// Hand returns a copy of the cards currently held
func (b *base) Hand() []deck.Card { return b.hand.Cards() }

// play removes the card at index i, which must be valid
func (b *base) play(i int) (deck.Card, bool) {
	return b.hand.RemoveAt(i)
}

// lowestIndex returns the index of the card with the fewest points. Ties go
// to the earliest card in hand order; -1 for an empty hand.
func lowestIndex(cards []deck.Card) int {
	best := -1
	for i, c := range cards {
		if best < 0 || c.Points() < cards[best].Points() {
			best = i
		}
	}
	return best
}
