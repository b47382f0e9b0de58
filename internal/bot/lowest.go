package bot

import (
	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/game"
)

// LowestBot always throws away its cheapest card. It is the reference
// rule-based opponent.
type LowestBot struct {
	base
}

// NewLowestBot creates a new LowestBot
func NewLowestBot(name string) *LowestBot {
	return &LowestBot{base: base{name: name}}
}

func (b *LowestBot) SelectCard(view game.TrickView) (deck.Card, bool) {
	i := lowestIndex(b.hand.Cards())
	if i < 0 {
		return deck.Card{}, false
	}
	return b.play(i)
}
