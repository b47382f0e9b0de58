package bot

import (
	rand "math/rand/v2"

	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/game"
)

// RandBot plays a uniformly random card from its hand
type RandBot struct {
	base
	rng *rand.Rand
}

// NewRandBot creates a new RandBot instance
func NewRandBot(name string, rng *rand.Rand) *RandBot {
	return &RandBot{base: base{name: name}, rng: rng}
}

func (r *RandBot) SelectCard(view game.TrickView) (deck.Card, bool) {
	if r.hand.IsEmpty() {
		return deck.Card{}, false
	}
	return r.play(r.rng.IntN(r.hand.Len()))
}
