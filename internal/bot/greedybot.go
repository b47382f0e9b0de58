package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/game"
)

// GreedyBot takes a trick whenever it can do so cheaply and otherwise
// discards its lowest card. When leading it avoids spending trumps.
type GreedyBot struct {
	base
	logger *log.Logger
}

// NewGreedyBot creates a new GreedyBot
func NewGreedyBot(name string, logger *log.Logger) *GreedyBot {
	return &GreedyBot{base: base{name: name}, logger: logger.WithPrefix("bot").With("player", name)}
}

func (g *GreedyBot) SelectCard(view game.TrickView) (deck.Card, bool) {
	cards := g.hand.Cards()
	if len(cards) == 0 {
		return deck.Card{}, false
	}

	var i int
	if view.IsLeading() {
		i = cheapestIndex(cards, view.Trump)
	} else {
		i = g.followIndex(cards, view)
	}

	g.logger.Debug("Greedy choice",
		"trick", view.Trick,
		"hand", cards,
		"lead", view.Lead,
		"card", cards[i])
	return g.play(i)
}

// cheapestIndex prefers the cheapest non-trump card
func cheapestIndex(cards []deck.Card, trump deck.Suit) int {
	best := -1
	for i, c := range cards {
		if c.Suit == trump {
			continue
		}
		if best < 0 || c.Points() < cards[best].Points() {
			best = i
		}
	}
	if best < 0 {
		return lowestIndex(cards)
	}
	return best
}

// followIndex picks the winning card that costs the fewest points, using a
// trump only when the trick carries points. Without a winner it discards like a lead.
func (g *GreedyBot) followIndex(cards []deck.Card, view game.TrickView) int {
	best := -1
	for i, c := range cards {
		if game.DetermineTrickWinner(view.Lead, c, view.Trump, view.Seat.Other()) != view.Seat {
			continue
		}
		if c.Suit == view.Trump && c.Suit != view.Lead.Suit && view.Lead.Points() == 0 {
			continue
		}
		if best < 0 || cost(c, view.Trump) < cost(cards[best], view.Trump) {
			best = i
		}
	}
	if best < 0 {
		return cheapestIndex(cards, view.Trump)
	}
	return best
}

// cost ranks a card by what it is worth keeping: its points, with trumps
// weighted above any non-trump.
func cost(c deck.Card, trump deck.Suit) int {
	v := c.Points()*deck.MaxValue + c.Value
	if c.Suit == trump {
		v += deck.DeckPoints * deck.MaxValue
	}
	return v
}
