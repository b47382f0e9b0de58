package game

import (
	"fmt"

	"github.com/lox/briscola/internal/deck"
)

// validateConservation checks that every card of the deck is in exactly one
// place and that the ledger matches the captured cards.
func (g *Game) validateConservation() error {
	counts := make(map[deck.Card]int, deck.DeckSize)
	for _, c := range g.deck.Cards() {
		counts[c]++
	}
	for _, seat := range []Seat{Seat0, Seat1} {
		for _, c := range g.hands[seat].Cards() {
			counts[c]++
		}
		for _, c := range g.captured[seat] {
			counts[c]++
		}
	}

	for _, c := range deck.CanonicalCards() {
		switch n := counts[c]; n {
		case 1:
			delete(counts, c)
		case 0:
			return fmt.Errorf("%w: %s is missing after trick %d", ErrCardConservation, c, g.trick)
		default:
			return fmt.Errorf("%w: %s appears %d times after trick %d", ErrCardConservation, c, n, g.trick)
		}
	}
	if len(counts) > 0 {
		return fmt.Errorf("%w: %d unknown cards in play", ErrCardConservation, len(counts))
	}

	for _, seat := range []Seat{Seat0, Seat1} {
		captured := deck.TotalPoints(g.captured[seat]...)
		if got := g.ledger.Score(seat); got != captured {
			return fmt.Errorf("%w: %s credited %d points, captured %d",
				ErrScoreConservation, g.names[seat], got, captured)
		}
	}
	return nil
}

func (g *Game) validateFinalScore() error {
	if total := g.ledger.Total(); total != deck.DeckPoints {
		return fmt.Errorf("%w: final total %d, expected %d", ErrScoreConservation, total, deck.DeckPoints)
	}
	if g.trick != TricksPerGame {
		return fmt.Errorf("%w: game ended after %d tricks, expected %d", ErrCardConservation, g.trick, TricksPerGame)
	}
	return nil
}
