package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/briscola/internal/deck"
)

// firstCardPlayer always plays the first card in hand order and records
// every view it was shown.
type firstCardPlayer struct {
	name  string
	hand  Hand
	views []TrickView
}

func newFirstCardPlayer(name string) *firstCardPlayer {
	return &firstCardPlayer{name: name}
}

func (p *firstCardPlayer) Name() string { return p.name }

func (p *firstCardPlayer) ReceiveCard(card deck.Card) error { return p.hand.Add(card) }

func (p *firstCardPlayer) SelectCard(view TrickView) (deck.Card, bool) {
	p.views = append(p.views, view)
	return p.hand.RemoveAt(0)
}

func (p *firstCardPlayer) HasCards() bool { return !p.hand.IsEmpty() }

// refusingPlayer returns no card once it has played `after` cards
type refusingPlayer struct {
	firstCardPlayer
	after int
}

func (p *refusingPlayer) SelectCard(view TrickView) (deck.Card, bool) {
	if len(p.views) >= p.after {
		return deck.Card{}, false
	}
	return p.firstCardPlayer.SelectCard(view)
}

// cheatingPlayer plays a card it was never dealt
type cheatingPlayer struct {
	firstCardPlayer
	fake deck.Card
}

func (p *cheatingPlayer) SelectCard(view TrickView) (deck.Card, bool) {
	p.views = append(p.views, view)
	return p.fake, true
}

// rejectingPlayer refuses every dealt card
type rejectingPlayer struct {
	firstCardPlayer
}

func (p *rejectingPlayer) ReceiveCard(card deck.Card) error { return ErrHandFull }

// eventRecorder collects every published event
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) { r.events = append(r.events, event) }

func (r *eventRecorder) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.EventType() == t {
			n++
		}
	}
	return n
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestPlayers() [NumSeats]Player {
	return [NumSeats]Player{newFirstCardPlayer("alice"), newFirstCardPlayer("bob")}
}

// canonicalDeck is a deck in canonical order: the top card (10 di Spade)
// becomes trump and seat 0 is dealt 9s 7s 5s, seat 1 8s 6s 4s.
func canonicalDeck() *deck.Deck {
	return deck.FromCards(deck.CanonicalCards())
}
