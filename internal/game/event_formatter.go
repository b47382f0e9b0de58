package game

import (
	"fmt"
	"strings"

	"github.com/lox/briscola/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowHands bool // Include both hands after every trick (observer mode)
	LongNames bool // "7 di Bastoni" instead of "7b"
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format formats any known event, returning "" for unknown event types
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case GameStartEvent:
		return ef.FormatGameStart(e)
	case TrickEvent:
		return ef.FormatTrick(e)
	case GameEndEvent:
		return ef.FormatGameEnd(e)
	case GameAbortEvent:
		return fmt.Sprintf("Game %s aborted: %v", e.GameID, e.Err)
	default:
		return ""
	}
}

// FormatGameStart formats a game start event into a human-readable string
func (ef *EventFormatter) FormatGameStart(event GameStartEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Game %s: %s vs %s\n", event.GameID, event.Names[Seat0], event.Names[Seat1])
	fmt.Fprintf(&b, "Trump: %s (%s)\n", event.TrumpCard.Suit, ef.card(event.TrumpCard))
	fmt.Fprintf(&b, "%s leads", event.Names[event.Leader])
	if ef.opts.ShowHands {
		b.WriteString("\n")
		b.WriteString(ef.hands(event.Snapshot))
	}
	return b.String()
}

// FormatTrick formats a resolved trick
func (ef *EventFormatter) FormatTrick(event TrickEvent) string {
	r := event.Record
	snap := event.Snapshot
	leader := snap.Seats[r.Leader].Name
	follower := snap.Seats[r.Leader.Other()].Name

	line := fmt.Sprintf("Trick %2d: %s plays %s, %s plays %s -> %s takes %d",
		r.Number, leader, ef.card(r.Lead), follower, ef.card(r.Follow),
		snap.Seats[r.Winner].Name, r.Points)
	line += fmt.Sprintf(" (%d-%d, deck %d)", snap.Seats[Seat0].Score, snap.Seats[Seat1].Score, snap.DeckRemaining)

	if ef.opts.ShowHands && snap.Phase != PhaseGameOver {
		line += "\n" + ef.hands(snap)
	}
	return line
}

// FormatGameEnd formats the final result
func (ef *EventFormatter) FormatGameEnd(event GameEndEvent) string {
	r := event.Result
	var b strings.Builder
	fmt.Fprintf(&b, "=== Game %s Complete ===\n", r.GameID)
	fmt.Fprintf(&b, "%s: %d\n", r.Names[Seat0], r.Scores[Seat0])
	fmt.Fprintf(&b, "%s: %d\n", r.Names[Seat1], r.Scores[Seat1])
	if r.IsDraw() {
		b.WriteString("Draw")
	} else {
		fmt.Fprintf(&b, "Winner: %s by %d", r.Names[r.Winner], r.Margin())
	}
	return b.String()
}

func (ef *EventFormatter) hands(snap Snapshot) string {
	lines := make([]string, 0, NumSeats)
	for _, seat := range []Seat{Seat0, Seat1} {
		s := snap.Seats[seat]
		lines = append(lines, fmt.Sprintf("  %s: [%s]", s.Name, ef.cards(s.Hand)))
	}
	return strings.Join(lines, "\n")
}

func (ef *EventFormatter) cards(cards []deck.Card) string {
	formatted := make([]string, 0, len(cards))
	for _, c := range cards {
		formatted = append(formatted, ef.card(c))
	}
	return strings.Join(formatted, " ")
}

func (ef *EventFormatter) card(c deck.Card) string {
	if ef.opts.LongNames {
		return c.Name()
	}
	return c.String()
}
