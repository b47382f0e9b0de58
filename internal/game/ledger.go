package game

import "github.com/lox/briscola/internal/deck"

// ScoreLedger accumulates points per seat. Scores only ever grow and the
// engine is the only writer.
type ScoreLedger struct {
	scores [NumSeats]int
}

func (l *ScoreLedger) award(seat Seat, cards ...deck.Card) int {
	points := deck.TotalPoints(cards...)
	l.scores[seat] += points
	return points
}

// Score returns the points credited to seat
func (l *ScoreLedger) Score(seat Seat) int {
	if !seat.Valid() {
		return 0
	}
	return l.scores[seat]
}

// Scores returns both seats' points
func (l *ScoreLedger) Scores() [NumSeats]int {
	return l.scores
}

// Total returns the sum over both seats
func (l *ScoreLedger) Total() int {
	return l.scores[Seat0] + l.scores[Seat1]
}

// Leader returns the seat with strictly more points, or NoSeat when level
func (l *ScoreLedger) Leader() Seat {
	switch {
	case l.scores[Seat0] > l.scores[Seat1]:
		return Seat0
	case l.scores[Seat1] > l.scores[Seat0]:
		return Seat1
	default:
		return NoSeat
	}
}
