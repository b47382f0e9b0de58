package game

import "github.com/lox/briscola/internal/deck"

// TrickRecord describes one resolved trick
type TrickRecord struct {
	Number int       `json:"number"`
	Leader Seat      `json:"leader"`
	Lead   deck.Card `json:"lead"`
	Follow deck.Card `json:"follow"`
	Winner Seat      `json:"winner"`
	Points int       `json:"points"`
}

// Card returns the card played by seat in this trick
func (r TrickRecord) Card(seat Seat) deck.Card {
	if seat == r.Leader {
		return r.Lead
	}
	return r.Follow
}

// SeatSnapshot is the visible state of one seat
type SeatSnapshot struct {
	Name     string      `json:"name"`
	Hand     []deck.Card `json:"hand"`
	Score    int         `json:"score"`
	Captured int         `json:"captured"`
}

// Snapshot is a read-only copy of the game state for front ends
type Snapshot struct {
	GameID        string                 `json:"game_id"`
	Phase         Phase                  `json:"phase"`
	Trick         int                    `json:"trick"` // tricks completed
	Trump         deck.Suit              `json:"trump"`
	TrumpCard     deck.Card              `json:"trump_card"`
	Seats         [NumSeats]SeatSnapshot `json:"seats"`
	Leader        Seat                   `json:"leader"`
	DeckRemaining int                    `json:"deck_remaining"`
	LastTrick     *TrickRecord           `json:"last_trick,omitempty"`
}

// Result is the outcome of a finished game
type Result struct {
	GameID      string           `json:"game_id"`
	Names       [NumSeats]string `json:"names"`
	Scores      [NumSeats]int    `json:"scores"`
	Winner      Seat             `json:"winner"` // NoSeat on a draw
	Tricks      int              `json:"tricks"`
	Trump       deck.Suit        `json:"trump"`
	TrumpCard   deck.Card        `json:"trump_card"`
	FirstLeader Seat             `json:"first_leader"`
}

// IsDraw reports whether both seats finished on the same score
func (r *Result) IsDraw() bool {
	return r.Winner == NoSeat
}

// Margin returns the winner's lead in points
func (r *Result) Margin() int {
	d := r.Scores[Seat0] - r.Scores[Seat1]
	if d < 0 {
		return -d
	}
	return d
}
