package game

import "fmt"

// Seat identifies one of the two players. It is the stable key for scores,
// independent of display names.
type Seat int

const (
	Seat0 Seat = 0
	Seat1 Seat = 1

	// NoSeat marks the absence of a seat, e.g. the winner of a drawn game
	NoSeat Seat = -1
)

// NumSeats is the number of players in a game
const NumSeats = 2

// Other returns the opponent's seat
func (s Seat) Other() Seat {
	if s == Seat0 {
		return Seat1
	}
	return Seat0
}

// Valid reports whether s is Seat0 or Seat1
func (s Seat) Valid() bool {
	return s == Seat0 || s == Seat1
}

func (s Seat) String() string {
	if !s.Valid() {
		return "none"
	}
	return fmt.Sprintf("seat %d", int(s))
}

// Phase is the engine's lifecycle state
type Phase int

const (
	PhaseDealing Phase = iota
	PhaseTrickLoop
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhaseTrickLoop:
		return "trick_loop"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseDealing, PhaseTrickLoop, PhaseGameOver} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}
