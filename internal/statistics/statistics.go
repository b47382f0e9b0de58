package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/game"
)

// GameResult is the outcome of one game between contenders A and B
type GameResult struct {
	Game   int       // index within the batch
	Seed   int64     // RNG seed for this game (for replay)
	SeatA  game.Seat // seat occupied by contender A
	ScoreA int
	ScoreB int
	Tricks int
}

// Winner returns 0 when A won, 1 when B won and -1 on a draw
func (r GameResult) Winner() int {
	switch {
	case r.ScoreA > r.ScoreB:
		return 0
	case r.ScoreB > r.ScoreA:
		return 1
	default:
		return -1
	}
}

// Failure records a game that aborted and was left out of the statistics
type Failure struct {
	Game  int    `json:"game"`
	Seed  int64  `json:"seed"`
	Error string `json:"error"`
}

// Statistics tracks the scores and wins of one contender
type Statistics struct {
	Games    int
	Wins     int
	SumScore float64
	SumSq    float64   // Sum of squares for variance calculation
	Values   []float64 // Store all values for median/percentile calculation

	SeatGames [game.NumSeats]int
	SeatWins  [game.NumSeats]int
}

// Add incorporates one game's score
func (s *Statistics) Add(score int, won bool, seat game.Seat) {
	v := float64(score)
	s.Games++
	s.SumScore += v
	s.SumSq += v * v
	s.Values = append(s.Values, v)
	if won {
		s.Wins++
	}
	if seat.Valid() {
		s.SeatGames[seat]++
		if won {
			s.SeatWins[seat]++
		}
	}
}

// Mean returns the average score per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumScore / float64(s.Games)
}

// Variance returns the sample variance of the scores
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumSq - float64(s.Games)*mean*mean) / float64(s.Games-1)
	if v < 0 {
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation of the scores
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean score
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of games won
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// SeatWinRate returns the fraction of games won from the given seat
func (s *Statistics) SeatWinRate(seat game.Seat) float64 {
	if !seat.Valid() || s.SeatGames[seat] == 0 {
		return 0
	}
	return float64(s.SeatWins[seat]) / float64(s.SeatGames[seat])
}

// Median returns the median score
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the score at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Summary aggregates a batch of games between contender A (index 0) and B (index 1)
type Summary struct {
	Names      [2]string
	Contenders [2]Statistics
	Games      int
	Draws      int
	Points     int // sum of every recorded score
	Failures   []Failure
	Elapsed    time.Duration
}

// NewSummary creates an empty summary for the two named contenders
func NewSummary(nameA, nameB string) *Summary {
	return &Summary{Names: [2]string{nameA, nameB}}
}

// Add incorporates a finished game
func (s *Summary) Add(r GameResult) {
	winner := r.Winner()
	s.Games++
	s.Points += r.ScoreA + r.ScoreB
	if winner < 0 {
		s.Draws++
	}
	s.Contenders[0].Add(r.ScoreA, winner == 0, r.SeatA)
	s.Contenders[1].Add(r.ScoreB, winner == 1, r.SeatA.Other())
}

// AddFailure records an aborted game
func (s *Summary) AddFailure(gameIndex int, seed int64, err error) {
	s.Failures = append(s.Failures, Failure{Game: gameIndex, Seed: seed, Error: err.Error()})
}

// DrawRate returns the fraction of games drawn
func (s *Summary) DrawRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.Games)
}

// SortFailures orders failures by game index; workers record them out of order
func (s *Summary) SortFailures() {
	sort.Slice(s.Failures, func(i, j int) bool { return s.Failures[i].Game < s.Failures[j].Game })
}

// Validate checks that the accounting is consistent
func (s *Summary) Validate() error {
	if want := s.Games * deck.DeckPoints; s.Points != want {
		return fmt.Errorf("score conservation: recorded %d points over %d games, expected %d",
			s.Points, s.Games, want)
	}

	a, b := &s.Contenders[0], &s.Contenders[1]
	if a.Games != s.Games || b.Games != s.Games {
		return fmt.Errorf("game count mismatch: batch %d, %s %d, %s %d",
			s.Games, s.Names[0], a.Games, s.Names[1], b.Games)
	}

	if a.Wins+b.Wins+s.Draws != s.Games {
		return fmt.Errorf("outcome mismatch: %d wins + %d wins + %d draws != %d games",
			a.Wins, b.Wins, s.Draws, s.Games)
	}

	for i, c := range s.Contenders {
		if len(c.Values) != c.Games {
			return fmt.Errorf("%s: values array length (%d) does not match games count (%d)",
				s.Names[i], len(c.Values), c.Games)
		}
		if c.SeatGames[0]+c.SeatGames[1] != c.Games {
			return fmt.Errorf("%s: seat games total (%d) does not match games count (%d)",
				s.Names[i], c.SeatGames[0]+c.SeatGames[1], c.Games)
		}
	}

	if math.Abs(a.SumScore+b.SumScore-float64(s.Points)) > 1e-6 {
		return fmt.Errorf("ledger mismatch: %.0f + %.0f != %d", a.SumScore, b.SumScore, s.Points)
	}
	return nil
}
