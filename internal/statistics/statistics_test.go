package statistics

import (
	"errors"
	"math"
	"testing"

	"github.com/lox/briscola/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Zero(t, stats.WinRate())
	assert.Zero(t, stats.SeatWinRate(game.Seat0))
}

func TestStatistics_Values(t *testing.T) {
	stats := &Statistics{}
	scores := []int{40, 60, 80, 70, 50}
	for i, s := range scores {
		stats.Add(s, s > 60, game.Seat(i%2))
	}

	assert.Equal(t, 5, stats.Games)
	assert.Equal(t, 2, stats.Wins)
	assert.InDelta(t, 60.0, stats.Mean(), 1e-9)
	assert.InDelta(t, 250.0, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(250), stats.StdDev(), 1e-9)
	assert.InDelta(t, 60.0, stats.Median(), 1e-9)
	assert.InDelta(t, 40.0, stats.Percentile(0), 1e-9)
	assert.InDelta(t, 80.0, stats.Percentile(1), 1e-9)
	assert.InDelta(t, 0.4, stats.WinRate(), 1e-9)

	lo, hi := stats.ConfidenceInterval95()
	assert.Less(t, lo, stats.Mean())
	assert.Greater(t, hi, stats.Mean())
	assert.InDelta(t, stats.Mean(), (lo+hi)/2, 1e-9)

	// seat 0 played games 0, 2, 4 (scores 40, 80, 50)
	assert.Equal(t, [game.NumSeats]int{3, 2}, stats.SeatGames)
	assert.InDelta(t, 1.0/3.0, stats.SeatWinRate(game.Seat0), 1e-9)
	assert.InDelta(t, 0.5, stats.SeatWinRate(game.Seat1), 1e-9)
}

func TestSummary_AddAndValidate(t *testing.T) {
	s := NewSummary("lowest", "random")
	s.Add(GameResult{Game: 0, Seed: 1, SeatA: game.Seat0, ScoreA: 70, ScoreB: 50, Tricks: 20})
	s.Add(GameResult{Game: 1, Seed: 2, SeatA: game.Seat1, ScoreA: 60, ScoreB: 60, Tricks: 20})
	s.Add(GameResult{Game: 2, Seed: 3, SeatA: game.Seat0, ScoreA: 30, ScoreB: 90, Tricks: 20})
	s.AddFailure(3, 4, errors.New("boom"))

	require.NoError(t, s.Validate())
	assert.Equal(t, 3, s.Games)
	assert.Equal(t, 1, s.Draws)
	assert.Equal(t, 1, s.Contenders[0].Wins)
	assert.Equal(t, 1, s.Contenders[1].Wins)
	assert.InDelta(t, 1.0/3.0, s.DrawRate(), 1e-9)
	assert.Equal(t, [game.NumSeats]int{2, 1}, s.Contenders[0].SeatGames)
	assert.Equal(t, [game.NumSeats]int{1, 2}, s.Contenders[1].SeatGames)
	require.Len(t, s.Failures, 1)
	assert.Equal(t, "boom", s.Failures[0].Error)
}

func TestSummary_ValidateDetectsBadScores(t *testing.T) {
	s := NewSummary("a", "b")
	s.Add(GameResult{SeatA: game.Seat0, ScoreA: 70, ScoreB: 40})
	assert.ErrorContains(t, s.Validate(), "score conservation")
}

func TestSummary_ValidateDetectsOutcomeMismatch(t *testing.T) {
	s := NewSummary("a", "b")
	s.Add(GameResult{SeatA: game.Seat0, ScoreA: 70, ScoreB: 50})
	s.Draws++
	assert.ErrorContains(t, s.Validate(), "outcome mismatch")
}

func TestSummary_SortFailures(t *testing.T) {
	s := NewSummary("a", "b")
	s.AddFailure(5, 15, errors.New("x"))
	s.AddFailure(1, 11, errors.New("y"))
	s.SortFailures()
	assert.Equal(t, 1, s.Failures[0].Game)
	assert.Equal(t, 5, s.Failures[1].Game)
}
