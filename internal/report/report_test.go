package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/briscola/internal/game"
	"github.com/lox/briscola/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *statistics.Summary {
	s := statistics.NewSummary("lowest", "random")
	s.Add(statistics.GameResult{Game: 0, Seed: 10, SeatA: game.Seat0, ScoreA: 80, ScoreB: 40})
	s.Add(statistics.GameResult{Game: 1, Seed: 11, SeatA: game.Seat1, ScoreA: 60, ScoreB: 60})
	s.Add(statistics.GameResult{Game: 2, Seed: 12, SeatA: game.Seat0, ScoreA: 70, ScoreB: 50})
	s.AddFailure(3, 13, errors.New("player contract violation"))
	s.Elapsed = 1500 * time.Millisecond
	return s
}

func TestNew(t *testing.T) {
	r := New(sampleSummary(), Meta{Seed: 10, Workers: 2})

	assert.Equal(t, 3, r.Games)
	assert.Equal(t, 1, r.Draws)
	assert.Equal(t, int64(1500), r.ElapsedMS)
	assert.Equal(t, "lowest", r.Contenders[0].Name)
	assert.Equal(t, 2, r.Contenders[0].Wins)
	assert.InDelta(t, 70.0, r.Contenders[0].MeanScore, 1e-9)
	assert.InDelta(t, 50.0, r.Contenders[1].MeanScore, 1e-9)
	assert.InDelta(t, 1.0, r.Contenders[0].SeatWinRate[0], 1e-9)
	assert.Len(t, r.Failures, 1)
}

func TestWriteText(t *testing.T) {
	r := New(sampleSummary(), Meta{Seed: 10})

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf, TextOptions{NoColor: true}))
	out := buf.String()

	assert.Contains(t, out, "lowest vs random")
	assert.Contains(t, out, "3 games, seed 10, alternating seats")
	assert.Contains(t, out, "Win %")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "Draws: 1 (33.3%)")
	assert.Contains(t, out, "Failures: 1")
	assert.Contains(t, out, "game 3 (seed 13): player contract violation")
	assert.NotContains(t, out, "\x1b[", "no ANSI escapes without color")
}

func TestWriteJSON(t *testing.T) {
	r := New(sampleSummary(), Meta{Seed: 10, Duplicate: true})
	path := filepath.Join(t.TempDir(), "reports", "batch.json")
	require.NoError(t, r.WriteJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(3), decoded["games"])
	assert.Equal(t, true, decoded["duplicate"])
	assert.Equal(t, float64(10), decoded["seed"])

	contenders, ok := decoded["contenders"].([]any)
	require.True(t, ok)
	require.Len(t, contenders, 2)
	first := contenders[0].(map[string]any)
	assert.Equal(t, "lowest", first["name"])
}
