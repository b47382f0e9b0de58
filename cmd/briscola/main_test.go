package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/briscola/internal/config"
	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
simulation {
  games = 200
}

strategy "tuned" {
  type    = "model"
  weights = [0, 0, 1, 0, 1, 0, 1, 0, 0]
}

matchup "baseline" {
  a = "lowest"
  b = "random"
}

matchup "tuned-vs-greedy" {
  a     = "tuned"
  b     = "greedy"
  games = 50
}
`

func parseTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(testConfig), "test.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestSimulateMatchups(t *testing.T) {
	cfg := parseTestConfig(t)

	t.Run("explicit strategies", func(t *testing.T) {
		cmd := &SimulateCmd{A: "greedy", B: "tuned", Games: 10}
		got, err := cmd.matchups(cfg)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, matchup{name: "greedy-vs-tuned", a: "greedy", b: "tuned", games: 10}, got[0])
	})

	t.Run("half a pair", func(t *testing.T) {
		_, err := (&SimulateCmd{A: "greedy"}).matchups(cfg)
		assert.Error(t, err)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := (&SimulateCmd{A: "greedy", B: "clever"}).matchups(cfg)
		assert.Error(t, err)
	})

	t.Run("named matchup", func(t *testing.T) {
		got, err := (&SimulateCmd{Matchup: "tuned-vs-greedy"}).matchups(cfg)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 50, got[0].games)
	})

	t.Run("all matchups inherit games", func(t *testing.T) {
		got, err := (&SimulateCmd{}).matchups(cfg)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 200, got[0].games)
		assert.Equal(t, 50, got[1].games)
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := (&SimulateCmd{}).matchups(config.Default())
		assert.Error(t, err)
	})
}

func TestReportFile(t *testing.T) {
	assert.Equal(t, "out/report.json", reportFile("out/report.json", "baseline", 1))
	assert.Equal(t, "out/report-baseline.json", reportFile("out/report.json", "baseline", 2))
}

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, [2]string{"lowest", "random"}, displayNames("lowest", "random"))
	assert.Equal(t, [2]string{"random#1", "random#2"}, displayNames("random", "random"))
}

func TestNewSingleGameIsReproducible(t *testing.T) {
	cfg := parseTestConfig(t)
	logger := log.New(io.Discard)

	play := func() *game.Result {
		g, err := newSingleGame(cfg, "tuned", "random", 7, logger)
		require.NoError(t, err)
		result, err := g.Play()
		require.NoError(t, err)
		return result
	}

	first, second := play(), play()
	assert.Equal(t, first, second)
	assert.Equal(t, deck.DeckPoints, first.Scores[0]+first.Scores[1])
	assert.Equal(t, [2]string{"tuned", "random"}, first.Names)
}

func TestSimpleProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewSimpleProgress(&buf, "baseline")
	for i := 1; i <= 80; i++ {
		p.Update(i, 80)
	}
	p.Finish()

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "baseline: "))
	assert.Equal(t, dotsTotal, strings.Count(out, "."))
	assert.True(t, strings.HasSuffix(out, " done\n"))
	assert.NotContains(t, out, "stopped")
}

func TestSimpleProgressStoppedEarly(t *testing.T) {
	var buf bytes.Buffer
	p := NewSimpleProgress(&buf, "baseline")
	p.Update(10, 100)
	p.Finish()

	assert.Equal(t, 4, strings.Count(buf.String(), "."))
	assert.True(t, strings.HasSuffix(buf.String(), " stopped\n"))
}
