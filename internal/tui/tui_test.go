package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/briscola/internal/bot"
	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	g, err := game.New(
		[game.NumSeats]game.Player{bot.NewLowestBot("alice"), bot.NewLowestBot("bob")},
		game.WithDeck(deck.FromCards(deck.CanonicalCards())),
		game.WithLeader(game.Seat0),
	)
	require.NoError(t, err)
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	return NewModel(g, WithPace(0), WithLogger(logger))
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tick(m *Model) {
	m.Update(tickMsg{gen: m.tickGen})
}

func countContaining(lines []string, substr string) int {
	n := 0
	for _, l := range lines {
		if strings.Contains(l, substr) {
			n++
		}
	}
	return n
}

func TestModelShowsTrickInStages(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, strings.Join(m.Log(), "\n"), "alice vs bob")

	start := len(m.Log())
	tick(m)
	require.Len(t, m.Log(), start+1)
	assert.Contains(t, m.Log()[start], "Trick 1: alice leads")
	assert.Equal(t, stageFollow, m.stage)

	tick(m)
	assert.Contains(t, m.Log()[start+1], "Trick 1: bob follows")
	assert.Equal(t, stageResolve, m.stage)

	tick(m)
	assert.Contains(t, m.Log()[start+2], "takes")
	assert.Equal(t, stageLead, m.stage)
	assert.Equal(t, 1, m.snapshot.Trick)
}

func TestModelPlaysToCompletion(t *testing.T) {
	m := newTestModel(t)

	for i := 0; i < 3*game.TricksPerGame+5 && !m.Done(); i++ {
		tick(m)
	}
	require.True(t, m.Done())

	log := m.Log()
	assert.Equal(t, game.TricksPerGame, countContaining(log, " leads "))
	assert.Equal(t, game.TricksPerGame, countContaining(log, " follows "))
	assert.Equal(t, 1, countContaining(log, "Complete"))

	result, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, deck.DeckPoints, result.Scores[game.Seat0]+result.Scores[game.Seat1])

	// ticks after the end change nothing
	n := len(log)
	tick(m)
	assert.Len(t, m.Log(), n)
}

func TestModelPauseAndStep(t *testing.T) {
	m := newTestModel(t)
	start := len(m.Log())

	m.Update(key("p"))
	assert.True(t, m.paused)

	m.Update(tickMsg{gen: m.tickGen})
	assert.Len(t, m.Log(), start, "ticks are ignored while paused")

	m.Update(key(" "))
	assert.Len(t, m.Log(), start+1, "space steps while paused")

	_, cmd := m.Update(key("p"))
	assert.False(t, m.paused)
	assert.NotNil(t, cmd)

	// a tick scheduled before the pause is stale
	m.Update(tickMsg{gen: 0})
	assert.Len(t, m.Log(), start+1)

	tick(m)
	assert.Len(t, m.Log(), start+2)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	assert.Contains(t, view, "Briscola: alice vs bob")
	assert.Contains(t, view, "Trump: Spade")
	assert.Contains(t, view, "Deck: 34")
	assert.Contains(t, view, "p: pause")
}

func TestModelResultInProgress(t *testing.T) {
	m := newTestModel(t)
	_, err := m.Result()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "still in progress")
}
