package display

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/briscola/internal/bot"
	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCanonicalGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.New(
		[game.NumSeats]game.Player{bot.NewLowestBot("alice"), bot.NewLowestBot("bob")},
		game.WithDeck(deck.FromCards(deck.CanonicalCards())),
		game.WithLeader(game.Seat0),
		game.WithGameID("walkthrough"),
	)
	require.NoError(t, err)
	return g
}

func TestWalkthroughWithoutPace(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	result, err := w.Run(context.Background(), newCanonicalGame(t))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, deck.DeckPoints, result.Scores[game.Seat0]+result.Scores[game.Seat1])

	out := buf.String()
	assert.Contains(t, out, "Game walkthrough: alice vs bob")
	assert.Contains(t, out, "Trick 1: alice leads")
	assert.Contains(t, out, "Trick 20:")
	assert.Contains(t, out, "=== Game walkthrough Complete ===")
	assert.Equal(t, game.TricksPerGame, strings.Count(out, " leads "))
	assert.Equal(t, game.TricksPerGame, strings.Count(out, " follows "))
}

func TestWalkthroughLongNames(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, WithFormatting(game.FormattingOptions{LongNames: true}))

	_, err := w.Run(context.Background(), newCanonicalGame(t))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "di Spade")
}

func TestWalkthroughPacedByClock(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	var buf bytes.Buffer
	w := New(&buf, WithClock(mClock), WithPace(time.Second))

	start := mClock.Now()
	done := make(chan error, 1)
	go func() {
		_, err := w.Run(ctx, newCanonicalGame(t))
		done <- err
	}()

	for {
		select {
		case err := <-done:
			require.NoError(t, err)
			// one pause before each trick plus two inside it
			assert.GreaterOrEqual(t, mClock.Since(start), 3*game.TricksPerGame*time.Second)
			assert.Contains(t, buf.String(), "Complete")
			return
		default:
		}
		mClock.Advance(time.Second).MustWait(ctx)
		time.Sleep(time.Millisecond)
	}
}

func TestWalkthroughCancelledDuringPause(t *testing.T) {
	mClock := quartz.NewMock(t)
	var buf bytes.Buffer
	w := New(&buf, WithClock(mClock), WithPace(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := w.Run(ctx, newCanonicalGame(t))
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("walkthrough did not stop after cancellation")
	}
	assert.Contains(t, buf.String(), "alice vs bob")
	assert.NotContains(t, buf.String(), "leads")
}
