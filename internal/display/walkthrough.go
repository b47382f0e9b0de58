// Package display prints a paced, plain-text walkthrough of a single game.
package display

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/game"
)

// Walkthrough narrates a game trick by trick. Every trick is shown in three
// steps (lead, follow, resolve) with a pause of Pace between them.
type Walkthrough struct {
	out       io.Writer
	clock     quartz.Clock
	pace      time.Duration
	formatter *game.EventFormatter
	longNames bool
	logger    *log.Logger
}

// Option configures a Walkthrough
type Option func(*Walkthrough)

// WithClock sets the clock used for pacing
func WithClock(clock quartz.Clock) Option {
	return func(w *Walkthrough) { w.clock = clock }
}

// WithPace sets the pause between steps. Zero prints without pausing.
func WithPace(d time.Duration) Option {
	return func(w *Walkthrough) { w.pace = d }
}

// WithFormatting sets the formatter options
func WithFormatting(opts game.FormattingOptions) Option {
	return func(w *Walkthrough) {
		w.formatter = game.NewEventFormatter(opts)
		w.longNames = opts.LongNames
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(w *Walkthrough) { w.logger = logger }
}

// New creates a walkthrough writing to out
func New(out io.Writer, opts ...Option) *Walkthrough {
	w := &Walkthrough{
		out:       out,
		clock:     quartz.NewReal(),
		formatter: game.NewEventFormatter(game.FormattingOptions{}),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithPrefix("display")
	return w
}

// Run plays g to completion, narrating as it goes. It returns early with the
// context error if ctx is cancelled during a pause.
func (w *Walkthrough) Run(ctx context.Context, g *game.Game) (*game.Result, error) {
	w.println(w.formatter.FormatGameStart(game.NewGameStartEvent(g.Snapshot())))

	for !g.IsOver() {
		if err := w.wait(ctx); err != nil {
			return nil, err
		}

		names := g.Snapshot().Seats
		record, err := g.PlayTrick()
		if err != nil {
			w.println(w.formatter.Format(game.NewGameAbortEvent(g.ID(), err)))
			return nil, err
		}
		follower := record.Leader.Other()

		w.printf("Trick %d: %s leads %s\n", record.Number, names[record.Leader].Name, w.card(record.Lead))
		if err := w.wait(ctx); err != nil {
			return nil, err
		}
		w.printf("Trick %d: %s follows %s\n", record.Number, names[follower].Name, w.card(record.Follow))
		if err := w.wait(ctx); err != nil {
			return nil, err
		}
		w.println(w.formatter.FormatTrick(game.NewTrickEvent(*record, g.Snapshot())))
	}

	result, ok := g.Result()
	if !ok {
		return nil, errors.New("game finished without a result")
	}
	w.println("")
	w.println(w.formatter.FormatGameEnd(game.NewGameEndEvent(*result)))
	return result, nil
}

func (w *Walkthrough) wait(ctx context.Context) error {
	if w.pace <= 0 {
		return ctx.Err()
	}
	timer := w.clock.NewTimer(w.pace, "display", "pace")
	defer timer.Stop()
	select {
	case <-ctx.Done():
		w.logger.Debug("Walkthrough cancelled")
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (w *Walkthrough) card(c deck.Card) string {
	if w.longNames {
		return c.Name()
	}
	return c.String()
}

func (w *Walkthrough) println(s string) {
	fmt.Fprintln(w.out, s)
}

func (w *Walkthrough) printf(format string, args ...any) {
	fmt.Fprintf(w.out, format, args...)
}
