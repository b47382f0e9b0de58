package main

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/briscola/cmd/briscola/shared"
	"github.com/lox/briscola/internal/config"
	"github.com/lox/briscola/internal/display"
	"github.com/lox/briscola/internal/game"
	"github.com/lox/briscola/internal/spectator"
	"golang.org/x/sync/errgroup"
)

type ServeCmd struct {
	A     string        `arg:"" default:"greedy" help:"Strategy in seat 0"`
	B     string        `arg:"" default:"random" help:"Strategy in seat 1"`
	Addr  string        `help:"Listen address (default from the config spectator block)"`
	Seed  int64         `help:"Seed of the first game, game i uses seed+i (0 picks one from the clock)"`
	Games int           `help:"Games to stream before exiting (0 streams until interrupted)"`
	Pace  time.Duration `help:"Delay between steps (default from the config spectator block)"`
}

func (c *ServeCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	logger, err := globals.logger(cfg)
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.Spectator.Address
	}
	pace := c.Pace
	if pace == 0 {
		if pace, err = cfg.Pace(); err != nil {
			return err
		}
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	hub := spectator.NewHub(logger)
	server := spectator.NewServer(addr, hub, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx)
	})
	g.Go(func() error {
		defer cancel()
		return c.stream(ctx, cfg, hub, pace, logger)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// stream plays games back to back, publishing every event to the hub
func (c *ServeCmd) stream(ctx context.Context, cfg *config.Config, hub *spectator.Hub, pace time.Duration, logger *log.Logger) error {
	clock := quartz.NewReal()
	seed := pickSeed(c.Seed)

	for i := 0; c.Games == 0 || i < c.Games; i++ {
		bus := game.NewEventBus()
		bus.Subscribe(hub)

		g, err := newSingleGame(cfg, c.A, c.B, seed+int64(i), logger, game.WithEventBus(bus))
		if err != nil {
			return err
		}
		logger.Info("Streaming game", "game", g.ID(), "seed", seed+int64(i), "spectators", hub.Count())

		w := display.New(io.Discard, display.WithClock(clock), display.WithPace(pace), display.WithLogger(logger))
		result, err := w.Run(ctx, g)
		if err != nil {
			return err
		}
		logger.Info("Game finished", "game", result.GameID, "scores", result.Scores)

		timer := clock.NewTimer(3*pace, "serve", "between-games")
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
