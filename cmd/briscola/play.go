package main

import (
	"os"
	"time"

	"github.com/lox/briscola/cmd/briscola/shared"
	"github.com/lox/briscola/internal/display"
	"github.com/lox/briscola/internal/game"
)

type PlayCmd struct {
	A         string        `arg:"" default:"greedy" help:"Strategy in seat 0"`
	B         string        `arg:"" default:"random" help:"Strategy in seat 1"`
	Seed      int64         `help:"Game seed (0 picks one from the clock)"`
	Pace      time.Duration `default:"0s" help:"Pause between steps of a trick"`
	ShowHands bool          `help:"Print both hands after every trick"`
	LongNames bool          `help:"Print card names in full (7 di Bastoni)"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	logger, err := globals.logger(cfg)
	if err != nil {
		return err
	}

	seed := pickSeed(c.Seed)
	g, err := newSingleGame(cfg, c.A, c.B, seed, logger)
	if err != nil {
		return err
	}
	logger.Info("Dealt game", "game", g.ID(), "seed", seed)

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	w := display.New(os.Stdout,
		display.WithPace(c.Pace),
		display.WithLogger(logger),
		display.WithFormatting(game.FormattingOptions{ShowHands: c.ShowHands, LongNames: c.LongNames}))
	_, err = w.Run(ctx, g)
	return err
}
