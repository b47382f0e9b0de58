package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/briscola/internal/tui"
)

type WatchCmd struct {
	A    string        `arg:"" default:"greedy" help:"Strategy in seat 0"`
	B    string        `arg:"" default:"random" help:"Strategy in seat 1"`
	Seed int64         `help:"Game seed (0 picks one from the clock)"`
	Pace time.Duration `help:"Delay between steps (default from the config spectator block)"`
}

func (c *WatchCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	// The TUI owns the terminal; only errors are logged
	logger, err := globals.logger(cfg)
	if err != nil {
		return err
	}
	logger.SetLevel(max(logger.GetLevel(), log.ErrorLevel))

	pace := c.Pace
	if pace == 0 {
		if pace, err = cfg.Pace(); err != nil {
			return err
		}
	}

	g, err := newSingleGame(cfg, c.A, c.B, pickSeed(c.Seed), logger)
	if err != nil {
		return err
	}

	model := tui.NewModel(g, tui.WithPace(pace), tui.WithLogger(logger))
	_, err = tui.Run(model, tea.WithAltScreen())
	return err
}
