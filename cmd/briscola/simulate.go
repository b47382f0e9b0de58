package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lox/briscola/cmd/briscola/shared"
	"github.com/lox/briscola/internal/config"
	"github.com/lox/briscola/internal/report"
	"github.com/lox/briscola/internal/simulator"
)

type SimulateCmd struct {
	A         string        `help:"First strategy (name from the config or a built-in type)"`
	B         string        `help:"Second strategy (name from the config or a built-in type)"`
	Matchup   string        `help:"Run only the named matchup from the config"`
	Games     int           `help:"Games per matchup, overrides the config"`
	Seed      int64         `help:"Base seed, game i uses seed+i (0 picks one from the clock)"`
	Workers   int           `help:"Parallel workers (0 uses the config or the CPU count)"`
	Duplicate bool          `help:"Play every deal twice with seats swapped"`
	Timeout   time.Duration `help:"Per-game timeout, overrides the config"`
	Report    string        `help:"Write a JSON report to this path"`
	NoColor   bool          `help:"Disable colors in the summary table"`
	Quiet     bool          `short:"q" help:"Hide the progress line"`
}

// matchup is one resolved A/B pairing to simulate
type matchup struct {
	name  string
	a, b  string
	games int
}

func (c *SimulateCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	logger, err := globals.logger(cfg)
	if err != nil {
		return err
	}

	matchups, err := c.matchups(cfg)
	if err != nil {
		return err
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}
	if c.Timeout > 0 {
		timeout = c.Timeout
	}
	seed := c.Seed
	if seed == 0 {
		seed = pickSeed(cfg.Simulation.Seed)
	}
	workers := c.Workers
	if workers == 0 {
		workers = cfg.Simulation.Workers
	}
	duplicate := c.Duplicate || cfg.Simulation.Duplicate
	reportPath := c.Report
	if reportPath == "" {
		reportPath = cfg.Simulation.Report
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	for _, m := range matchups {
		names := displayNames(m.a, m.b)
		factoryA, err := newFactory(cfg, m.a, names[0], logger)
		if err != nil {
			return err
		}
		factoryB, err := newFactory(cfg, m.b, names[1], logger)
		if err != nil {
			return err
		}

		simConfig := simulator.Config{
			Games:     m.games,
			Seed:      seed,
			Workers:   workers,
			Duplicate: duplicate,
			Timeout:   timeout,
			Logger:    logger,
		}
		var progress *SimpleProgress
		if !c.Quiet {
			progress = NewSimpleProgress(os.Stderr, m.name)
			simConfig.Progress = progress.Update
		}

		sim := simulator.New(
			simulator.Contender{Name: names[0], New: factoryA},
			simulator.Contender{Name: names[1], New: factoryB},
			simConfig)
		summary, runErr := sim.Run(ctx)
		if progress != nil {
			progress.Finish()
		}
		if summary == nil {
			return runErr
		}

		r := report.New(summary, report.Meta{Seed: seed, Duplicate: duplicate, Workers: workers})
		if err := r.WriteText(os.Stdout, report.TextOptions{NoColor: c.NoColor}); err != nil {
			return err
		}
		fmt.Println()

		if reportPath != "" {
			path := reportFile(reportPath, m.name, len(matchups))
			if err := r.WriteJSON(path); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			logger.Info("Wrote report", "path", path)
		}

		if runErr != nil {
			return runErr
		}
	}
	return nil
}

// matchups resolves what to play: explicit --a/--b, one named matchup or
// every matchup in the config
func (c *SimulateCmd) matchups(cfg *config.Config) ([]matchup, error) {
	games := cfg.Simulation.Games
	if c.Games > 0 {
		games = c.Games
	}

	switch {
	case c.A != "" || c.B != "":
		if c.A == "" || c.B == "" {
			return nil, errors.New("--a and --b must be given together")
		}
		for _, name := range []string{c.A, c.B} {
			if _, err := cfg.StrategySpec(name); err != nil {
				return nil, err
			}
		}
		return []matchup{{name: c.A + "-vs-" + c.B, a: c.A, b: c.B, games: games}}, nil

	case c.Matchup != "":
		m := cfg.GetMatchupByName(c.Matchup)
		if m == nil {
			return nil, fmt.Errorf("matchup %q not found in config", c.Matchup)
		}
		return []matchup{c.fromConfig(*m)}, nil

	case len(cfg.Matchups) > 0:
		out := make([]matchup, 0, len(cfg.Matchups))
		for _, m := range cfg.Matchups {
			out = append(out, c.fromConfig(m))
		}
		return out, nil

	default:
		return nil, errors.New("nothing to simulate: pass --a and --b or define a matchup block")
	}
}

func (c *SimulateCmd) fromConfig(m config.MatchupConfig) matchup {
	games := m.Games
	if c.Games > 0 {
		games = c.Games
	}
	return matchup{name: m.Name, a: m.A, b: m.B, games: games}
}

// reportFile names one report per matchup when several are run
func reportFile(path, matchup string, count int) string {
	if count <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + matchup + ext
}
