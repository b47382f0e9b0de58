package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/briscola/cmd/briscola/shared"
	"github.com/lox/briscola/internal/bot"
	"github.com/lox/briscola/internal/config"
	"github.com/lox/briscola/internal/game"
	"github.com/lox/briscola/internal/randutil"
)

// loadConfig reads and validates the configuration file
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}
	return cfg, nil
}

// logger builds the process logger. The flag wins over the config file.
func (g *Globals) logger(cfg *config.Config) (*log.Logger, error) {
	level := cfg.Simulation.LogLevel
	if g.LogLevel != "" {
		level = g.LogLevel
	}
	if g.LogJSON {
		return shared.SetupStructuredLogger(level)
	}
	return shared.SetupLogger(level)
}

// pickSeed returns seed, or a time-based seed when it is zero
func pickSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// newSingleGame deals one game between strategies a and b with all
// randomness derived from seed
func newSingleGame(cfg *config.Config, a, b string, seed int64, logger *log.Logger, opts ...game.Option) (*game.Game, error) {
	names := displayNames(a, b)
	var players [game.NumSeats]game.Player
	for i, strategy := range []string{a, b} {
		factory, err := newFactory(cfg, strategy, names[i], logger)
		if err != nil {
			return nil, err
		}
		players[i] = factory(randutil.Derive(seed, uint64(i+1)))
	}

	opts = append([]game.Option{game.WithSeed(seed), game.WithLogger(logger)}, opts...)
	return game.New(players, opts...)
}

// newFactory resolves a strategy name into a player factory
func newFactory(cfg *config.Config, strategy, displayName string, logger *log.Logger) (bot.Factory, error) {
	spec, err := cfg.StrategySpec(strategy)
	if err != nil {
		return nil, err
	}
	return bot.NewFactory(displayName, spec, logger)
}

// displayNames keeps the two sides apart when a strategy plays itself
func displayNames(a, b string) [2]string {
	if a == b {
		return [2]string{a + "#1", b + "#2"}
	}
	return [2]string{a, b}
}
