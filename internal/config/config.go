// Package config loads batch, strategy and matchup settings from HCL.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/briscola/internal/bot"
)

// DefaultFile is the config file looked up when no path is given
const DefaultFile = "briscola.hcl"

// Config represents the complete configuration file
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Spectator  *SpectatorSettings  `hcl:"spectator,block"`
	Strategies []StrategyConfig    `hcl:"strategy,block"`
	Matchups   []MatchupConfig     `hcl:"matchup,block"`
}

// SimulationSettings contains batch-level configuration
type SimulationSettings struct {
	Games     int    `hcl:"games,optional"`
	Seed      int64  `hcl:"seed,optional"`
	Workers   int    `hcl:"workers,optional"`
	Duplicate bool   `hcl:"duplicate,optional"`
	Timeout   string `hcl:"timeout,optional"`
	LogLevel  string `hcl:"log_level,optional"`
	Report    string `hcl:"report,optional"`
}

// SpectatorSettings configures the websocket feed and the paced views
type SpectatorSettings struct {
	Address string `hcl:"address,optional"`
	Pace    string `hcl:"pace,optional"`
}

// StrategyConfig defines a named strategy
type StrategyConfig struct {
	Name    string    `hcl:"name,label"`
	Type    string    `hcl:"type"`
	Weights []float64 `hcl:"weights,optional"`
	Bias    []float64 `hcl:"bias,optional"`
}

// MatchupConfig pits two named strategies against each other
type MatchupConfig struct {
	Name  string `hcl:"name,label"`
	A     string `hcl:"a"`
	B     string `hcl:"b"`
	Games int    `hcl:"games,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes configuration from HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills in missing values
func (c *Config) applyDefaults() {
	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	if c.Simulation.Games == 0 {
		c.Simulation.Games = 1000
	}
	if c.Simulation.LogLevel == "" {
		c.Simulation.LogLevel = "info"
	}

	if c.Spectator == nil {
		c.Spectator = &SpectatorSettings{}
	}
	if c.Spectator.Address == "" {
		c.Spectator.Address = "localhost:8080"
	}
	if c.Spectator.Pace == "" {
		c.Spectator.Pace = "1s"
	}

	for i := range c.Matchups {
		if c.Matchups[i].Games == 0 {
			c.Matchups[i].Games = c.Simulation.Games
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.Games < 0 {
		return fmt.Errorf("simulation: games must not be negative, got %d", c.Simulation.Games)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation: workers must not be negative, got %d", c.Simulation.Workers)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Simulation.LogLevel); err != nil {
		return fmt.Errorf("simulation: invalid log_level %q", c.Simulation.LogLevel)
	}
	if _, err := c.Pace(); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, s := range c.Strategies {
		if seen[s.Name] {
			return fmt.Errorf("strategy %s: defined more than once", s.Name)
		}
		seen[s.Name] = true
		if !bot.IsKnownType(s.Type) {
			return fmt.Errorf("strategy %s: invalid type %s (want one of %s)",
				s.Name, s.Type, strings.Join(bot.Types, ", "))
		}
		if strings.EqualFold(s.Type, bot.TypeModel) {
			if _, err := bot.NewLinearModel(s.Weights, s.Bias); err != nil {
				return fmt.Errorf("strategy %s: %w", s.Name, err)
			}
		}
	}

	for _, m := range c.Matchups {
		for _, name := range []string{m.A, m.B} {
			if _, err := c.StrategySpec(name); err != nil {
				return fmt.Errorf("matchup %s: %w", m.Name, err)
			}
		}
		if m.Games < 0 {
			return fmt.Errorf("matchup %s: games must not be negative", m.Name)
		}
	}

	return nil
}

// Timeout returns the per-game timeout, zero when unset
func (c *Config) Timeout() (time.Duration, error) {
	if c.Simulation.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Simulation.Timeout)
	if err != nil {
		return 0, fmt.Errorf("simulation: invalid timeout %q: %w", c.Simulation.Timeout, err)
	}
	return d, nil
}

// Pace returns the delay between tricks for the paced views
func (c *Config) Pace() (time.Duration, error) {
	d, err := time.ParseDuration(c.Spectator.Pace)
	if err != nil {
		return 0, fmt.Errorf("spectator: invalid pace %q: %w", c.Spectator.Pace, err)
	}
	return d, nil
}

// StrategySpec resolves a strategy by name. Names defined in the file take
// precedence; otherwise a built-in type name is accepted as is.
func (c *Config) StrategySpec(name string) (bot.Spec, error) {
	for _, s := range c.Strategies {
		if s.Name == name {
			return bot.Spec{Type: s.Type, Weights: s.Weights, Bias: s.Bias}, nil
		}
	}
	if bot.IsKnownType(name) {
		return bot.Spec{Type: strings.ToLower(name)}, nil
	}
	return bot.Spec{}, fmt.Errorf("unknown strategy %q", name)
}

// GetMatchupByName returns a matchup configuration by name
func (c *Config) GetMatchupByName(name string) *MatchupConfig {
	for i := range c.Matchups {
		if c.Matchups[i].Name == name {
			return &c.Matchups[i]
		}
	}
	return nil
}
