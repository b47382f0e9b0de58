package bot

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/briscola/internal/game"
)

// Strategy type names accepted by NewFactory
const (
	TypeLowest = "lowest"
	TypeGreedy = "greedy"
	TypeRandom = "random"
	TypeModel  = "model"
)

// Types lists the built-in strategy types
var Types = []string{TypeLowest, TypeGreedy, TypeRandom, TypeModel}

// Spec describes a strategy by type plus its parameters
type Spec struct {
	Type    string
	Weights []float64
	Bias    []float64
}

// Factory creates a fresh player for one game. The rng is the player's own
// stream; deterministic strategies ignore it.
type Factory func(rng *rand.Rand) game.Player

// NewFactory validates spec and returns a factory for players called name
func NewFactory(name string, spec Spec, logger *log.Logger) (Factory, error) {
	switch strings.ToLower(spec.Type) {
	case TypeLowest:
		return func(*rand.Rand) game.Player { return NewLowestBot(name) }, nil
	case TypeGreedy:
		return func(*rand.Rand) game.Player { return NewGreedyBot(name, logger) }, nil
	case TypeRandom:
		return func(rng *rand.Rand) game.Player { return NewRandBot(name, rng) }, nil
	case TypeModel:
		model, err := NewLinearModel(spec.Weights, spec.Bias)
		if err != nil {
			return nil, fmt.Errorf("strategy %q: %w", name, err)
		}
		return func(*rand.Rand) game.Player { return NewModelBot(name, model, logger) }, nil
	default:
		return nil, fmt.Errorf("strategy %q: unknown type %q (want one of %s)",
			name, spec.Type, strings.Join(Types, ", "))
	}
}

// IsKnownType reports whether t names a built-in strategy
func IsKnownType(t string) bool {
	return slices.Contains(Types, strings.ToLower(t))
}
