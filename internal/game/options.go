package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/randutil"
)

// Option configures a Game during creation.
type Option func(*gameConfig)

type gameConfig struct {
	rng      *rand.Rand
	deck     *deck.Deck
	leader   Seat
	gameID   string
	logger   *log.Logger
	eventBus EventBus
}

// WithRNG sets the random source used to shuffle and pick the first leader
func WithRNG(rng *rand.Rand) Option {
	return func(c *gameConfig) { c.rng = rng }
}

// WithSeed is shorthand for WithRNG(randutil.New(seed))
func WithSeed(seed int64) Option {
	return func(c *gameConfig) { c.rng = randutil.New(seed) }
}

// WithDeck plays the given deck as is instead of shuffling a fresh one.
// The top card becomes the trump card.
func WithDeck(d *deck.Deck) Option {
	return func(c *gameConfig) { c.deck = d }
}

// WithLeader fixes the seat that leads the first trick
func WithLeader(seat Seat) Option {
	return func(c *gameConfig) { c.leader = seat }
}

// WithGameID overrides the generated game ID
func WithGameID(id string) Option {
	return func(c *gameConfig) { c.gameID = id }
}

func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) { c.logger = logger }
}

// WithEventBus publishes game events on bus
func WithEventBus(bus EventBus) Option {
	return func(c *gameConfig) { c.eventBus = bus }
}
