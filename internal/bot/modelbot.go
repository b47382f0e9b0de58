package bot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/game"
)

// NumFeatures is the width of the model input and output: one slot per card
// a hand can hold.
const NumFeatures = game.MaxHandSize

// Model scores each hand slot; the highest score is the card to play.
type Model interface {
	Predict(features [NumFeatures]float64) [NumFeatures]float64
}

// Features encodes a hand as card values scaled to [0.1, 1], zero padded.
func Features(cards []deck.Card) [NumFeatures]float64 {
	var f [NumFeatures]float64
	for i, c := range cards {
		if i >= NumFeatures {
			break
		}
		f[i] = float64(c.Value) / float64(deck.MaxValue)
	}
	return f
}

// argmax returns the first index holding the maximum score
func argmax(scores [NumFeatures]float64) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}

// ModelBot plays the card chosen by a Model. A choice that points past the
// end of a short hand falls back to the first card.
type ModelBot struct {
	base
	model  Model
	logger *log.Logger
}

// NewModelBot creates a new ModelBot
func NewModelBot(name string, model Model, logger *log.Logger) *ModelBot {
	return &ModelBot{
		base:   base{name: name},
		model:  model,
		logger: logger.WithPrefix("bot").With("player", name),
	}
}

func (m *ModelBot) SelectCard(view game.TrickView) (deck.Card, bool) {
	cards := m.hand.Cards()
	if len(cards) == 0 {
		return deck.Card{}, false
	}

	features := Features(cards)
	scores := m.model.Predict(features)
	i := argmax(scores)
	if i >= len(cards) {
		m.logger.Debug("Model chose an empty slot, playing first card",
			"trick", view.Trick,
			"index", i,
			"hand", cards,
			"scores", scores)
		i = 0
	}
	return m.play(i)
}

// LinearModel is a single dense layer: out = W·x + b, with W stored row major.
type LinearModel struct {
	Weights [NumFeatures * NumFeatures]float64
	Bias    [NumFeatures]float64
}

// IdentityModel returns a model that scores each slot by its own card value,
// so it always plays the highest card.
func IdentityModel() *LinearModel {
	m := &LinearModel{}
	for i := 0; i < NumFeatures; i++ {
		m.Weights[i*NumFeatures+i] = 1
	}
	return m
}

// NewLinearModel builds a model from flat weights and bias. Empty weights
// give the identity model.
func NewLinearModel(weights, bias []float64) (*LinearModel, error) {
	m := IdentityModel()
	if len(weights) > 0 {
		if len(weights) != len(m.Weights) {
			return nil, fmt.Errorf("model weights: expected %d values, got %d", len(m.Weights), len(weights))
		}
		copy(m.Weights[:], weights)
	}
	if len(bias) > 0 {
		if len(bias) != len(m.Bias) {
			return nil, fmt.Errorf("model bias: expected %d values, got %d", len(m.Bias), len(bias))
		}
		copy(m.Bias[:], bias)
	}
	return m, nil
}

func (m *LinearModel) Predict(x [NumFeatures]float64) [NumFeatures]float64 {
	var out [NumFeatures]float64
	for i := 0; i < NumFeatures; i++ {
		sum := m.Bias[i]
		for j := 0; j < NumFeatures; j++ {
			sum += m.Weights[i*NumFeatures+j] * x[j]
		}
		out[i] = sum
	}
	return out
}
