package deck

import (
	"errors"
	rand "math/rand/v2"
)

// DeckSize is the number of cards in an Italian deck
const DeckSize = NumSuits * MaxValue

// DeckPoints is the point total of a full deck: 4 x (11+10+4+3+2)
const DeckPoints = 120

// ErrNoRandomSource is returned when a deck is requested without a random source.
var ErrNoRandomSource = errors.New("deck: no random source")

// Deck represents an ordered pile of cards. The last card is the top of the deck.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// CanonicalCards returns the 40 cards of the deck in suit-then-value order
func CanonicalCards() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for value := MinValue; value <= MaxValue; value++ {
			cards = append(cards, NewCard(value, suit))
		}
	}
	return cards
}

// New creates a full 40-card deck shuffled once with rng.
func New(rng *rand.Rand) (*Deck, error) {
	if rng == nil {
		return nil, ErrNoRandomSource
	}
	d := &Deck{
		cards: CanonicalCards(),
		rng:   rng,
	}
	d.Shuffle()
	return d, nil
}

// NewDeck is like New but panics without a random source. Use it where the
// rng is known to be non-nil.
func NewDeck(rng *rand.Rand) *Deck {
	d, err := New(rng)
	if err != nil {
		panic(err)
	}
	return d
}

// FromCards builds a deck with a fixed order. The last card is drawn first.
// Used by tests and tooling that need a known deal.
func FromCards(cards []Card) *Deck {
	c := make([]Card, len(cards))
	copy(c, cards)
	return &Deck{cards: c}
}

// Shuffle applies a uniform random permutation to the remaining cards
func (d *Deck) Shuffle() {
	if d.rng == nil {
		return
	}
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. It returns false on an empty deck.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	last := len(d.cards) - 1
	card := d.cards[last]
	d.cards = d.cards[:last]
	return card, true
}

// Peek returns the top card without removing it
func (d *Deck) Peek() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[len(d.cards)-1], true
}

// Bottom returns the card that will be drawn last
func (d *Deck) Bottom() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[0], true
}

// PutBottom places a card under the deck so that it is drawn last
func (d *Deck) PutBottom(card Card) {
	d.cards = append(d.cards, Card{})
	copy(d.cards[1:], d.cards)
	d.cards[0] = card
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, bottom first
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
