package deck

import (
	"encoding/json"
	"testing"

	"github.com/lox/briscola/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardPoints(t *testing.T) {
	tests := []struct {
		card   string
		points int
	}{
		{"1b", 11},
		{"3c", 10},
		{"10d", 4},
		{"9s", 3},
		{"8b", 2},
		{"7b", 0},
		{"2c", 0},
		{"4d", 0},
		{"5s", 0},
		{"6b", 0},
	}

	for _, tt := range tests {
		t.Run(tt.card, func(t *testing.T) {
			assert.Equal(t, tt.points, MustParseCard(tt.card).Points())
		})
	}
}

func TestCanonicalCardsTotal(t *testing.T) {
	cards := CanonicalCards()
	require.Len(t, cards, DeckSize)
	assert.Equal(t, DeckPoints, TotalPoints(cards...))

	seen := make(map[Card]bool)
	for _, c := range cards {
		assert.True(t, c.Valid(), "card %v should be valid", c)
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
}

func TestCardFormatting(t *testing.T) {
	c := NewCard(7, Bastoni)
	assert.Equal(t, "7b", c.String())
	assert.Equal(t, "7 di Bastoni", c.Name())

	assert.Equal(t, "10d", NewCard(10, Denari).String())
	assert.Equal(t, "--", Card{}.String())
	assert.True(t, Card{}.IsZero())
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "space separated",
			input: "7b 3c 10d",
			expected: []Card{
				{Value: 7, Suit: Bastoni},
				{Value: 3, Suit: Coppe},
				{Value: 10, Suit: Denari},
			},
		},
		{
			name:  "comma separated mixed case",
			input: "1S,9D",
			expected: []Card{
				{Value: 1, Suit: Spade},
				{Value: 9, Suit: Denari},
			},
		},
		{
			name:    "value out of range",
			input:   "11b",
			wantErr: true,
		},
		{
			name:    "zero value",
			input:   "0c",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "7x",
			wantErr: true,
		},
		{
			name:    "too short",
			input:   "b",
			wantErr: true,
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseCards("invalid") })
	assert.NotPanics(t, func() { MustParseCards("1b 2b") })
}

func TestNewDeckRequiresRandomSource(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoRandomSource)
	assert.Panics(t, func() { NewDeck(nil) })
}

func TestDeckIsPermutation(t *testing.T) {
	d := NewDeck(randutil.New(42))
	require.Equal(t, DeckSize, d.Len())
	assert.ElementsMatch(t, CanonicalCards(), d.Cards())
}

func TestDeckDeterministicWithSeed(t *testing.T) {
	a := NewDeck(randutil.New(7))
	b := NewDeck(randutil.New(7))
	assert.Equal(t, a.Cards(), b.Cards())

	c := NewDeck(randutil.New(8))
	assert.NotEqual(t, a.Cards(), c.Cards())
}

func TestDeckDrawTakesTop(t *testing.T) {
	d := FromCards(MustParseCards("1b 2b 3b"))

	top, ok := d.Peek()
	require.True(t, ok)
	assert.Equal(t, MustParseCard("3b"), top)

	card, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, MustParseCard("3b"), card)
	assert.Equal(t, 2, d.Len())
}

func TestDeckPutBottomDrawnLast(t *testing.T) {
	d := FromCards(MustParseCards("1b 2b 3b"))
	trump, ok := d.Draw()
	require.True(t, ok)

	d.PutBottom(trump)
	bottom, ok := d.Bottom()
	require.True(t, ok)
	assert.Equal(t, trump, bottom)

	var drawn []Card
	for !d.IsEmpty() {
		c, ok := d.Draw()
		require.True(t, ok)
		drawn = append(drawn, c)
	}
	assert.Equal(t, MustParseCards("2b 1b 3b"), drawn)
}

func TestDrawEmptyDeck(t *testing.T) {
	d := FromCards(nil)
	card, ok := d.Draw()
	assert.False(t, ok)
	assert.True(t, card.IsZero())

	_, ok = d.Peek()
	assert.False(t, ok)
	_, ok = d.Bottom()
	assert.False(t, ok)
}

func TestCardJSONUsesShortNotation(t *testing.T) {
	type payload struct {
		Card  Card `json:"card"`
		Empty Card `json:"empty"`
		Suit  Suit `json:"suit"`
	}

	data, err := json.Marshal(payload{Card: MustParseCard("10d"), Suit: Spade})
	require.NoError(t, err)
	assert.JSONEq(t, `{"card":"10d","empty":"","suit":"Spade"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, MustParseCard("10d"), decoded.Card)
	assert.True(t, decoded.Empty.IsZero())
	assert.Equal(t, Spade, decoded.Suit)
}
