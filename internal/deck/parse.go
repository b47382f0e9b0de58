package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCard parses a single card in short notation.
// Format: "[Value][Suit]" where Value is 1-10 and Suit is one of
// b (Bastoni), c (Coppe), d (Denari), s (Spade). Case insensitive.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q: too short", s)
	}

	suit, err := parseSuit(s[len(s)-1])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}

	value, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || value < MinValue || value > MaxValue {
		return Card{}, fmt.Errorf("invalid card %q: value must be %d-%d", s, MinValue, MaxValue)
	}

	return NewCard(value, suit), nil
}

// ParseCards parses a whitespace or comma separated list of cards, e.g. "7b 3c 10d"
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})

	cards := make([]Card, 0, len(fields))
	for i, f := range fields {
		card, err := ParseCard(f)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// MustParseCard parses a single card and panics on error (for tests)
func MustParseCard(s string) Card {
	card, err := ParseCard(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse card '%s': %v", s, err))
	}
	return card
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 'b', 'B':
		return Bastoni, nil
	case 'c', 'C':
		return Coppe, nil
	case 'd', 'D':
		return Denari, nil
	case 's', 'S':
		return Spade, nil
	default:
		return 0, fmt.Errorf("unknown suit '%c'", c)
	}
}

// MarshalText encodes the card in short notation so JSON feeds stay compact
func (c Card) MarshalText() ([]byte, error) {
	if c.IsZero() {
		return []byte{}, nil
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes short notation; an empty string yields the zero Card
func (c *Card) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Card{}
		return nil
	}
	card, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// MarshalText encodes the suit by name
func (s Suit) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a suit from its name or single-letter code
func (s *Suit) UnmarshalText(text []byte) error {
	str := strings.TrimSpace(string(text))
	for _, candidate := range Suits {
		if strings.EqualFold(str, candidate.String()) {
			*s = candidate
			return nil
		}
	}
	if len(str) == 1 {
		suit, err := parseSuit(str[0])
		if err != nil {
			return err
		}
		*s = suit
		return nil
	}
	return fmt.Errorf("unknown suit %q", str)
}
