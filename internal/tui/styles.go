package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/briscola/internal/deck"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	GameLogStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	ScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	TrumpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	PlayerInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262"))
)

// suitStyles colours cards by suit
var suitStyles = map[deck.Suit]lipgloss.Style{
	deck.Bastoni: lipgloss.NewStyle().Foreground(lipgloss.Color("#8FBC5A")).Bold(true),
	deck.Coppe:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	deck.Denari:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
	deck.Spade:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4FC3F7")).Bold(true),
}

// CardStyle returns the style for a card's suit
func CardStyle(c deck.Card) lipgloss.Style {
	if s, ok := suitStyles[c.Suit]; ok {
		return s
	}
	return GameLogStyle
}
