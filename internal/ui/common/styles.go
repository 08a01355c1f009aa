// Package common provides shared styles for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/go-fish/internal/game/card"
)

// 牌面
const (
	CardBack  = "▒▒▒"
	CardWidth = 3
)

// Lipgloss Styles
var (
	RedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BlackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Background(lipgloss.Color("17"))
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	StatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// CardFace returns the label and style of a card as seen from this client.
// Face-down cards and cards of unknown value show their back.
func CardFace(c *card.Card) (string, lipgloss.Style) {
	if !c.FaceUp || c.Rank == card.RankNone {
		return CardBack, BackStyle
	}
	label := c.Rank.String() + c.Suit.String()
	if len([]rune(label)) < CardWidth {
		label = " " + label
	}
	if c.Suit.Color() == card.Red {
		return label, RedStyle
	}
	return label, BlackStyle
}
