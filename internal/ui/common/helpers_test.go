package common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/go-fish/internal/game/card"
)

func TestTruncateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"short name within limit", "Alice", 10, "Alice"},
		{"exact length", "HelloWorld", 10, "HelloWorld"},
		{"long name truncated", "VeryLongPlayerName", 10, "VeryLongP…"},
		{"chinese name counts double", "可爱的龙猫", 7, "可爱的…"},
		{"chinese name fits", "龙猫", 4, "龙猫"},
		{"wide rune not split", "可爱的龙猫", 6, "可爱…"},
		{"empty name", "", 10, ""},
		{"single column", "Hello", 1, "…"},
		{"zero width", "Hello", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.maxWidth))
		})
	}
}

func TestCardFace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		card  card.Card
		label string
		style string
	}{
		{"black face up", card.Card{Rank: card.Rank7, Suit: card.Spade, FaceUp: true}, " 7♠", "black"},
		{"red ten", card.Card{Rank: card.Rank10, Suit: card.Heart, FaceUp: true}, "10♥", "red"},
		{"face down", card.Card{Rank: card.RankK, Suit: card.Club}, CardBack, "back"},
		{"unknown value", card.Card{FaceUp: true}, CardBack, "back"},
	}
	styles := map[string]string{
		"black": BlackStyle.Render("x"),
		"red":   RedStyle.Render("x"),
		"back":  BackStyle.Render("x"),
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			label, style := CardFace(&tt.card)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, styles[tt.style], style.Render("x"))
		})
	}
}
