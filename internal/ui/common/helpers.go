package common

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TruncateName shortens a player name to maxWidth terminal columns and marks
// the cut with an ellipsis. Wide runes (CJK, emoji) count as two columns.
func TruncateName(name string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(name) <= maxWidth {
		return name
	}

	var sb strings.Builder
	used := 0
	for _, r := range name {
		w := lipgloss.Width(string(r))
		if used+w > maxWidth-1 {
			break
		}
		sb.WriteRune(r)
		used += w
	}
	return sb.String() + "…"
}
