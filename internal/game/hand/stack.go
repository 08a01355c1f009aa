package hand

import (
	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/game/geometry"
)

// stack merges held cards of equal rank into visual stacks: the earliest card
// of a rank stays a root and later cards of that rank are anchored on it.
// Any two known cards of the same rank merge, so a pair already renders as
// one slot before the book is complete.
func (h *Hand) stack() {
	held := make(map[card.ID]bool, len(h.cards))
	for _, c := range h.cards {
		held[c.ID] = true
	}

	// drop parents that left the hand or no longer match
	for _, c := range h.cards {
		if !c.Stacked() {
			continue
		}
		p := h.arena.Get(c.Parent)
		if p == nil || !held[p.ID] || p.Stacked() || p.Rank != c.Rank || c.Rank == card.RankNone {
			c.Unstack()
		}
	}

	hasChildren := make(map[card.ID]bool)
	for _, c := range h.cards {
		if c.Stacked() {
			hasChildren[c.Parent] = true
		}
	}

	lift := geometry.Up.Scale(h.stackOffset)
	for i, root := range h.cards {
		if root.Rank == card.RankNone || root.Stacked() {
			continue
		}
		for _, c := range h.cards[i+1:] {
			if hasChildren[c.ID] || c.Rank == card.RankNone || c.Rank != root.Rank {
				continue
			}
			c.Parent = root.ID
			c.Offset = lift
			hasChildren[root.ID] = true
		}
	}
}
