package card

// Arena owns every card of a table session and resolves IDs back to cards.
// Stacking parents are stored as IDs, so cards never point at each other.
type Arena struct {
	cards []*Card
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	// slot 0 is reserved for NoID
	return &Arena{cards: []*Card{nil}}
}

// New creates a face-down card with the given value and registers it.
func (a *Arena) New(v Value) *Card {
	c := &Card{
		ID:   ID(len(a.cards)),
		Rank: v.Rank(),
		Suit: v.Suit(),
	}
	if !v.Valid() {
		c.Rank = RankNone
	}
	a.cards = append(a.cards, c)
	return c
}

// Get resolves an ID. It returns nil for NoID and unknown IDs.
func (a *Arena) Get(id ID) *Card {
	if id <= NoID || int(id) >= len(a.cards) {
		return nil
	}
	return a.cards[id]
}

// Len returns the number of registered cards.
func (a *Arena) Len() int {
	return len(a.cards) - 1
}

// All returns the registered cards in creation order.
func (a *Arena) All() []*Card {
	out := make([]*Card, 0, a.Len())
	out = append(out, a.cards[1:]...)
	return out
}

// Reset drops every card.
func (a *Arena) Reset() {
	a.cards = a.cards[:1]
}
