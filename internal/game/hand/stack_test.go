package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/game/geometry"
)

// Two pairs collapse into two displaying stacks.
func TestStack_PairsMerge(t *testing.T) {
	t.Parallel()

	f := newFixture()
	h := f.hand(t, "p1", 5)
	cards := f.deal(t, h, "7S", "3S", "7H", "3H")

	h.Recompute()

	sevenS, threeS, sevenH, threeH := cards[0], cards[1], cards[2], cards[3]
	assert.False(t, sevenS.Stacked())
	assert.False(t, threeS.Stacked())
	assert.Equal(t, sevenS.ID, sevenH.Parent)
	assert.Equal(t, threeS.ID, threeH.Parent)
	assert.Equal(t, geometry.Vec2{Y: 0.25}, sevenH.Offset)
	assert.Equal(t, 2, h.DisplayingCount())
	assert.Len(t, f.rec.Requests, 2)
}

func TestStack_AllOfARankShareOneRoot(t *testing.T) {
	t.Parallel()

	f := newFixture()
	h := f.hand(t, "p1", 5)
	cards := f.deal(t, h, "9S", "9H", "9C")

	h.Recompute()

	assert.False(t, cards[0].Stacked())
	assert.Equal(t, cards[0].ID, cards[1].Parent)
	assert.Equal(t, cards[0].ID, cards[2].Parent)
	assert.Equal(t, 1, h.DisplayingCount())
}

func TestStack_UnknownCardsNeverStack(t *testing.T) {
	t.Parallel()

	f := newFixture()
	h := f.hand(t, "p1", 5)
	cards := f.deal(t, h, "?", "?", "?")

	h.Recompute()

	for _, c := range cards {
		assert.False(t, c.Stacked())
	}
	assert.Equal(t, 3, h.DisplayingCount())
}

func TestStack_ReleasedWhenRankChanges(t *testing.T) {
	t.Parallel()

	f := newFixture()
	h := f.hand(t, "p1", 5)
	cards := f.deal(t, h, "5S", "5D", "KC")
	h.Recompute()
	require.True(t, cards[1].Stacked())

	// only the two roots are displaying, so the stacked 5D keeps its value
	require.NoError(t, h.AssignValues([]card.Value{
		card.NewValue(card.Rank8, card.Spade),
		card.NewValue(card.RankK, card.Heart),
	}))
	assert.Equal(t, card.Rank5, cards[1].Rank)

	h.Recompute()
	assert.False(t, cards[1].Stacked(), "5D no longer matches its 8S parent")
	assert.Equal(t, []*card.Card{cards[0], cards[1], cards[2]}, h.Displaying())
	assert.Equal(t, 3, h.DisplayingCount())
}

func TestStack_ChildReleasedWhenRootLeaves(t *testing.T) {
	t.Parallel()

	f := newFixture()
	h := f.hand(t, "p1", 5)
	cards := f.deal(t, h, "JS", "JH", "JD")
	h.Recompute()

	h.remove(cards[0])

	assert.False(t, cards[1].Stacked())
	assert.False(t, cards[2].Stacked())

	h.Recompute()
	assert.False(t, cards[1].Stacked())
	assert.Equal(t, cards[1].ID, cards[2].Parent)
	assert.Equal(t, 1, h.DisplayingCount())
}
