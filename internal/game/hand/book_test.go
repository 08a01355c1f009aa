package hand

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/go-fish/internal/apperrors"
	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/game/geometry"
	"github.com/palemoky/go-fish/internal/testutil"
)

// Four nines leave the hand and land in the next free book slot.
func TestExtractBook_FourOfAKind(t *testing.T) {
	t.Parallel()

	f := newFixture()
	h := f.hand(t, "p1", 5)

	f.deal(t, h, "KS", "KH", "KC", "KD")
	_, err := h.ExtractBook(card.RankK)
	require.NoError(t, err)
	require.Equal(t, 1, h.BookCount())

	nines := f.deal(t, h, "9S", "2C", "9H", "9C", "9D", "4H")
	before := h.DisplayingCount()
	prevBooks := h.BookCount()
	from := len(f.rec.Requests)

	book, err := h.ExtractBook(card.Rank9)
	require.NoError(t, err)

	assert.Equal(t, prevBooks+1, h.BookCount())
	assert.Equal(t, before-4, h.DisplayingCount())
	assert.Equal(t, 2, h.HeldCount())

	wantSlot := geometry.NextBookSlot(bookAnchor, prevBooks, 2)
	assert.Equal(t, prevBooks, book.Slot)
	assert.Equal(t, wantSlot, book.Pos)
	assert.Equal(t, card.Rank9, book.Rank)
	require.Len(t, book.Cards, 4)
	assert.Same(t, nines[0], book.Top)

	for _, c := range book.Cards {
		assert.True(t, c.FaceUp)
		assert.Equal(t, card.Rank9, c.Rank)
		assert.Equal(t, "p1", c.Owner)
		if c != book.Top {
			assert.Equal(t, book.Top.ID, c.Parent)
		}
	}
	for _, c := range h.Cards() {
		assert.NotEqual(t, card.Rank9, c.Rank)
	}

	// four book moves followed by the relayout of the two remaining cards
	reqs := f.rec.Requests[from:]
	require.Len(t, reqs, 6)
	for _, req := range reqs[:4] {
		assert.Equal(t, wantSlot, req.Target)
		assert.True(t, req.Rotate)
	}
	assert.Equal(t, slot(5, 1), reqs[4].Target)
	assert.Equal(t, slot(5, 2), reqs[5].Target)
}

func TestExtractBook_AfterStacking(t *testing.T) {
	t.Parallel()

	f := newFixture()
	h := f.hand(t, "p1", 5)
	f.deal(t, h, "QS", "QH", "3D", "QC", "QD")
	h.Recompute()
	require.Equal(t, 2, h.DisplayingCount())

	book, err := h.ExtractBook(card.RankQ)
	require.NoError(t, err)

	assert.Len(t, book.Cards, 4)
	assert.Equal(t, 1, h.DisplayingCount())
	assert.Equal(t, 1, h.HeldCount())
}

func TestExtractBook_RotationBounded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rnd      float64
		expected float64
	}{
		{"lower bound", 0, -10},
		{"centre", 0.5, 0},
		{"near upper bound", 0.999, 9.98},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			opts := testOptions(5)
			opts.Rand = testutil.FixedRand(tt.rnd)
			h, err := New("p1", f.arena, f.rec, opts, f.log)
			require.NoError(t, err)
			f.deal(t, h, "2S", "2H")

			_, err = h.ExtractBook(card.Rank2)
			require.NoError(t, err)

			for _, req := range f.rec.Requests[:2] {
				assert.InDelta(t, tt.expected, req.Rotation, 1e-9)
				assert.LessOrEqual(t, req.Rotation, 10.0)
				assert.GreaterOrEqual(t, req.Rotation, -10.0)
			}
		})
	}
}

func TestExtractBook_NoMatch(t *testing.T) {
	t.Parallel()

	f := newFixture()
	h := f.hand(t, "p1", 5)
	cards := f.deal(t, h, "2S", "3H")

	book, err := h.ExtractBook(card.Rank9)
	assert.Nil(t, book)
	assert.ErrorIs(t, err, apperrors.ErrLookup)
	assert.Zero(t, h.BookCount())
	assert.Equal(t, cards, h.Cards())
	assert.Empty(t, f.rec.Requests)
	require.NotNil(t, f.hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, f.hook.LastEntry().Level)

	_, err = h.ExtractBook(card.RankNone)
	assert.ErrorIs(t, err, apperrors.ErrPrecondition)
}

func TestExtractBook_SlotsNeverReused(t *testing.T) {
	t.Parallel()

	f := newFixture()
	h := f.hand(t, "p1", 5)
	f.deal(t, h, "AS", "AH", "5S", "5H", "8S", "8H")

	var slots []int
	for _, r := range []card.Rank{card.RankA, card.Rank5, card.Rank8} {
		book, err := h.ExtractBook(r)
		require.NoError(t, err)
		slots = append(slots, book.Slot)
	}

	assert.Equal(t, []int{0, 1, 2}, slots)
	assert.Len(t, h.Books(), 3)
	assert.Zero(t, h.HeldCount())
}

func TestRestoreBook(t *testing.T) {
	t.Parallel()

	f := newFixture()
	h := f.hand(t, "local", 5)
	h.Clear()

	book, err := h.RestoreBook(card.RankQ, values(t, "QS QH QC QD"))
	require.NoError(t, err)
	assert.Equal(t, card.RankQ, book.Rank)
	assert.Equal(t, 0, book.Slot)
	assert.Equal(t, 1, h.BookCount())
	assert.Zero(t, h.HeldCount())
	for _, c := range book.Cards {
		assert.True(t, c.FaceUp)
		assert.Equal(t, "local", c.Owner)
		req, ok := f.rec.Last(c.ID)
		require.True(t, ok)
		assert.Equal(t, geometry.NextBookSlot(bookAnchor, 0, 2), req.Target)
	}

	tests := []struct {
		name   string
		rank   card.Rank
		values []card.Value
	}{
		{"empty", card.RankQ, nil},
		{"mixed ranks", card.RankQ, values(t, "QS KH")},
		{"unknown value", card.RankQ, []card.Value{card.ValueUnknown}},
		{"rank disagrees with cards", card.RankK, values(t, "QS QH QC QD")},
		{"no rank", card.RankNone, values(t, "QS")},
	}
	for _, tt := range tests {
		_, err := h.RestoreBook(tt.rank, tt.values)
		assert.ErrorIs(t, err, apperrors.ErrPrecondition, tt.name)
	}
	assert.Equal(t, 1, h.BookCount())
}

func TestClear(t *testing.T) {
	t.Parallel()

	f := newFixture()
	h := f.hand(t, "local", 5)
	f.deal(t, h, "2S", "2H", "2C", "2D", "9H")
	_, err := h.ExtractBook(card.Rank2)
	require.NoError(t, err)

	h.Clear()
	assert.Zero(t, h.HeldCount())
	assert.Zero(t, h.DisplayingCount())
	assert.Zero(t, h.BookCount())
	assert.Empty(t, h.Books())
}
