package hand

import (
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/go-fish/internal/apperrors"
	"github.com/palemoky/go-fish/internal/game/card"
)

func values(t *testing.T, s string) []card.Value {
	t.Helper()
	v, err := card.ParseValues(s)
	require.NoError(t, err)
	return v
}

// Asking for more cards than the source holds moves nothing.
func TestTransfer_NotEnoughCards(t *testing.T) {
	t.Parallel()

	f := newFixture()
	src := f.hand(t, "local", 5)
	dst := f.hand(t, "remote", 5)
	srcCards := f.deal(t, src, "2S", "3S")
	dstCards := f.deal(t, dst, "?")

	moved, err := Transfer(src, dst, values(t, "2S 3S 4S"), ByIdentity)

	assert.Zero(t, moved)
	assert.ErrorIs(t, err, apperrors.ErrPrecondition)
	assert.Equal(t, srcCards, src.Cards())
	assert.Equal(t, dstCards, dst.Cards())
	for _, c := range srcCards {
		assert.Equal(t, "local", c.Owner)
	}
	assert.Empty(t, f.rec.Requests)
}

// Blind cards are taken from the end and stamped with the value.
func TestTransfer_ReversePosition(t *testing.T) {
	t.Parallel()

	f := newFixture()
	src := f.hand(t, "remote", 5)
	dst := f.hand(t, "local", 5)
	blind := f.deal(t, src, "?", "?", "?", "?")
	src.Recompute()
	dst.Recompute()
	from := len(f.rec.Requests)

	moved, err := Transfer(src, dst, values(t, "7S 9D"), ByReversePosition)
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	assert.Equal(t, []*card.Card{blind[3], blind[2]}, dst.Cards())
	assert.Equal(t, []*card.Card{blind[0], blind[1]}, src.Cards())

	assert.Equal(t, card.NewValue(card.Rank7, card.Spade), blind[3].Value())
	assert.Equal(t, card.NewValue(card.Rank9, card.Diamond), blind[2].Value())
	for _, c := range dst.Cards() {
		assert.True(t, c.FaceUp)
		assert.Equal(t, "local", c.Owner)
	}
	for _, c := range src.Cards() {
		assert.Equal(t, card.RankNone, c.Rank)
		assert.False(t, c.FaceUp)
	}

	// each moved card is sent to the destination at once, then the source
	// is laid out again
	reqs := f.rec.Requests[from:]
	require.Len(t, reqs, 4)
	assert.Same(t, blind[3], reqs[0].Card)
	assert.Equal(t, slot(5, 1), reqs[0].Target)
	assert.Same(t, blind[2], reqs[1].Card)
	assert.Equal(t, slot(5, 2), reqs[1].Target)
	assert.Same(t, blind[0], reqs[2].Card)
	assert.Same(t, blind[1], reqs[3].Card)
	assert.Equal(t, 2, src.DisplayingCount())
}

func TestTransfer_ByIdentity(t *testing.T) {
	t.Parallel()

	f := newFixture()
	src := f.hand(t, "local", 5)
	dst := f.hand(t, "remote", 5)
	cards := f.deal(t, src, "7S", "KD", "7H", "2C")
	src.Recompute()
	require.True(t, cards[2].Stacked())

	moved, err := Transfer(src, dst, values(t, "7S 7H"), ByIdentity)
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	assert.Equal(t, []*card.Card{cards[1], cards[3]}, src.Cards())
	assert.Equal(t, []*card.Card{cards[0], cards[2]}, dst.Cards())
	assert.False(t, cards[2].Stacked())
	assert.Equal(t, 2, src.DisplayingCount())

	// the receiver restacks on its own Recompute
	dst.Recompute()
	assert.Equal(t, cards[0].ID, cards[2].Parent)
	assert.Equal(t, 1, dst.DisplayingCount())
}

func TestTransfer_LookupFailureIsPerItem(t *testing.T) {
	t.Parallel()

	f := newFixture()
	src := f.hand(t, "local", 5)
	dst := f.hand(t, "remote", 5)
	cards := f.deal(t, src, "7S", "3D", "JC")

	moved, err := Transfer(src, dst, values(t, "7S KH 3D"), ByIdentity)

	assert.Equal(t, 2, moved)
	assert.ErrorIs(t, err, apperrors.ErrLookup)
	assert.Contains(t, err.Error(), "K♥")
	assert.Equal(t, []*card.Card{cards[0], cards[1]}, dst.Cards())
	assert.Equal(t, []*card.Card{cards[2]}, src.Cards())
	assert.Equal(t, len(src.Displaying()), src.DisplayingCount())

	var errorEntries int
	for _, e := range f.hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			errorEntries++
			assert.Equal(t, "Unable to find card to transfer", e.Message)
			assert.Equal(t, "local", e.Data["player"])
		}
	}
	assert.Equal(t, 1, errorEntries)
}

func TestTransfer_RejectsSelfAndNil(t *testing.T) {
	t.Parallel()

	f := newFixture()
	h := f.hand(t, "p1", 5)
	f.deal(t, h, "2S")

	_, err := Transfer(h, h, values(t, "2S"), ByIdentity)
	assert.ErrorIs(t, err, apperrors.ErrPrecondition)

	_, err = Transfer(h, nil, values(t, "2S"), ByIdentity)
	assert.ErrorIs(t, err, apperrors.ErrPrecondition)
	assert.Equal(t, 1, h.HeldCount())
}

func TestTransfer_EmptyRequest(t *testing.T) {
	t.Parallel()

	f := newFixture()
	src := f.hand(t, "local", 5)
	dst := f.hand(t, "remote", 5)
	f.deal(t, src, "2S")

	moved, err := Transfer(src, dst, nil, ByIdentity)
	require.NoError(t, err)
	assert.Zero(t, moved)
	assert.Equal(t, 1, src.HeldCount())
}

func TestResolution_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "identity", ByIdentity.String())
	assert.Equal(t, "reverse_position", ByReversePosition.String())
	assert.Equal(t, "unknown", Resolution(9).String())

	for _, r := range []Resolution{ByIdentity, ByReversePosition} {
		parsed, err := ParseResolution(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	empty, err := ParseResolution("")
	require.NoError(t, err)
	assert.Equal(t, ByIdentity, empty)
	_, err = ParseResolution("sideways")
	assert.ErrorIs(t, err, apperrors.ErrPrecondition)
}

// Cards are never created or lost by any mix of transfers and books.
func TestConservation(t *testing.T) {
	t.Parallel()

	f := newFixture()
	local := f.hand(t, "local", 6)
	remote := f.hand(t, "remote", 4)

	deck := card.NewDeck()
	rng := rand.New(rand.NewPCG(7, 11))
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	for i, v := range deck {
		c := f.arena.New(v)
		if i%2 == 0 {
			local.ReceiveCard(c)
		} else {
			remote.ReceiveCard(c)
		}
	}
	local.Recompute()
	remote.Recompute()

	total := func() int {
		n := local.HeldCount() + remote.HeldCount()
		for _, h := range []*Hand{local, remote} {
			for _, b := range h.Books() {
				n += len(b.Cards)
			}
		}
		return n
	}
	require.Equal(t, 52, total())

	hands := []*Hand{local, remote}
	for step := range 200 {
		src, dst := hands[step%2], hands[(step+1)%2]
		switch rng.IntN(3) {
		case 0:
			held := src.Cards()
			if len(held) == 0 {
				continue
			}
			pick := held[rng.IntN(len(held))]
			_, _ = Transfer(src, dst, []card.Value{pick.Value()}, ByIdentity)
			dst.Recompute()
		case 1:
			_, _ = Transfer(src, dst, []card.Value{card.NewValue(card.RankA, card.Spade)}, ByIdentity)
		case 2:
			if ranks := card.CompleteRanks(src.Cards()); len(ranks) > 0 {
				_, err := src.ExtractBook(ranks[0])
				require.NoError(t, err)
			}
		}

		require.Equal(t, 52, total(), "step %d", step)
		for _, h := range hands {
			assert.Equal(t, len(h.Displaying()), h.DisplayingCount())
			for _, c := range h.Cards() {
				assert.Equal(t, h.ID(), c.Owner)
			}
		}
	}
}
