package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/protocol"
)

func sampleSnapshot() *protocol.TableSnapshot {
	v := func(r card.Rank, s card.Suit) card.Value { return card.NewValue(r, s) }
	return &protocol.TableSnapshot{
		TableID: "t-1",
		Hands: []protocol.HandSnapshot{
			{
				PlayerID: "p-local",
				Name:     "You",
				Cards: []protocol.CardSnapshot{
					{Value: v(card.Rank7, card.Spade), FaceUp: true},
					{Value: v(card.RankK, card.Diamond), FaceUp: true},
				},
				Books: []protocol.BookSnapshot{{
					Rank:  card.Rank3,
					Cards: []card.Value{v(card.Rank3, card.Spade), v(card.Rank3, card.Heart), v(card.Rank3, card.Club), v(card.Rank3, card.Diamond)},
				}},
			},
			{
				PlayerID: "p-remote",
				Name:     "Bot",
				IsAI:     true,
				Cards: []protocol.CardSnapshot{
					{Value: card.ValueUnknown},
					{Value: card.ValueUnknown},
				},
			},
		},
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	t.Parallel()

	original := sampleSnapshot()
	data := MarshalSnapshot(original)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
	assert.Equal(t, 12, decoded.CardCount())
}

func TestSnapshot_Empty(t *testing.T) {
	t.Parallel()

	data := MarshalSnapshot(&protocol.TableSnapshot{})
	assert.Empty(t, data)

	decoded, err := UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Empty(t, decoded.TableID)
	assert.Empty(t, decoded.Hands)
}

func TestSnapshot_SkipsUnknownFields(t *testing.T) {
	t.Parallel()

	data := MarshalSnapshot(sampleSnapshot())
	data = protowire.AppendTag(data, 99, protowire.VarintType)
	data = protowire.AppendVarint(data, 42)
	data = protowire.AppendTag(data, 100, protowire.BytesType)
	data = protowire.AppendString(data, "future")

	decoded, err := UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), decoded)
}

func TestSnapshot_Malformed(t *testing.T) {
	t.Parallel()

	data := MarshalSnapshot(sampleSnapshot())

	tests := []struct {
		name string
		data []byte
	}{
		{"truncated", data[:len(data)-3]},
		{"bad tag", []byte{0xFF}},
		{
			"value out of range",
			protowire.AppendBytes(protowire.AppendTag(nil, 2, protowire.BytesType),
				protowire.AppendBytes(protowire.AppendTag(nil, 4, protowire.BytesType),
					protowire.AppendVarint(protowire.AppendTag(nil, 1, protowire.VarintType), 300))),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := UnmarshalSnapshot(tt.data)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestMarshalSnapshot_DoesNotAliasPool(t *testing.T) {
	t.Parallel()

	a := MarshalSnapshot(sampleSnapshot())
	want := append([]byte(nil), a...)
	_ = MarshalSnapshot(&protocol.TableSnapshot{TableID: "other"})
	assert.Equal(t, want, a)
}
