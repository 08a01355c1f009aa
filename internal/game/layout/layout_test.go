package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/go-fish/internal/anim"
	"github.com/palemoky/go-fish/internal/apperrors"
	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/game/hand"
	"github.com/palemoky/go-fish/internal/testutil"
)

var testCaps = Capacities{
	Landscape: Capacity{Local: 10, Remote: 8},
	Portrait:  Capacity{Local: 5, Remote: 4},
}

// newHands returns two hands holding one card each, so every Recompute
// produces exactly one move request per hand.
func newHands(t *testing.T) (local, remote *hand.Hand, rec *anim.Recorder) {
	t.Helper()
	arena := card.NewArena()
	rec = &anim.Recorder{}
	var err error
	local, err = hand.New("local", arena, rec, hand.Options{RowCapacity: 1, CardOffset: 1}, nil)
	require.NoError(t, err)
	remote, err = hand.New("remote", arena, rec, hand.Options{RowCapacity: 1, CardOffset: 1}, nil)
	require.NoError(t, err)

	local.ReceiveCard(arena.New(card.NewValue(card.Rank2, card.Spade)))
	remote.ReceiveCard(arena.New(card.ValueUnknown))
	return local, remote, rec
}

func recomputes(rec *anim.Recorder, h *hand.Hand) int {
	n := 0
	for _, req := range rec.Requests {
		if req.Card.Owner == h.ID() {
			n++
		}
	}
	return n
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		width, height int
		expected      Mode
	}{
		{"wide", 1920, 1080, ModeLandscape},
		{"tall", 1080, 1920, ModePortrait},
		{"square", 800, 800, ModePortrait},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Measure(tt.width, tt.height))
		})
	}
}

func TestNew_ValidatesCapacities(t *testing.T) {
	t.Parallel()

	local, remote, _ := newHands(t)
	display := &testutil.FixedDisplay{Width: 10, Height: 5}

	bad := testCaps
	bad.Portrait.Remote = 0
	o, err := New(display, local, remote, bad, nil)
	assert.Nil(t, o)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	assert.Contains(t, err.Error(), "portrait.remote")

	_, err = New(nil, local, remote, testCaps, nil)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestTick_FirstTickAlwaysApplies(t *testing.T) {
	t.Parallel()

	local, remote, rec := newHands(t)
	o, err := New(&testutil.FixedDisplay{Width: 400, Height: 900}, local, remote, testCaps, nil)
	require.NoError(t, err)
	assert.Equal(t, ModeUnknown, o.Mode())

	mode, changed := o.Tick()
	assert.True(t, changed)
	assert.Equal(t, ModePortrait, mode)
	assert.Equal(t, 5, local.RowCapacity())
	assert.Equal(t, 4, remote.RowCapacity())
	assert.Equal(t, 1, recomputes(rec, local))
	assert.Equal(t, 1, recomputes(rec, remote))
}

func TestTick_OneTransitionPerCrossing(t *testing.T) {
	t.Parallel()

	local, remote, rec := newHands(t)
	display := &testutil.FixedDisplay{Width: 400, Height: 900}
	o, err := New(display, local, remote, testCaps, nil)
	require.NoError(t, err)
	o.Tick()

	// stable portrait: nothing happens
	for range 5 {
		_, changed := o.Tick()
		assert.False(t, changed)
	}
	assert.Equal(t, 1, recomputes(rec, local))

	display.Width, display.Height = 900, 400
	mode, changed := o.Tick()
	assert.True(t, changed)
	assert.Equal(t, ModeLandscape, mode)
	assert.Equal(t, 10, local.RowCapacity())
	assert.Equal(t, 8, remote.RowCapacity())

	for range 5 {
		_, changed = o.Tick()
		assert.False(t, changed)
	}
	assert.Equal(t, 2, recomputes(rec, local))
	assert.Equal(t, 2, recomputes(rec, remote))

	display.Width, display.Height = 500, 500
	mode, changed = o.Tick()
	assert.True(t, changed)
	assert.Equal(t, ModePortrait, mode)
	assert.Equal(t, 3, recomputes(rec, local))
}

func TestTick_PollsDisplayOncePerTick(t *testing.T) {
	t.Parallel()

	local, remote, _ := newHands(t)
	display := &testutil.MockDisplay{}
	display.On("Size").Return(1280, 720).Times(3)

	o, err := New(display, local, remote, testCaps, nil)
	require.NoError(t, err)
	for range 3 {
		o.Tick()
	}

	display.AssertExpectations(t)
	display.AssertNumberOfCalls(t, "Size", 3)
	assert.Equal(t, ModeLandscape, o.Mode())
}

func TestMode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "landscape", ModeLandscape.String())
	assert.Equal(t, "portrait", ModePortrait.String())
	assert.Equal(t, "unknown", ModeUnknown.String())
}
