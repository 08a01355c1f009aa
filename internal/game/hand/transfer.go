package hand

import (
	"errors"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/palemoky/go-fish/internal/anim"
	"github.com/palemoky/go-fish/internal/apperrors"
	"github.com/palemoky/go-fish/internal/game/card"
)

// Resolution selects how a requested value is matched to a card of the
// source hand.
type Resolution int

const (
	// ByIdentity finds the held card with the same rank and suit. Used when
	// the source hand already knows its card values.
	ByIdentity Resolution = iota
	// ByReversePosition takes cards from the end of the source sequence and
	// stamps the requested value on them, face up. Used for face-down cards
	// whose value is only learned from the authoritative request.
	ByReversePosition
)

func (r Resolution) String() string {
	switch r {
	case ByIdentity:
		return "identity"
	case ByReversePosition:
		return "reverse_position"
	default:
		return "unknown"
	}
}

// ParseResolution maps the wire name of a resolution back to it.
func ParseResolution(s string) (Resolution, error) {
	switch s {
	case "identity", "":
		return ByIdentity, nil
	case "reverse_position":
		return ByReversePosition, nil
	default:
		return ByIdentity, apperrors.Precondition("unknown resolution %q", s)
	}
}

// Transfer moves one card per requested value from src to dst.
//
// Requesting more values than src holds fails before anything moves. A value
// that cannot be matched is logged and skipped; the remaining requests still
// go through and the skipped ones are returned joined into err. Each moved
// card is sent to dst's next slot right away. Only src is laid out again at
// the end: dst's owner decides when to Recompute it.
func Transfer(src, dst *Hand, values []card.Value, res Resolution) (moved int, err error) {
	if src == nil || dst == nil {
		return 0, apperrors.Precondition("transfer needs both hands")
	}
	if src.Equal(dst) {
		return 0, apperrors.Precondition("cannot transfer from %s to itself", src.id)
	}
	if len(values) > src.HeldCount() {
		src.log.WithFields(logrus.Fields{
			"requested": len(values),
			"held":      src.HeldCount(),
		}).Error("Not enough cards to transfer")
		return 0, apperrors.Precondition("%s holds %d cards, %d requested", src.id, src.HeldCount(), len(values))
	}

	snapshot := slices.Clone(src.cards)
	var errs []error
	for i, v := range values {
		c := src.resolve(snapshot, i, v, res)
		if c == nil {
			src.log.WithFields(logrus.Fields{
				"value":      v.String(),
				"resolution": res.String(),
			}).Error("Unable to find card to transfer")
			errs = append(errs, apperrors.Lookup("%s has no card for %s", src.id, v))
			continue
		}

		src.remove(c)
		dst.ReceiveCard(c)
		dst.animator.RequestMove(anim.MoveRequest{Card: c, Target: dst.nextCardSlot()})
		moved++
	}

	src.Recompute()

	src.log.WithFields(logrus.Fields{
		"to":      dst.id,
		"moved":   moved,
		"skipped": len(errs),
	}).Debug("Transfer done")
	return moved, errors.Join(errs...)
}

// resolve picks the card for the i-th requested value. snapshot is the
// source sequence as it was before the transfer started.
func (h *Hand) resolve(snapshot []*card.Card, i int, v card.Value, res Resolution) *card.Card {
	switch res {
	case ByIdentity:
		if !v.Valid() {
			return nil
		}
		if idx := card.FindByValue(h.cards, v); idx >= 0 {
			return h.cards[idx]
		}
		return nil
	case ByReversePosition:
		if !v.Valid() {
			return nil
		}
		c := snapshot[len(snapshot)-1-i]
		c.SetValue(v)
		c.FaceUp = true
		return c
	default:
		return nil
	}
}
