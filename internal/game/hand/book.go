package hand

import (
	"github.com/sirupsen/logrus"

	"github.com/palemoky/go-fish/internal/anim"
	"github.com/palemoky/go-fish/internal/apperrors"
	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/game/geometry"
)

// Book is a completed set of same-rank cards moved to the book pile. Top is
// the card the others are stacked on.
type Book struct {
	Rank  card.Rank
	Slot  int
	Pos   geometry.Vec2
	Top   *card.Card
	Cards []*card.Card
}

// ExtractBook moves every held card of rank to the next book slot, face up and
// stacked on the first of them, then lays the remaining hand out again.
func (h *Hand) ExtractBook(rank card.Rank) (*Book, error) {
	if !rank.Valid() {
		h.log.WithField("rank", rank).Error("Cannot extract a book of unknown rank")
		return nil, apperrors.Precondition("invalid book rank %d", rank)
	}

	// collect first, remove after the scan
	var matches []*card.Card
	for _, c := range h.cards {
		if c.Rank == rank {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		h.log.WithField("rank", rank.String()).Error("No cards for book")
		return nil, apperrors.Lookup("no %s cards held by %s", rank, h.id)
	}
	h.remove(matches...)

	book := h.placeBook(rank, matches)
	h.log.WithFields(logrus.Fields{
		"rank":  rank.String(),
		"cards": len(matches),
		"slot":  book.Slot,
	}).Info("Book extracted")

	h.Recompute()
	return book, nil
}

// ValidateBook checks that values form a restorable book of rank: at least
// one card, every value known and of that rank.
func ValidateBook(rank card.Rank, values []card.Value) error {
	if len(values) == 0 {
		return apperrors.Precondition("empty book of %s", rank)
	}
	for _, v := range values {
		if !v.Valid() || v.Rank() != rank {
			return apperrors.Precondition("book of %s holds %s", rank, v)
		}
	}
	return nil
}

// RestoreBook rebuilds a completed book from its card values, e.g. when a
// table is restored from a snapshot.
func (h *Hand) RestoreBook(rank card.Rank, values []card.Value) (*Book, error) {
	if err := ValidateBook(rank, values); err != nil {
		return nil, err
	}

	cards := make([]*card.Card, len(values))
	for i, v := range values {
		c := h.arena.New(v)
		c.Owner = h.id
		cards[i] = c
	}
	return h.placeBook(rank, cards), nil
}

// placeBook sends cards to the next book slot, face up and stacked on the
// first of them, and records the book.
func (h *Hand) placeBook(rank card.Rank, cards []*card.Card) *Book {
	target := h.nextBookSlot()
	top := cards[0]
	for _, c := range cards {
		c.FaceUp = true
		if c == top {
			c.Unstack()
		} else {
			c.Parent = top.ID
			c.Offset = geometry.Vec2{}
		}
		h.animator.RequestMove(anim.MoveRequest{
			Card:     c,
			Target:   target,
			Rotation: h.bookRotation(),
			Rotate:   true,
		})
	}

	book := &Book{
		Rank:  rank,
		Slot:  h.bookCount,
		Pos:   target,
		Top:   top,
		Cards: cards,
	}
	h.books = append(h.books, book)
	h.bookCount++
	return book
}

// bookRotation returns a jitter in [-maxBookRotation, maxBookRotation].
func (h *Hand) bookRotation() float64 {
	return (h.rng.Float64()*2 - 1) * h.maxBookRotation
}
