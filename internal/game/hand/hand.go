// Package hand keeps one player's cards on the table: which cards are held,
// how they stack, where they are laid out, and which books were completed.
//
// A Hand is not safe for concurrent use. Callers on several goroutines must
// serialise every call on the same Hand (see table.Table).
package hand

import (
	"io"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/palemoky/go-fish/internal/anim"
	"github.com/palemoky/go-fish/internal/apperrors"
	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/game/geometry"
)

// Rand is the source of the cosmetic book rotation jitter.
type Rand interface {
	Float64() float64
}

// stdRand delegates to math/rand/v2 (auto-seeded).
type stdRand struct{}

func (stdRand) Float64() float64 { return rand.Float64() }

// Options configures a Hand.
type Options struct {
	Name string
	IsAI bool

	RowCapacity int

	Primary    geometry.Vec2 // first row anchor
	Secondary  geometry.Vec2 // overflow row anchor
	BookAnchor geometry.Vec2

	CardOffset      float64 // horizontal distance between hand slots
	BookOffset      float64 // horizontal distance between book slots
	StackOffset     float64 // vertical lift of a card stacked on a same-rank card
	MaxBookRotation float64 // degrees

	Rand Rand
}

// Hand is a player's set of held cards plus its layout state.
type Hand struct {
	id   string
	name string
	isAI bool

	arena    *card.Arena
	animator anim.Animator
	log      logrus.FieldLogger
	rng      Rand

	// cards is in arrival order; display order is derived from it.
	cards      []*card.Card
	displaying int

	rowCapacity     int
	primary         geometry.Vec2
	secondary       geometry.Vec2
	bookAnchor      geometry.Vec2
	cardOffset      float64
	bookOffset      float64
	stackOffset     float64
	maxBookRotation float64

	bookCount int
	books     []*Book
}

// NewPlayerID returns a fresh random player identity.
func NewPlayerID() string {
	return uuid.NewString()
}

// New creates an empty hand. An empty id gets a random one.
func New(id string, arena *card.Arena, animator anim.Animator, opts Options, log logrus.FieldLogger) (*Hand, error) {
	if opts.RowCapacity < 1 {
		return nil, apperrors.Configuration("row capacity must be at least 1, got %d", opts.RowCapacity)
	}
	if id == "" {
		id = NewPlayerID()
	}
	if arena == nil {
		arena = card.NewArena()
	}
	if animator == nil {
		animator = anim.Nop
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	rng := opts.Rand
	if rng == nil {
		rng = stdRand{}
	}

	return &Hand{
		id:              id,
		name:            opts.Name,
		isAI:            opts.IsAI,
		arena:           arena,
		animator:        animator,
		log:             log.WithField("player", id),
		rng:             rng,
		rowCapacity:     opts.RowCapacity,
		primary:         opts.Primary,
		secondary:       opts.Secondary,
		bookAnchor:      opts.BookAnchor,
		cardOffset:      opts.CardOffset,
		bookOffset:      opts.BookOffset,
		stackOffset:     opts.StackOffset,
		maxBookRotation: opts.MaxBookRotation,
	}, nil
}

func (h *Hand) ID() string       { return h.id }
func (h *Hand) Name() string     { return h.name }
func (h *Hand) IsAI() bool       { return h.isAI }
func (h *Hand) RowCapacity() int { return h.rowCapacity }
func (h *Hand) BookCount() int   { return h.bookCount }

// Equal compares player identity. Two nil hands are equal; a nil and a
// non-nil hand are not.
func (h *Hand) Equal(other *Hand) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.id == other.id
}

// Cards returns the held cards in arrival order.
func (h *Hand) Cards() []*card.Card {
	out := make([]*card.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// HeldCount returns the number of held cards, stacked or not.
func (h *Hand) HeldCount() int {
	return len(h.cards)
}

// Displaying returns the held cards without a stacking parent, in display order.
func (h *Hand) Displaying() []*card.Card {
	out := make([]*card.Card, 0, len(h.cards))
	for _, c := range h.cards {
		if !c.Stacked() {
			out = append(out, c)
		}
	}
	return out
}

// DisplayingCount is the running slot counter. Recompute resets it to the
// number of unstacked cards; ReceiveCard bumps it so an incoming card can be
// sent to the next free slot before the next Recompute.
func (h *Hand) DisplayingCount() int {
	return h.displaying
}

// Books returns the completed books in the order they were made.
func (h *Hand) Books() []*Book {
	out := make([]*Book, len(h.books))
	copy(out, h.books)
	return out
}

// ReceiveCard takes ownership of c. It does not reposition anything; call
// Recompute once a batch of cards has been received.
func (h *Hand) ReceiveCard(c *card.Card) {
	c.Owner = h.id
	c.Unstack()
	h.cards = append(h.cards, c)
	h.displaying++
}

// Clear drops every held card and book. The cards stay in the arena.
func (h *Hand) Clear() {
	clear(h.cards)
	h.cards = h.cards[:0]
	h.displaying = 0
	h.books = nil
	h.bookCount = 0
}

// SetRowCapacity changes how many cards fit on the primary row. It takes
// effect on the next Recompute.
func (h *Hand) SetRowCapacity(n int) error {
	if n < 1 {
		h.log.WithField("capacity", n).Error("Rejected row capacity")
		return apperrors.Configuration("row capacity must be at least 1, got %d", n)
	}
	h.rowCapacity = n
	return nil
}

// RevealAll turns every held card face up.
func (h *Hand) RevealAll() {
	h.setFaceUp(true)
}

// HideAll turns every held card face down.
func (h *Hand) HideAll() {
	h.setFaceUp(false)
}

// setFaceUp sets FaceUp on every held card, stacked members included.
func (h *Hand) setFaceUp(up bool) {
	for _, c := range h.cards {
		c.FaceUp = up
	}
}

// AssignValues writes values onto the displaying cards by position. On a
// count mismatch nothing is changed.
func (h *Hand) AssignValues(values []card.Value) error {
	displaying := h.Displaying()
	if len(values) != len(displaying) {
		h.log.WithFields(logrus.Fields{
			"displaying": len(displaying),
			"values":     len(values),
		}).Error("Displaying cards count does not match card values count")
		return apperrors.Precondition("%d displaying cards, %d values", len(displaying), len(values))
	}

	for i, c := range displaying {
		c.SetValue(values[i])
		c.Order = i
	}
	return nil
}

// Recompute restacks same-rank cards and sends every displaying card to its
// slot, in arrival order.
func (h *Hand) Recompute() {
	h.stack()

	h.displaying = 0
	for _, c := range h.cards {
		if c.Stacked() {
			continue
		}
		h.displaying++
		h.animator.RequestMove(anim.MoveRequest{Card: c, Target: h.nextCardSlot()})
	}
}

// nextCardSlot is the slot for the card counted by the current running count.
func (h *Hand) nextCardSlot() geometry.Vec2 {
	return geometry.NextCardSlot(h.rowCapacity, h.displaying, h.primary, h.secondary, h.cardOffset)
}

// nextBookSlot is where the next completed book goes.
func (h *Hand) nextBookSlot() geometry.Vec2 {
	return geometry.NextBookSlot(h.bookAnchor, h.bookCount, h.bookOffset)
}

// remove drops the given cards from the sequence. Cards stacked on a removed
// card are released and become displaying again.
func (h *Hand) remove(cards ...*card.Card) {
	gone := make(map[card.ID]bool, len(cards))
	for _, c := range cards {
		gone[c.ID] = true
	}

	kept := h.cards[:0]
	for _, c := range h.cards {
		if gone[c.ID] {
			continue
		}
		if gone[c.Parent] {
			c.Unstack()
		}
		kept = append(kept, c)
	}
	// clear the tail so removed cards are not retained by the backing array
	for i := len(kept); i < len(h.cards); i++ {
		h.cards[i] = nil
	}
	h.cards = kept
}
