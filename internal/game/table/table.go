// Package table puts the two hands of a Go-Fish table, their card arena and
// the layout orchestrator behind a single lock, so that the event feed and
// the render loop can both drive it.
package table

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/palemoky/go-fish/internal/anim"
	"github.com/palemoky/go-fish/internal/apperrors"
	"github.com/palemoky/go-fish/internal/config"
	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/game/hand"
	"github.com/palemoky/go-fish/internal/game/layout"
	"github.com/palemoky/go-fish/internal/protocol"
)

// BookFunc is notified after a book was extracted, outside the table lock.
type BookFunc func(owner string, b *hand.Book)

// ResetFunc is notified when card ids restart (Reset, Restore). It runs under
// the table lock, before any move request for the new cards, and must not call
// back into the table.
type ResetFunc func()

// seatSpec names the player sitting on one side of the table.
type seatSpec struct {
	id   string
	name string
	isAI bool
}

// Table 牌桌：本地与远端两手牌 + 布局编排
type Table struct {
	mu sync.Mutex

	id       string
	cfg      config.LayoutConfig
	animator anim.Animator
	display  layout.Display
	log      logrus.FieldLogger

	arena  *card.Arena
	local  *hand.Hand
	remote *hand.Hand
	orch   *layout.Orchestrator

	onBook  BookFunc
	onReset ResetFunc
}

// New builds an empty table. Nothing is laid out until the first Tick.
func New(cfg config.LayoutConfig, animator anim.Animator, display layout.Display, log logrus.FieldLogger) (*Table, error) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	t := &Table{
		id:       uuid.NewString(),
		cfg:      cfg,
		animator: animator,
		display:  display,
		arena:    card.NewArena(),
	}
	t.log = log.WithField("table", t.id)

	local := seatSpec{id: hand.NewPlayerID(), name: cfg.Local.Name}
	remote := seatSpec{id: hand.NewPlayerID(), name: cfg.Remote.Name, isAI: cfg.RemoteIsAI}
	if err := t.seat(local, remote, animator); err != nil {
		return nil, err
	}
	return t, nil
}

// seat (re)creates both hands and the orchestrator around the current arena.
// The hands send their move requests to animator.
func (t *Table) seat(ls, rs seatSpec, animator anim.Animator) error {
	local, err := hand.New(ls.id, t.arena, animator, t.options(t.cfg.Local, ls, t.cfg.Capacities.Landscape.Local), t.log)
	if err != nil {
		return err
	}
	remote, err := hand.New(rs.id, t.arena, animator, t.options(t.cfg.Remote, rs, t.cfg.Capacities.Landscape.Remote), t.log)
	if err != nil {
		return err
	}
	orch, err := layout.New(t.display, local, remote, t.cfg.Capacities, t.log)
	if err != nil {
		return err
	}
	t.local, t.remote, t.orch = local, remote, orch
	return nil
}

func (t *Table) options(seat config.SeatConfig, spec seatSpec, capacity int) hand.Options {
	name := spec.name
	if name == "" {
		name = seat.Name
	}
	return hand.Options{
		Name:            name,
		IsAI:            spec.isAI,
		RowCapacity:     capacity,
		Primary:         seat.Primary,
		Secondary:       seat.Secondary,
		BookAnchor:      seat.Book,
		CardOffset:      t.cfg.CardOffset,
		BookOffset:      t.cfg.BookOffset,
		StackOffset:     t.cfg.StackOffset,
		MaxBookRotation: t.cfg.MaxBookRotation,
	}
}

// ID returns the table identifier used for snapshots.
func (t *Table) ID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.id
}

// SetID renames the table, e.g. to the id given on the command line when no
// snapshot exists for it yet.
func (t *Table) SetID(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id != "" {
		t.id = id
	}
}

// PlayerIDs returns the ids of the local and the remote hand.
func (t *Table) PlayerIDs() (local, remote string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.local.ID(), t.remote.ID()
}

// OnBook registers the book callback.
func (t *Table) OnBook(fn BookFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onBook = fn
}

// OnReset registers the callback for restarted card ids.
func (t *Table) OnReset(fn ResetFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onReset = fn
}

// hand resolves a seat alias or a player id.
func (t *Table) hand(owner string) (*hand.Hand, error) {
	switch owner {
	case protocol.SeatLocal, t.local.ID():
		return t.local, nil
	case protocol.SeatRemote, t.remote.ID():
		return t.remote, nil
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownPlayer, owner)
}

// Deal gives owner new cards with known values and lays the hand out. Cards
// dealt to the local hand are face up.
func (t *Table) Deal(owner string, values []card.Value) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, err := t.hand(owner)
	if err != nil {
		return err
	}
	for _, v := range values {
		c := t.arena.New(v)
		c.FaceUp = h == t.local && v.Valid()
		h.ReceiveCard(c)
	}
	h.Recompute()
	return nil
}

// DealHidden gives owner n face-down cards of unknown value.
func (t *Table) DealHidden(owner string, n int) error {
	if n < 0 {
		return apperrors.Precondition("cannot deal %d cards", n)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	h, err := t.hand(owner)
	if err != nil {
		return err
	}
	for range n {
		h.ReceiveCard(t.arena.New(card.ValueUnknown))
	}
	h.Recompute()
	return nil
}

// Transfer moves cards between the two hands (see hand.Transfer) and lays the
// receiving hand out again so that same-rank cards stack.
func (t *Table) Transfer(from, to string, values []card.Value, res hand.Resolution) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	src, err := t.hand(from)
	if err != nil {
		return 0, err
	}
	dst, err := t.hand(to)
	if err != nil {
		return 0, err
	}
	moved, err := hand.Transfer(src, dst, values, res)
	if moved > 0 {
		dst.Recompute()
	}
	return moved, err
}

// ExtractBook moves owner's cards of rank to the book pile.
func (t *Table) ExtractBook(owner string, rank card.Rank) (*hand.Book, error) {
	t.mu.Lock()
	h, err := t.hand(owner)
	if err != nil {
		t.mu.Unlock()
		return nil, err
	}
	book, err := h.ExtractBook(rank)
	fn, id := t.onBook, h.ID()
	t.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if fn != nil {
		fn(id, book)
	}
	return book, nil
}

// Assign writes values onto owner's displaying cards.
func (t *Table) Assign(owner string, values []card.Value) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, err := t.hand(owner)
	if err != nil {
		return err
	}
	return h.AssignValues(values)
}

// Reveal turns owner's hand face up.
func (t *Table) Reveal(owner string) error {
	return t.withHand(owner, (*hand.Hand).RevealAll)
}

// Hide turns owner's hand face down.
func (t *Table) Hide(owner string) error {
	return t.withHand(owner, (*hand.Hand).HideAll)
}

func (t *Table) withHand(owner string, fn func(*hand.Hand)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, err := t.hand(owner)
	if err != nil {
		return err
	}
	fn(h)
	return nil
}

// Reset removes every card and book from the table and keeps the seats.
// Card IDs restart, so renderers keyed by ID must drop their state too.
func (t *Table) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.local.Clear()
	t.remote.Clear()
	t.arena.Reset()
	if t.onReset != nil {
		t.onReset()
	}
	t.log.Info("Table reset")
}

// Tick runs one orchestrator poll.
func (t *Table) Tick() (layout.Mode, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.orch.Tick()
}

// Mode returns the applied layout mode.
func (t *Table) Mode() layout.Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.orch.Mode()
}

// TotalCards counts held cards and book cards over both hands.
func (t *Table) TotalCards() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, h := range []*hand.Hand{t.local, t.remote} {
		n += h.HeldCount()
		for _, b := range h.Books() {
			n += len(b.Cards)
		}
	}
	return n
}

// CompleteRanks lists the ranks owner holds all four cards of.
func (t *Table) CompleteRanks(owner string) ([]card.Rank, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, err := t.hand(owner)
	if err != nil {
		return nil, err
	}
	return card.CompleteRanks(h.Cards()), nil
}

// Cards returns copies of every card on the table, held cards of both hands
// first, then book cards. Renderers read positions from these copies without
// holding the table lock.
func (t *Table) Cards() []card.Card {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []card.Card
	for _, h := range []*hand.Hand{t.local, t.remote} {
		for _, c := range h.Cards() {
			out = append(out, *c)
		}
	}
	for _, h := range []*hand.Hand{t.local, t.remote} {
		for _, b := range h.Books() {
			for _, c := range b.Cards {
				out = append(out, *c)
			}
		}
	}
	return out
}
