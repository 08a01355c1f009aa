package table

import (
	"fmt"

	"github.com/palemoky/go-fish/internal/anim"
	"github.com/palemoky/go-fish/internal/apperrors"
	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/game/hand"
	"github.com/palemoky/go-fish/internal/protocol"
)

// Snapshot captures both hands, local first.
func (t *Table) Snapshot() protocol.TableSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return protocol.TableSnapshot{
		TableID: t.id,
		Hands:   []protocol.HandSnapshot{snapshotHand(t.local), snapshotHand(t.remote)},
	}
}

func snapshotHand(h *hand.Hand) protocol.HandSnapshot {
	hs := protocol.HandSnapshot{
		PlayerID: h.ID(),
		Name:     h.Name(),
		IsAI:     h.IsAI(),
	}
	for _, c := range h.Cards() {
		hs.Cards = append(hs.Cards, protocol.CardSnapshot{Value: c.Value(), FaceUp: c.FaceUp})
	}
	for _, b := range h.Books() {
		hs.Books = append(hs.Books, protocol.BookSnapshot{Rank: b.Rank, Cards: card.Values(b.Cards)})
	}
	return hs
}

// Restore replaces the whole table with snap. Player ids, names, held cards
// and books are rebuilt in order and both hands are laid out again for the
// current display. Restore is all or nothing: a rejected snapshot leaves the
// table and the animator untouched.
func (t *Table) Restore(snap protocol.TableSnapshot) error {
	if err := validateSnapshot(snap); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	prevArena := t.arena
	prevLocal, prevRemote, prevOrch := t.local, t.remote, t.orch
	rollback := func() {
		t.arena, t.local, t.remote, t.orch = prevArena, prevLocal, prevRemote, prevOrch
	}

	gate := &moveGate{next: t.animator}
	t.arena = card.NewArena()
	if err := t.seat(seatOf(snap.Hands[0]), seatOf(snap.Hands[1]), gate); err != nil {
		rollback()
		return err
	}
	for i, h := range []*hand.Hand{t.local, t.remote} {
		if err := t.fill(h, snap.Hands[i]); err != nil {
			rollback()
			return err
		}
	}
	if snap.TableID != "" {
		t.id = snap.TableID
	}

	t.orch.Tick()
	if t.onReset != nil {
		t.onReset()
	}
	gate.release()
	t.log.WithField("cards", snap.CardCount()).Info("Table restored")
	return nil
}

func validateSnapshot(snap protocol.TableSnapshot) error {
	if len(snap.Hands) != 2 {
		return apperrors.Precondition("snapshot holds %d hands, want 2", len(snap.Hands))
	}
	for _, hs := range snap.Hands {
		if hs.PlayerID == "" {
			return apperrors.Precondition("snapshot hand without player id")
		}
		for _, b := range hs.Books {
			if err := hand.ValidateBook(b.Rank, b.Cards); err != nil {
				return fmt.Errorf("player %s: %w", hs.PlayerID, err)
			}
		}
	}
	if snap.Hands[0].PlayerID == snap.Hands[1].PlayerID {
		return apperrors.Precondition("snapshot seats %s twice", snap.Hands[0].PlayerID)
	}
	return nil
}

func seatOf(hs protocol.HandSnapshot) seatSpec {
	return seatSpec{id: hs.PlayerID, name: hs.Name, isAI: hs.IsAI}
}

func (t *Table) fill(h *hand.Hand, hs protocol.HandSnapshot) error {
	for _, b := range hs.Books {
		if _, err := h.RestoreBook(b.Rank, b.Cards); err != nil {
			return err
		}
	}
	for _, cs := range hs.Cards {
		c := t.arena.New(cs.Value)
		c.FaceUp = cs.FaceUp
		h.ReceiveCard(c)
	}
	return nil
}

// moveGate holds move requests back until release; afterwards it passes them
// straight through.
type moveGate struct {
	next anim.Animator
	held []anim.MoveRequest
	open bool
}

func (g *moveGate) RequestMove(req anim.MoveRequest) {
	if g.open {
		g.next.RequestMove(req)
		return
	}
	g.held = append(g.held, req)
}

func (g *moveGate) release() {
	g.open = true
	for _, req := range g.held {
		g.next.RequestMove(req)
	}
	g.held = nil
}
