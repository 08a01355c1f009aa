// Package anim defines the animator collaborator of the table core and two
// implementations: a Recorder for tests and tooling, and a Board that tweens
// card positions frame by frame for the terminal renderer.
package anim

import (
	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/game/geometry"
)

// MoveRequest asks for a card to travel to Target. Rotation (degrees) only
// applies when Rotate is set.
type MoveRequest struct {
	Card     *card.Card
	Target   geometry.Vec2
	Rotation float64
	Rotate   bool
}

// Animator accepts fire-and-forget move requests. Implementations must not
// call back into the caller and give no guarantee on when a move settles.
type Animator interface {
	RequestMove(req MoveRequest)
}

// AnimatorFunc adapts a function to Animator.
type AnimatorFunc func(req MoveRequest)

func (f AnimatorFunc) RequestMove(req MoveRequest) { f(req) }

// Nop discards every request.
var Nop Animator = AnimatorFunc(func(MoveRequest) {})

// Recorder keeps every request in arrival order.
type Recorder struct {
	Requests []MoveRequest
}

func (r *Recorder) RequestMove(req MoveRequest) {
	r.Requests = append(r.Requests, req)
}

// Last returns the most recent target requested for the card.
func (r *Recorder) Last(id card.ID) (MoveRequest, bool) {
	for i := len(r.Requests) - 1; i >= 0; i-- {
		if r.Requests[i].Card != nil && r.Requests[i].Card.ID == id {
			return r.Requests[i], true
		}
	}
	return MoveRequest{}, false
}

// Targets returns the targets requested since the given index, in order.
func (r *Recorder) Targets(from int) []geometry.Vec2 {
	if from >= len(r.Requests) {
		return nil
	}
	out := make([]geometry.Vec2, 0, len(r.Requests)-from)
	for _, req := range r.Requests[from:] {
		out = append(out, req.Target)
	}
	return out
}

// Reset forgets recorded requests.
func (r *Recorder) Reset() {
	r.Requests = r.Requests[:0]
}
