package anim

import (
	"sync"
	"time"

	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/game/geometry"
)

const (
	defaultSpeed  = 12.0 // table units per second
	settleEpsilon = 0.01
)

// Sprite is the rendered state of one card.
type Sprite struct {
	Card     *card.Card
	Pos      geometry.Vec2
	Target   geometry.Vec2
	Rotation float64
}

// Moving reports whether the sprite has not reached its target yet.
func (s *Sprite) Moving() bool {
	return s.Pos.Dist(s.Target) > settleEpsilon
}

// Board tweens sprites towards their last requested target at constant speed.
// RequestMove may be called from the table goroutine while Step runs on the
// render loop.
type Board struct {
	mu      sync.Mutex
	sprites map[card.ID]*Sprite
	order   []card.ID
	speed   float64
	origin  geometry.Vec2
}

// NewBoard creates a board. New cards appear at origin (the deck position).
func NewBoard(origin geometry.Vec2, speed float64) *Board {
	if speed <= 0 {
		speed = defaultSpeed
	}
	return &Board{
		sprites: make(map[card.ID]*Sprite),
		speed:   speed,
		origin:  origin,
	}
}

func (b *Board) RequestMove(req MoveRequest) {
	if req.Card == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sprites[req.Card.ID]
	if !ok {
		s = &Sprite{Card: req.Card, Pos: b.origin}
		b.sprites[req.Card.ID] = s
		b.order = append(b.order, req.Card.ID)
	}
	s.Target = req.Target
	if req.Rotate {
		s.Rotation = req.Rotation
	}
}

// Step advances every sprite by dt and reports whether anything is still moving.
func (b *Board) Step(dt time.Duration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	maxDist := b.speed * dt.Seconds()
	moving := false
	for _, s := range b.sprites {
		d := s.Pos.Dist(s.Target)
		if d <= maxDist || d <= settleEpsilon {
			s.Pos = s.Target
			continue
		}
		s.Pos = s.Pos.Lerp(s.Target, maxDist/d)
		moving = true
	}
	return moving
}

// Position returns the current position of a card's sprite.
func (b *Board) Position(id card.ID) (geometry.Vec2, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sprites[id]
	if !ok {
		return geometry.Vec2{}, false
	}
	return s.Pos, true
}

// Sprites returns copies of all sprites in first-seen order.
func (b *Board) Sprites() []Sprite {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Sprite, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.sprites[id])
	}
	return out
}

// Clear removes every sprite.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sprites = make(map[card.ID]*Sprite)
	b.order = nil
}
