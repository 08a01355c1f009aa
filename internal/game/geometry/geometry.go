// Package geometry computes target table positions for hand and book slots.
package geometry

import "math"

// Vec2 is a table-space coordinate. X grows to the right, Y grows upwards.
type Vec2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Right is the unit vector along which slots advance.
var Right = Vec2{X: 1}

// Up is the unit vector used for stacking offsets.
var Up = Vec2{Y: 1}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Lerp moves from v towards o by t in [0,1].
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return v.Add(o.Sub(v).Scale(t))
}

// Dist returns the euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// NextCardSlot returns where the card counted as displayCount goes. Counts up
// to rowCapacity fill the primary row; larger counts wrap into the secondary
// row. rowCapacity must be at least 1.
func NextCardSlot(rowCapacity, displayCount int, primary, secondary Vec2, offset float64) Vec2 {
	if displayCount > rowCapacity {
		return secondary.Add(Right.Scale(offset * float64(displayCount%rowCapacity)))
	}
	return primary.Add(Right.Scale(offset * float64(displayCount)))
}

// NextBookSlot returns the pile position of the book with the given index.
func NextBookSlot(bookAnchor Vec2, bookIndex int, bookOffset float64) Vec2 {
	return bookAnchor.Add(Right.Scale(bookOffset * float64(bookIndex)))
}
