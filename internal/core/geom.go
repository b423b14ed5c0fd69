// Package core provides fundamental types and utilities shared by the game
// simulation and the terminal platform. It never imports Bubble Tea, which
// keeps game logic pure and testable.
package core

// Rect is an integer cell rectangle on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned rectangle in world units (pixels).
// Unlike Rect it is float-valued and anchored at its center, matching how
// world entities are positioned.
type Box struct {
	CX, CY float64 // Center
	W, H   float64 // Full width and height
}

// NewBox creates a box centered at (cx, cy).
func NewBox(cx, cy, w, h float64) Box {
	return Box{CX: cx, CY: cy, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.CX - b.W/2 }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.CX + b.W/2 }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.CY - b.H/2 }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.CY + b.H/2 }

// Intersects returns true if the interiors of the two boxes overlap.
// Boxes that only share an edge do not intersect.
func (b Box) Intersects(other Box) bool {
	if b.Left() >= other.Right() || other.Left() >= b.Right() {
		return false
	}
	if b.Top() >= other.Bottom() || other.Top() >= b.Bottom() {
		return false
	}
	return true
}

// Translate returns a copy of the box moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	b.CX += dx
	b.CY += dy
	return b
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
