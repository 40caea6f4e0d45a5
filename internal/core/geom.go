// Package core provides fundamental types and utilities shared by the game
// simulation and the terminal platform. It has no Bubble Tea dependency so
// simulation code stays pure and testable.
package core

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport maps world coordinates onto a grid of screen cells.
// The world origin is placed at cell (OffsetX, OffsetY).
type Viewport struct {
	WorldW, WorldH   float64
	Cols, Rows       int
	OffsetX, OffsetY int
}

// NewViewport fits a world of the given size into cols x rows cells.
func NewViewport(worldW, worldH float64, cols, rows, offsetX, offsetY int) Viewport {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return Viewport{
		WorldW:  worldW,
		WorldH:  worldH,
		Cols:    cols,
		Rows:    rows,
		OffsetX: offsetX,
		OffsetY: offsetY,
	}
}

// ToCell converts a world point into a screen cell.
func (v Viewport) ToCell(p Vec2) (int, int) {
	cx := int(p.X / v.WorldW * float64(v.Cols))
	cy := int(p.Y / v.WorldH * float64(v.Rows))
	return cx + v.OffsetX, cy + v.OffsetY
}

// ToWorld converts a screen cell into the world point at the cell's center.
func (v Viewport) ToWorld(x, y int) Vec2 {
	wx := (float64(x-v.OffsetX) + 0.5) * v.WorldW / float64(v.Cols)
	wy := (float64(y-v.OffsetY) + 0.5) * v.WorldH / float64(v.Rows)
	return Vec2{X: wx, Y: wy}
}

// RectFor converts a world box into a screen rectangle at least one cell large.
func (v Viewport) RectFor(pos, size Vec2) Rect {
	x0, y0 := v.ToCell(pos)
	x1, y1 := v.ToCell(pos.Add(size))
	w := max(x1-x0, 1)
	h := max(y1-y0, 1)
	return NewRect(x0, y0, w, h)
}

// Bounds returns the screen rectangle covered by the world.
func (v Viewport) Bounds() Rect {
	return NewRect(v.OffsetX, v.OffsetY, v.Cols, v.Rows)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
