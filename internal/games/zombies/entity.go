// Package zombies implements a top-down arena shooter: the player holds
// the middle of the arena while zombies close in from every edge.
//
// The simulation is headless. MatchState owns every mutable entity and is
// advanced by Tick with an explicit timestamp, so the same inputs and seed
// always replay to the same state. Presentation (effects, rendering) reads
// the events and snapshots a tick produces and never writes back.
package zombies

import "github.com/vovakirdan/zombie-arena/internal/core"

// Body is an axis-aligned box anchored at its top-left corner.
type Body struct {
	Pos  core.Vec2
	Size core.Vec2
}

// NewBody creates a box, clamping non-positive extents to one unit.
func NewBody(pos, size core.Vec2) Body {
	if !(size.X > 0) {
		size.X = 1
	}
	if !(size.Y > 0) {
		size.Y = 1
	}
	return Body{Pos: pos, Size: size}
}

func (b Body) Left() float64   { return b.Pos.X }
func (b Body) Right() float64  { return b.Pos.X + b.Size.X }
func (b Body) Top() float64    { return b.Pos.Y }
func (b Body) Bottom() float64 { return b.Pos.Y + b.Size.Y }

// Center returns the midpoint of the box.
func (b Body) Center() core.Vec2 {
	return b.Pos.Add(b.Size.Scale(0.5))
}

// Intersects reports whether two boxes overlap on both axes.
// Boxes that only share an edge do not intersect.
func (b Body) Intersects(o Body) bool {
	return b.Left() < o.Right() &&
		b.Right() > o.Left() &&
		b.Top() < o.Bottom() &&
		b.Bottom() > o.Top()
}

// Finite reports whether position and size hold real numbers.
func (b Body) Finite() bool {
	return b.Pos.IsFinite() && b.Size.IsFinite()
}

// Arena is the playfield rectangle with its origin at (0, 0).
type Arena struct {
	W, H float64
}

// Contains reports whether p lies inside the arena, edges included.
func (a Arena) Contains(p core.Vec2) bool {
	return p.X >= 0 && p.X <= a.W && p.Y >= 0 && p.Y <= a.H
}

// Center returns the midpoint of the arena.
func (a Arena) Center() core.Vec2 {
	return core.V(a.W/2, a.H/2)
}

// ClampBody moves b so that the whole box lies inside the arena.
func (a Arena) ClampBody(b Body) Body {
	b.Pos.X = core.ClampF(b.Pos.X, 0, max(0, a.W-b.Size.X))
	b.Pos.Y = core.ClampF(b.Pos.Y, 0, max(0, a.H-b.Size.Y))
	return b
}
