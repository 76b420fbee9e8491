// Package input turns device snapshots into rig events. Sources never poll devices
// themselves; the frontend reads its devices once per frame and hands the snapshot
// to Poll. Screen coordinates have their origin at the top-left corner with Y
// pointing down.
package input

import (
	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/rig"
)

var (
	forward  = geometry.Forward
	backward = geometry.Forward.Mul(-1)
	right    = geometry.Right
	left     = geometry.Right.Mul(-1)
)

// Rect is a screen-space rectangle in pixels
type Rect struct {
	Min, Max geometry.Vector2
}

// NewRect creates a rectangle from its top-left corner and size
func NewRect(x, y, width, height float64) Rect {
	return Rect{
		Min: geometry.NewVector2(x, y),
		Max: geometry.NewVector2(x+width, y+height),
	}
}

// Contains reports whether p lies inside r, edges included
func (r Rect) Contains(p geometry.Vector2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Width returns the horizontal extent
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// edgeMove emits a move for every edge band of r the pointer is in. Top means
// forward since screen Y points down.
func edgeMove(e rig.Emitter, r Rect, p geometry.Vector2, marginX, marginY float64) {
	if p.Y < r.Min.Y+marginY {
		e.EmitMove(forward)
	} else if p.Y > r.Max.Y-marginY {
		e.EmitMove(backward)
	}
	if p.X > r.Max.X-marginX {
		e.EmitMove(right)
	} else if p.X < r.Min.X+marginX {
		e.EmitMove(left)
	}
}
