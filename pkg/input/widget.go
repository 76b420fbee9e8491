package input

import (
	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/rig"
)

// DefaultRetreat is the width in pixels of the widget's edge bands
const DefaultRetreat = 10

// Widget moves the rig while the pointer rests near the edges of an on-screen
// work field.
type Widget struct {
	emitter rig.Emitter
	field   Rect
	retreat float64
}

// NewWidget creates a widget source over field
func NewWidget(e rig.Emitter, field Rect, retreat float64) *Widget {
	return &Widget{emitter: e, field: field, retreat: retreat}
}

// SetField updates the work field, for example after a window resize
func (w *Widget) SetField(field Rect) {
	w.field = field
}

// Field returns the work field
func (w *Widget) Field() Rect {
	return w.field
}

// Poll publishes the move for one frame
func (w *Widget) Poll(pointer geometry.Vector2) {
	if !w.field.Contains(pointer) {
		return
	}
	edgeMove(w.emitter, w.field, pointer, w.retreat, w.retreat)
}
