package input

import (
	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/rig"
)

// MouseState is the pointer as seen during one frame
type MouseState struct {
	// Position is the pointer in screen pixels.
	Position geometry.Vector2
	// Screen is the window size in pixels.
	Screen geometry.Vector2
	// Left and Right report whether the buttons are held.
	Left, Right bool
	// Wheel is the scroll amount; positive scrolls up.
	Wheel float64
}

// Projector casts a world-space ray through a screen point
type Projector interface {
	ScreenRay(p geometry.Vector2) geometry.Ray
}

// ProjectorFunc adapts a function to Projector
type ProjectorFunc func(p geometry.Vector2) geometry.Ray

// ScreenRay calls f
func (f ProjectorFunc) ScreenRay(p geometry.Vector2) geometry.Ray { return f(p) }

// MouseOption configures a Mouse
type MouseOption func(*Mouse)

// WithEdgeMargin sets the screen edge band, as a fraction of the screen size,
// that moves the rig.
func WithEdgeMargin(fraction float64) MouseOption {
	return func(m *Mouse) { m.edgeMargin = fraction }
}

// WithScrollStep sets the zoom emitted per scroll notch
func WithScrollStep(step float64) MouseOption {
	return func(m *Mouse) { m.scrollStep = step }
}

// WithGroundHeight sets the height of the plane dragged against
func WithGroundHeight(h float64) MouseOption {
	return func(m *Mouse) { m.ground = geometry.GroundPlane(h) }
}

// Mouse drives the rig from the pointer: screen edges move, right-drag orbits,
// the wheel zooms and left-drag grabs the ground plane.
type Mouse struct {
	emitter    rig.Emitter
	projector  Projector
	ground     geometry.Plane
	edgeMargin float64
	scrollStep float64

	orbiting    bool
	orbitStartX float64

	dragging  bool
	dragStart geometry.Vector3
}

// NewMouse creates a mouse source. Without a projector left-drag is ignored.
func NewMouse(e rig.Emitter, p Projector, opts ...MouseOption) *Mouse {
	m := &Mouse{
		emitter:    e,
		projector:  p,
		ground:     geometry.GroundPlane(0),
		edgeMargin: 0.05,
		scrollStep: 3,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Orbiting reports whether a right-drag is in progress
func (m *Mouse) Orbiting() bool { return m.orbiting }

// Dragging reports whether a left-drag holds the ground
func (m *Mouse) Dragging() bool { return m.dragging }

// Poll publishes the events for one frame. Pointer positions outside the screen
// are ignored entirely.
func (m *Mouse) Poll(s MouseState) {
	screen := Rect{Max: s.Screen}
	if !screen.Contains(s.Position) {
		return
	}

	edgeMove(m.emitter, screen, s.Position, s.Screen.X*m.edgeMargin, s.Screen.Y*m.edgeMargin)
	m.orbit(s)
	m.zoom(s)
	m.drag(s)
}

func (m *Mouse) orbit(s MouseState) {
	switch {
	case s.Right && !m.orbiting:
		m.orbiting = true
		m.orbitStartX = s.Position.X
		m.emitter.EmitMouseOrbitMode(true)
	case s.Right:
		if s.Position.X < m.orbitStartX {
			m.emitter.EmitOrbit(-1, 0)
		} else if s.Position.X > m.orbitStartX {
			m.emitter.EmitOrbit(1, 0)
		}
	case m.orbiting:
		m.orbiting = false
		m.emitter.EmitMouseOrbitMode(false)
	}
}

func (m *Mouse) zoom(s MouseState) {
	if s.Wheel > 0 {
		m.emitter.EmitZoom(-m.scrollStep)
	} else if s.Wheel < 0 {
		m.emitter.EmitZoom(m.scrollStep)
	}
}

func (m *Mouse) groundPoint(p geometry.Vector2) (geometry.Vector3, bool) {
	ray := m.projector.ScreenRay(p)
	dist, ok := m.ground.IntersectRay(ray)
	if !ok {
		return geometry.Vector3{}, false
	}
	return ray.At(dist), true
}

// drag keeps the ground point grabbed at drag start under the pointer. Once the
// rig has moved by the emitted shift the same screen point maps to the start again,
// so the start point is never updated.
func (m *Mouse) drag(s MouseState) {
	if m.projector == nil {
		return
	}
	if !s.Left {
		m.dragging = false
		return
	}

	point, ok := m.groundPoint(s.Position)
	if !ok {
		return
	}
	if !m.dragging {
		m.dragging = true
		m.dragStart = point
		return
	}

	shift := m.dragStart.Sub(point)
	if !shift.IsZero() {
		m.emitter.EmitShift(shift)
	}
}
