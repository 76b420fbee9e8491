package rig

import (
	"math"

	"github.com/philipparndt/gocam/pkg/geometry"
)

// Motion holds the speeds and zoom limits the integrator scales input by
type Motion struct {
	InOutSpeed    float64
	LateralSpeed  float64
	RotateSpeed   float64
	ZoomSpeed     float64
	NearZoomLimit float64
	FarZoomLimit  float64
}

// Move translates the rig by a local move vector scaled by speed and dt, then by
// the world-space shift as-is.
func (m Motion) Move(r *Rig, move, shift geometry.Vector3, dt float64) {
	if move.IsZero() && shift.IsZero() {
		return
	}
	local := geometry.NewVector3(move.X*m.LateralSpeed, move.Y, move.Z*m.InOutSpeed)
	r.Position = r.Position.Add(r.TransformDirection(local).Mul(dt))
	r.Position = r.Position.Add(shift)
}

// Orbit turns the rig about world up and tilts the pivot about the rig's right axis
func (m Motion) Orbit(r *Rig, orbit geometry.Vector2, dt float64) {
	if orbit.IsZero() {
		return
	}
	r.Yaw += orbit.X * dt * m.RotateSpeed
	r.Pitch += orbit.Y * dt * m.RotateSpeed
}

// Zoom forwards the accumulated zoom to the strategy; negative zooms in
func (m Motion) Zoom(r *Rig, zoom float64, dt float64) {
	delta := dt * math.Abs(zoom) * m.ZoomSpeed
	switch {
	case zoom < 0:
		r.zoom.ZoomIn(delta, m.NearZoomLimit)
	case zoom > 0:
		r.zoom.ZoomOut(delta, m.FarZoomLimit)
	}
}

// Integrator applies one frame of input to a rig. The three stages touch disjoint
// parts of the rig, so their order is irrelevant.
type Integrator struct {
	Motion Motion
	Flags  Flags
}

// Apply runs the enabled stages. allowMove is false while something else owns the
// rig position (mouse orbit mode, a non-cancellable follow).
func (i Integrator) Apply(r *Rig, frame FrameInputDelta, dt float64, allowMove bool) {
	if i.Flags.Move && allowMove {
		i.Motion.Move(r, frame.Move, frame.Shift, dt)
	}
	if i.Flags.Rotate {
		i.Motion.Orbit(r, frame.Orbit, dt)
	}
	if i.Flags.Zoom {
		i.Motion.Zoom(r, frame.Zoom, dt)
	}
}
