package rig

import "github.com/philipparndt/gocam/pkg/geometry"

// FrameInputDelta is the input collected during one tick.
//
// Move is expressed in the rig's local axes (X right, Z forward). Orbit holds the
// yaw delta in X and the pitch delta in Y. Shift is a world-space offset that is
// applied without time scaling.
type FrameInputDelta struct {
	Move  geometry.Vector3
	Orbit geometry.Vector2
	Zoom  float64
	Shift geometry.Vector3
	Boost bool
}

// IsNeutral reports whether the frame carries no input
func (f FrameInputDelta) IsNeutral() bool {
	return f.Move.IsZero() && f.Orbit.IsZero() && f.Zoom == 0 && f.Shift.IsZero() && !f.Boost
}

// HasManualMove reports whether the frame moves the rig directly
func (f FrameInputDelta) HasManualMove() bool {
	return !f.Move.IsZero() || !f.Shift.IsZero()
}

// Scaled returns a copy with move, orbit, zoom and shift multiplied by k
func (f FrameInputDelta) Scaled(k float64) FrameInputDelta {
	return FrameInputDelta{
		Move:  f.Move.Mul(k),
		Orbit: f.Orbit.Mul(k),
		Zoom:  f.Zoom * k,
		Shift: f.Shift.Mul(k),
		Boost: f.Boost,
	}
}

// Accumulator sums input from any number of sources. Every operation is a plain
// sum, so the order in which sources publish does not matter.
type Accumulator struct {
	frame FrameInputDelta
}

// AddMove adds a local-space move vector
func (a *Accumulator) AddMove(v geometry.Vector3) {
	a.frame.Move = a.frame.Move.Add(v)
}

// AddOrbit adds yaw and pitch deltas
func (a *Accumulator) AddOrbit(yaw, pitch float64) {
	a.frame.Orbit = a.frame.Orbit.Add(geometry.NewVector2(yaw, pitch))
}

// AddZoom adds a zoom delta. Negative values zoom in.
func (a *Accumulator) AddZoom(s float64) {
	a.frame.Zoom += s
}

// AddShift adds a world-space positional correction
func (a *Accumulator) AddShift(v geometry.Vector3) {
	a.frame.Shift = a.frame.Shift.Add(v)
}

// Boost marks the frame for speed scaling when it is taken
func (a *Accumulator) Boost() {
	a.frame.Boost = true
}

// ScaleAll multiplies the four accumulators by k
func (a *Accumulator) ScaleAll(k float64) {
	a.frame = a.frame.Scaled(k)
}

// Frame returns the current frame without consuming it
func (a *Accumulator) Frame() FrameInputDelta {
	return a.frame
}

// Take returns the current frame and resets the accumulator to neutral
func (a *Accumulator) Take() FrameInputDelta {
	f := a.frame
	a.frame = FrameInputDelta{}
	return f
}
