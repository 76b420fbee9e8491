package rig

import "github.com/philipparndt/gocam/pkg/geometry"

// Bounds limits the rig's ground position and pitch. Min and Max hold X in X and
// world Z in Y.
type Bounds struct {
	Min, Max           geometry.Vector2
	MinAngle, MaxAngle float64
}

// ClampPosition keeps X and Z inside the rectangle; height is untouched
func (b Bounds) ClampPosition(p geometry.Vector3) geometry.Vector3 {
	return geometry.NewVector3(
		geometry.Clamp(p.X, b.Min.X, b.Max.X),
		p.Y,
		geometry.Clamp(p.Z, b.Min.Y, b.Max.Y),
	)
}

// ClampPitch keeps the pitch inside [MinAngle, MaxAngle]
func (b Bounds) ClampPitch(pitch float64) float64 {
	return geometry.Clamp(pitch, b.MinAngle, b.MaxAngle)
}

// Apply clamps the rig in place
func (b Bounds) Apply(r *Rig) {
	r.Position = b.ClampPosition(r.Position)
	r.Pitch = b.ClampPitch(r.Pitch)
}
