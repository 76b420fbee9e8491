package rig

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gocam/pkg/geometry"
)

// Rig is the camera's parent pivot. Its position and yaw are authoritative; the
// camera hangs off a tilt pivot that pitches about the rig's right axis, at the
// offset provided by the zoom strategy.
type Rig struct {
	Position geometry.Vector3
	// Yaw is the rotation about world up, in degrees.
	Yaw float64
	// Pitch is the tilt pivot rotation about the rig's right axis, in degrees.
	Pitch float64

	zoom         ZoomStrategy
	lookAtOffset float64
}

// NewRig creates a rig at the origin using zoom for the camera offset
func NewRig(zoom ZoomStrategy, lookAtOffset float64) *Rig {
	return &Rig{zoom: zoom, lookAtOffset: lookAtOffset}
}

// Zoom returns the rig's zoom strategy
func (r *Rig) Zoom() ZoomStrategy {
	return r.zoom
}

func toVec(v geometry.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec(v mgl64.Vec3) geometry.Vector3 {
	return geometry.NewVector3(v[0], v[1], v[2])
}

// Orientation returns the rig rotation (yaw only)
func (r *Rig) Orientation() mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(r.Yaw), mgl64.Vec3{0, 1, 0})
}

// TiltOrientation returns the rotation of the tilt pivot in world space
func (r *Rig) TiltOrientation() mgl64.Quat {
	pitch := mgl64.QuatRotate(mgl64.DegToRad(r.Pitch), mgl64.Vec3{1, 0, 0})
	return r.Orientation().Mul(pitch)
}

// TransformDirection maps a rig-local direction into world space
func (r *Rig) TransformDirection(v geometry.Vector3) geometry.Vector3 {
	return fromVec(r.Orientation().Rotate(toVec(v)))
}

// Forward returns the rig's forward axis in world space
func (r *Rig) Forward() geometry.Vector3 {
	return r.TransformDirection(geometry.Forward)
}

// Right returns the rig's right axis in world space
func (r *Rig) Right() geometry.Vector3 {
	return r.TransformDirection(geometry.Right)
}

// Pivot returns the world position the camera orbits around
func (r *Rig) Pivot() geometry.Vector3 {
	return r.Position
}

// CameraPosition returns the camera's world position
func (r *Rig) CameraPosition() geometry.Vector3 {
	offset := r.TiltOrientation().Rotate(toVec(r.zoom.CameraOffset()))
	return r.Position.Add(fromVec(offset))
}

// LookAt returns the point the camera aims at
func (r *Rig) LookAt() geometry.Vector3 {
	return r.Position.Add(geometry.Up.Mul(r.lookAtOffset))
}
