package rig

import (
	"math"

	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/scene"
)

// Obstruction reports what the avoider saw during one tick
type Obstruction struct {
	// Inward is set when geometry lies between pivot and camera.
	Inward bool
	// Outward is set when geometry is close in front of the camera.
	Outward bool
	// Close is set when any hit was inside the safety radius.
	Close bool
}

// Any reports whether either ray hit something
func (o Obstruction) Any() bool {
	return o.Inward || o.Outward
}

// Avoider nudges zoom and pitch deltas away from geometry between the camera and
// its pivot. It only rewrites the frame; the integrator applies the result.
type Avoider struct {
	scene scene.Raycaster
	cfg   ObstructionConfig
}

// NewAvoider creates an avoider querying s
func NewAvoider(s scene.Raycaster, cfg ObstructionConfig) *Avoider {
	return &Avoider{scene: s, cfg: cfg}
}

// SetConfig replaces the tuning
func (a *Avoider) SetConfig(cfg ObstructionConfig) {
	a.cfg = cfg
}

// Adjust casts pivot->camera and camera->pivot and rewrites frame accordingly
func (a *Avoider) Adjust(pivot, camera geometry.Vector3, frame *FrameInputDelta) Obstruction {
	var result Obstruction
	if a == nil || a.scene == nil || !a.cfg.Enabled {
		return result
	}

	toCamera := camera.Sub(pivot)
	dist := toCamera.Length()
	if dist == 0 {
		return result
	}

	if hit, ok := a.scene.Raycast(pivot, toCamera, dist+a.cfg.Padding); ok {
		frame.Zoom -= a.cfg.Penalty
		result.Inward = true
		if hit.Point.Distance(camera) < a.cfg.SafetyRadius {
			result.Close = true
		}
	}

	if hit, ok := a.scene.Raycast(camera, toCamera.Mul(-1), dist); ok && hit.Distance < a.cfg.SafetyRadius {
		frame.Zoom += a.cfg.Penalty
		result.Outward = true
		result.Close = true
	}

	if result.Close {
		bias := math.Max(a.cfg.PitchBias, math.Abs(frame.Orbit.X))
		frame.Orbit.Y = math.Max(frame.Orbit.Y, bias)
	}
	return result
}
