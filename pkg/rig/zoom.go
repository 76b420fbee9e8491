package rig

import (
	"fmt"
	"math"

	"github.com/philipparndt/gocam/pkg/geometry"
)

// ProjectionMode selects the zoom model of the rig camera
type ProjectionMode string

const (
	Orthographic ProjectionMode = "orthographic"
	Perspective  ProjectionMode = "perspective"
)

// ZoomStrategy maps zoom deltas onto the camera. The two implementations in this
// package are the only ones; the interface is sealed.
type ZoomStrategy interface {
	// ZoomIn moves the zoom value towards nearLimit by delta.
	ZoomIn(delta, nearLimit float64)

	// ZoomOut moves the zoom value towards farLimit by delta.
	ZoomOut(delta, farLimit float64)

	// Value returns the orthographic size or the perspective distance.
	Value() float64

	// CameraOffset returns the camera position relative to the tilt pivot.
	CameraOffset() geometry.Vector3

	// Mode returns the projection mode this strategy implements.
	Mode() ProjectionMode

	// clamp brings the zoom value back into new limits
	clamp(nearLimit, farLimit float64)

	sealed()
}

// baseOffset places the camera behind and above the pivot, matching the rig's
// (back, up) offset configuration.
func baseOffset(back, up float64) geometry.Vector3 {
	return geometry.NewVector3(0, math.Abs(up), -math.Abs(back))
}

// OrthographicZoom changes the orthographic half-height while the camera stays at
// its fixed offset.
type OrthographicZoom struct {
	size     float64
	offset   geometry.Vector3
	clampFar bool
}

// NewOrthographicZoom creates an orthographic strategy starting at startingZoom.
// When clampFar is false ZoomOut keeps the historical max() comparison against the
// far limit; see ZoomOut.
func NewOrthographicZoom(back, up, startingZoom float64, clampFar bool) *OrthographicZoom {
	return &OrthographicZoom{
		size:     startingZoom,
		offset:   baseOffset(back, up),
		clampFar: clampFar,
	}
}

func (z *OrthographicZoom) ZoomIn(delta, nearLimit float64) {
	if z.size == nearLimit {
		return
	}
	z.size = math.Max(z.size-delta, nearLimit)
}

// ZoomOut grows the orthographic size. Without clampFar the result is
// max(size+delta, farLimit), which snaps to the far limit from below and does not
// bound the size from above.
func (z *OrthographicZoom) ZoomOut(delta, farLimit float64) {
	if z.size == farLimit {
		return
	}
	if z.clampFar {
		z.size = math.Min(z.size+delta, farLimit)
		return
	}
	z.size = math.Max(z.size+delta, farLimit)
}

func (z *OrthographicZoom) Value() float64 { return z.size }

// clamp always raises the size to nearLimit but only lowers it to farLimit with
// clampFar, mirroring ZoomOut.
func (z *OrthographicZoom) clamp(nearLimit, farLimit float64) {
	if z.clampFar {
		z.size = math.Min(z.size, farLimit)
	}
	z.size = math.Max(z.size, nearLimit)
}

func (z *OrthographicZoom) CameraOffset() geometry.Vector3 { return z.offset }

func (z *OrthographicZoom) Mode() ProjectionMode { return Orthographic }

func (z *OrthographicZoom) sealed() {}

// PerspectiveZoom dollies the camera along a fixed unit direction from the pivot.
type PerspectiveZoom struct {
	unit     geometry.Vector3
	distance float64
	position geometry.Vector3
}

// NewPerspectiveZoom creates a perspective strategy. The dolly direction is the
// normalized camera offset and does not change afterwards.
func NewPerspectiveZoom(back, up, startingZoom float64) *PerspectiveZoom {
	z := &PerspectiveZoom{
		unit:     baseOffset(back, up).Normalize(),
		distance: startingZoom,
	}
	z.place()
	return z
}

func (z *PerspectiveZoom) place() {
	z.position = z.unit.Mul(z.distance)
}

func (z *PerspectiveZoom) ZoomIn(delta, nearLimit float64) {
	if z.distance <= nearLimit {
		return
	}
	z.distance = math.Max(z.distance-delta, nearLimit)
	z.place()
}

func (z *PerspectiveZoom) ZoomOut(delta, farLimit float64) {
	if z.distance >= farLimit {
		return
	}
	z.distance = math.Min(z.distance+delta, farLimit)
	z.place()
}

func (z *PerspectiveZoom) Value() float64 { return z.distance }

func (z *PerspectiveZoom) clamp(nearLimit, farLimit float64) {
	z.distance = math.Min(math.Max(z.distance, nearLimit), farLimit)
	z.place()
}

func (z *PerspectiveZoom) CameraOffset() geometry.Vector3 { return z.position }

// Direction returns the unit dolly direction
func (z *PerspectiveZoom) Direction() geometry.Vector3 { return z.unit }

func (z *PerspectiveZoom) Mode() ProjectionMode { return Perspective }

func (z *PerspectiveZoom) sealed() {}

// NewZoomStrategy selects the strategy for the configured projection mode
func NewZoomStrategy(cfg Config) (ZoomStrategy, error) {
	switch cfg.Projection {
	case Orthographic:
		return NewOrthographicZoom(cfg.Camera.OffsetBack, cfg.Camera.OffsetUp, cfg.Zoom.Starting, cfg.Zoom.ClampOrthographicFar), nil
	case Perspective, "":
		return NewPerspectiveZoom(cfg.Camera.OffsetBack, cfg.Camera.OffsetUp, cfg.Zoom.Starting), nil
	default:
		return nil, fmt.Errorf("unknown projection mode %q", cfg.Projection)
	}
}
