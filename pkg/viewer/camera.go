package viewer

import (
	"math"

	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/rig"
)

// DefaultFOV is the vertical field of view used for perspective rigs
const DefaultFOV = math.Pi / 4

// Camera is a look-at camera able to map between world and screen space
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // Vertical field of view in radians
	// Orthographic cameras ignore FOV and show Size units above and below the
	// view center.
	Orthographic bool
	Size         float64
}

// FromSnapshot builds the camera a rig snapshot describes
func FromSnapshot(s rig.Snapshot) Camera {
	return Camera{
		Position:     s.Camera,
		Target:       s.LookAt,
		Up:           geometry.Up,
		FOV:          DefaultFOV,
		Orthographic: s.Projection == rig.Orthographic,
		Size:         s.Zoom,
	}
}

// basis returns the camera's forward, screen-right and screen-up axes
func (c Camera) basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// extent returns the half width and half height of the view at unit depth, or in
// world units for orthographic cameras.
func (c Camera) extent(width, height float64) (float64, float64) {
	aspect := width / height
	if c.Orthographic {
		return c.Size * aspect, c.Size
	}
	scale := math.Tan(c.FOV / 2)
	return scale * aspect, scale
}

// Project projects a 3D point to 2D screen coordinates. The third value is the
// depth along the view direction.
func (c Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward, right, up := c.basis()

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	halfW, halfH := c.extent(width, height)
	if !c.Orthographic {
		// Prevent division by zero
		d := math.Max(z, 0.01)
		halfW *= d
		halfH *= d
	}

	screenX := (x/halfW)*(width/2) + width/2
	screenY := (-y/halfH)*(height/2) + height/2
	return screenX, screenY, z
}

// Unproject returns the world ray through a screen point
func (c Camera) Unproject(screenX, screenY, width, height float64) geometry.Ray {
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	forward, right, up := c.basis()
	halfW, halfH := c.extent(width, height)
	offset := right.Mul(ndcX * halfW).Add(up.Mul(ndcY * halfH))

	if c.Orthographic {
		return geometry.NewRay(c.Position.Add(offset), forward)
	}
	return geometry.NewRay(c.Position, forward.Add(offset))
}

// Viewport pairs a camera with a screen size. It implements input.Projector.
type Viewport struct {
	Camera        Camera
	Width, Height float64
}

// ScreenRay returns the world ray through p
func (v Viewport) ScreenRay(p geometry.Vector2) geometry.Ray {
	return v.Camera.Unproject(p.X, p.Y, v.Width, v.Height)
}
