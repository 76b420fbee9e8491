package viewer

import (
	"math"
	"testing"

	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/rig"
)

func testCamera(ortho bool) Camera {
	return Camera{
		Position:     geometry.NewVector3(0, 10, -10),
		Target:       geometry.Zero,
		Up:           geometry.Up,
		FOV:          DefaultFOV,
		Orthographic: ortho,
		Size:         5,
	}
}

func TestProjectTargetIsCentered(t *testing.T) {
	for _, ortho := range []bool{false, true} {
		x, y, z := testCamera(ortho).Project(geometry.Zero, 800, 600)
		if math.Abs(x-400) > 1e-9 || math.Abs(y-300) > 1e-9 {
			t.Errorf("ortho=%v: target projected to (%v, %v)", ortho, x, y)
		}
		if math.Abs(z-math.Sqrt(200)) > 1e-9 {
			t.Errorf("ortho=%v: unexpected depth %v", ortho, z)
		}
	}
}

func TestProjectRightIsScreenRight(t *testing.T) {
	cam := Camera{Position: geometry.NewVector3(0, 0, -10), Target: geometry.Zero, Up: geometry.Up, FOV: DefaultFOV}
	x, _, _ := cam.Project(geometry.Right, 800, 600)
	if x <= 400 {
		t.Errorf("world right should land right of center, got x=%v", x)
	}
}

func TestUnprojectRoundTrip(t *testing.T) {
	points := []geometry.Vector3{
		geometry.NewVector3(1, 0, 2),
		geometry.NewVector3(-3, 1, 0.5),
		geometry.NewVector3(2, -1, -2),
	}

	for _, ortho := range []bool{false, true} {
		cam := testCamera(ortho)
		for _, p := range points {
			sx, sy, depth := cam.Project(p, 800, 600)
			ray := cam.Unproject(sx, sy, 800, 600)

			// Closest point on the ray to p
			along := p.Sub(ray.Origin).Dot(ray.Direction)
			if dist := ray.At(along).Distance(p); dist > 1e-9 {
				t.Errorf("ortho=%v: ray through projection of %v misses it by %v", ortho, p, dist)
			}
			if ortho && math.Abs(along-depth) > 1e-9 {
				t.Errorf("ortho ray should start on the camera plane: %v vs %v", along, depth)
			}
		}
	}
}

func TestFromSnapshot(t *testing.T) {
	s := rig.Snapshot{
		Camera:     geometry.NewVector3(0, 5, -5),
		LookAt:     geometry.NewVector3(0, 2, 0),
		Projection: rig.Orthographic,
		Zoom:       7,
	}
	cam := FromSnapshot(s)
	if !cam.Orthographic || cam.Size != 7 || cam.Position != s.Camera || cam.Target != s.LookAt {
		t.Errorf("unexpected camera %+v", cam)
	}
}

func TestViewportGroundRay(t *testing.T) {
	v := Viewport{Camera: testCamera(false), Width: 800, Height: 600}
	ray := v.ScreenRay(geometry.NewVector2(400, 300))
	dist, ok := geometry.GroundPlane(0).IntersectRay(ray)
	if !ok {
		t.Fatal("center ray should hit the ground")
	}
	if !ray.At(dist).ApproxEqual(geometry.Zero, 1e-9) {
		t.Errorf("center ray should hit the look-at point, got %v", ray.At(dist))
	}
}
