// Package scene provides the raycast query contract the camera rig consumes and
// mesh-backed implementations of it.
package scene

import (
	"errors"
	"math"

	"github.com/philipparndt/gocam/pkg/geometry"
)

// ErrEmptyScene is returned when a scene source contains no triangles
var ErrEmptyScene = errors.New("scene: no geometry")

// Hit describes the closest intersection found by a raycast
type Hit struct {
	Point    geometry.Vector3
	Distance float64
}

// Raycaster answers ray queries against scene geometry. Direction does not need to
// be normalized. A miss is a normal outcome and is reported with ok == false.
type Raycaster interface {
	Raycast(origin, direction geometry.Vector3, maxDistance float64) (hit Hit, ok bool)
}

// Func adapts a plain function to the Raycaster interface
type Func func(origin, direction geometry.Vector3, maxDistance float64) (Hit, bool)

// Raycast calls f
func (f Func) Raycast(origin, direction geometry.Vector3, maxDistance float64) (Hit, bool) {
	return f(origin, direction, maxDistance)
}

// Group queries several raycasters and reports the nearest hit
type Group []Raycaster

// Raycast returns the closest hit of all members
func (g Group) Raycast(origin, direction geometry.Vector3, maxDistance float64) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, r := range g {
		if r == nil {
			continue
		}
		if hit, ok := r.Raycast(origin, direction, maxDistance); ok && hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

// Ground is an infinite horizontal plane at Height
type Ground struct {
	Height float64
}

// Raycast intersects the ray with the plane
func (g Ground) Raycast(origin, direction geometry.Vector3, maxDistance float64) (Hit, bool) {
	ray := geometry.NewRay(origin, direction)
	dist, ok := geometry.GroundPlane(g.Height).IntersectRay(ray)
	if !ok || dist > maxDistance {
		return Hit{}, false
	}
	return Hit{Point: ray.At(dist), Distance: dist}, true
}
