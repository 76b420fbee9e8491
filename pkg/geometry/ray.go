package geometry

import "math"

// Ray is a half line with a normalized direction
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance d along the ray
func (r Ray) At(d float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(d))
}

// Plane is defined by a unit normal and its signed distance from the origin
type Plane struct {
	Normal   Vector3
	Distance float64
}

// GroundPlane returns the horizontal plane at the given height
func GroundPlane(height float64) Plane {
	return Plane{Normal: Up, Distance: height}
}

// IntersectRay returns the distance along the ray where it meets the plane.
// Rays parallel to the plane or pointing away from it do not intersect.
func (p Plane) IntersectRay(ray Ray) (float64, bool) {
	denom := p.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	dist := (p.Distance - p.Normal.Dot(ray.Origin)) / denom
	if dist < 0 {
		return 0, false
	}
	return dist, true
}
