package geometry

import (
	"math"
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.Empty() {
		t.Fatalf("new bounding box should be empty")
	}

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	expectedMin := NewVector3(-1, 0, 2)
	expectedMax := NewVector3(4, 5, 6)

	if bbox.Min != expectedMin {
		t.Errorf("Min failed: expected %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max != expectedMax {
		t.Errorf("Max failed: expected %v, got %v", expectedMax, bbox.Max)
	}
	if bbox.Empty() {
		t.Errorf("extended bounding box should not be empty")
	}
}

func TestBoundingBoxCenter(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(10, 20, 30))

	center := bbox.Center()
	expected := NewVector3(5, 10, 15)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestBoundingBoxIntersectRay(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(-1, -1, 4))
	bbox.Extend(NewVector3(1, 1, 6))

	tests := []struct {
		name     string
		ray      Ray
		maxDist  float64
		wantHit  bool
		wantDist float64
	}{
		{"hit_front", NewRay(Zero, Forward), 100, true, 4},
		{"too_short", NewRay(Zero, Forward), 3, false, 0},
		{"origin_inside", NewRay(NewVector3(0, 0, 5), Forward), 100, true, 0},
		{"miss_parallel_outside", NewRay(NewVector3(5, 0, 0), Forward), 100, false, 0},
		{"miss_behind", NewRay(Zero, NewVector3(0, 0, -1)), 100, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, hit := bbox.IntersectRay(tt.ray, tt.maxDist)
			if hit != tt.wantHit {
				t.Fatalf("expected hit=%v, got %v", tt.wantHit, hit)
			}
			if hit && math.Abs(dist-tt.wantDist) > 1e-10 {
				t.Errorf("expected distance %v, got %v", tt.wantDist, dist)
			}
		})
	}
}

func TestGroundPlaneIntersectRay(t *testing.T) {
	plane := GroundPlane(0)

	ray := NewRay(NewVector3(0, 10, 0), NewVector3(0, -1, 1))
	dist, ok := plane.IntersectRay(ray)
	if !ok {
		t.Fatalf("expected ray to hit the ground")
	}
	point := ray.At(dist)
	if !point.ApproxEqual(NewVector3(0, 0, 10), 1e-9) {
		t.Errorf("expected ground point (0,0,10), got %v", point)
	}

	if _, ok := plane.IntersectRay(NewRay(NewVector3(0, 10, 0), Up)); ok {
		t.Errorf("ray pointing up should not hit the ground")
	}
	if _, ok := plane.IntersectRay(NewRay(NewVector3(0, 10, 0), Forward)); ok {
		t.Errorf("horizontal ray should not hit the ground")
	}
}
