package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	// Create a right triangle with sides 3, 4, 5
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0 // (3 * 4) / 2 = 6

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestTriangleIntersectRay(t *testing.T) {
	// Wall in the plane z = 5 spanning x,y in [-1, 1]
	tri := NewTriangle(
		NewVector3(0, 0, -1),
		NewVector3(-1, -1, 5),
		NewVector3(3, -1, 5),
		NewVector3(-1, 3, 5),
	)

	tests := []struct {
		name     string
		ray      Ray
		wantHit  bool
		wantDist float64
	}{
		{"straight_hit", NewRay(NewVector3(0, 0, 0), Forward), true, 5},
		{"back_face_hit", NewRay(NewVector3(0, 0, 10), NewVector3(0, 0, -1)), true, 5},
		{"pointing_away", NewRay(NewVector3(0, 0, 0), NewVector3(0, 0, -1)), false, 0},
		{"outside_triangle", NewRay(NewVector3(5, 5, 0), Forward), false, 0},
		{"parallel", NewRay(NewVector3(0, 0, 0), Right), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, hit := tri.IntersectRay(tt.ray)
			if hit != tt.wantHit {
				t.Fatalf("expected hit=%v, got %v", tt.wantHit, hit)
			}
			if hit && math.Abs(dist-tt.wantDist) > 1e-10 {
				t.Errorf("expected distance %v, got %v", tt.wantDist, dist)
			}
		})
	}
}
