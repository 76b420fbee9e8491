package rig

import (
	"math"
	"testing"

	"github.com/philipparndt/gocam/pkg/geometry"
)

func TestRigAxes(t *testing.T) {
	tests := []struct {
		yaw     float64
		forward geometry.Vector3
		right   geometry.Vector3
	}{
		{0, geometry.NewVector3(0, 0, 1), geometry.NewVector3(-1, 0, 0)},
		{90, geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 0, 1)},
		{180, geometry.NewVector3(0, 0, -1), geometry.NewVector3(1, 0, 0)},
	}

	for _, tt := range tests {
		r := NewRig(NewPerspectiveZoom(10, 14, 5), 2)
		r.Yaw = tt.yaw
		if !r.Forward().ApproxEqual(tt.forward, 1e-10) {
			t.Errorf("yaw %v: expected forward %v, got %v", tt.yaw, tt.forward, r.Forward())
		}
		if !r.Right().ApproxEqual(tt.right, 1e-10) {
			t.Errorf("yaw %v: expected right %v, got %v", tt.yaw, tt.right, r.Right())
		}
	}
}

func TestRigCameraPosition(t *testing.T) {
	r := NewRig(NewPerspectiveZoom(10, 14, 5), 2)
	r.Position = geometry.NewVector3(3, 0, -2)

	cam := r.CameraPosition()
	if math.Abs(cam.Distance(r.Pivot())-5) > 1e-10 {
		t.Errorf("camera should be 5 units from the pivot, got %v", cam.Distance(r.Pivot()))
	}
	if cam.Sub(r.Pivot()).Dot(r.Forward()) >= 0 {
		t.Errorf("camera should sit behind the rig: %v", cam)
	}

	level := cam.Y
	r.Pitch = 20
	if r.CameraPosition().Y <= level {
		t.Errorf("positive pitch should raise the camera: %v <= %v", r.CameraPosition().Y, level)
	}

	r.Pitch = 0
	r.Yaw = 90
	cam = r.CameraPosition()
	if cam.Sub(r.Pivot()).Dot(r.Forward()) >= 0 {
		t.Errorf("camera should follow the yaw: %v", cam)
	}
	if math.Abs(cam.Y-level) > 1e-10 {
		t.Errorf("yaw changed camera height: %v vs %v", cam.Y, level)
	}
}

func TestRigLookAt(t *testing.T) {
	r := NewRig(NewOrthographicZoom(10, 14, 5, false), 2)
	r.Position = geometry.NewVector3(1, 1, 1)
	if r.LookAt() != geometry.NewVector3(1, 3, 1) {
		t.Errorf("unexpected look-at point: %v", r.LookAt())
	}
}

func TestBoundsApply(t *testing.T) {
	b := DefaultConfig().bounds()
	tests := []struct {
		name          string
		position      geometry.Vector3
		pitch         float64
		expectedPos   geometry.Vector3
		expectedPitch float64
	}{
		{"inside", geometry.NewVector3(1, 2, 3), 10, geometry.NewVector3(1, 2, 3), 10},
		{"beyond max", geometry.NewVector3(70, 5, 51), 45, geometry.NewVector3(50, 5, 50), 30},
		{"beyond min", geometry.NewVector3(-70, -5, -51), -45, geometry.NewVector3(-50, -5, -50), -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRig(NewPerspectiveZoom(10, 14, 5), 2)
			r.Position = tt.position
			r.Pitch = tt.pitch

			b.Apply(r)
			if r.Position != tt.expectedPos || r.Pitch != tt.expectedPitch {
				t.Errorf("expected %v/%v, got %v/%v", tt.expectedPos, tt.expectedPitch, r.Position, r.Pitch)
			}

			b.Apply(r)
			if r.Position != tt.expectedPos || r.Pitch != tt.expectedPitch {
				t.Errorf("clamp is not idempotent: %v/%v", r.Position, r.Pitch)
			}
		})
	}
}

func TestIntegratorFlags(t *testing.T) {
	frame := FrameInputDelta{
		Move:  geometry.NewVector3(0, 0, 1),
		Orbit: geometry.NewVector2(1, 0),
		Zoom:  1,
	}
	motion := DefaultConfig().motion()

	r := NewRig(NewPerspectiveZoom(10, 14, 5), 2)
	Integrator{Motion: motion, Flags: Flags{Rotate: true, Zoom: true}}.Apply(r, frame, 1, true)
	if r.Position != geometry.Zero {
		t.Errorf("move disabled but rig moved to %v", r.Position)
	}
	if r.Yaw != 5 {
		t.Errorf("expected yaw 5, got %v", r.Yaw)
	}
	if r.Zoom().Value() != 9 {
		t.Errorf("expected zoom 9, got %v", r.Zoom().Value())
	}

	r = NewRig(NewPerspectiveZoom(10, 14, 5), 2)
	Integrator{Motion: motion, Flags: AllEnabled}.Apply(r, frame, 1, false)
	if r.Position != geometry.Zero {
		t.Errorf("move not allowed but rig moved to %v", r.Position)
	}

	r = NewRig(NewPerspectiveZoom(10, 14, 5), 2)
	Integrator{Motion: motion, Flags: Flags{Move: true}}.Apply(r, frame, 0.5, true)
	if !r.Position.ApproxEqual(geometry.NewVector3(0, 0, 2.5), 1e-10) {
		t.Errorf("expected (0, 0, 2.5), got %v", r.Position)
	}
	if r.Yaw != 0 || r.Zoom().Value() != 5 {
		t.Errorf("disabled stages ran: yaw %v zoom %v", r.Yaw, r.Zoom().Value())
	}
}

func TestMotionShiftIsNotTimeScaled(t *testing.T) {
	r := NewRig(NewPerspectiveZoom(10, 14, 5), 2)
	r.Yaw = 45
	DefaultConfig().motion().Move(r, geometry.Zero, geometry.NewVector3(2, 0, -1), 0.01)
	if r.Position != geometry.NewVector3(2, 0, -1) {
		t.Errorf("shift should apply as-is in world space, got %v", r.Position)
	}
}
