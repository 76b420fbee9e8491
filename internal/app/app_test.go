package app

import (
	"context"
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/input"
	"github.com/philipparndt/gocam/pkg/rig"
	"github.com/philipparndt/gocam/pkg/scene"
)

func TestKeysFrom(t *testing.T) {
	tests := []struct {
		name string
		down []int32
		want input.KeySet
	}{
		{"nothing", nil, input.KeySet{}},
		{"wasd", []int32{rl.KeyW, rl.KeyD}, input.Keys(input.KeyW, input.KeyD)},
		{"either shift", []int32{rl.KeyRightShift}, input.Keys(input.KeyShift)},
		{"unbound", []int32{rl.KeyF5}, input.KeySet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			down := map[int32]bool{}
			for _, k := range tt.down {
				down[k] = true
			}
			got := keysFrom(func(k int32) bool { return down[k] })
			if len(got) != len(tt.want) {
				t.Fatalf("keysFrom() = %v, want %v", got, tt.want)
			}
			for k := range tt.want {
				if !got[k] {
					t.Errorf("key %v missing", k)
				}
			}
		})
	}
}

func TestUniqueEdges(t *testing.T) {
	a := geometry.NewVector3(0, 0, 0)
	b := geometry.NewVector3(1, 0, 0)
	c := geometry.NewVector3(0, 0, 1)
	d := geometry.NewVector3(1, 0, 1)
	quad := []geometry.Triangle{
		geometry.NewTriangle(geometry.Vector3{}, a, b, c),
		geometry.NewTriangle(geometry.Vector3{}, b, d, c),
	}

	// The shared diagonal b-c is listed once
	if got := len(uniqueEdges(quad)); got != 5 {
		t.Errorf("uniqueEdges() returned %d edges, want 5", got)
	}
}

func TestCameraFor(t *testing.T) {
	s := rig.Snapshot{
		Camera:     geometry.NewVector3(0, 14, -10),
		LookAt:     geometry.NewVector3(0, 2, 0),
		Zoom:       5,
		Projection: rig.Orthographic,
	}

	cam := cameraFor(s)
	if cam.Projection != rl.CameraOrthographic {
		t.Errorf("Projection = %v, want orthographic", cam.Projection)
	}
	if math.Abs(float64(cam.Fovy)-10) > 1e-6 {
		t.Errorf("Fovy = %v, want 10", cam.Fovy)
	}
	if cam.Position.Y != 14 || cam.Target.Y != 2 {
		t.Errorf("camera placed at %v looking at %v", cam.Position, cam.Target)
	}

	s.Projection = rig.Perspective
	cam = cameraFor(s)
	if cam.Projection != rl.CameraPerspective || cam.Fovy != 45 {
		t.Errorf("perspective camera = %+v", cam)
	}
}

func TestFollowHotkeys(t *testing.T) {
	app, err := New(context.Background(), Options{
		Targets: []geometry.Vector3{{X: 5, Z: 5}, {X: -5, Z: 0}},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer app.controller.Close()

	app.follow(1)
	if app.View.selected != 1 || app.controller.FollowState() != rig.Following {
		t.Fatalf("follow(1): selected %d, state %v", app.View.selected, app.controller.FollowState())
	}

	// An index without a target clears the follow
	app.follow(2)
	if app.View.selected != -1 || app.controller.FollowState() != rig.Idle {
		t.Errorf("follow(2): selected %d, state %v", app.View.selected, app.controller.FollowState())
	}

	app.follow(0)
	app.follow(-1)
	if app.controller.FollowState() != rig.Idle {
		t.Errorf("follow(-1) left state %v", app.controller.FollowState())
	}
}

func TestSceneOfferKeepsNewest(t *testing.T) {
	var s SceneState
	if s.take() != nil {
		t.Fatal("empty state returned a mesh")
	}

	first, second := &scene.Mesh{}, &scene.Mesh{}
	s.offer(first)
	s.offer(second)
	if got := s.take(); got != second {
		t.Error("take() did not return the newest mesh")
	}
	if s.take() != nil {
		t.Error("take() returned the same mesh twice")
	}
}
