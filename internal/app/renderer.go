package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gocam/pkg/rig"
)

var (
	backgroundColor = rl.NewColor(30, 30, 35, 255)
	wireframeColor  = rl.NewColor(100, 100, 100, 200)
	boundsColor     = rl.NewColor(90, 140, 200, 255)
	pivotColor      = rl.NewColor(230, 70, 60, 255)
	targetColor     = rl.NewColor(240, 200, 60, 255)
	activeColor     = rl.NewColor(255, 120, 0, 255)
)

// cameraFor builds the raylib camera for a rig state. The orthographic size is the
// half height of the view, raylib expects the full height.
func cameraFor(s rig.Snapshot) rl.Camera3D {
	cam := rl.Camera3D{
		Position:   vec(s.Camera),
		Target:     vec(s.LookAt),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	if s.Projection == rig.Orthographic {
		cam.Fovy = float32(2 * s.Zoom)
		cam.Projection = rl.CameraOrthographic
	}
	return cam
}

// drawScene renders the world for the current snapshot
func (app *App) drawScene() {
	rl.BeginMode3D(cameraFor(app.snapshot))
	defer rl.EndMode3D()

	rl.DrawGrid(100, 1)
	app.drawBounds()

	if app.Scene.uploaded {
		rl.DrawMesh(app.Scene.gpu, app.Scene.material, rl.MatrixIdentity())
		if app.View.showWireframe {
			app.drawWireframe()
		}
	}

	following := app.snapshot.Follow == rig.Following
	for i, t := range app.targets {
		col := targetColor
		if following && i == app.View.selected {
			col = activeColor
		}
		rl.DrawCylinder(vec(t.Position()), 0.4, 0.4, 1.5, 12, col)
	}

	rl.DrawSphere(vec(app.snapshot.Position), 0.3, pivotColor)
	rl.DrawLine3D(vec(app.snapshot.Position), vec(app.snapshot.LookAt), pivotColor)
}

// drawBounds outlines the ground area the pivot is confined to
func (app *App) drawBounds() {
	b := app.controller.Config().Bounds
	corners := [4]rl.Vector3{
		{X: float32(b.MinX), Z: float32(b.MinZ)},
		{X: float32(b.MaxX), Z: float32(b.MinZ)},
		{X: float32(b.MaxX), Z: float32(b.MaxZ)},
		{X: float32(b.MinX), Z: float32(b.MaxZ)},
	}
	for i := range corners {
		rl.DrawLine3D(corners[i], corners[(i+1)%len(corners)], boundsColor)
	}
}

// drawWireframe renders the cached edges as thin cylinders. The thickness follows
// the zoom so lines keep a similar screen width.
func (app *App) drawWireframe() {
	thickness := float32(app.snapshot.Zoom * 0.002)
	for _, e := range app.Scene.edges {
		rl.DrawCylinderEx(vec(e[0]), vec(e[1]), thickness, thickness, 6, wireframeColor)
	}
}
