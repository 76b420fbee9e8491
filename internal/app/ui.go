package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gocam/version"
)

const (
	fontSize   = int32(16)
	lineHeight = int32(20)
)

var helpLines = []string{
	"W/S, Up/Down   move in/out",
	"A/D, Left/Right  move left/right",
	"Q/E            orbit",
	"Z/X            zoom in/out",
	"Shift          speed boost",
	"Right drag     orbit, left drag pan",
	"Wheel          zoom",
	"F1..F3         follow target, Esc stop",
	"Tab            wireframe",
	"H              hide help",
}

// statusLines describes the rig state for the HUD
func (app *App) statusLines() []string {
	s := app.snapshot
	lines := []string{
		fmt.Sprintf("gocam %s", version.GetVersion()),
		fmt.Sprintf("pivot  %.2f, %.2f, %.2f", s.Position.X, s.Position.Y, s.Position.Z),
		fmt.Sprintf("yaw %.1f  pitch %.1f", s.Yaw, s.Pitch),
		fmt.Sprintf("zoom %.2f  (%s)", s.Zoom, s.Projection),
		fmt.Sprintf("follow %s", s.Follow),
	}
	if s.Obstruction.Any() {
		lines = append(lines, fmt.Sprintf("obstructed in=%t out=%t close=%t",
			s.Obstruction.Inward, s.Obstruction.Outward, s.Obstruction.Close))
	}
	if app.Scene.mesh != nil {
		lines = append(lines, fmt.Sprintf("scene %s  %d triangles", app.Scene.mesh.Name(), app.Scene.mesh.TriangleCount()))
	}
	return lines
}

// drawUI draws the status panel and the key help
func (app *App) drawUI() {
	y := int32(10)
	for _, line := range app.statusLines() {
		rl.DrawText(line, 10, y, fontSize, rl.RayWhite)
		y += lineHeight
	}

	if app.View.showHelp {
		y += lineHeight / 2
		for _, line := range helpLines {
			rl.DrawText(line, 10, y, fontSize, rl.LightGray)
			y += lineHeight
		}
	}

	rl.DrawFPS(int32(rl.GetScreenWidth())-90, 10)
}
