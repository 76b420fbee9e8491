package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/input"
	"github.com/philipparndt/gocam/pkg/viewer"
)

// keyBindings maps raylib key codes to rig keys. Several physical keys may share a
// rig key.
var keyBindings = []struct {
	code int32
	key  input.Key
}{
	{rl.KeyW, input.KeyW},
	{rl.KeyA, input.KeyA},
	{rl.KeyS, input.KeyS},
	{rl.KeyD, input.KeyD},
	{rl.KeyUp, input.KeyUp},
	{rl.KeyDown, input.KeyDown},
	{rl.KeyLeft, input.KeyLeft},
	{rl.KeyRight, input.KeyRight},
	{rl.KeyQ, input.KeyQ},
	{rl.KeyE, input.KeyE},
	{rl.KeyZ, input.KeyZ},
	{rl.KeyX, input.KeyX},
	{rl.KeyLeftShift, input.KeyShift},
	{rl.KeyRightShift, input.KeyShift},
}

// keysFrom collects the held rig keys using isDown as the device query
func keysFrom(isDown func(int32) bool) input.KeySet {
	keys := input.KeySet{}
	for _, b := range keyBindings {
		if isDown(b.code) {
			keys[b.key] = true
		}
	}
	return keys
}

// mouseState reads the raylib pointer. A pointer that left the window is reported
// outside the screen so the mouse source ignores it.
func mouseState() input.MouseState {
	width := float64(rl.GetScreenWidth())
	height := float64(rl.GetScreenHeight())
	pos := rl.GetMousePosition()

	state := input.MouseState{
		Position: geometry.NewVector2(float64(pos.X), float64(pos.Y)),
		Screen:   geometry.NewVector2(width, height),
		Left:     rl.IsMouseButtonDown(rl.MouseLeftButton),
		Right:    rl.IsMouseButtonDown(rl.MouseRightButton),
		Wheel:    float64(rl.GetMouseWheelMove()),
	}
	if !rl.IsCursorOnScreen() {
		state.Position = geometry.NewVector2(-1, -1)
	}
	return state
}

// screenRay projects a pointer position through the last rendered camera
func (app *App) screenRay(p geometry.Vector2) geometry.Ray {
	vp := viewer.Viewport{
		Camera: viewer.FromSnapshot(app.snapshot),
		Width:  float64(rl.GetScreenWidth()),
		Height: float64(rl.GetScreenHeight()),
	}
	return vp.ScreenRay(p)
}

// handleInput polls the devices into the bus and processes viewer hotkeys
func (app *App) handleInput() {
	app.Input.keyboard.Poll(keysFrom(rl.IsKeyDown))
	app.Input.mouse.Poll(mouseState())

	for i, key := range []int32{rl.KeyF1, rl.KeyF2, rl.KeyF3} {
		if rl.IsKeyPressed(key) {
			app.follow(i)
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		app.follow(-1)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyH) {
		app.View.showHelp = !app.View.showHelp
	}
}

// follow starts following target i, or cancels the follow for a negative or
// unknown index
func (app *App) follow(i int) {
	if i < 0 || i >= len(app.targets) {
		app.View.selected = -1
		app.controller.SetTarget(nil)
		return
	}
	app.View.selected = i
	app.controller.SetTarget(app.targets[i])
}
