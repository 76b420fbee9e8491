// Package app is the interactive raylib viewer driving a camera rig from keyboard
// and mouse input.
package app

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gocam/internal/config"
	"github.com/philipparndt/gocam/pkg/input"
	"github.com/philipparndt/gocam/pkg/rig"
	"github.com/philipparndt/gocam/pkg/scene"
	"go.uber.org/zap"
)

// New loads the config and scene and builds the rig. No window is opened yet.
func New(ctx context.Context, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	app := &App{
		opts:   opts,
		logger: logger,
		bus:    rig.NewBus(),
		View:   ViewState{showHelp: true, selected: -1},
	}
	for _, t := range opts.Targets {
		app.targets = append(app.targets, rig.Fixed(t))
	}

	var mesh *scene.Mesh
	if opts.ScenePath != "" {
		mesh, err = scene.Load(ctx, opts.ScenePath, scene.LoadOptions{ZUp: opts.ZUp})
		if err != nil {
			return nil, fmt.Errorf("failed to load scene: %w", err)
		}
		logger.Info("scene loaded",
			zap.String("path", opts.ScenePath),
			zap.Int("triangles", mesh.TriangleCount()))
	}

	rigOpts := []rig.Option{rig.WithBus(app.bus), rig.WithLogger(logger)}
	if mesh != nil {
		rigOpts = append(rigOpts, rig.WithScene(mesh))
	}
	app.controller, err = rig.NewController(cfg, rigOpts...)
	if err != nil {
		return nil, err
	}
	app.snapshot = app.controller.State()
	app.Scene.pending = mesh

	app.Input.keyboard = input.NewKeyboard(app.bus)
	app.Input.mouse = input.NewMouse(app.bus, input.ProjectorFunc(app.screenRay))
	return app, nil
}

// Run opens the window and runs the frame loop until the window is closed or ctx
// is done.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer app.controller.Close()

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(1400, 900, "gocam")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	// Escape cancels a follow instead of closing the window
	rl.SetExitKey(rl.KeyNull)

	app.Scene.material = rl.LoadMaterialDefault()

	fw, err := app.setupWatcher(ctx)
	if err != nil {
		app.logger.Warn("hot reload disabled", zap.Error(err))
	} else {
		defer fw.Close()
	}

	defer func() {
		if app.Scene.uploaded {
			rl.UnloadMesh(&app.Scene.gpu)
		}
	}()

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		app.applyPending()
		app.handleInput()
		app.snapshot = app.controller.Tick(float64(rl.GetFrameTime()))

		rl.BeginDrawing()
		rl.ClearBackground(backgroundColor)
		app.drawScene()
		app.drawUI()
		rl.EndDrawing()
	}
	return nil
}

// Controller exposes the rig driven by the viewer
func (app *App) Controller() *rig.Controller {
	return app.controller
}
