package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gocam/internal/reload"
	"github.com/philipparndt/gocam/pkg/scene"
	"github.com/philipparndt/gocam/pkg/watcher"
	"go.uber.org/zap"
)

// setupWatcher hot-reloads the config file and the scene with its dependencies.
// The returned watcher runs until ctx is done.
func (app *App) setupWatcher(ctx context.Context) (*watcher.FileWatcher, error) {
	fw, err := watcher.New(
		watcher.WithDebounce(500*time.Millisecond),
		watcher.WithLogger(app.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if app.opts.ConfigPath != "" {
		if err := reload.Config(fw, app.opts.ConfigPath, app.controller, app.logger); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch config: %w", err)
		}
	}
	if app.opts.ScenePath != "" {
		opts := scene.LoadOptions{ZUp: app.opts.ZUp}
		if err := reload.Scene(ctx, fw, app.opts.ScenePath, opts, app.Scene.offer, app.logger); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch scene: %w", err)
		}
	}

	go func() {
		if err := fw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			app.logger.Warn("file watcher stopped", zap.Error(err))
		}
	}()
	return fw, nil
}

// applyMesh swaps in a new scene mesh. Must be called on the main thread.
func (app *App) applyMesh(m *scene.Mesh) {
	if app.Scene.uploaded {
		rl.UnloadMesh(&app.Scene.gpu)
		app.Scene.uploaded = false
	}

	app.Scene.mesh = m
	app.Scene.edges = nil
	if m == nil {
		app.controller.SetScene(nil)
		return
	}

	app.Scene.gpu = toRaylibMesh(m.Triangles())
	app.Scene.uploaded = true
	app.Scene.edges = uniqueEdges(m.Triangles())
	app.controller.SetScene(m)
}

// applyPending applies a mesh loaded in the background since the last frame
func (app *App) applyPending() {
	if m := app.Scene.take(); m != nil {
		app.applyMesh(m)
		app.logger.Debug("scene swapped", zap.Int("triangles", m.TriangleCount()))
	}
}
