// Package reload connects file watching to a running controller
package reload

import (
	"context"
	"fmt"

	"github.com/philipparndt/gocam/internal/config"
	"github.com/philipparndt/gocam/pkg/rig"
	"github.com/philipparndt/gocam/pkg/scene"
	"github.com/philipparndt/gocam/pkg/watcher"
	"go.uber.org/zap"
)

// Config applies the config file at path to c whenever it changes. A file that
// fails to load or validate is logged and the running config is kept.
func Config(w *watcher.FileWatcher, path string, c *rig.Controller, logger *zap.Logger) error {
	return w.Watch([]string{path}, func(string) {
		cfg, err := config.Load(path)
		if err != nil {
			logger.Warn("config reload failed", zap.String("path", path), zap.Error(err))
			return
		}
		if err := c.Apply(cfg); err != nil {
			logger.Warn("config rejected", zap.String("path", path), zap.Error(err))
			return
		}
		logger.Info("config reloaded", zap.String("path", path))
	})
}

// Scene reloads the scene at path, including OpenSCAD dependencies, and passes the
// new mesh to set.
func Scene(ctx context.Context, w *watcher.FileWatcher, path string, opts scene.LoadOptions, set func(*scene.Mesh), logger *zap.Logger) error {
	files, err := scene.Dependencies(path)
	if err != nil {
		return fmt.Errorf("failed to resolve scene dependencies: %w", err)
	}

	return w.Watch(files, func(changed string) {
		mesh, err := scene.Load(ctx, path, opts)
		if err != nil {
			logger.Warn("scene reload failed", zap.String("path", path), zap.String("changed", changed), zap.Error(err))
			return
		}
		set(mesh)
		logger.Info("scene reloaded",
			zap.String("path", path),
			zap.Int("triangles", mesh.TriangleCount()))
	})
}
