package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gocam/internal/reload"
	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/input"
	"github.com/philipparndt/gocam/pkg/rig"
	"github.com/philipparndt/gocam/pkg/scene"
	"github.com/philipparndt/gocam/pkg/viewer"
	"github.com/philipparndt/gocam/pkg/watcher"
	"go.uber.org/zap"
)

const tickInterval = time.Second / 60

type gui struct {
	app    fyne.App
	window fyne.Window
	logger *zap.Logger

	bus        *rig.Bus
	controller *rig.Controller
	view       *viewer.RigView
	keys       *heldKeys
	keyboard   *input.Keyboard
	edges      *input.Widget
	targets    []geometry.Vector3

	status *widget.Label
	ctx    context.Context
	cancel context.CancelFunc
}

func newGUI(cfg rig.Config, mesh *scene.Mesh, targets []geometry.Vector3, logger *zap.Logger) (*gui, error) {
	g := &gui{
		app:     app.NewWithID("io.github.philipparndt.gocam"),
		logger:  logger,
		bus:     rig.NewBus(),
		keys:    newHeldKeys(),
		targets: targets,
		status:  widget.NewLabel(""),
	}
	g.ctx, g.cancel = context.WithCancel(context.Background())

	opts := []rig.Option{rig.WithBus(g.bus), rig.WithLogger(logger)}
	if mesh != nil {
		opts = append(opts, rig.WithScene(mesh))
	}
	controller, err := rig.NewController(cfg, opts...)
	if err != nil {
		return nil, err
	}
	g.controller = controller
	g.keyboard = input.NewKeyboard(g.bus)
	g.edges = input.NewWidget(g.bus, input.Rect{}, input.DefaultRetreat)

	g.view = viewer.NewRigView(g.bus)
	g.view.SetTargets(targets)
	if mesh != nil {
		g.view.SetTriangles(mesh.Triangles())
	}

	g.window = g.app.NewWindow("gocam")
	g.window.SetContent(container.NewBorder(nil, g.status, nil, g.controls(), g.view))
	g.window.Resize(fyne.NewSize(1200, 800))
	if dc, ok := g.window.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(g.keys.press)
		dc.SetOnKeyUp(g.keys.release)
	}
	g.window.SetOnClosed(g.cancel)
	return g, nil
}

// tuning describes one slider bound to a config field
type tuning struct {
	label    string
	min, max float64
	field    func(*rig.Config) *float64
}

var tunings = []tuning{
	{"In/out speed", 0, 20, func(c *rig.Config) *float64 { return &c.Move.InOutSpeed }},
	{"Lateral speed", 0, 20, func(c *rig.Config) *float64 { return &c.Move.LateralSpeed }},
	{"Rotate speed", 0, 90, func(c *rig.Config) *float64 { return &c.Move.RotateSpeed }},
	{"Speed boost", 1, 5, func(c *rig.Config) *float64 { return &c.Move.SpeedScaleFactor }},
	{"Zoom speed", 0, 20, func(c *rig.Config) *float64 { return &c.Zoom.Speed }},
	{"Zoom near", 0.5, 20, func(c *rig.Config) *float64 { return &c.Zoom.Near }},
	{"Zoom far", 1, 60, func(c *rig.Config) *float64 { return &c.Zoom.Far }},
}

// controls builds the tuning side panel
func (g *gui) controls() fyne.CanvasObject {
	box := container.NewVBox()
	cfg := g.controller.Config()

	for _, t := range tunings {
		value := widget.NewLabel(fmt.Sprintf("%.1f", *t.field(&cfg)))
		slider := widget.NewSlider(t.min, t.max)
		slider.Step = 0.1
		slider.SetValue(*t.field(&cfg))
		slider.OnChanged = func(v float64) {
			value.SetText(fmt.Sprintf("%.1f", v))
		}
		slider.OnChangeEnded = func(v float64) {
			next := g.controller.Config()
			*t.field(&next) = v
			if err := g.controller.Apply(next); err != nil {
				g.logger.Warn("tuning rejected", zap.String("setting", t.label), zap.Error(err))
				current := g.controller.Config()
				slider.SetValue(*t.field(&current))
			}
		}
		box.Add(container.NewBorder(nil, nil, widget.NewLabel(t.label), value))
		box.Add(slider)
	}

	avoid := widget.NewCheck("Avoid obstructions", func(on bool) {
		next := g.controller.Config()
		next.Obstruction.Enabled = on
		if err := g.controller.Apply(next); err != nil {
			g.logger.Warn("tuning rejected", zap.Error(err))
		}
	})
	avoid.SetChecked(cfg.Obstruction.Enabled)
	box.Add(avoid)

	options := []string{"none"}
	for i, t := range g.targets {
		options = append(options, fmt.Sprintf("F%d (%.1f, %.1f)", i+1, t.X, t.Z))
	}
	follow := widget.NewSelect(options, func(choice string) {
		for i, o := range options[1:] {
			if o == choice {
				g.controller.SetTarget(rig.Fixed(g.targets[i]))
				return
			}
		}
		g.controller.SetTarget(nil)
	})
	box.Add(widget.NewLabel("Follow"))
	box.Add(follow)

	return container.NewPadded(box)
}

// watch hot-reloads the config and the scene when they change on disk
func (g *gui) watch(configPath, scenePath string, opts scene.LoadOptions) {
	if configPath == "" && scenePath == "" {
		return
	}
	fw, err := watcher.New(watcher.WithLogger(g.logger))
	if err != nil {
		g.logger.Warn("hot reload disabled", zap.Error(err))
		return
	}

	if configPath != "" {
		if err := reload.Config(fw, configPath, g.controller, g.logger); err != nil {
			g.logger.Warn("config reload disabled", zap.Error(err))
		}
	}
	if scenePath != "" {
		set := func(m *scene.Mesh) {
			g.controller.SetScene(m)
			g.view.SetTriangles(m.Triangles())
		}
		if err := reload.Scene(g.ctx, fw, scenePath, opts, set, g.logger); err != nil {
			g.logger.Warn("scene reload disabled", zap.Error(err))
		}
	}

	go func() {
		if err := fw.Run(g.ctx); err != nil && !errors.Is(err, context.Canceled) {
			g.logger.Warn("file watcher stopped", zap.Error(err))
		}
	}()
}

// loop ticks the rig and hands every snapshot to the main goroutine
func (g *gui) loop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-g.ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			g.keyboard.Poll(g.keys.Keys())
			if p, ok := g.view.Pointer(); ok {
				w, h := g.view.Field()
				g.edges.SetField(input.NewRect(0, 0, w, h))
				g.edges.Poll(p)
			}

			s := g.controller.Tick(dt)
			fyne.Do(func() {
				g.view.Update(s)
				g.status.SetText(statusText(s))
			})
		}
	}
}

func statusText(s rig.Snapshot) string {
	text := fmt.Sprintf("pivot (%.2f, %.2f, %.2f)   yaw %.1f   pitch %.1f   zoom %.2f %s   follow %s",
		s.Position.X, s.Position.Y, s.Position.Z, s.Yaw, s.Pitch, s.Zoom, s.Projection, s.Follow)
	if s.Obstruction.Any() {
		text += "   obstructed"
	}
	return text
}

// run shows the window and blocks until it is closed
func (g *gui) run() {
	defer g.controller.Close()
	defer g.cancel()

	go g.loop()
	g.window.ShowAndRun()
}
