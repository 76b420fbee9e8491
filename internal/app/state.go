package app

import (
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/input"
	"github.com/philipparndt/gocam/pkg/rig"
	"github.com/philipparndt/gocam/pkg/scene"
	"go.uber.org/zap"
)

// Options configures the interactive viewer
type Options struct {
	ScenePath  string
	ConfigPath string
	ZUp        bool
	// Targets are follow targets selectable with F1..F3
	Targets []geometry.Vector3
	Logger  *zap.Logger
}

// SceneState holds the loaded scene and its GPU copy
type SceneState struct {
	mesh     *scene.Mesh
	gpu      rl.Mesh
	uploaded bool
	material rl.Material
	edges    []edge

	mu      sync.Mutex
	pending *scene.Mesh // set by the reload goroutine, applied on the main thread
}

// offer hands a freshly loaded mesh to the main thread. A newer mesh replaces one
// that was not applied yet.
func (s *SceneState) offer(m *scene.Mesh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = m
}

func (s *SceneState) take() *scene.Mesh {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.pending
	s.pending = nil
	return m
}

// InputState holds the device sources feeding the bus
type InputState struct {
	keyboard *input.Keyboard
	mouse    *input.Mouse
}

// ViewState holds display toggles
type ViewState struct {
	showWireframe bool
	showHelp      bool
	selected      int // index into targets, -1 when nothing is followed
}

// App is the interactive rig viewer
type App struct {
	opts       Options
	logger     *zap.Logger
	bus        *rig.Bus
	controller *rig.Controller
	snapshot   rig.Snapshot
	targets    []rig.Fixed

	Scene SceneState
	Input InputState
	View  ViewState
}
