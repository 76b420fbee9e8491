package rig

import (
	"math"
	"sync"

	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/scene"
	"go.uber.org/zap"
)

// Snapshot is the rig state after a tick
type Snapshot struct {
	Tick        uint64           `json:"tick"`
	Position    geometry.Vector3 `json:"position"`
	Yaw         float64          `json:"yaw"`
	Pitch       float64          `json:"pitch"`
	Zoom        float64          `json:"zoom"`
	Projection  ProjectionMode   `json:"projection"`
	Camera      geometry.Vector3 `json:"camera"`
	LookAt      geometry.Vector3 `json:"lookAt"`
	Follow      FollowState      `json:"follow"`
	Obstruction Obstruction      `json:"obstruction"`
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used for state transitions
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithScene enables obstruction avoidance against s
func WithScene(s scene.Raycaster) Option {
	return func(c *Controller) {
		c.scene = s
	}
}

// WithBus subscribes the controller to b. Close releases the subscription.
func WithBus(b *Bus) Option {
	return func(c *Controller) {
		c.bus = b
	}
}

// WithPosition sets the starting rig position. It is clamped on the first tick.
func WithPosition(p geometry.Vector3) Option {
	return func(c *Controller) {
		c.rig.Position = p
	}
}

// WithYaw sets the starting rig yaw in degrees
func WithYaw(yaw float64) Option {
	return func(c *Controller) {
		c.rig.Yaw = yaw
	}
}

// Controller owns a rig and runs the control pipeline once per Tick. Input arrives
// through the Listener methods, usually from a Bus, and is buffered until the next
// tick.
type Controller struct {
	mu sync.Mutex

	cfg        Config
	rig        *Rig
	acc        Accumulator
	avoider    *Avoider
	integrator Integrator
	bounds     Bounds
	follow     *FollowTask
	mouseOrbit bool
	ticks      uint64
	last       Obstruction

	scene  scene.Raycaster
	bus    *Bus
	sub    *Subscription
	logger *zap.Logger
}

var _ Listener = (*Controller)(nil)

// NewController validates cfg and builds a controller. The projection mode and
// starting zoom are fixed for the lifetime of the controller.
func NewController(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	zoom, err := NewZoomStrategy(cfg)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:    cfg,
		rig:    NewRig(zoom, cfg.Camera.LookAtOffset),
		follow: NewFollowTask(cfg.Follow.Tolerance),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.configure(cfg, cfg.Enabled)
	c.avoider = NewAvoider(c.scene, cfg.Obstruction)
	if c.bus != nil {
		c.sub = c.bus.Subscribe(c)
	}

	c.logger.Debug("rig controller created",
		zap.String("projection", string(zoom.Mode())),
		zap.Float64("zoom", zoom.Value()),
		zap.Bool("obstruction", c.scene != nil && cfg.Obstruction.Enabled))
	return c, nil
}

func (c *Controller) configure(cfg Config, flags Flags) {
	c.cfg = cfg
	c.integrator = Integrator{Motion: cfg.motion(), Flags: flags}
	c.bounds = cfg.bounds()
	c.follow.SetTolerance(cfg.Follow.Tolerance)
	if c.avoider != nil {
		c.avoider.SetConfig(cfg.Obstruction)
	}
}

// pin copies the settings that are fixed at construction from the active config
// into cfg. The starting zoom is brought into the limits of cfg so that a
// narrower zoom range stays valid.
func (c *Controller) pin(cfg *Config) {
	active := c.cfg
	if cfg.Projection != active.Projection {
		c.logger.Warn("projection mode is fixed at construction, ignoring change",
			zap.String("current", string(active.Projection)),
			zap.String("requested", string(cfg.Projection)))
	}
	if cfg.Camera != active.Camera {
		c.logger.Warn("camera offsets are fixed at construction, ignoring change")
	}
	if cfg.Zoom.ClampOrthographicFar != active.Zoom.ClampOrthographicFar {
		c.logger.Warn("clampOrthographicFar is fixed at construction, ignoring change")
	}

	cfg.Projection = active.Projection
	cfg.Camera = active.Camera
	cfg.Zoom.ClampOrthographicFar = active.Zoom.ClampOrthographicFar
	cfg.Zoom.Starting = math.Min(math.Max(active.Zoom.Starting, cfg.Zoom.Near), cfg.Zoom.Far)
}

// Apply replaces the tuning. An invalid config is rejected and the previous one
// stays active. Settings fixed at construction (projection, camera offsets,
// starting zoom, clampOrthographicFar) keep their active values, and the live zoom
// is clamped into the new limits.
func (c *Controller) Apply(cfg Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pin(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	flags := c.integrator.Flags
	if cfg.Enabled != c.cfg.Enabled {
		flags = cfg.Enabled
	}
	c.rig.zoom.clamp(cfg.Zoom.Near, cfg.Zoom.Far)
	c.configure(cfg, flags)
	c.logger.Debug("rig config applied", zap.Float64("zoom", c.rig.zoom.Value()))
	return nil
}

// Config returns the active tuning
func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// SetScene replaces the geometry used for obstruction avoidance; nil disables it
func (c *Controller) SetScene(s scene.Raycaster) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene = s
	c.avoider = NewAvoider(s, c.cfg.Obstruction)
}

// SetFlags toggles the move, rotate and zoom stages. The toggles survive Apply
// unless the applied config changes Enabled; Config keeps reporting the
// configured flags.
func (c *Controller) SetFlags(flags Flags) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.integrator.Flags = flags
}

// Flags returns the enabled stages
func (c *Controller) Flags() Flags {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.integrator.Flags
}

// SetTarget starts following t; nil stops following
func (c *Controller) SetTarget(t Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.follow.SetTarget(t)
	c.logger.Debug("follow target changed", zap.Stringer("state", c.follow.State()))
}

// FollowState reports whether the rig is following a target
func (c *Controller) FollowState() FollowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.follow.State()
}

// MouseOrbitMode reports whether mouse orbiting currently suppresses movement
func (c *Controller) MouseOrbitMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mouseOrbit
}

// Pending returns the input buffered for the next tick
func (c *Controller) Pending() FrameInputDelta {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.acc.Frame()
}

// Tick runs one pass of the pipeline: take input, avoid obstructions, integrate,
// step the follow task and clamp.
func (c *Controller) Tick(dt float64) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	frame := c.acc.Take()
	if frame.Boost {
		frame = frame.Scaled(c.cfg.Move.SpeedScaleFactor)
	}

	allowMove := !c.mouseOrbit
	if allowMove && frame.HasManualMove() && c.follow.State() == Following {
		if c.cfg.Follow.CancelOnInput {
			c.follow.Cancel()
			c.logger.Debug("follow cancelled by manual input")
		} else {
			allowMove = false
		}
	}

	c.last = c.avoider.Adjust(c.rig.Pivot(), c.rig.CameraPosition(), &frame)
	c.integrator.Apply(c.rig, frame, dt, allowMove)

	if c.follow.State() == Following {
		next, arrived := c.follow.Step(c.rig.Position, dt, c.bounds.ClampPosition)
		c.rig.Position = next
		if arrived {
			c.logger.Debug("follow target reached",
				zap.Float64("x", next.X), zap.Float64("z", next.Z))
		} else if c.follow.State() == Idle {
			c.logger.Debug("follow target gone")
		}
	}

	c.bounds.Apply(c.rig)
	c.ticks++
	return c.snapshot()
}

// State returns the current rig state without ticking
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() Snapshot {
	return Snapshot{
		Tick:        c.ticks,
		Position:    c.rig.Position,
		Yaw:         c.rig.Yaw,
		Pitch:       c.rig.Pitch,
		Zoom:        c.rig.zoom.Value(),
		Projection:  c.rig.zoom.Mode(),
		Camera:      c.rig.CameraPosition(),
		LookAt:      c.rig.LookAt(),
		Follow:      c.follow.State(),
		Obstruction: c.last,
	}
}

// Close unsubscribes from the bus given with WithBus
func (c *Controller) Close() error {
	if c.sub != nil {
		c.sub.Close()
	}
	return nil
}

func (c *Controller) OnMove(v geometry.Vector3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acc.AddMove(v)
}

func (c *Controller) OnOrbit(yaw, pitch float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acc.AddOrbit(yaw, pitch)
}

func (c *Controller) OnZoom(s float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acc.AddZoom(s)
}

func (c *Controller) OnShift(v geometry.Vector3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acc.AddShift(v)
}

func (c *Controller) OnSpeedBoost() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acc.Boost()
}

func (c *Controller) OnMouseOrbitMode(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mouseOrbit != active {
		c.logger.Debug("mouse orbit mode", zap.Bool("active", active))
	}
	c.mouseOrbit = active
}
