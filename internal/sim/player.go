package sim

import (
	"context"

	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/rig"
	"go.uber.org/zap"
)

// target is the live counterpart of a scripted Target
type target struct {
	def     Target
	elapsed float64
	ticks   int
}

func (t *target) Position() geometry.Vector3 {
	return t.def.Position.Add(t.def.Velocity.Mul(t.elapsed))
}

func (t *target) Alive() bool {
	return t.def.Lifetime <= 0 || t.ticks < t.def.Lifetime
}

func (t *target) advance(dt float64) {
	t.elapsed += dt
	t.ticks++
}

// Player feeds a script through a bus into its own controller
type Player struct {
	script     *Script
	bus        *rig.Bus
	controller *rig.Controller
	targets    map[string]*target
	logger     *zap.Logger
}

// NewPlayer builds a controller for cfg and prepares the script's targets. Options
// are passed to the controller; the player adds its own bus.
func NewPlayer(script *Script, cfg rig.Config, logger *zap.Logger, opts ...rig.Option) (*Player, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bus := rig.NewBus()
	opts = append(opts, rig.WithBus(bus), rig.WithLogger(logger))
	controller, err := rig.NewController(cfg, opts...)
	if err != nil {
		return nil, err
	}

	targets := make(map[string]*target, len(script.Targets))
	for _, t := range script.Targets {
		targets[t.Name] = &target{def: t}
	}

	return &Player{
		script:     script,
		bus:        bus,
		controller: controller,
		targets:    targets,
		logger:     logger,
	}, nil
}

// Controller exposes the controller being driven
func (p *Player) Controller() *rig.Controller {
	return p.controller
}

// Targets returns the positions of the targets that are still alive, ordered as
// in the script
func (p *Player) Targets() []geometry.Vector3 {
	positions := make([]geometry.Vector3, 0, len(p.script.Targets))
	for _, def := range p.script.Targets {
		if t := p.targets[def.Name]; t.Alive() {
			positions = append(positions, t.Position())
		}
	}
	return positions
}

// Close releases the controller
func (p *Player) Close() error {
	return p.controller.Close()
}

// Run plays the whole script and calls fn with the snapshot of every tick. It
// stops early when ctx is done or fn returns an error.
func (p *Player) Run(ctx context.Context, fn func(rig.Snapshot) error) error {
	n := p.script.Length()
	p.logger.Debug("playing script", zap.Int("ticks", n), zap.Float64("dt", p.script.DeltaTime))

	for tick := 0; tick < n; tick++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.emit(tick)
		snapshot := p.controller.Tick(p.script.DeltaTime)
		for _, t := range p.targets {
			t.advance(p.script.DeltaTime)
		}

		if fn != nil {
			if err := fn(snapshot); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Player) emit(tick int) {
	for _, step := range p.script.Steps {
		if !step.activeAt(tick) {
			continue
		}

		if tick == step.Tick {
			if step.MouseOrbit != nil {
				p.bus.EmitMouseOrbitMode(*step.MouseOrbit)
			}
			switch step.Follow {
			case "":
			case FollowNone:
				p.controller.SetTarget(nil)
			default:
				p.controller.SetTarget(p.targets[step.Follow])
			}
		}

		if step.Move != nil {
			p.bus.EmitMove(*step.Move)
		}
		if step.Orbit != nil {
			p.bus.EmitOrbit(step.Orbit.Yaw, step.Orbit.Pitch)
		}
		if step.Zoom != 0 {
			p.bus.EmitZoom(step.Zoom)
		}
		if step.Shift != nil {
			p.bus.EmitShift(*step.Shift)
		}
		if step.Boost {
			p.bus.EmitSpeedBoost()
		}
	}
}

// Play is a convenience wrapper that runs script against cfg and collects every
// snapshot.
func Play(ctx context.Context, script *Script, cfg rig.Config, logger *zap.Logger, opts ...rig.Option) ([]rig.Snapshot, error) {
	player, err := NewPlayer(script, cfg, logger, opts...)
	if err != nil {
		return nil, err
	}
	defer player.Close()

	snapshots := make([]rig.Snapshot, 0, script.Length())
	err = player.Run(ctx, func(s rig.Snapshot) error {
		snapshots = append(snapshots, s)
		return nil
	})
	return snapshots, err
}
