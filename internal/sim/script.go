// Package sim plays scripted input through a rig controller without any window,
// producing one snapshot per tick.
package sim

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/gocam/internal/config"
	"github.com/philipparndt/gocam/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScript wraps every script validation failure
var ErrInvalidScript = errors.New("invalid script")

// FollowNone in a step's follow field clears the follow target
const FollowNone = "none"

// Script is a reproducible input sequence
type Script struct {
	// DeltaTime is the fixed tick length in seconds.
	DeltaTime float64 `yaml:"dt" toml:"dt"`
	// Ticks is the number of ticks to run. Zero runs until the last step ends.
	Ticks   int      `yaml:"ticks" toml:"ticks"`
	Targets []Target `yaml:"targets" toml:"targets"`
	Steps   []Step   `yaml:"steps" toml:"steps"`
}

// Target is a named point the rig can follow. It moves with Velocity units per
// second and disappears after Lifetime ticks when Lifetime is positive.
type Target struct {
	Name     string           `yaml:"name" toml:"name"`
	Position geometry.Vector3 `yaml:"position" toml:"position"`
	Velocity geometry.Vector3 `yaml:"velocity" toml:"velocity"`
	Lifetime int              `yaml:"lifetime" toml:"lifetime"`
}

// Orbit is a yaw and pitch delta
type Orbit struct {
	Yaw   float64 `yaml:"yaw" toml:"yaw"`
	Pitch float64 `yaml:"pitch" toml:"pitch"`
}

// Step is the input published from tick Tick for Repeat ticks (at least one).
// Follow and MouseOrbit change state and are applied on the first tick only.
type Step struct {
	Tick       int               `yaml:"tick" toml:"tick"`
	Repeat     int               `yaml:"repeat" toml:"repeat"`
	Move       *geometry.Vector3 `yaml:"move" toml:"move"`
	Orbit      *Orbit            `yaml:"orbit" toml:"orbit"`
	Zoom       float64           `yaml:"zoom" toml:"zoom"`
	Shift      *geometry.Vector3 `yaml:"shift" toml:"shift"`
	Boost      bool              `yaml:"boost" toml:"boost"`
	MouseOrbit *bool             `yaml:"mouseOrbit" toml:"mouseOrbit"`
	Follow     string            `yaml:"follow" toml:"follow"`
}

func (s Step) span() int {
	if s.Repeat < 1 {
		return 1
	}
	return s.Repeat
}

func (s Step) activeAt(tick int) bool {
	return tick >= s.Tick && tick < s.Tick+s.span()
}

// Length returns the number of ticks the script runs
func (s *Script) Length() int {
	if s.Ticks > 0 {
		return s.Ticks
	}
	n := 0
	for _, step := range s.Steps {
		n = max(n, step.Tick+step.span())
	}
	return n
}

// Validate checks the script for values the player cannot run
func (s *Script) Validate() error {
	var errs []error
	if s.DeltaTime <= 0 {
		errs = append(errs, fmt.Errorf("dt must be positive, got %g", s.DeltaTime))
	}
	if s.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks must not be negative, got %d", s.Ticks))
	}

	names := make(map[string]bool, len(s.Targets))
	for i, t := range s.Targets {
		switch {
		case t.Name == "" || t.Name == FollowNone:
			errs = append(errs, fmt.Errorf("target %d: invalid name %q", i, t.Name))
		case names[t.Name]:
			errs = append(errs, fmt.Errorf("target %d: duplicate name %q", i, t.Name))
		}
		names[t.Name] = true
	}

	for i, step := range s.Steps {
		if step.Tick < 0 {
			errs = append(errs, fmt.Errorf("step %d: negative tick %d", i, step.Tick))
		}
		if step.Follow != "" && step.Follow != FollowNone && !names[step.Follow] {
			errs = append(errs, fmt.Errorf("step %d: unknown target %q", i, step.Follow))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidScript, errors.Join(errs...))
}

// LoadScript reads a YAML or TOML script, chosen by extension
func LoadScript(path string) (*Script, error) {
	format, err := config.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	script := &Script{DeltaTime: 1.0 / 60}
	switch format {
	case config.TOML:
		err = toml.Unmarshal(data, script)
	default:
		err = yaml.Unmarshal(data, script)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := script.Validate(); err != nil {
		return nil, err
	}
	return script, nil
}
