package rig

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gocam/pkg/geometry"
)

// Config holds every tuning parameter of the rig. It is applied as a whole with
// Controller.Apply.
type Config struct {
	Projection  ProjectionMode    `yaml:"projection" toml:"projection" env:"PROJECTION"`
	Camera      CameraConfig      `yaml:"camera" toml:"camera" envPrefix:"CAMERA_"`
	Move        MoveConfig        `yaml:"move" toml:"move" envPrefix:"MOVE_"`
	Bounds      BoundsConfig      `yaml:"bounds" toml:"bounds" envPrefix:"BOUNDS_"`
	Zoom        ZoomConfig        `yaml:"zoom" toml:"zoom" envPrefix:"ZOOM_"`
	Obstruction ObstructionConfig `yaml:"obstruction" toml:"obstruction" envPrefix:"OBSTRUCTION_"`
	Follow      FollowConfig      `yaml:"follow" toml:"follow" envPrefix:"FOLLOW_"`
	Enabled     Flags             `yaml:"enabled" toml:"enabled" envPrefix:"ENABLE_"`
}

// CameraConfig positions the camera relative to the pivot. Offsets are fixed once
// the rig is built.
type CameraConfig struct {
	OffsetBack   float64 `yaml:"offsetBack" toml:"offsetBack" env:"OFFSET_BACK"`
	OffsetUp     float64 `yaml:"offsetUp" toml:"offsetUp" env:"OFFSET_UP"`
	LookAtOffset float64 `yaml:"lookAtOffset" toml:"lookAtOffset" env:"LOOK_AT_OFFSET"`
}

type MoveConfig struct {
	InOutSpeed       float64 `yaml:"inOutSpeed" toml:"inOutSpeed" env:"IN_OUT_SPEED"`
	LateralSpeed     float64 `yaml:"lateralSpeed" toml:"lateralSpeed" env:"LATERAL_SPEED"`
	RotateSpeed      float64 `yaml:"rotateSpeed" toml:"rotateSpeed" env:"ROTATE_SPEED"`
	SpeedScaleFactor float64 `yaml:"speedScaleFactor" toml:"speedScaleFactor" env:"SPEED_SCALE_FACTOR"`
}

// BoundsConfig limits the ground position (X/Z) and the pitch in degrees
type BoundsConfig struct {
	MinX     float64 `yaml:"minX" toml:"minX" env:"MIN_X"`
	MinZ     float64 `yaml:"minZ" toml:"minZ" env:"MIN_Z"`
	MaxX     float64 `yaml:"maxX" toml:"maxX" env:"MAX_X"`
	MaxZ     float64 `yaml:"maxZ" toml:"maxZ" env:"MAX_Z"`
	MinAngle float64 `yaml:"minAngle" toml:"minAngle" env:"MIN_ANGLE"`
	MaxAngle float64 `yaml:"maxAngle" toml:"maxAngle" env:"MAX_ANGLE"`
}

type ZoomConfig struct {
	Speed    float64 `yaml:"speed" toml:"speed" env:"SPEED"`
	Near     float64 `yaml:"near" toml:"near" env:"NEAR"`
	Far      float64 `yaml:"far" toml:"far" env:"FAR"`
	Starting float64 `yaml:"starting" toml:"starting" env:"STARTING"`
	// ClampOrthographicFar makes orthographic zoom-out stop at the far limit.
	ClampOrthographicFar bool `yaml:"clampOrthographicFar" toml:"clampOrthographicFar" env:"CLAMP_ORTHOGRAPHIC_FAR"`
}

type ObstructionConfig struct {
	Enabled      bool    `yaml:"enabled" toml:"enabled" env:"ENABLED"`
	Penalty      float64 `yaml:"penalty" toml:"penalty" env:"PENALTY"`
	Padding      float64 `yaml:"padding" toml:"padding" env:"PADDING"`
	SafetyRadius float64 `yaml:"safetyRadius" toml:"safetyRadius" env:"SAFETY_RADIUS"`
	PitchBias    float64 `yaml:"pitchBias" toml:"pitchBias" env:"PITCH_BIAS"`
}

type FollowConfig struct {
	Tolerance     float64 `yaml:"tolerance" toml:"tolerance" env:"TOLERANCE"`
	CancelOnInput bool    `yaml:"cancelOnInput" toml:"cancelOnInput" env:"CANCEL_ON_INPUT"`
}

// Flags toggles the move, rotate and zoom stages
type Flags struct {
	Move   bool `yaml:"move" toml:"move" env:"MOVE"`
	Rotate bool `yaml:"rotate" toml:"rotate" env:"ROTATE"`
	Zoom   bool `yaml:"zoom" toml:"zoom" env:"ZOOM"`
}

// AllEnabled has every stage switched on
var AllEnabled = Flags{Move: true, Rotate: true, Zoom: true}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		Projection: Perspective,
		Camera: CameraConfig{
			OffsetBack:   10,
			OffsetUp:     14,
			LookAtOffset: 2,
		},
		Move: MoveConfig{
			InOutSpeed:       5,
			LateralSpeed:     5,
			RotateSpeed:      5,
			SpeedScaleFactor: 2,
		},
		Bounds: BoundsConfig{
			MinX:     -50,
			MinZ:     -50,
			MaxX:     50,
			MaxZ:     50,
			MinAngle: -30,
			MaxAngle: 30,
		},
		Zoom: ZoomConfig{
			Speed:    4,
			Near:     2,
			Far:      16,
			Starting: 5,
		},
		Obstruction: ObstructionConfig{
			Enabled:      true,
			Penalty:      1,
			Padding:      0.5,
			SafetyRadius: 5,
			PitchBias:    20,
		},
		Follow: FollowConfig{
			Tolerance:     0.01,
			CancelOnInput: true,
		},
		Enabled: AllEnabled,
	}
}

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid rig config")

// Validate checks the ranges that the pipeline relies on
func (c Config) Validate() error {
	var errs []error
	switch c.Projection {
	case Orthographic, Perspective:
	default:
		errs = append(errs, fmt.Errorf("projection must be %q or %q, got %q", Orthographic, Perspective, c.Projection))
	}
	if c.Bounds.MinX > c.Bounds.MaxX || c.Bounds.MinZ > c.Bounds.MaxZ {
		errs = append(errs, fmt.Errorf("bounds min (%g, %g) exceeds max (%g, %g)",
			c.Bounds.MinX, c.Bounds.MinZ, c.Bounds.MaxX, c.Bounds.MaxZ))
	}
	if c.Bounds.MinAngle > c.Bounds.MaxAngle {
		errs = append(errs, fmt.Errorf("minAngle %g exceeds maxAngle %g", c.Bounds.MinAngle, c.Bounds.MaxAngle))
	}
	if c.Zoom.Near > c.Zoom.Far {
		errs = append(errs, fmt.Errorf("zoom near %g exceeds far %g", c.Zoom.Near, c.Zoom.Far))
	} else if c.Zoom.Starting < c.Zoom.Near || c.Zoom.Starting > c.Zoom.Far {
		errs = append(errs, fmt.Errorf("starting zoom %g outside [%g, %g]", c.Zoom.Starting, c.Zoom.Near, c.Zoom.Far))
	}
	if c.Follow.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("follow tolerance must be positive, got %g", c.Follow.Tolerance))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// bounds converts the configured limits into a clamper
func (c Config) bounds() Bounds {
	return Bounds{
		Min:      geometry.NewVector2(c.Bounds.MinX, c.Bounds.MinZ),
		Max:      geometry.NewVector2(c.Bounds.MaxX, c.Bounds.MaxZ),
		MinAngle: c.Bounds.MinAngle,
		MaxAngle: c.Bounds.MaxAngle,
	}
}

func (c Config) motion() Motion {
	return Motion{
		InOutSpeed:    c.Move.InOutSpeed,
		LateralSpeed:  c.Move.LateralSpeed,
		RotateSpeed:   c.Move.RotateSpeed,
		ZoomSpeed:     c.Zoom.Speed,
		NearZoomLimit: c.Zoom.Near,
		FarZoomLimit:  c.Zoom.Far,
	}
}
