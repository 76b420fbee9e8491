package rig

import (
	"fmt"

	"github.com/philipparndt/gocam/pkg/geometry"
)

// Target is anything with a world position the rig can follow. The rig never
// owns its targets.
type Target interface {
	Position() geometry.Vector3
}

// Fixed is a target that never moves
type Fixed geometry.Vector3

func (f Fixed) Position() geometry.Vector3 { return geometry.Vector3(f) }

// Liveness is implemented by targets that can disappear while followed
type Liveness interface {
	Alive() bool
}

// FollowState is the state of a FollowTask
type FollowState int

const (
	Idle FollowState = iota
	Following
)

func (s FollowState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Following:
		return "following"
	default:
		return "unknown"
	}
}

// FollowTask eases the rig towards a target over many ticks. It is resumed once
// per tick through Step and holds no state beyond the target itself.
type FollowTask struct {
	target    Target
	tolerance float64
}

// NewFollowTask creates an idle task that finishes within tolerance of the target
func NewFollowTask(tolerance float64) *FollowTask {
	return &FollowTask{tolerance: tolerance}
}

// SetTolerance changes the arrival distance
func (f *FollowTask) SetTolerance(tolerance float64) {
	f.tolerance = tolerance
}

// SetTarget starts following t, or stops when t is nil
func (f *FollowTask) SetTarget(t Target) {
	f.target = t
}

// Cancel returns the task to Idle
func (f *FollowTask) Cancel() {
	f.target = nil
}

// Target returns the followed target, nil when idle
func (f *FollowTask) Target() Target {
	return f.target
}

// State reports whether a target is being followed
func (f *FollowTask) State() FollowState {
	if f.target == nil {
		return Idle
	}
	return Following
}

// Goal returns where the rig is heading: the target projected onto the rig's
// ground plane and passed through clamp when one is given.
func (f *FollowTask) Goal(position geometry.Vector3, clamp func(geometry.Vector3) geometry.Vector3) geometry.Vector3 {
	goal := f.target.Position().WithY(position.Y)
	if clamp != nil {
		goal = clamp(goal)
	}
	return goal
}

// Step advances position one tick towards the target. arrived is true on the tick
// the task finishes; the task is Idle afterwards.
func (f *FollowTask) Step(position geometry.Vector3, dt float64, clamp func(geometry.Vector3) geometry.Vector3) (next geometry.Vector3, arrived bool) {
	if f.target == nil {
		return position, false
	}
	if l, ok := f.target.(Liveness); ok && !l.Alive() {
		f.target = nil
		return position, false
	}

	goal := f.Goal(position, clamp)
	next = position.Lerp(goal, dt)
	if next.GroundDistance(goal) <= f.tolerance {
		f.target = nil
		return goal, true
	}
	return next, false
}

// MarshalText encodes the state by name
func (s FollowState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state written by MarshalText
func (s *FollowState) UnmarshalText(text []byte) error {
	for _, candidate := range []FollowState{Idle, Following} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown follow state %q", text)
}
