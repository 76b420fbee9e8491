package input

import "github.com/philipparndt/gocam/pkg/rig"

// Key identifies a key the keyboard source reacts to
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyQ
	KeyE
	KeyZ
	KeyX
	KeyShift
)

// KeyboardState reports which keys are held this frame
type KeyboardState interface {
	IsDown(k Key) bool
}

// KeySet is a KeyboardState backed by a set of held keys
type KeySet map[Key]bool

// IsDown implements KeyboardState
func (s KeySet) IsDown(k Key) bool { return s[k] }

// Keys returns a KeySet holding keys
func Keys(keys ...Key) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = true
	}
	return s
}

// Keyboard maps held keys to rig events: WASD or arrows move, Q and E orbit,
// Z and X zoom, Shift boosts.
type Keyboard struct {
	emitter rig.Emitter
}

// NewKeyboard creates a keyboard source publishing to e
func NewKeyboard(e rig.Emitter) *Keyboard {
	return &Keyboard{emitter: e}
}

// Poll publishes the events for one frame
func (k *Keyboard) Poll(state KeyboardState) {
	down := func(keys ...Key) bool {
		for _, key := range keys {
			if state.IsDown(key) {
				return true
			}
		}
		return false
	}

	if down(KeyW, KeyUp) {
		k.emitter.EmitMove(forward)
	}
	if down(KeyS, KeyDown) {
		k.emitter.EmitMove(backward)
	}
	if down(KeyD, KeyRight) {
		k.emitter.EmitMove(right)
	}
	if down(KeyA, KeyLeft) {
		k.emitter.EmitMove(left)
	}

	if down(KeyE) {
		k.emitter.EmitOrbit(-1, 0)
	}
	if down(KeyQ) {
		k.emitter.EmitOrbit(1, 0)
	}

	if down(KeyZ) {
		k.emitter.EmitZoom(-1)
	}
	if down(KeyX) {
		k.emitter.EmitZoom(1)
	}

	if down(KeyShift) {
		k.emitter.EmitSpeedBoost()
	}
}
