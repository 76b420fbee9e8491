package main

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/philipparndt/gocam/pkg/input"
)

var keyNames = map[fyne.KeyName]input.Key{
	fyne.KeyW:             input.KeyW,
	fyne.KeyA:             input.KeyA,
	fyne.KeyS:             input.KeyS,
	fyne.KeyD:             input.KeyD,
	fyne.KeyUp:            input.KeyUp,
	fyne.KeyDown:          input.KeyDown,
	fyne.KeyLeft:          input.KeyLeft,
	fyne.KeyRight:         input.KeyRight,
	fyne.KeyQ:             input.KeyQ,
	fyne.KeyE:             input.KeyE,
	fyne.KeyZ:             input.KeyZ,
	fyne.KeyX:             input.KeyX,
	desktop.KeyShiftLeft:  input.KeyShift,
	desktop.KeyShiftRight: input.KeyShift,
}

// heldKeys tracks key state from fyne key events, which arrive on the main
// goroutine while the tick loop reads them from its own.
type heldKeys struct {
	mu   sync.Mutex
	down map[fyne.KeyName]bool
}

func newHeldKeys() *heldKeys {
	return &heldKeys{down: map[fyne.KeyName]bool{}}
}

func (h *heldKeys) press(e *fyne.KeyEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.down[e.Name] = true
}

func (h *heldKeys) release(e *fyne.KeyEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.down, e.Name)
}

// Keys returns the held rig keys
func (h *heldKeys) Keys() input.KeySet {
	h.mu.Lock()
	defer h.mu.Unlock()
	keys := input.KeySet{}
	for name := range h.down {
		if k, ok := keyNames[name]; ok {
			keys[k] = true
		}
	}
	return keys
}
