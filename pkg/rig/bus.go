package rig

import (
	"sync"

	"github.com/philipparndt/gocam/pkg/geometry"
)

// Emitter is the contract input sources publish against
type Emitter interface {
	EmitMove(v geometry.Vector3)
	EmitOrbit(yaw, pitch float64)
	EmitZoom(s float64)
	EmitShift(v geometry.Vector3)
	EmitSpeedBoost()
	EmitMouseOrbitMode(active bool)
}

// Listener receives events published on a Bus
type Listener interface {
	OnMove(v geometry.Vector3)
	OnOrbit(yaw, pitch float64)
	OnZoom(s float64)
	OnShift(v geometry.Vector3)
	OnSpeedBoost()
	OnMouseOrbitMode(active bool)
}

type subscriber struct {
	id       uint64
	listener Listener
}

// Bus fans input events out to subscribed listeners. Delivery is synchronous on the
// publishing goroutine.
type Bus struct {
	mu          sync.RWMutex
	nextID      uint64
	subscribers []subscriber
}

var _ Emitter = (*Bus)(nil)

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscription ties a listener to a bus until Close is called
type Subscription struct {
	bus  *Bus
	id   uint64
	once sync.Once
}

// Subscribe registers l and returns the handle that removes it
func (b *Bus) Subscribe(l Listener) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subscribers = append(b.subscribers, subscriber{id: b.nextID, listener: l})
	return &Subscription{bus: b, id: b.nextID}
}

// Close removes the listener. It is safe to call more than once.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.bus.remove(s.id)
	})
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subscribers {
		if sub.id == id {
			b.subscribers = append(b.subscribers[:i:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Len returns the number of active subscriptions
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

func (b *Bus) each(fn func(Listener)) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()
	for _, sub := range subs {
		fn(sub.listener)
	}
}

func (b *Bus) EmitMove(v geometry.Vector3) {
	b.each(func(l Listener) { l.OnMove(v) })
}

func (b *Bus) EmitOrbit(yaw, pitch float64) {
	b.each(func(l Listener) { l.OnOrbit(yaw, pitch) })
}

func (b *Bus) EmitZoom(s float64) {
	b.each(func(l Listener) { l.OnZoom(s) })
}

func (b *Bus) EmitShift(v geometry.Vector3) {
	b.each(func(l Listener) { l.OnShift(v) })
}

func (b *Bus) EmitSpeedBoost() {
	b.each(func(l Listener) { l.OnSpeedBoost() })
}

func (b *Bus) EmitMouseOrbitMode(active bool) {
	b.each(func(l Listener) { l.OnMouseOrbitMode(active) })
}
