package input

import (
	"testing"

	"github.com/philipparndt/gocam/pkg/geometry"
)

type event struct {
	kind  string
	vec   geometry.Vector3
	yaw   float64
	zoom  float64
	state bool
}

type fakeEmitter struct {
	events []event
}

func (f *fakeEmitter) EmitMove(v geometry.Vector3) {
	f.events = append(f.events, event{kind: "move", vec: v})
}
func (f *fakeEmitter) EmitOrbit(yaw, pitch float64) {
	f.events = append(f.events, event{kind: "orbit", yaw: yaw})
}
func (f *fakeEmitter) EmitZoom(s float64) {
	f.events = append(f.events, event{kind: "zoom", zoom: s})
}
func (f *fakeEmitter) EmitShift(v geometry.Vector3) {
	f.events = append(f.events, event{kind: "shift", vec: v})
}
func (f *fakeEmitter) EmitSpeedBoost() {
	f.events = append(f.events, event{kind: "boost"})
}
func (f *fakeEmitter) EmitMouseOrbitMode(active bool) {
	f.events = append(f.events, event{kind: "orbitMode", state: active})
}

func (f *fakeEmitter) moves() geometry.Vector3 {
	var sum geometry.Vector3
	for _, e := range f.events {
		if e.kind == "move" {
			sum = sum.Add(e.vec)
		}
	}
	return sum
}

func (f *fakeEmitter) count(kind string) int {
	n := 0
	for _, e := range f.events {
		if e.kind == kind {
			n++
		}
	}
	return n
}

func TestKeyboard(t *testing.T) {
	tests := []struct {
		name  string
		keys  KeySet
		move  geometry.Vector3
		yaw   float64
		zoom  float64
		boost bool
	}{
		{"nothing", Keys(), geometry.Zero, 0, 0, false},
		{"forward once for W and Up", Keys(KeyW, KeyUp), geometry.Forward, 0, 0, false},
		{"diagonal", Keys(KeyS, KeyD), geometry.Right.Sub(geometry.Forward), 0, 0, false},
		{"arrows cancel", Keys(KeyLeft, KeyRight), geometry.Zero, 0, 0, false},
		{"orbit left", Keys(KeyQ), geometry.Zero, 1, 0, false},
		{"orbit right", Keys(KeyE), geometry.Zero, -1, 0, false},
		{"zoom in with boost", Keys(KeyZ, KeyShift), geometry.Zero, 0, -1, true},
		{"zoom out", Keys(KeyX), geometry.Zero, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &fakeEmitter{}
			NewKeyboard(e).Poll(tt.keys)

			if e.moves() != tt.move {
				t.Errorf("expected move %v, got %v", tt.move, e.moves())
			}
			var yaw, zoom float64
			for _, ev := range e.events {
				yaw += ev.yaw
				zoom += ev.zoom
			}
			if yaw != tt.yaw || zoom != tt.zoom {
				t.Errorf("expected yaw %v zoom %v, got %v %v", tt.yaw, tt.zoom, yaw, zoom)
			}
			if (e.count("boost") == 1) != tt.boost {
				t.Errorf("boost: expected %v, got %d events", tt.boost, e.count("boost"))
			}
		})
	}
}

func TestMouseEdges(t *testing.T) {
	screen := geometry.NewVector2(1000, 800)
	tests := []struct {
		name     string
		pointer  geometry.Vector2
		expected geometry.Vector3
	}{
		{"center", geometry.NewVector2(500, 400), geometry.Zero},
		{"top", geometry.NewVector2(500, 10), geometry.Forward},
		{"bottom", geometry.NewVector2(500, 790), geometry.Forward.Mul(-1)},
		{"left", geometry.NewVector2(20, 400), geometry.Right.Mul(-1)},
		{"top right corner", geometry.NewVector2(990, 5), geometry.Forward.Add(geometry.Right)},
		{"outside", geometry.NewVector2(-5, 10), geometry.Zero},
		{"below screen", geometry.NewVector2(500, 900), geometry.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &fakeEmitter{}
			NewMouse(e, nil).Poll(MouseState{Position: tt.pointer, Screen: screen})
			if e.moves() != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, e.moves())
			}
		})
	}
}

func TestMouseOutsideIgnoresEverything(t *testing.T) {
	e := &fakeEmitter{}
	NewMouse(e, nil).Poll(MouseState{
		Position: geometry.NewVector2(2000, 10),
		Screen:   geometry.NewVector2(1000, 800),
		Right:    true,
		Wheel:    1,
	})
	if len(e.events) != 0 {
		t.Errorf("expected no events, got %+v", e.events)
	}
}

func TestMouseOrbit(t *testing.T) {
	e := &fakeEmitter{}
	m := NewMouse(e, nil)
	screen := geometry.NewVector2(1000, 800)

	m.Poll(MouseState{Position: geometry.NewVector2(500, 400), Screen: screen, Right: true})
	if !m.Orbiting() || e.count("orbitMode") != 1 || !e.events[0].state {
		t.Fatalf("right press should enter orbit mode: %+v", e.events)
	}

	m.Poll(MouseState{Position: geometry.NewVector2(520, 400), Screen: screen, Right: true})
	m.Poll(MouseState{Position: geometry.NewVector2(480, 400), Screen: screen, Right: true})
	m.Poll(MouseState{Position: geometry.NewVector2(500, 400), Screen: screen, Right: true})

	var yaws []float64
	for _, ev := range e.events {
		if ev.kind == "orbit" {
			yaws = append(yaws, ev.yaw)
		}
	}
	if len(yaws) != 2 || yaws[0] != 1 || yaws[1] != -1 {
		t.Errorf("unexpected orbit events: %v", yaws)
	}

	m.Poll(MouseState{Position: geometry.NewVector2(500, 400), Screen: screen})
	last := e.events[len(e.events)-1]
	if m.Orbiting() || last.kind != "orbitMode" || last.state {
		t.Errorf("release should leave orbit mode: %+v", last)
	}
}

func TestMouseScroll(t *testing.T) {
	screen := geometry.NewVector2(1000, 800)
	center := geometry.NewVector2(500, 400)

	e := &fakeEmitter{}
	m := NewMouse(e, nil)
	m.Poll(MouseState{Position: center, Screen: screen, Wheel: 1})
	m.Poll(MouseState{Position: center, Screen: screen, Wheel: -2})

	if len(e.events) != 2 || e.events[0].zoom != -3 || e.events[1].zoom != 3 {
		t.Errorf("unexpected zoom events: %+v", e.events)
	}
}

// topDown looks straight down on the ground, one world unit per pixel
var topDown = ProjectorFunc(func(p geometry.Vector2) geometry.Ray {
	return geometry.NewRay(geometry.NewVector3(p.X, 10, p.Y), geometry.NewVector3(0, -1, 0))
})

func TestMouseDragShift(t *testing.T) {
	e := &fakeEmitter{}
	m := NewMouse(e, topDown)
	screen := geometry.NewVector2(1000, 800)

	m.Poll(MouseState{Position: geometry.NewVector2(300, 300), Screen: screen, Left: true})
	if !m.Dragging() || e.count("shift") != 0 {
		t.Fatalf("drag start should only grab the ground: %+v", e.events)
	}

	m.Poll(MouseState{Position: geometry.NewVector2(310, 295), Screen: screen, Left: true})
	if e.count("shift") != 1 {
		t.Fatalf("expected one shift, got %+v", e.events)
	}
	shift := e.events[len(e.events)-1].vec
	if !shift.ApproxEqual(geometry.NewVector3(-10, 0, 5), 1e-10) {
		t.Errorf("expected shift (-10, 0, 5), got %v", shift)
	}

	m.Poll(MouseState{Position: geometry.NewVector2(310, 295), Screen: screen})
	if m.Dragging() {
		t.Error("release should end the drag")
	}
}

func TestMouseDragMissesGround(t *testing.T) {
	sky := ProjectorFunc(func(p geometry.Vector2) geometry.Ray {
		return geometry.NewRay(geometry.NewVector3(p.X, 10, p.Y), geometry.NewVector3(0, 1, 0))
	})
	e := &fakeEmitter{}
	m := NewMouse(e, sky)
	m.Poll(MouseState{Position: geometry.NewVector2(300, 300), Screen: geometry.NewVector2(1000, 800), Left: true})
	if m.Dragging() {
		t.Error("drag should not start when the ray misses the ground")
	}
}

func TestWidget(t *testing.T) {
	field := NewRect(100, 100, 200, 100)
	tests := []struct {
		name     string
		pointer  geometry.Vector2
		expected geometry.Vector3
	}{
		{"inside", geometry.NewVector2(200, 150), geometry.Zero},
		{"left band", geometry.NewVector2(105, 150), geometry.Right.Mul(-1)},
		{"bottom band", geometry.NewVector2(250, 195), geometry.Forward.Mul(-1)},
		{"top right", geometry.NewVector2(295, 101), geometry.Forward.Add(geometry.Right)},
		{"outside", geometry.NewVector2(50, 150), geometry.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &fakeEmitter{}
			NewWidget(e, field, DefaultRetreat).Poll(tt.pointer)
			if e.moves() != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, e.moves())
			}
		})
	}
}
