package viewer

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/rig"
)

// orbitPerPixel converts horizontal drag distance into orbit input
const orbitPerPixel = 0.2

// RigView is a fyne widget showing the scene through the rig camera. Pointer
// gestures on the widget are published to an emitter: dragging orbits, scrolling
// zooms. The hovered position is kept for edge-scrolling sources.
type RigView struct {
	widget.BaseWidget

	emitter rig.Emitter
	image   *canvas.Image

	mu        sync.Mutex
	triangles []geometry.Triangle
	targets   []geometry.Vector3
	snapshot  rig.Snapshot
	size      fyne.Size
	pointer   geometry.Vector2
	hovered   bool
}

// NewRigView creates a view publishing gestures to emitter
func NewRigView(emitter rig.Emitter) *RigView {
	v := &RigView{
		emitter: emitter,
		image:   canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
	}
	v.image.FillMode = canvas.ImageFillStretch
	v.image.ScaleMode = canvas.ImageScalePixels
	v.ExtendBaseWidget(v)
	return v
}

// SetTriangles replaces the displayed geometry
func (v *RigView) SetTriangles(tris []geometry.Triangle) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.triangles = tris
}

// SetTargets replaces the follow target markers
func (v *RigView) SetTargets(targets []geometry.Vector3) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.targets = targets
}

// Pointer returns the last hovered position and whether the pointer is over the view
func (v *RigView) Pointer() (geometry.Vector2, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pointer, v.hovered
}

// Field returns the view size in pixels
func (v *RigView) Field() (width, height float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return float64(v.size.Width), float64(v.size.Height)
}

// Update renders s. It must run on the fyne main goroutine.
func (v *RigView) Update(s rig.Snapshot) {
	v.mu.Lock()
	v.snapshot = s
	w, h := int(v.size.Width), int(v.size.Height)
	if w < 1 || h < 1 {
		v.mu.Unlock()
		return
	}
	frame := NewFrame(s, w, h)
	frame.Triangles = v.triangles
	for _, t := range v.targets {
		frame.Markers = append(frame.Markers, Marker{Position: t, Color: TargetColor})
	}
	v.mu.Unlock()

	v.image.Image = frame.Render()
	v.image.Refresh()
}

// CreateRenderer implements fyne.Widget
func (v *RigView) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(Background)
	return &rigViewRenderer{view: v, objects: []fyne.CanvasObject{bg, v.image}}
}

// Dragged orbits by the horizontal drag distance
func (v *RigView) Dragged(event *fyne.DragEvent) {
	if dx := float64(event.Dragged.DX); dx != 0 {
		v.emitter.EmitMouseOrbitMode(true)
		v.emitter.EmitOrbit(dx*orbitPerPixel, 0)
	}
}

// DragEnd leaves orbit mode
func (v *RigView) DragEnd() {
	v.emitter.EmitMouseOrbitMode(false)
}

// Scrolled zooms one notch per event
func (v *RigView) Scrolled(event *fyne.ScrollEvent) {
	switch {
	case event.Scrolled.DY > 0:
		v.emitter.EmitZoom(-3)
	case event.Scrolled.DY < 0:
		v.emitter.EmitZoom(3)
	}
}

// MouseIn implements desktop.Hoverable
func (v *RigView) MouseIn(event *desktop.MouseEvent) {
	v.MouseMoved(event)
}

// MouseMoved implements desktop.Hoverable
func (v *RigView) MouseMoved(event *desktop.MouseEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pointer = geometry.NewVector2(float64(event.Position.X), float64(event.Position.Y))
	v.hovered = true
}

// MouseOut implements desktop.Hoverable
func (v *RigView) MouseOut() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hovered = false
}

// rigViewRenderer implements fyne.WidgetRenderer
type rigViewRenderer struct {
	view    *RigView
	objects []fyne.CanvasObject
}

func (r *rigViewRenderer) Layout(size fyne.Size) {
	for _, o := range r.objects {
		o.Resize(size)
		o.Move(fyne.NewPos(0, 0))
	}

	r.view.mu.Lock()
	changed := r.view.size != size
	r.view.size = size
	s := r.view.snapshot
	r.view.mu.Unlock()

	if changed {
		r.view.Update(s)
	}
}

func (r *rigViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *rigViewRenderer) Refresh() {
	canvas.Refresh(r.view)
}

func (r *rigViewRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *rigViewRenderer) Destroy() {}
