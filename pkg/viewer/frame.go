package viewer

import (
	"image"
	"image/color"
	"math"

	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/rig"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	Background  = color.RGBA{30, 30, 36, 255}
	MeshColor   = color.RGBA{180, 190, 200, 255}
	PivotColor  = color.RGBA{255, 200, 0, 255}
	TargetColor = color.RGBA{0, 200, 255, 255}
	GridColor   = color.RGBA{60, 60, 70, 255}
	TextColor   = color.RGBA{230, 230, 230, 255}
)

// Marker is a world point drawn on top of the scene
type Marker struct {
	Position geometry.Vector3
	Color    color.RGBA
}

// Frame describes one image to render
type Frame struct {
	Width, Height int
	Camera        Camera
	Triangles     []geometry.Triangle
	Markers       []Marker
	// Grid draws ground lines every GridStep units within GridExtent of the origin.
	GridStep, GridExtent float64
	// Caption lines are printed in the top left corner
	Caption []string
}

// NewFrame creates a frame looking through the rig camera of s, with the pivot
// marked.
func NewFrame(s rig.Snapshot, width, height int) Frame {
	return Frame{
		Width:      width,
		Height:     height,
		Camera:     FromSnapshot(s),
		Markers:    []Marker{{Position: s.Position, Color: PivotColor}},
		GridStep:   5,
		GridExtent: 50,
	}
}

func (f Frame) project(p geometry.Vector3) [3]float64 {
	x, y, z := f.Camera.Project(p, float64(f.Width), float64(f.Height))
	return [3]float64{x, y, z}
}

// shade scales col by a headlight term so faces turned away from the camera darken
func shade(col color.RGBA, normal, view geometry.Vector3) color.RGBA {
	k := 0.3 + 0.7*math.Abs(normal.Normalize().Dot(view))
	return color.RGBA{
		R: uint8(float64(col.R) * k),
		G: uint8(float64(col.G) * k),
		B: uint8(float64(col.B) * k),
		A: col.A,
	}
}

// Render draws the frame into a new image
func (f Frame) Render() *image.RGBA {
	r := NewRaster(f.Width, f.Height)
	r.Clear(Background)

	forward, _, _ := f.Camera.basis()
	if f.GridStep > 0 {
		f.drawGrid(r)
	}

	for _, tri := range f.Triangles {
		a, b, c := f.project(tri.V1), f.project(tri.V2), f.project(tri.V3)
		// Skip triangles crossing the near plane
		if !f.Camera.Orthographic && (a[2] <= 0.01 || b[2] <= 0.01 || c[2] <= 0.01) {
			continue
		}
		r.FillTriangle(a, b, c, shade(MeshColor, tri.CalculateNormal(), forward))
	}

	for _, m := range f.Markers {
		p := f.project(m.Position)
		if !f.Camera.Orthographic && p[2] <= 0.01 {
			continue
		}
		r.Dot(int(p[0]), int(p[1]), 3, m.Color)
	}

	img := r.Image()
	drawCaption(img, f.Caption)
	return img
}

// drawCaption prints lines with the built-in bitmap face
func drawCaption(img *image.RGBA, lines []string) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(TextColor),
		Face: face,
	}
	lineHeight := face.Metrics().Height.Ceil() + 2
	for i, line := range lines {
		d.Dot = fixed.P(6, 4+face.Ascent+i*lineHeight)
		d.DrawString(line)
	}
}

func (f Frame) drawGrid(r *Raster) {
	const near = 0.5
	forward, _, _ := f.Camera.basis()
	depth := func(p geometry.Vector3) float64 { return p.Sub(f.Camera.Position).Dot(forward) }

	line := func(from, to geometry.Vector3) {
		if !f.Camera.Orthographic {
			// Clip the segment against the near plane
			da, db := depth(from), depth(to)
			switch {
			case da < near && db < near:
				return
			case da < near:
				from = from.Lerp(to, (near-da)/(db-da))
			case db < near:
				to = to.Lerp(from, (near-db)/(da-db))
			}
		}
		a, b := f.project(from), f.project(to)
		r.Line(int(a[0]), int(a[1]), int(b[0]), int(b[1]), GridColor)
	}

	e := f.GridExtent
	for v := -e; v <= e; v += f.GridStep {
		line(geometry.NewVector3(v, 0, -e), geometry.NewVector3(v, 0, e))
		line(geometry.NewVector3(-e, 0, v), geometry.NewVector3(e, 0, v))
	}
}
