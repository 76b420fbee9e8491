package viewer

import (
	"image/color"
	"testing"

	"github.com/philipparndt/gocam/pkg/geometry"
)

func TestRasterDepthTest(t *testing.T) {
	r := NewRaster(20, 20)
	near := color.RGBA{255, 0, 0, 255}
	far := color.RGBA{0, 0, 255, 255}

	r.FillTriangle([3]float64{0, 0, 1}, [3]float64{19, 0, 1}, [3]float64{0, 19, 1}, near)
	r.FillTriangle([3]float64{0, 0, 5}, [3]float64{19, 0, 5}, [3]float64{0, 19, 5}, far)

	if got := r.Image().RGBAAt(3, 3); got != near {
		t.Errorf("farther triangle overwrote the nearer one: %v", got)
	}
	if got := r.Image().RGBAAt(18, 18); got != (color.RGBA{A: 255}) {
		t.Errorf("pixel outside both triangles was drawn: %v", got)
	}
}

func TestRasterLineClipped(t *testing.T) {
	r := NewRaster(10, 10)
	white := color.RGBA{255, 255, 255, 255}
	r.Line(-5, 5, 15, 5, white)
	for x := 0; x < 10; x++ {
		if r.Image().RGBAAt(x, 5) != white {
			t.Fatalf("pixel (%d, 5) not drawn", x)
		}
	}
}

func TestFrameRender(t *testing.T) {
	cam := Camera{Position: geometry.NewVector3(0, 0, -10), Target: geometry.Zero, Up: geometry.Up, FOV: DefaultFOV}
	f := Frame{
		Width:  64,
		Height: 48,
		Camera: cam,
		Triangles: []geometry.Triangle{geometry.NewTriangle(
			geometry.Zero,
			geometry.NewVector3(-3, -3, 0),
			geometry.NewVector3(3, -3, 0),
			geometry.NewVector3(0, 3, 0),
		)},
		Markers: []Marker{{Position: geometry.NewVector3(0, 0, -5), Color: PivotColor}},
	}

	img := f.Render()
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	if img.RGBAAt(32, 24) != PivotColor {
		t.Errorf("marker not drawn at the center: %v", img.RGBAAt(32, 24))
	}
	if got := img.RGBAAt(32, 30); got == Background {
		t.Errorf("triangle not drawn below the marker")
	}
	if got := img.RGBAAt(1, 1); got != Background {
		t.Errorf("corner should be background, got %v", got)
	}
}

func TestFrameCaption(t *testing.T) {
	textPixels := func(f Frame) int {
		img := f.Render()
		n := 0
		for y := 0; y < 20; y++ {
			for x := 0; x < 60; x++ {
				if img.RGBAAt(x, y) == TextColor {
					n++
				}
			}
		}
		return n
	}

	f := Frame{Width: 80, Height: 40, Camera: Camera{Position: geometry.NewVector3(0, 0, -10), Up: geometry.Up, FOV: DefaultFOV}}
	if n := textPixels(f); n != 0 {
		t.Fatalf("blank frame has %d text pixels", n)
	}
	f.Caption = []string{"tick 42"}
	if n := textPixels(f); n == 0 {
		t.Error("caption was not drawn")
	}
}
