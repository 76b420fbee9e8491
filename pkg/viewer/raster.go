package viewer

import (
	"image"
	"image/color"
	"math"
)

// Raster is an RGBA image with a depth buffer
type Raster struct {
	img   *image.RGBA
	depth []float64
}

// NewRaster creates a cleared raster
func NewRaster(width, height int) *Raster {
	r := &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
	r.Clear(color.RGBA{A: 255})
	return r
}

// Image returns the backing image
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Clear fills the image with bg and resets the depth buffer
func (r *Raster) Clear(bg color.RGBA) {
	b := r.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r.img.SetRGBA(x, y, bg)
		}
	}
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}
}

func (r *Raster) plot(x, y int, z float64, col color.RGBA) {
	b := r.img.Bounds()
	if x < 0 || y < 0 || x >= b.Max.X || y >= b.Max.Y {
		return
	}
	idx := y*b.Max.X + x
	if z < r.depth[idx] {
		r.depth[idx] = z
		r.img.SetRGBA(x, y, col)
	}
}

// span returns where scanline y crosses the edge (x1,y1,z1)-(x2,y2,z2)
func span(y, x1, y1, z1, x2, y2, z2 float64) (x, z float64, ok bool) {
	if y1 == y2 || y < y1 || y > y2 {
		return 0, 0, false
	}
	t := (y - y1) / (y2 - y1)
	return x1 + t*(x2-x1), z1 + t*(z2-z1), true
}

// FillTriangle fills a screen-space triangle with depth testing. Each vertex is
// given as screen x, screen y and depth.
func (r *Raster) FillTriangle(a, b, c [3]float64, col color.RGBA) {
	v := [3][3]float64{a, b, c}
	// Sort vertices by Y coordinate (top to bottom)
	if v[0][1] > v[1][1] {
		v[0], v[1] = v[1], v[0]
	}
	if v[1][1] > v[2][1] {
		v[1], v[2] = v[2], v[1]
	}
	if v[0][1] > v[1][1] {
		v[0], v[1] = v[1], v[0]
	}

	bounds := r.img.Bounds()
	yStart := int(math.Max(0, math.Ceil(v[0][1])))
	yEnd := int(math.Min(float64(bounds.Max.Y-1), v[2][1]))

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		// The long edge always spans the scanline; pick the short edge that does
		xa, za, _ := span(fy, v[0][0], v[0][1], v[0][2], v[2][0], v[2][1], v[2][2])
		xb, zb, ok := span(fy, v[0][0], v[0][1], v[0][2], v[1][0], v[1][1], v[1][2])
		if !ok {
			xb, zb, ok = span(fy, v[1][0], v[1][1], v[1][2], v[2][0], v[2][1], v[2][2])
		}
		if !ok {
			continue
		}
		if xa > xb {
			xa, xb = xb, xa
			za, zb = zb, za
		}

		xFrom := int(math.Max(0, math.Ceil(xa)))
		xTo := int(math.Min(float64(bounds.Max.X-1), xb))
		for x := xFrom; x <= xTo; x++ {
			t := 0.0
			if xb != xa {
				t = (float64(x) - xa) / (xb - xa)
			}
			r.plot(x, y, za+t*(zb-za), col)
		}
	}
}

// Line draws an overlay line using Bresenham's algorithm. Lines ignore and do
// not write depth.
func (r *Raster) Line(x1, y1, x2, y2 int, col color.RGBA) {
	bounds := r.img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			r.img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Dot draws a filled overlay square of the given radius centered on (x, y)
func (r *Raster) Dot(x, y, radius int, col color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			px, py := x+dx, y+dy
			if image.Pt(px, py).In(r.img.Bounds()) {
				r.img.SetRGBA(px, py, col)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
