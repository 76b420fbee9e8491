package scene

import (
	"math"
	"sort"

	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/stl"
)

// chunkSize is the number of triangles grouped under one bounding box
const chunkSize = 64

type chunk struct {
	bounds    geometry.BoundingBox
	triangles []geometry.Triangle
}

// Mesh is a static triangle mesh with a two-level bounding box broadphase
type Mesh struct {
	name      string
	bounds    geometry.BoundingBox
	chunks    []chunk
	triangles []geometry.Triangle
}

// NewMesh builds a raycastable mesh from an STL model. Triangles are sorted along
// the longest axis of the model before being chunked so that chunk boxes stay tight.
func NewMesh(model *stl.Model) (*Mesh, error) {
	if model == nil || model.TriangleCount() == 0 {
		return nil, ErrEmptyScene
	}

	tris := make([]geometry.Triangle, len(model.Triangles))
	copy(tris, model.Triangles)

	bounds := model.BoundingBox()
	size := bounds.Size()
	key := func(v geometry.Vector3) float64 { return v.X }
	if size.Y > size.X && size.Y >= size.Z {
		key = func(v geometry.Vector3) float64 { return v.Y }
	} else if size.Z > size.X && size.Z > size.Y {
		key = func(v geometry.Vector3) float64 { return v.Z }
	}
	sort.Slice(tris, func(i, j int) bool {
		return key(tris[i].Center()) < key(tris[j].Center())
	})

	m := &Mesh{name: model.Name, bounds: bounds, triangles: tris}
	for start := 0; start < len(tris); start += chunkSize {
		end := start + chunkSize
		if end > len(tris) {
			end = len(tris)
		}
		c := chunk{bounds: geometry.NewBoundingBox(), triangles: tris[start:end]}
		for _, tri := range c.triangles {
			c.bounds.Extend(tri.V1)
			c.bounds.Extend(tri.V2)
			c.bounds.Extend(tri.V3)
		}
		m.chunks = append(m.chunks, c)
	}
	return m, nil
}

// Name returns the name of the source model
func (m *Mesh) Name() string {
	return m.name
}

// Bounds returns the bounding box of all triangles
func (m *Mesh) Bounds() geometry.BoundingBox {
	return m.bounds
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// Triangles returns the mesh triangles. The slice must not be modified.
func (m *Mesh) Triangles() []geometry.Triangle {
	return m.triangles
}

// Raycast returns the nearest triangle hit within maxDistance
func (m *Mesh) Raycast(origin, direction geometry.Vector3, maxDistance float64) (Hit, bool) {
	if direction.IsZero() || maxDistance <= 0 {
		return Hit{}, false
	}
	ray := geometry.NewRay(origin, direction)
	if _, ok := m.bounds.IntersectRay(ray, maxDistance); !ok {
		return Hit{}, false
	}

	best := math.Inf(1)
	for i := range m.chunks {
		c := &m.chunks[i]
		entry, ok := c.bounds.IntersectRay(ray, maxDistance)
		if !ok || entry > best {
			continue
		}
		for _, tri := range c.triangles {
			if d, ok := tri.IntersectRay(ray); ok && d <= maxDistance && d < best {
				best = d
			}
		}
	}
	if math.IsInf(best, 1) {
		return Hit{}, false
	}
	return Hit{Point: ray.At(best), Distance: best}, true
}
