package scene

import "github.com/philipparndt/gocam/pkg/geometry"

// Stats summarizes a mesh for display
type Stats struct {
	Name          string
	TriangleCount int
	Bounds        geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
}

// Summarize collects display statistics for a mesh
func Summarize(m *Mesh) Stats {
	stats := Stats{
		Name:          m.Name(),
		TriangleCount: m.TriangleCount(),
		Bounds:        m.Bounds(),
		Dimensions:    m.Bounds().Size(),
	}
	for _, t := range m.Triangles() {
		stats.SurfaceArea += t.Area()
	}
	return stats
}
