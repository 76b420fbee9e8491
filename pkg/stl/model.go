package stl

import (
	"github.com/philipparndt/gocam/pkg/geometry"
)

// Model is a triangle soup loaded from an STL file. The camera rig treats it as
// static collision geometry.
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// Transform returns a copy of the model with every vertex mapped through fn.
// Normals are recomputed from the transformed vertices.
func (m *Model) Transform(fn func(geometry.Vector3) geometry.Vector3) *Model {
	out := &Model{Name: m.Name, Triangles: make([]geometry.Triangle, len(m.Triangles))}
	for i, tri := range m.Triangles {
		moved := geometry.Triangle{V1: fn(tri.V1), V2: fn(tri.V2), V3: fn(tri.V3)}
		moved.Normal = moved.CalculateNormal()
		out.Triangles[i] = moved
	}
	return out
}

// ZUpToYUp converts a vertex from the Z-up convention most STL exporters use to
// the rig's Y-up world.
func ZUpToYUp(v geometry.Vector3) geometry.Vector3 {
	return geometry.NewVector3(v.X, v.Z, -v.Y)
}
