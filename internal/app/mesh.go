package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gocam/pkg/geometry"
)

// lightDir is the baked directional light, pointing down and slightly forward
var lightDir = geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

// bakedColor shades a face by its normal with 30% ambient
func bakedColor(normal geometry.Vector3) [4]uint8 {
	intensity := math.Max(0.3, -normal.Dot(lightDir))
	base := 200.0
	return [4]uint8{
		uint8(base * intensity * 0.5),
		uint8(base * intensity * 0.6),
		uint8(base * intensity),
		255,
	}
}

// toRaylibMesh converts triangles to a raylib mesh with baked lighting and uploads
// it. Must be called on the main thread.
func toRaylibMesh(triangles []geometry.Triangle) rl.Mesh {
	vertexCount := len(triangles) * 3
	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(len(triangles)),
	}

	vertices := make([]float32, 0, vertexCount*3)
	normals := make([]float32, 0, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := make([]uint8, 0, vertexCount*4)

	for _, t := range triangles {
		normal := t.CalculateNormal()
		c := bakedColor(normal)
		for _, v := range [3]geometry.Vector3{t.V1, t.V2, t.V3} {
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
			colors = append(colors, c[:]...)
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Texcoords = &texcoords[0]
		mesh.Colors = &colors[0]
	}

	rl.UploadMesh(&mesh, false)
	return mesh
}

// edge is an undirected triangle edge
type edge [2]geometry.Vector3

// less orders vectors so that an edge and its reverse share a key
func less(a, b geometry.Vector3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// uniqueEdges lists every edge of triangles once
func uniqueEdges(triangles []geometry.Triangle) []edge {
	seen := make(map[edge]struct{}, len(triangles)*3/2)
	edges := make([]edge, 0, len(triangles)*3/2)
	for _, t := range triangles {
		for _, e := range [3]edge{{t.V1, t.V2}, {t.V2, t.V3}, {t.V3, t.V1}} {
			if less(e[1], e[0]) {
				e[0], e[1] = e[1], e[0]
			}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

func vec(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
