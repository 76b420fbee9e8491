package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/philipparndt/gocam/pkg/geometry"
)

const asciiWall = `solid wall
  facet normal 0 0 -1
    outer loop
      vertex -1 -1 5
      vertex 3 -1 5
      vertex -1 3 5
    endloop
  endfacet
endsolid wall
`

func TestParseASCII(t *testing.T) {
	model, err := ParseReader(strings.NewReader(asciiWall))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.Name != "wall" {
		t.Errorf("expected name %q, got %q", "wall", model.Name)
	}
	if model.TriangleCount() != 1 {
		t.Fatalf("expected 1 triangle, got %d", model.TriangleCount())
	}
	tri := model.Triangles[0]
	if tri.V2 != geometry.NewVector3(3, -1, 5) {
		t.Errorf("unexpected second vertex %v", tri.V2)
	}
	if tri.Normal != geometry.NewVector3(0, 0, -1) {
		t.Errorf("unexpected normal %v", tri.Normal)
	}
}

func TestParseASCIIBadVertex(t *testing.T) {
	bad := strings.Replace(asciiWall, "vertex 3 -1 5", "vertex 3 nope 5", 1)
	if _, err := ParseReader(strings.NewReader(bad)); err == nil {
		t.Fatalf("expected an error for a malformed vertex")
	}
}

func writeBinary(t *testing.T, name string, tris []geometry.Triangle, declared uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, name)
	buf.Write(header)
	if err := binary.Write(&buf, binary.LittleEndian, declared); err != nil {
		t.Fatal(err)
	}
	for _, tri := range tris {
		for _, v := range []geometry.Vector3{tri.Normal, tri.V1, tri.V2, tri.V3} {
			vals := [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
			if err := binary.Write(&buf, binary.LittleEndian, vals); err != nil {
				t.Fatal(err)
			}
		}
		if err := binary.Write(&buf, binary.LittleEndian, uint16(0)); err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

func TestParseBinary(t *testing.T) {
	tri := geometry.NewTriangle(
		geometry.NewVector3(0, 1, 0),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 0, 1),
	)

	// A binary header that begins with "solid" must still be detected as binary.
	data := writeBinary(t, "solid exported", []geometry.Triangle{tri, tri}, 2)
	model, err := ParseReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", model.TriangleCount())
	}
	if model.Triangles[1].V2 != tri.V2 {
		t.Errorf("expected %v, got %v", tri.V2, model.Triangles[1].V2)
	}
	if model.Name != "solid exported" {
		t.Errorf("unexpected name %q", model.Name)
	}
}

func TestParseBinaryTruncated(t *testing.T) {
	tri := geometry.NewTriangle(geometry.Up, geometry.Zero, geometry.Right, geometry.Forward)
	data := writeBinary(t, "short", []geometry.Triangle{tri}, 3)

	_, err := ParseReader(bytes.NewReader(data))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestTransformZUpToYUp(t *testing.T) {
	model := NewModel("tower")
	model.AddTriangle(geometry.NewTriangle(
		geometry.Zero,
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 0, 10),
	))

	moved := model.Transform(ZUpToYUp)
	bbox := moved.BoundingBox()
	if bbox.Max.Y != 10 {
		t.Errorf("expected height 10 on Y after conversion, got %v", bbox.Max.Y)
	}
	if model.Triangles[0].V3.Z != 10 {
		t.Errorf("Transform must not modify the source model")
	}
}
