package scene

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gocam/pkg/openscad"
	"github.com/philipparndt/gocam/pkg/stl"
)

// LoadOptions controls how scene files are turned into meshes
type LoadOptions struct {
	// ZUp converts vertices from the Z-up convention used by most CAD exports.
	ZUp bool
}

// Load reads an STL or OpenSCAD file into a raycastable mesh. OpenSCAD sources are
// compiled to a temporary STL with the openscad binary first.
func Load(ctx context.Context, path string, opts LoadOptions) (*Mesh, error) {
	stlPath := path
	if strings.EqualFold(filepath.Ext(path), ".scad") {
		tmp, err := os.MkdirTemp("", "gocam-scad-")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp dir: %w", err)
		}
		defer os.RemoveAll(tmp)

		stlPath = filepath.Join(tmp, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+".stl")
		compiler := openscad.NewCompiler(filepath.Dir(path))
		if err := compiler.Compile(ctx, path, stlPath); err != nil {
			return nil, err
		}
	}

	model, err := stl.Parse(stlPath)
	if err != nil {
		return nil, err
	}
	if opts.ZUp {
		model = model.Transform(stl.ZUpToYUp)
	}

	mesh, err := NewMesh(model)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

// Dependencies lists the files whose change should trigger a reload of path
func Dependencies(path string) ([]string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".scad") {
		return []string{path}, nil
	}
	return openscad.NewCompiler(filepath.Dir(path)).ResolveDependencies(path)
}
