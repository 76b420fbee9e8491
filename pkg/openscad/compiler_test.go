package openscad

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDependencies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scad"), "use <lib/walls.scad>\ninclude <./towers.scad>\n// use <ignored.scad>\ncube(1);\n")
	writeFile(t, filepath.Join(dir, "lib", "walls.scad"), "include <../towers.scad>\n")
	writeFile(t, filepath.Join(dir, "towers.scad"), "use <main.scad>\n")

	deps, err := NewCompiler(dir).ResolveDependencies("main.scad")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{
		filepath.Join(dir, "main.scad"):         true,
		filepath.Join(dir, "lib", "walls.scad"): true,
		filepath.Join(dir, "towers.scad"):       true,
	}
	if len(deps) != len(want) {
		t.Fatalf("expected %d dependencies, got %d: %v", len(want), len(deps), deps)
	}
	for _, d := range deps {
		if !want[d] {
			t.Errorf("unexpected dependency %s", d)
		}
	}
}

func TestResolveDependenciesMissingFile(t *testing.T) {
	if _, err := NewCompiler(t.TempDir()).ResolveDependencies("nope.scad"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
