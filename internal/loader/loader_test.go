package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/philipparndt/objmetrics/pkg/obj"
	"github.com/philipparndt/objmetrics/pkg/openscad"
)

const triangleOBJ = `o Tri
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	writeFile(t, path, triangleOBJ)

	mesh, err := New().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if mesh.Name != "Tri" || mesh.FaceCount() != 1 {
		t.Errorf("Load failed: expected Tri with 1 face, got %q with %d", mesh.Name, mesh.FaceCount())
	}
}

func TestLoadUppercaseExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TRI.OBJ")
	writeFile(t, path, triangleOBJ)

	if _, err := New().Load(context.Background(), path); err != nil {
		t.Errorf("Load failed: %v", err)
	}
}

func TestLoadStrict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.obj")
	writeFile(t, path, "v 0 0 zero\n")

	if _, err := New().Load(context.Background(), path); err != nil {
		t.Errorf("lenient Load failed: %v", err)
	}

	_, err := New(WithStrict(true)).Load(context.Background(), path)
	if !errors.Is(err, obj.ErrMalformedNumber) {
		t.Errorf("strict Load: expected ErrMalformedNumber, got %v", err)
	}
}

func TestLoadUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.stl")
	writeFile(t, path, "solid x\nendsolid x\n")

	if _, err := New().Load(context.Background(), path); err == nil {
		t.Error("expected error for unsupported file type")
	}
}

func TestLoadOpenSCADWithoutBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.scad")
	writeFile(t, path, "cube(1);\n")

	_, err := New(WithOpenSCAD("openscad-does-not-exist")).Load(context.Background(), path)
	if !errors.Is(err, openscad.ErrNotInstalled) {
		t.Errorf("expected ErrNotInstalled, got %v", err)
	}
}

func TestSources(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.scad")
	writeFile(t, main, "include <part.scad>\n")
	writeFile(t, filepath.Join(dir, "part.scad"), "cube(1);\n")

	files, err := New().Sources(main)
	if err != nil {
		t.Fatalf("Sources failed: %v", err)
	}
	if len(files) != 2 || files[1] != filepath.Join(dir, "part.scad") {
		t.Errorf("Sources failed: got %v", files)
	}

	objFiles, err := New().Sources("model.obj")
	if err != nil || len(objFiles) != 1 || objFiles[0] != "model.obj" {
		t.Errorf("Sources for OBJ failed: got %v, %v", objFiles, err)
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	writeFile(t, path, triangleOBJ)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loads := make(chan int, 4)
	errc := make(chan error, 1)
	go func() {
		errc <- New().Watch(ctx, path, 50*time.Millisecond, func(mesh *obj.Mesh, err error) {
			if err != nil {
				t.Errorf("unexpected load error: %v", err)
				loads <- -1
				return
			}
			loads <- mesh.VertexCount()
		})
	}()

	waitFor := func(expected int) {
		t.Helper()
		select {
		case n := <-loads:
			if n != expected {
				t.Errorf("Watch failed: expected %d vertices, got %d", expected, n)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for load")
		}
	}

	waitFor(3)
	writeFile(t, path, triangleOBJ+"v 5 5 5\n")
	waitFor(4)

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Watch returned error after cancel: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

// fakeOpenSCAD installs a script that records the source path it was given
// in $OBJMETRICS_RENDERED and writes a single triangle to the -o target.
func fakeOpenSCAD(t *testing.T) (binary, record string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in for openscad")
	}

	dir := t.TempDir()
	binary = filepath.Join(dir, "openscad")
	record = filepath.Join(dir, "rendered.txt")
	script := `#!/bin/sh
printf '%s' "$3" > "$OBJMETRICS_RENDERED"
printf 'v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n' > "$2"
`
	if err := os.WriteFile(binary, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake openscad: %v", err)
	}
	t.Setenv("OBJMETRICS_RENDERED", record)
	return binary, record
}

func TestLoadOpenSCADRelativePath(t *testing.T) {
	binary, record := fakeOpenSCAD(t)

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "models"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "models", "part.scad"), "cube(1);\n")
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	mesh, err := New(WithOpenSCAD(binary)).Load(context.Background(), filepath.Join("models", "part.scad"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if mesh.FaceCount() != 1 {
		t.Errorf("Load failed: expected 1 face, got %d", mesh.FaceCount())
	}

	rendered, err := os.ReadFile(record)
	if err != nil {
		t.Fatalf("openscad was not run: %v", err)
	}
	source := string(rendered)
	if !filepath.IsAbs(source) {
		t.Errorf("expected an absolute source path, got %q", source)
	}
	if filepath.Base(source) != "part.scad" || filepath.Base(filepath.Dir(source)) != "models" {
		t.Errorf("expected source models/part.scad, got %q", source)
	}
	if _, err := os.Stat(source); err != nil {
		t.Errorf("rendered source does not exist: %v", err)
	}
}
