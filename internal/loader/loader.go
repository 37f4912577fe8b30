// Package loader turns a path on disk into a parsed mesh, rendering OpenSCAD
// sources first, and reloads it when the source changes.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/objmetrics/pkg/obj"
	"github.com/philipparndt/objmetrics/pkg/openscad"
	"github.com/philipparndt/objmetrics/pkg/watcher"
	"go.uber.org/zap"
)

// Loader loads meshes from .obj and .scad files
type Loader struct {
	log    *zap.Logger
	strict bool
	binary string
}

// Option configures a Loader
type Option func(*Loader)

// WithStrict rejects malformed numbers instead of substituting 0
func WithStrict(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}

// WithLogger sets the logger passed on to the parser, renderer and watcher
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithOpenSCAD overrides the openscad executable
func WithOpenSCAD(binary string) Option {
	return func(l *Loader) {
		l.binary = binary
	}
}

// New creates a Loader
func New(opts ...Option) *Loader {
	l := &Loader{
		log:    zap.NewNop(),
		binary: "openscad",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsOpenSCAD reports whether path is an OpenSCAD source
func IsOpenSCAD(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".scad")
}

// Load parses the mesh at path. OpenSCAD sources are rendered to a temporary
// OBJ file that is removed once parsed.
func (l *Loader) Load(ctx context.Context, path string) (*obj.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".obj":
		mesh, err := obj.Parse(path, l.parseOptions()...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse OBJ file: %w", err)
		}
		return mesh, nil

	case ".scad":
		return l.loadOpenSCAD(ctx, path)

	default:
		return nil, fmt.Errorf("unsupported file type: %q (expected .obj or .scad)", ext)
	}
}

func (l *Loader) loadOpenSCAD(ctx context.Context, path string) (*obj.Mesh, error) {
	// The renderer runs in the source's directory, so a relative path would
	// be resolved twice.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	temp, err := os.CreateTemp("", "objmetrics_*.obj")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tempFile := temp.Name()
	temp.Close()
	defer os.Remove(tempFile)

	if err := l.renderer(absPath).RenderToOBJ(ctx, absPath, tempFile); err != nil {
		return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
	}

	mesh, err := obj.Parse(tempFile, l.parseOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered OBJ: %w", err)
	}
	return mesh, nil
}

// renderer expects an absolute path
func (l *Loader) renderer(path string) *openscad.Renderer {
	return openscad.NewRenderer(filepath.Dir(path),
		openscad.WithBinary(l.binary),
		openscad.WithLogger(l.log))
}

func (l *Loader) parseOptions() []obj.Option {
	return []obj.Option{obj.WithStrict(l.strict), obj.WithLogger(l.log)}
}

// Sources returns the files whose changes affect the mesh at path: the file
// itself plus, for OpenSCAD, every used or included file.
func (l *Loader) Sources(path string) ([]string, error) {
	if !IsOpenSCAD(path) {
		return []string{path}, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	deps, err := l.renderer(absPath).ResolveDependencies(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}
	return deps, nil
}

// Watch loads path once and again after every change to it or its sources,
// handing each result to onLoad. Load errors are passed to onLoad rather
// than ending the loop. Watch returns when ctx is cancelled.
func (l *Loader) Watch(ctx context.Context, path string, debounce time.Duration, onLoad func(*obj.Mesh, error)) error {
	files, err := l.Sources(path)
	if err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(debounce, watcher.WithLogger(l.log))
	if err != nil {
		return err
	}
	defer fw.Close()

	changes := make(chan string, 1)
	notify := func(changed string) {
		select {
		case changes <- changed:
		default:
		}
	}
	if err := fw.Watch(files, notify); err != nil {
		return fmt.Errorf("failed to watch files: %w", err)
	}
	l.log.Info("watching for changes", zap.Strings("files", fw.Files()))

	fw.Start(ctx)

	onLoad(l.Load(ctx, path))

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case changed := <-changes:
			l.log.Info("file changed, reloading", zap.String("path", changed))
			start := time.Now()
			mesh, err := l.Load(ctx, path)
			if err == nil {
				l.log.Debug("mesh reloaded", zap.Duration("elapsed", time.Since(start)))
			}
			onLoad(mesh, err)
		}
	}
}
