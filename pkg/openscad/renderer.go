// Package openscad renders OpenSCAD sources to OBJ meshes and resolves their
// use/include dependencies.
package openscad

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrNotInstalled is returned when the openscad binary cannot be found
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

// Renderer handles OpenSCAD file rendering to OBJ
type Renderer struct {
	workDir string
	binary  string
	log     *zap.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithBinary overrides the openscad executable name or path
func WithBinary(binary string) Option {
	return func(r *Renderer) {
		r.binary = binary
	}
}

// WithLogger sets the logger used for render progress
func WithLogger(log *zap.Logger) Option {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRenderer creates a new OpenSCAD renderer
func NewRenderer(workDir string, opts ...Option) *Renderer {
	r := &Renderer{
		workDir: workDir,
		binary:  "openscad",
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderToOBJ renders an OpenSCAD file to outputFile in OBJ format
func (r *Renderer) RenderToOBJ(ctx context.Context, scadFile, outputFile string) error {
	absScadFile := r.abs(scadFile)

	binary, err := exec.LookPath(r.binary)
	if err != nil {
		return ErrNotInstalled
	}

	r.log.Info("rendering OpenSCAD file", zap.String("source", absScadFile), zap.String("output", outputFile))

	cmd := exec.CommandContext(ctx, binary, "-o", outputFile, absScadFile)
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var errMsg strings.Builder
		fmt.Fprintf(&errMsg, "failed to render %s: %v", scadFile, err)
		if stderr.Len() > 0 {
			errMsg.WriteString("\nstderr: ")
			errMsg.WriteString(strings.TrimSpace(stderr.String()))
		}
		if stdout.Len() > 0 {
			errMsg.WriteString("\nstdout: ")
			errMsg.WriteString(strings.TrimSpace(stdout.String()))
		}
		return errors.New(errMsg.String())
	}

	return nil
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}
