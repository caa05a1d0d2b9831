// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render invokes the external sgf-render tool to turn board
// positions into SVG images, with optional svgcleaner minification. The
// toolchain is capability-gated: detection fails cleanly when sgf-render
// is not installed, and callers skip rendering with a notice.
//
// See docs/ARCHITECTURE.md § Rendering.
package render

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/pdiddy/tsumego-engine/internal/sgf"
	"github.com/pdiddy/tsumego-engine/pkg/types"
)

const (
	binRender  = "sgf-render"
	binCleaner = "svgcleaner"
)

// ErrUnavailable reports that the sgf-render binary is not on PATH.
var ErrUnavailable = errors.New("sgf-render not available")

// Renderer produces an image file for a board position.
type Renderer interface {
	Render(b *types.Board, outPath string) error
}

// executor abstracts command execution and lookup for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) error
	TempFile(data []byte) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (o *osExecutor) TempFile(data []byte) (string, error) {
	f, err := os.CreateTemp("", "tsumego-*.sgf")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

var defaultExec = &osExecutor{}

// Toolchain renders through the sgf-render binary. It holds the resolved
// binary paths; cleaner is empty when svgcleaner is absent.
type Toolchain struct {
	render  string
	cleaner string
	cfg     types.RenderConfig
	exec    executor
}

// Detect locates sgf-render (required) and svgcleaner (optional) on PATH.
// It returns ErrUnavailable when sgf-render is missing so callers can
// downgrade rendering to a notice.
func Detect(cfg types.RenderConfig) (*Toolchain, error) {
	return detect(cfg, defaultExec)
}

func detect(cfg types.RenderConfig, exec executor) (*Toolchain, error) {
	renderPath, err := exec.LookPath(binRender)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	tc := &Toolchain{render: renderPath, cfg: cfg, exec: exec}
	if cleanerPath, err := exec.LookPath(binCleaner); err == nil {
		tc.cleaner = cleanerPath
	}
	return tc, nil
}

// Render serializes the board to a temporary SGF file, invokes sgf-render
// on it, and minifies the output in place when svgcleaner is present. The
// temporary file is removed on every exit path.
func (t *Toolchain) Render(b *types.Board, outPath string) error {
	tmp, err := t.exec.TempFile(sgf.Serialize(b))
	if err != nil {
		return fmt.Errorf("writing temporary SGF: %w", err)
	}
	defer os.Remove(tmp)

	args := []string{tmp, "--style", t.cfg.Style}
	if !t.cfg.CoordLabels {
		args = append(args, "--no-board-labels")
	}
	args = append(args, "-o", outPath)
	switch t.cfg.ShrinkWrap {
	case types.ShrinkFull:
		args = append(args, "-s")
	case types.ShrinkRows:
		if vw, ok := rowViewport(b); ok {
			args = append(args, "-r", vw)
		}
	}

	if err := t.exec.Run(t.render, args...); err != nil {
		return fmt.Errorf("rendering %s: %w", outPath, err)
	}

	if t.cleaner != "" {
		if err := t.exec.Run(t.cleaner, "--quiet", outPath, outPath); err != nil {
			return fmt.Errorf("minifying %s: %w", outPath, err)
		}
	}
	return nil
}

// rowViewport computes the "aa-<corner>" crop specification that keeps the
// full board width but trims rows below the lowest stone, with one margin
// row. The bottom letter is clamped to the board's last row, so a stone on
// row 0 yields the full board. A board with no stones reports ok=false.
func rowViewport(b *types.Board) (vw string, ok bool) {
	minRow := -1
	for _, set := range []map[types.Point]struct{}{b.Black, b.White} {
		for p := range set {
			if minRow < 0 || p.Row < minRow {
				minRow = p.Row
			}
		}
	}
	if minRow < 0 {
		return "", false
	}

	last := byte(b.Size - 1 + 'a')
	bottom := byte(b.Size - minRow + 'a')
	if bottom > last {
		bottom = last
	}
	return fmt.Sprintf("aa-%c%c", last, bottom), true
}
