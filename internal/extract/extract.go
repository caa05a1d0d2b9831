// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract scans tex documents for tsumego diagrams and writes one
// SGF file per problem, optionally rendering each through the external
// toolchain. Diagram blocks and title lines are discovered by independent
// pattern scans and paired positionally.
//
// See docs/ARCHITECTURE.md § Extraction Pipeline.
package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/tsumego-engine/internal/diagram"
	"github.com/pdiddy/tsumego-engine/internal/render"
	"github.com/pdiddy/tsumego-engine/internal/sgf"
	"github.com/pdiddy/tsumego-engine/pkg/types"
)

var (
	// diagramPattern captures the body of one gooe diagram block.
	diagramPattern = regexp.MustCompile(`(?m)^\\vbox\{\\vbox\{\\goo\n([\s\S]*?)\}`)
	// titlePattern captures the text of one centered title line.
	titlePattern = regexp.MustCompile(`(?m)^\\hfil(.*)\\hfil`)
)

const whiteToPlay = "white to play"

// Summary holds the outcome of extracting one document.
type Summary struct {
	Extracted int
	Rendered  int
	Failed    int
	// Warnings counts dropped diagram content and pairing truncation.
	Warnings int
	Problems []types.Problem
}

// Extractor drives the per-problem pipeline: parse, normalize, serialize,
// render. A nil Renderer disables rendering.
type Extractor struct {
	cfg      types.ExtractConfig
	renderer render.Renderer
}

// New creates an Extractor. renderer may be nil.
func New(cfg types.ExtractConfig, renderer render.Renderer) *Extractor {
	if cfg.BoardSize <= 0 {
		cfg.BoardSize = 19
	}
	if cfg.FilenameTemplate == "" {
		cfg.FilenameTemplate = "{name}"
	}
	return &Extractor{cfg: cfg, renderer: renderer}
}

// ExtractFile reads a tex document and extracts every problem in it,
// writing SGFs to sgfDir and, when rendering is active, SVGs to renderDir.
// Per-problem status lines go to w.
func (e *Extractor) ExtractFile(texPath, sgfDir, renderDir string, w io.Writer) (Summary, error) {
	data, err := os.ReadFile(texPath)
	if err != nil {
		return Summary{}, fmt.Errorf("reading %s: %w", texPath, err)
	}
	source := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath))
	return e.Extract(source, string(data), sgfDir, renderDir, w)
}

// Extract processes one document's content. source names the document in
// problem IDs and status lines. Pattern mismatches truncate to the shorter
// sequence with a warning instead of failing.
func (e *Extractor) Extract(source, content, sgfDir, renderDir string, w io.Writer) (Summary, error) {
	var summary Summary

	boards := diagramPattern.FindAllStringSubmatch(content, -1)
	titles := titlePattern.FindAllStringSubmatch(content, -1)

	n := len(boards)
	if len(titles) < n {
		n = len(titles)
	}
	if len(boards) != len(titles) {
		fmt.Fprintf(w, "warning: %s has %d diagrams but %d titles, keeping the first %d pairs\n",
			source, len(boards), len(titles), n)
		summary.Warnings++
	}

	for i := 0; i < n; i++ {
		problem, warnings, err := e.extractOne(source, i+1, boards[i][1], titles[i][1], sgfDir, renderDir, w)
		summary.Warnings += warnings
		if err != nil {
			fmt.Fprintf(w, "failed:  %s problem %d (%v)\n", source, i+1, err)
			summary.Failed++
			continue
		}
		summary.Extracted++
		if problem.RenderStatus == types.RenderDone {
			summary.Rendered++
		}
		summary.Problems = append(summary.Problems, problem)
	}

	fmt.Fprintf(w, "\nExtraction summary for %s: %d extracted, %d rendered, %d failed, %d warning(s)\n",
		source, summary.Extracted, summary.Rendered, summary.Failed, summary.Warnings)
	return summary, nil
}

func (e *Extractor) extractOne(source string, seq int, block, title, sgfDir, renderDir string, w io.Writer) (types.Problem, int, error) {
	name := strings.TrimSpace(title)

	res := diagram.Parse(block, e.cfg.BoardSize)
	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "warning: %s problem %d: %s\n", source, seq, warning)
	}

	board := res.Board
	if strings.Contains(name, whiteToPlay) {
		board.SetPlayer(types.ColorWhite)
		if e.cfg.Normalize {
			name = swapColorWords(name)
			board.FlipColors()
		}
	}
	board.SetComment(name)

	sgfPath := filepath.Join(sgfDir, e.fileName(seq, name)+".sgf")
	if err := os.WriteFile(sgfPath, sgf.Serialize(board), 0o644); err != nil {
		return types.Problem{}, len(res.Warnings), fmt.Errorf("writing %s: %w", sgfPath, err)
	}
	fmt.Fprintf(w, "extracted: %s\n", filepath.Base(sgfPath))

	black, white := board.StoneCount()
	problem := types.Problem{
		ID:           fmt.Sprintf("%s-%d", source, seq),
		Source:       source,
		Seq:          seq,
		Title:        name,
		Player:       board.Player,
		BlackStones:  black,
		WhiteStones:  white,
		Labels:       len(board.Labels),
		SGFPath:      sgfPath,
		RenderStatus: types.RenderNone,
		ExtractedAt:  time.Now().UTC(),
	}

	if e.renderer != nil && renderDir != "" {
		svgPath := filepath.Join(renderDir, e.fileName(seq, name)+".svg")
		if err := e.renderer.Render(board, svgPath); err != nil {
			fmt.Fprintf(w, "render failed: %s (%v)\n", filepath.Base(svgPath), err)
			problem.RenderStatus = types.RenderFailed
		} else {
			fmt.Fprintf(w, "rendered: %s\n", filepath.Base(svgPath))
			problem.RenderStatus = types.RenderDone
		}
	}

	return problem, len(res.Warnings), nil
}

// fileName expands the filename template for one problem.
func (e *Extractor) fileName(seq int, name string) string {
	s := strings.ReplaceAll(e.cfg.FilenameTemplate, "{problem_num}", strconv.Itoa(seq))
	return strings.ReplaceAll(s, "{name}", name)
}

// swapMarker is a stand-in no title can contain, so swapping "black" and
// "white" does not let one replacement clobber the other.
const swapMarker = "\x00"

// swapColorWords exchanges the words "black" and "white" within a title.
func swapColorWords(name string) string {
	name = strings.ReplaceAll(name, "black", swapMarker)
	name = strings.ReplaceAll(name, "white", "black")
	return strings.ReplaceAll(name, swapMarker, "white")
}
