// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diagram parses gooe board diagrams into board positions. A
// diagram is a grid of glyphs, one text line per board row, drawn top to
// bottom; "@" marks a black stone, "!" a white stone, and an uppercase
// letter a label on an otherwise empty intersection.
//
// See docs/ARCHITECTURE.md § Diagram Parsing.
package diagram

import (
	"fmt"
	"strings"

	"github.com/pdiddy/tsumego-engine/pkg/types"
)

// Typesetting escapes that appear inside gooe diagrams. They are literal
// markup artifacts, not board content, and must not consume a column.
var escapes = []string{`\0??`, `\- `, `\!  `}

const (
	glyphBlack = '@'
	glyphWhite = '!'
)

// glyphKind classifies one diagram character.
type glyphKind int

const (
	glyphEmpty glyphKind = iota
	glyphStoneBlack
	glyphStoneWhite
	glyphLabel
)

// classify maps a diagram character to its kind. Every character occupies
// exactly one column; the kind only decides what gets recorded there.
func classify(r rune) glyphKind {
	switch {
	case r == glyphBlack:
		return glyphStoneBlack
	case r == glyphWhite:
		return glyphStoneWhite
	case r >= 'A' && r <= 'Z':
		return glyphLabel
	default:
		return glyphEmpty
	}
}

// Result is the outcome of parsing one diagram. Warnings report content
// that had to be dropped (points outside the board); the parser itself
// never fails, matching the tolerant contract the curated corpus relies on.
type Result struct {
	Board    *types.Board
	Warnings []string
}

// Parse converts one diagram block into a board position of the given
// size. Line 0 is the top of the board (row size-1); short lines simply
// terminate early and produce a partial board.
func Parse(block string, size int) Result {
	for _, esc := range escapes {
		block = strings.ReplaceAll(block, esc, "")
	}

	board := types.NewBoard(size)
	var black, white []types.Point
	var warnings []string

	for lineNum, line := range strings.Split(block, "\n") {
		row := size - 1 - lineNum
		for colNum, r := range []rune(line) {
			kind := classify(r)
			if kind == glyphEmpty {
				continue
			}
			if row < 0 || colNum >= size {
				warnings = append(warnings,
					fmt.Sprintf("line %d col %d: %q outside %dx%d board, dropped", lineNum, colNum, r, size, size))
				continue
			}
			switch kind {
			case glyphStoneBlack:
				black = append(black, types.Point{Row: row, Col: colNum})
			case glyphStoneWhite:
				white = append(white, types.Point{Row: row, Col: colNum})
			case glyphLabel:
				board.AddLabel(string(r), row, colNum)
			}
		}
	}

	board.SetStones(black, white)
	return Result{Board: board, Warnings: warnings}
}
