// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the tsumego-engine
// pipeline: the board position model, extracted-problem records, and stage
// configuration.
//
// See docs/ARCHITECTURE.md § Data Structures, § Board Model.
package types

import (
	"fmt"
	"strings"
)

// Color identifies the player a stone or turn belongs to. SGF spells
// colors as single letters, so the values are "B" and "W".
type Color string

const (
	ColorBlack Color = "B"
	ColorWhite Color = "W"
)

// Opposite returns the other color.
func (c Color) Opposite() Color {
	if c == ColorBlack {
		return ColorWhite
	}
	return ColorBlack
}

// ParseColor normalizes a player color given as "b", "w", "black", or
// "white" in any case. Anything else is rejected.
func ParseColor(s string) (Color, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "B", "BLACK":
		return ColorBlack, nil
	case "W", "WHITE":
		return ColorWhite, nil
	default:
		return "", fmt.Errorf("invalid player color %q: must be black or white", s)
	}
}

// Point is a board intersection. Row 0 is the bottom edge, column 0 the
// left edge; both are bounded by the board size.
type Point struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Label anchors a short text (usually one letter) to an intersection.
type Label struct {
	Text string `json:"text" yaml:"text"`
	Row  int    `json:"row" yaml:"row"`
	Col  int    `json:"col" yaml:"col"`
}

// Board is a static position: setup stones, labels, a comment, and the
// player to move. It is built once per diagram, optionally mutated by the
// extraction pipeline (normalization, comment), and serialized exactly once.
type Board struct {
	Size    int
	Black   map[Point]struct{}
	White   map[Point]struct{}
	Labels  map[Label]struct{}
	Comment string
	Player  Color
}

// NewBoard creates an empty square board. Black moves first by default.
func NewBoard(size int) *Board {
	return &Board{
		Size:   size,
		Black:  make(map[Point]struct{}),
		White:  make(map[Point]struct{}),
		Labels: make(map[Label]struct{}),
		Player: ColorBlack,
	}
}

// SetStones replaces both stone sets wholesale. Duplicate points in the
// input collapse under set semantics.
func (b *Board) SetStones(black, white []Point) {
	b.Black = make(map[Point]struct{}, len(black))
	for _, p := range black {
		b.Black[p] = struct{}{}
	}
	b.White = make(map[Point]struct{}, len(white))
	for _, p := range white {
		b.White[p] = struct{}{}
	}
}

// AddLabel attaches a label to an intersection. Adding the same label at
// the same point twice is a no-op.
func (b *Board) AddLabel(text string, row, col int) {
	b.Labels[Label{Text: text, Row: row, Col: col}] = struct{}{}
}

// SetComment attaches a free-text comment to the position.
func (b *Board) SetComment(comment string) {
	b.Comment = comment
}

// SetPlayer sets the color to move.
func (b *Board) SetPlayer(c Color) {
	b.Player = c
}

// FlipColors exchanges the black and white stone sets and toggles the
// player to move. Applying it twice restores the original state.
func (b *Board) FlipColors() {
	b.Black, b.White = b.White, b.Black
	b.Player = b.Player.Opposite()
}

// StoneCount returns the number of black and white setup stones.
func (b *Board) StoneCount() (black, white int) {
	return len(b.Black), len(b.White)
}
