// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sgf serializes board positions to the Smart Game Format. Only the
// static-position subset is produced: setup stones (AB/AW), intersection
// labels (LB), a comment (C), and the player to move (PL).
//
// See docs/ARCHITECTURE.md § SGF Encoding.
package sgf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/tsumego-engine/pkg/types"
)

// PointLetters converts a board point to SGF letter coordinates. SGF rows
// grow downward from the top-left corner while the board model's row 0 is
// the bottom edge, so the row axis is inverted.
func PointLetters(size int, p types.Point) string {
	return string([]byte{byte(p.Col + 'a'), byte(size - p.Row - 1 + 'a')})
}

// ParsePoint inverts PointLetters, recovering the board point from a
// two-letter SGF coordinate.
func ParsePoint(size int, s string) (types.Point, error) {
	if len(s) != 2 {
		return types.Point{}, fmt.Errorf("invalid SGF coordinate %q: want two letters", s)
	}
	col := int(s[0] - 'a')
	row := size - 1 - int(s[1]-'a')
	if col < 0 || col >= size || row < 0 || row >= size {
		return types.Point{}, fmt.Errorf("SGF coordinate %q out of range for size %d", s, size)
	}
	return types.Point{Row: row, Col: col}, nil
}

// Serialize encodes a board position as a single SGF game tree, terminated
// by a newline. Stone sets and labels are sorted before encoding, so the
// output is byte-identical across runs for equal positions.
func Serialize(b *types.Board) []byte {
	var buf strings.Builder
	buf.WriteString(";FF[4]GM[1]")
	fmt.Fprintf(&buf, "SZ[%d]", b.Size)
	if b.Comment != "" {
		fmt.Fprintf(&buf, "\nC[%s]", b.Comment)
	}
	if b.Player != "" {
		fmt.Fprintf(&buf, "\nPL[%s]", b.Player)
	}
	if len(b.Black) > 0 {
		buf.WriteString("\nAB")
		writePoints(&buf, b.Size, b.Black)
	}
	if len(b.White) > 0 {
		buf.WriteString("\nAW")
		writePoints(&buf, b.Size, b.White)
	}
	if len(b.Labels) > 0 {
		buf.WriteString("\nLB")
		writeLabels(&buf, b.Size, b.Labels)
	}
	buf.WriteString("\nCA[UTF-8]")

	return []byte("(" + buf.String() + ")\n")
}

func writePoints(buf *strings.Builder, size int, set map[types.Point]struct{}) {
	points := make([]types.Point, 0, len(set))
	for p := range set {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Row != points[j].Row {
			return points[i].Row > points[j].Row
		}
		return points[i].Col < points[j].Col
	})
	for _, p := range points {
		fmt.Fprintf(buf, "[%s]", PointLetters(size, p))
	}
}

func writeLabels(buf *strings.Builder, size int, set map[types.Label]struct{}) {
	labels := make([]types.Label, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if labels[i].Row != labels[j].Row {
			return labels[i].Row > labels[j].Row
		}
		if labels[i].Col != labels[j].Col {
			return labels[i].Col < labels[j].Col
		}
		return labels[i].Text < labels[j].Text
	})
	for _, l := range labels {
		fmt.Fprintf(buf, "[%s:%s]", PointLetters(size, types.Point{Row: l.Row, Col: l.Col}), l.Text)
	}
}
