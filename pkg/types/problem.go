// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RenderStatus indicates the state of SVG rendering for a problem.
type RenderStatus string

const (
	RenderNone    RenderStatus = "none"
	RenderDone    RenderStatus = "rendered"
	RenderSkipped RenderStatus = "skipped"
	RenderFailed  RenderStatus = "failed"
)

// Problem holds metadata and file paths for one extracted tsumego.
type Problem struct {
	// ID is a slug derived from the source base name and sequence number
	// (e.g. "easy-17").
	ID string `json:"id" yaml:"id"`

	// Source is the base name of the tex document the problem came from.
	Source string `json:"source" yaml:"source"`

	// Seq is the problem's 1-based position within its source document.
	Seq int `json:"seq" yaml:"seq"`

	// Title is the problem's caption, after any normalization rewrite.
	Title string `json:"title" yaml:"title"`

	// Player is the color to move.
	Player Color `json:"player" yaml:"player"`

	// BlackStones and WhiteStones count the setup stones.
	BlackStones int `json:"black_stones" yaml:"black_stones"`
	WhiteStones int `json:"white_stones" yaml:"white_stones"`

	// Labels counts intersection labels.
	Labels int `json:"labels" yaml:"labels"`

	// SGFPath is the local filesystem path of the written SGF file.
	SGFPath string `json:"sgf_path" yaml:"sgf_path"`

	// RenderStatus tracks whether an image was produced for the problem.
	RenderStatus RenderStatus `json:"render_status" yaml:"render_status"`

	// ExtractedAt is when the problem was extracted.
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`
}
