// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ShrinkWrap selects how much of the board a rendered image shows.
type ShrinkWrap string

const (
	// ShrinkNone renders the full board.
	ShrinkNone ShrinkWrap = "none"
	// ShrinkFull crops to the bounding box of all stones.
	ShrinkFull ShrinkWrap = "full"
	// ShrinkRows crops vertically to the rows containing stones but keeps
	// the full board width.
	ShrinkRows ShrinkWrap = "rows"
)

// ExtractConfig holds settings for the extraction stage.
type ExtractConfig struct {
	// OutputDir is the base directory for extraction output; each source
	// document gets a subdirectory containing sgf/ and optionally render/.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// FilenameTemplate names per-problem output files. It interpolates
	// {name} (the problem title) and {problem_num} (1-based sequence).
	FilenameTemplate string `json:"filename_template" yaml:"filename_template"`

	// BoardSize is the board dimension diagrams are parsed at (default 19).
	BoardSize int `json:"board_size" yaml:"board_size"`

	// Normalize rewrites white-to-play problems as black-to-play by
	// flipping stone colors and swapping color words in the title.
	Normalize bool `json:"normalize" yaml:"normalize"`

	// Render enables SVG rendering through the external toolchain.
	Render bool `json:"render" yaml:"render"`
}

// RenderConfig holds settings for the external rendering toolchain.
type RenderConfig struct {
	// Style is the sgf-render style name (default "minimalist").
	Style string `json:"style" yaml:"style"`

	// CoordLabels controls whether board coordinate labels are drawn.
	CoordLabels bool `json:"coord_labels" yaml:"coord_labels"`

	// ShrinkWrap selects the viewport crop mode (default "rows").
	ShrinkWrap ShrinkWrap `json:"shrink_wrap" yaml:"shrink_wrap"`
}

// MergeConfig holds settings for the collection merge stage.
type MergeConfig struct {
	// CommentsFile is a JSON file mapping source base names to the
	// top-level comment of the merged collection (default "comments.json").
	CommentsFile string `json:"comments_file" yaml:"comments_file"`

	// BoardSize is the size advertised in the collection header (default 19).
	BoardSize int `json:"board_size" yaml:"board_size"`
}

// CatalogConfig holds settings for the problem catalog.
type CatalogConfig struct {
	// CatalogDir is the directory containing the catalog database.
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
