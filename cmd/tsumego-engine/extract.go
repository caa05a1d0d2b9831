// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tsumego-engine/internal/catalog"
	"github.com/pdiddy/tsumego-engine/internal/collection"
	"github.com/pdiddy/tsumego-engine/internal/extract"
	"github.com/pdiddy/tsumego-engine/internal/render"
	"github.com/pdiddy/tsumego-engine/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <input-dir> [output-dir]",
	Short: "Extract SGF problems from tex documents",
	Long: `Extract processes every .tex document in the input directory. For each
document it writes one SGF file per problem under <output>/<name>/sgf/,
merges them into <output>/<name>/<name>.sgf with the document's comment
from the comments file, and optionally renders each problem to SVG under
<output>/<name>/render/.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Bool("render", false, "render the extracted SGF files to SVG (requires sgf-render)")
	extractCmd.Flags().Bool("normalize", false, "normalize problems so it is always black to play")
	extractCmd.Flags().Bool("catalog", false, "record extracted problems in the SQLite catalog")
	extractCmd.Flags().String("filename-template", "", "per-problem file name, interpolating {name} and {problem_num}")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	outputDir := viper.GetString("output_dir")
	if len(args) > 1 {
		outputDir = args[1]
	}

	if _, err := os.Stat(inputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Input directory %q does not exist.\n", inputDir)
		return nil
	}

	cfg := extractConfigFromFlags(cmd, outputDir)
	renderer := detectRenderer(cfg.Render)
	if renderer == nil {
		cfg.Render = false
	}

	comments, err := collection.LoadComments(viper.GetString("comments_file"))
	if err != nil {
		return err
	}

	var store *catalog.Store
	if useCatalog, _ := cmd.Flags().GetBool("catalog"); useCatalog {
		store, err = catalog.NewStore(catalogConfig(outputDir))
		if err != nil {
			return err
		}
		defer store.Close()
	}

	texFiles, err := filepath.Glob(filepath.Join(inputDir, "*.tex"))
	if err != nil {
		return fmt.Errorf("listing %s: %w", inputDir, err)
	}
	if len(texFiles) == 0 {
		fmt.Fprintf(os.Stderr, "No .tex files found in %q.\n", inputDir)
		return nil
	}

	extractor := extract.New(cfg, renderer)
	for _, texPath := range texFiles {
		fmt.Println("Processing", texPath)
		if err := processDocument(extractor, texPath, outputDir, cfg.Render, comments, store); err != nil {
			return err
		}
	}
	return nil
}

// processDocument runs the extract + merge + catalog pipeline for one tex file.
func processDocument(extractor *extract.Extractor, texPath, outputDir string, doRender bool, comments map[string]string, store *catalog.Store) error {
	stem := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath))
	docDir := filepath.Join(outputDir, stem)
	sgfDir := filepath.Join(docDir, "sgf")
	if err := os.MkdirAll(sgfDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", sgfDir, err)
	}

	renderDir := ""
	if doRender {
		renderDir = filepath.Join(docDir, "render")
		if err := os.MkdirAll(renderDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", renderDir, err)
		}
	}

	summary, err := extractor.ExtractFile(texPath, sgfDir, renderDir, os.Stdout)
	if err != nil {
		return err
	}
	logger.Debug("extracted document", "source", stem, "problems", summary.Extracted, "warnings", summary.Warnings)

	mergedPath := filepath.Join(docDir, stem+".sgf")
	if err := collection.Merge(sgfDir, mergedPath, comments[stem], viper.GetInt("board_size"), os.Stdout); err != nil {
		return err
	}

	if store != nil {
		if err := store.RecordAll(context.Background(), summary.Problems); err != nil {
			return err
		}
		logger.Debug("cataloged problems", "source", stem, "count", len(summary.Problems))
	}
	return nil
}

func extractConfigFromFlags(cmd *cobra.Command, outputDir string) types.ExtractConfig {
	cfg := types.ExtractConfig{
		OutputDir:        outputDir,
		FilenameTemplate: viper.GetString("filename_template"),
		BoardSize:        viper.GetInt("board_size"),
	}
	if tmpl, _ := cmd.Flags().GetString("filename-template"); tmpl != "" {
		cfg.FilenameTemplate = tmpl
	}
	cfg.Normalize, _ = cmd.Flags().GetBool("normalize")
	cfg.Render, _ = cmd.Flags().GetBool("render")
	return cfg
}

// detectRenderer locates the external toolchain. When rendering is requested
// but sgf-render is missing, it downgrades with a notice instead of failing.
func detectRenderer(wanted bool) render.Renderer {
	if !wanted {
		return nil
	}
	tc, err := render.Detect(types.RenderConfig{
		Style:      viper.GetString("render.style"),
		ShrinkWrap: types.ShrinkWrap(viper.GetString("render.shrink_wrap")),
	})
	if err != nil {
		if errors.Is(err, render.ErrUnavailable) {
			fmt.Fprintln(os.Stderr, "sgf-render is not available, not rendering svg files.")
			return nil
		}
		logger.Warn("renderer detection failed", "err", err)
		return nil
	}
	return tc
}

func catalogConfig(outputDir string) types.CatalogConfig {
	return types.CatalogConfig{
		CatalogDir: filepath.Join(outputDir, "catalog"),
		MaxResults: viper.GetInt("catalog.max_results"),
	}
}
