// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tsumego-engine/internal/catalog"
	"github.com/pdiddy/tsumego-engine/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the catalog of extracted problems",
	Long: `Catalog inspects the SQLite database written by "extract --catalog":
list problems by source document, search titles with full-text queries,
or export the whole catalog as a YAML manifest.`,
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list [source]",
	Short: "List cataloged problems, optionally filtered by source document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	source := ""
	if len(args) > 0 {
		source = args[0]
	}

	problems, err := store.List(context.Background(), source)
	if err != nil {
		return err
	}
	printProblems(problems)
	return nil
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over problem titles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	problems, err := store.Search(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	printProblems(problems)
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog as a YAML manifest to stdout",
	Args:  cobra.NoArgs,
	RunE:  runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.ExportManifest(context.Background(), os.Stdout)
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	dir, _ := cmd.Flags().GetString("catalog-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = viper.GetInt("catalog.max_results")
	}
	return catalog.NewStore(types.CatalogConfig{CatalogDir: dir, MaxResults: maxResults})
}

func printProblems(problems []types.Problem) {
	if len(problems) == 0 {
		fmt.Println("No problems found.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-4s  %-44s  %-6s  %-5s  %-5s  %s\n",
		"Source", "Seq", "Title", "Player", "Black", "White", "Rendered")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))
	for _, p := range problems {
		title := p.Title
		if len(title) > 44 {
			title = title[:41] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-12s  %-4d  %-44s  %-6s  %-5d  %-5d  %s\n",
			p.Source, p.Seq, title, p.Player, p.BlackStones, p.WhiteStones, p.RenderStatus)
	}
	fmt.Fprintf(os.Stdout, "\n%d problem(s)\n", len(problems))
}

func init() {
	for _, c := range []*cobra.Command{catalogListCmd, catalogSearchCmd, catalogExportCmd} {
		c.Flags().String("catalog-dir", "output/catalog", "directory containing the catalog database")
		c.Flags().Int("max-results", 0, "maximum number of search results")
		catalogCmd.AddCommand(c)
	}
	rootCmd.AddCommand(catalogCmd)
}
