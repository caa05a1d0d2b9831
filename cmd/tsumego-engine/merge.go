package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tsumego-engine/internal/collection"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <sgf-dir> <output-file>",
	Short: "Merge single-game SGF files into one collection",
	Long: `Merge concatenates the per-problem SGF files in a directory into one
multi-game SGF collection under a shared header. Files are merged in
natural numeric order, so "problem 10" follows "problem 9". The shared
comment comes from --comment, or from the comments file keyed by the
output file's base name.`,
	Args: cobra.ExactArgs(2),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().String("comment", "", "shared comment for the collection header")
	mergeCmd.Flags().String("comments-file", "", "JSON file mapping source names to comments (default from config)")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	sgfDir, outFile := args[0], args[1]

	comment, _ := cmd.Flags().GetString("comment")
	if comment == "" {
		commentsFile, _ := cmd.Flags().GetString("comments-file")
		if commentsFile == "" {
			commentsFile = viper.GetString("comments_file")
		}
		comments, err := collection.LoadComments(commentsFile)
		if err != nil {
			return err
		}
		stem := strings.TrimSuffix(filepath.Base(outFile), filepath.Ext(outFile))
		comment = comments[stem]
	}

	return collection.Merge(sgfDir, outFile, comment, viper.GetInt("board_size"), os.Stdout)
}
