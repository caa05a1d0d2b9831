// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tsumego-engine CLI.
// See docs/ARCHITECTURE.md § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries CLI-level diagnostics; extract/merge progress lines go to
// stdout through the stage writers instead.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05.00",
	Level:           log.WarnLevel,
})

// rootCmd is the base command for the tsumego-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "tsumego-engine",
	Short: "Extract tasuki's tsumego collections into SGF",
	Long: `tsumego-engine converts Go problem diagrams embedded in tex documents
into SGF records. It extracts one SGF file per problem, optionally renders
each to SVG through the external sgf-render tool, merges a document's
problems into a single SGF collection, and keeps a searchable catalog of
everything extracted.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./tsumego-engine.yaml or ~/.config/tsumego-engine/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tsumego-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tsumego-engine"))
		}
	}

	viper.SetEnvPrefix("TSUMEGO_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("output_dir", "output")
	viper.SetDefault("filename_template", "{name}")
	viper.SetDefault("board_size", 19)
	viper.SetDefault("render.style", "minimalist")
	viper.SetDefault("render.shrink_wrap", "rows")
	viper.SetDefault("comments_file", "comments.json")
	viper.SetDefault("catalog.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
