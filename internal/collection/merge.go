// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collection merges per-problem SGF files into one multi-game
// collection under a shared header. It works at the text level against the
// encoder's wire format, not the board model.
//
// See docs/ARCHITECTURE.md § Collections.
package collection

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var digitRuns = regexp.MustCompile(`\d+`)

// Merge concatenates every .sgf file in sgfDir into outFile as one SGF
// collection: a shared header carrying the board size and comment, then
// each input's game body re-wrapped as a nested game tree. Files are taken
// in natural numeric order, so "problem 10" follows "problem 9". Inputs
// too short to hold a game body are skipped with a warning on w.
func Merge(sgfDir, outFile, comment string, size int, w io.Writer) error {
	entries, err := filepath.Glob(filepath.Join(sgfDir, "*.sgf"))
	if err != nil {
		return fmt.Errorf("listing %s: %w", sgfDir, err)
	}
	sortNatural(entries)

	var out strings.Builder
	fmt.Fprintf(&out, "(;FF[4]GM[1]SZ[%d]\nC[%s]", size, comment)

	merged := 0
	for _, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		body, ok := gameBody(string(data))
		if !ok {
			fmt.Fprintf(w, "warning: %s is too short to be a generated SGF, skipped\n", filepath.Base(path))
			continue
		}
		out.WriteString("\n(;" + body + ")")
		merged++
	}
	out.WriteString("\n)")

	if err := os.WriteFile(outFile, []byte(out.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outFile, err)
	}
	fmt.Fprintf(w, "merged %d game(s) into %s\n", merged, filepath.Base(outFile))
	return nil
}

// gameBody strips the header line and the trailing charset/terminator lines
// from one generated SGF, returning the property lines joined together.
func gameBody(s string) (string, bool) {
	lines := strings.Split(s, "\n")
	if len(lines) < 3 {
		return "", false
	}
	return strings.Join(lines[1:len(lines)-2], ""), true
}

// sortNatural orders paths by the sequence of integers embedded in their
// base names, falling back to lexical order between equal sequences.
func sortNatural(paths []string) {
	keys := make(map[string][]int, len(paths))
	for _, p := range paths {
		stem := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		var key []int
		for _, run := range digitRuns.FindAllString(stem, -1) {
			n, err := strconv.Atoi(run)
			if err != nil {
				// Runs longer than an int; treat as a large constant.
				n = int(^uint(0) >> 1)
			}
			key = append(key, n)
		}
		keys[p] = key
	}

	sort.SliceStable(paths, func(i, j int) bool {
		a, b := keys[paths[i]], keys[paths[j]]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return paths[i] < paths[j]
	})
}
