// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collection

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tsumego-engine/internal/sgf"
	"github.com/pdiddy/tsumego-engine/pkg/types"
)

// writeGame serializes a one-stone board titled name into dir/name.sgf.
func writeGame(t *testing.T, dir, name string, row, col int) {
	t.Helper()
	b := types.NewBoard(19)
	b.SetStones([]types.Point{{Row: row, Col: col}}, nil)
	b.SetComment(name)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".sgf"), sgf.Serialize(b), 0o644))
}

func TestMergeNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	writeGame(t, dir, "problem 2", 1, 0)
	writeGame(t, dir, "problem 10", 2, 0)
	writeGame(t, dir, "problem 1", 0, 0)

	out := filepath.Join(t.TempDir(), "all.sgf")
	var log bytes.Buffer
	require.NoError(t, Merge(dir, out, "a set", 19, &log))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	got := string(data)

	assert.True(t, strings.HasPrefix(got, "(;FF[4]GM[1]SZ[19]\nC[a set]"), "header: %q", got)
	assert.True(t, strings.HasSuffix(got, "\n)"), "terminator: %q", got)

	i1 := strings.Index(got, "C[problem 1]")
	i2 := strings.Index(got, "C[problem 2]")
	i10 := strings.Index(got, "C[problem 10]")
	require.NotEqual(t, -1, i1)
	require.NotEqual(t, -1, i2)
	require.NotEqual(t, -1, i10)
	assert.Less(t, i1, i2, "problem 1 before problem 2")
	assert.Less(t, i2, i10, "problem 2 before problem 10")

	assert.Contains(t, log.String(), "merged 3 game(s)")
}

func TestMergeRewrapsGameBodies(t *testing.T) {
	dir := t.TempDir()
	writeGame(t, dir, "problem 1", 18, 0)

	out := filepath.Join(t.TempDir(), "all.sgf")
	var log bytes.Buffer
	require.NoError(t, Merge(dir, out, "", 19, &log))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	got := string(data)

	// The nested game keeps its properties on one line, dropping the
	// original header and charset lines.
	assert.Contains(t, got, "\n(;C[problem 1]PL[B]AB[aa])")
	assert.Equal(t, 1, strings.Count(got, "FF[4]"), "only the collection header carries FF")
	assert.Equal(t, 1, strings.Count(got, "CA[UTF-8]"), "per-game charset lines are dropped")
}

func TestMergeSkipsMalformedInput(t *testing.T) {
	dir := t.TempDir()
	writeGame(t, dir, "problem 1", 0, 0)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.sgf"), []byte("(;)"), 0o644))

	out := filepath.Join(t.TempDir(), "all.sgf")
	var log bytes.Buffer
	require.NoError(t, Merge(dir, out, "", 19, &log))

	assert.Contains(t, log.String(), "stray.sgf is too short")
	assert.Contains(t, log.String(), "merged 1 game(s)")
}

func TestMergeEmptyDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "all.sgf")
	var log bytes.Buffer
	require.NoError(t, Merge(t.TempDir(), out, "nothing here", 19, &log))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "(;FF[4]GM[1]SZ[19]\nC[nothing here]\n)", string(data))
}

func TestSortNatural(t *testing.T) {
	paths := []string{
		"/x/problem 10.sgf",
		"/x/problem 2.sgf",
		"/x/intro.sgf",
		"/x/problem 1.sgf",
		"/x/set 2 problem 3.sgf",
		"/x/set 2 problem 10.sgf",
	}
	sortNatural(paths)

	want := []string{
		"/x/intro.sgf",
		"/x/problem 1.sgf",
		"/x/problem 2.sgf",
		"/x/set 2 problem 3.sgf",
		"/x/set 2 problem 10.sgf",
		"/x/problem 10.sgf",
	}
	assert.Equal(t, want, paths)
}

func TestLoadComments(t *testing.T) {
	t.Run("missing file yields empty map", func(t *testing.T) {
		got, err := LoadComments(filepath.Join(t.TempDir(), "comments.json"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("reads mapping", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "comments.json")
		require.NoError(t, os.WriteFile(path,
			[]byte(`{"easy": "Beginner problems", "hard": "Dan level"}`), 0o644))

		got, err := LoadComments(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"easy": "Beginner problems",
			"hard": "Dan level",
		}, got)
	})

	t.Run("malformed JSON fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "comments.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := LoadComments(path)
		require.Error(t, err)
	})
}
