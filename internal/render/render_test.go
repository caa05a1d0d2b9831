// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/tsumego-engine/pkg/types"
)

// mockExecutor records invocations and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runErr        error
	calls         [][]string // recorded Run invocations, name first
	tempData      []byte
	tempPath      string
	tempErr       error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(name string, args ...string) error {
	m.calls = append(m.calls, append([]string{name}, args...))
	return m.runErr
}

func (m *mockExecutor) TempFile(data []byte) (string, error) {
	if m.tempErr != nil {
		return "", m.tempErr
	}
	m.tempData = data
	if m.tempPath == "" {
		m.tempPath = filepath.Join(os.TempDir(), "mock.sgf")
	}
	return m.tempPath, nil
}

func defaultCfg() types.RenderConfig {
	return types.RenderConfig{Style: "minimalist", ShrinkWrap: types.ShrinkRows}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		bins        map[string]bool
		wantErr     bool
		wantCleaner bool
	}{
		{
			name: "renderer and cleaner present",
			bins: map[string]bool{"sgf-render": true, "svgcleaner": true},

			wantCleaner: true,
		},
		{
			name: "renderer only",
			bins: map[string]bool{"sgf-render": true},
		},
		{
			name:    "renderer missing",
			bins:    map[string]bool{"svgcleaner": true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{availableBins: tt.bins}
			tc, err := detect(defaultCfg(), exec)
			if tt.wantErr {
				if !errors.Is(err, ErrUnavailable) {
					t.Fatalf("err = %v, want ErrUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if (tc.cleaner != "") != tt.wantCleaner {
				t.Errorf("cleaner = %q, wantCleaner %v", tc.cleaner, tt.wantCleaner)
			}
		})
	}
}

func testBoard(t *testing.T, rows ...types.Point) *types.Board {
	t.Helper()
	b := types.NewBoard(19)
	b.SetStones(rows, nil)
	return b
}

func TestRenderCommandLine(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"sgf-render": true}}
	tc, err := detect(defaultCfg(), exec)
	if err != nil {
		t.Fatal(err)
	}

	b := testBoard(t, types.Point{Row: 18, Col: 0})
	if err := tc.Render(b, "out.svg"); err != nil {
		t.Fatal(err)
	}

	if len(exec.calls) != 1 {
		t.Fatalf("calls = %d, want 1 (no cleaner)", len(exec.calls))
	}
	got := strings.Join(exec.calls[0], " ")
	want := "/usr/bin/sgf-render " + exec.tempPath + " --style minimalist --no-board-labels -o out.svg -r aa-sb"
	if got != want {
		t.Errorf("command = %q, want %q", got, want)
	}
	if !strings.HasPrefix(string(exec.tempData), "(;FF[4]GM[1]SZ[19]") {
		t.Errorf("temp file does not hold serialized SGF: %q", exec.tempData)
	}
}

func TestRenderRunsCleanerInPlace(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"sgf-render": true, "svgcleaner": true}}
	tc, err := detect(defaultCfg(), exec)
	if err != nil {
		t.Fatal(err)
	}

	if err := tc.Render(testBoard(t, types.Point{Row: 0, Col: 0}), "p.svg"); err != nil {
		t.Fatal(err)
	}

	if len(exec.calls) != 2 {
		t.Fatalf("calls = %d, want render + cleaner", len(exec.calls))
	}
	got := strings.Join(exec.calls[1], " ")
	if got != "/usr/bin/svgcleaner --quiet p.svg p.svg" {
		t.Errorf("cleaner command = %q", got)
	}
}

func TestRenderFailurePropagates(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"sgf-render": true},
		runErr:        errors.New("boom"),
	}
	tc, err := detect(defaultCfg(), exec)
	if err != nil {
		t.Fatal(err)
	}

	if err := tc.Render(testBoard(t, types.Point{Row: 1, Col: 1}), "x.svg"); err == nil {
		t.Fatal("Render should propagate the tool failure")
	}
}

func TestRowViewport(t *testing.T) {
	tests := []struct {
		name   string
		minRow int
		want   string
	}{
		{name: "stone near top keeps margin row", minRow: 17, want: "aa-sc"},
		{name: "mid board", minRow: 9, want: "aa-sk"},
		{name: "stone on bottom row clamps to full board", minRow: 0, want: "aa-ss"},
		{name: "row one clamps exactly at the edge", minRow: 1, want: "aa-ss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := types.NewBoard(19)
			b.SetStones([]types.Point{{Row: tt.minRow, Col: 3}, {Row: 18, Col: 4}}, nil)
			vw, ok := rowViewport(b)
			if !ok {
				t.Fatal("expected a viewport")
			}
			if vw != tt.want {
				t.Errorf("viewport = %q, want %q", vw, tt.want)
			}
		})
	}
}

func TestRowViewportEmptyBoard(t *testing.T) {
	if _, ok := rowViewport(types.NewBoard(19)); ok {
		t.Error("empty board should not produce a viewport")
	}
}

func TestRenderShrinkModes(t *testing.T) {
	tests := []struct {
		name     string
		mode     types.ShrinkWrap
		wantFlag string
	}{
		{name: "full shrink uses -s", mode: types.ShrinkFull, wantFlag: " -s"},
		{name: "none adds no crop flag", mode: types.ShrinkNone, wantFlag: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultCfg()
			cfg.ShrinkWrap = tt.mode
			exec := &mockExecutor{availableBins: map[string]bool{"sgf-render": true}}
			tc, err := detect(cfg, exec)
			if err != nil {
				t.Fatal(err)
			}
			if err := tc.Render(testBoard(t, types.Point{Row: 9, Col: 9}), "m.svg"); err != nil {
				t.Fatal(err)
			}
			got := strings.Join(exec.calls[0], " ")
			if !strings.HasSuffix(got, "-o m.svg"+tt.wantFlag) {
				t.Errorf("command = %q, want suffix %q", got, "-o m.svg"+tt.wantFlag)
			}
		})
	}
}
