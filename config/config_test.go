package config_test

import (
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"
	"time"

	"github.com/plus3/blockmap/assets"
	"github.com/plus3/blockmap/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	fsys := assets.FS()

	display, err := config.LoadDisplay(fsys)
	require.NoError(t, err)
	assert.Equal(t, "blockmap", display.Title)
	assert.Positive(t, display.Width)

	bindings, err := config.LoadBindings(fsys)
	require.NoError(t, err)
	for _, axis := range []string{"camera_x", "camera_y", "camera_scale"} {
		assert.Contains(t, bindings.Axes, axis)
	}
	assert.Contains(t, bindings.Actions, "camera_center")

	ui, err := config.LoadUI(fsys)
	require.NoError(t, err)
	assert.NotEmpty(t, ui.Labels)
}

func TestLoadDisplayDefaults(t *testing.T) {
	fsys := fstest.MapFS{config.DisplayFile: {Data: []byte("title: small\nclear_color: \"#10203080\"\n")}}

	display, err := config.LoadDisplay(fsys)
	require.NoError(t, err)
	assert.Equal(t, "small", display.Title)
	assert.Equal(t, 800, display.Width)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}, display.ClearColor.NRGBA)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		load    func(fstest.MapFS) error
		message string
	}{
		{
			name:    "missing display",
			load:    func(fsys fstest.MapFS) error { _, err := config.LoadDisplay(fsys); return err },
			message: "config: load config/display.yaml",
		},
		{
			name:    "bad color",
			file:    config.DisplayFile,
			data:    "clear_color: \"#12\"\n",
			load:    func(fsys fstest.MapFS) error { _, err := config.LoadDisplay(fsys); return err },
			message: "invalid color format",
		},
		{
			name:    "zero width",
			file:    config.DisplayFile,
			data:    "width: 0\n",
			load:    func(fsys fstest.MapFS) error { _, err := config.LoadDisplay(fsys); return err },
			message: "window size",
		},
		{
			name:    "empty axis",
			file:    config.BindingsFile,
			data:    "axes:\n  camera_x: {}\n",
			load:    func(fsys fstest.MapFS) error { _, err := config.LoadBindings(fsys); return err },
			message: `axis "camera_x" has no keys`,
		},
		{
			name:    "duplicate label",
			file:    config.UIFile,
			data:    "labels:\n  - id: a\n  - id: a\n",
			load:    func(fsys fstest.MapFS) error { _, err := config.LoadUI(fsys); return err },
			message: `duplicate label "a"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{}
			if tt.file != "" {
				fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.data)}
			}
			err := tt.load(fsys)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestBindingsKeys(t *testing.T) {
	b := config.Bindings{
		Axes:    map[string]config.Axis{"x": {Pos: []string{"D"}, Neg: []string{"A"}}},
		Actions: map[string][]string{"quit": {"Escape"}},
	}
	keys := b.Keys()
	slices.Sort(keys)
	assert.Equal(t, []string{"A", "D", "Escape"}, keys)
}

func TestWatcherReportsRelativePaths(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "config"), 0o755))

	w, err := config.NewWatcher(root, "config")
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "display.yaml"), []byte("title: x\n"), 0o644))

	var changed []string
	require.Eventually(t, func() bool {
		changed = append(changed, w.Poll()...)
		return slices.Contains(changed, "config/display.yaml")
	}, 2*time.Second, 10*time.Millisecond)
	assert.NotContains(t, changed, "config/notes.txt")
}

func TestWatcherReportsAfterLastWrite(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "ui"), 0o755))

	w, err := config.NewWatcher(root, "ui")
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	path := filepath.Join(root, "ui", "main.yaml")
	require.NoError(t, os.WriteFile(path, []byte("labels: []\n"), 0o644))
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("labels: [{id: help}]\n"), 0o644))
	lastWrite := time.Now()

	var changed []string
	require.Eventually(t, func() bool {
		changed = append(changed, w.Poll()...)
		return slices.Contains(changed, "ui/main.yaml")
	}, 2*time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(lastWrite), 90*time.Millisecond)

	time.Sleep(250 * time.Millisecond)
	changed = append(changed, w.Poll()...)
	assert.Equal(t, 1, countOf(changed, "ui/main.yaml"))
}

func countOf(names []string, name string) int {
	n := 0
	for _, s := range names {
		if s == name {
			n++
		}
	}
	return n
}
