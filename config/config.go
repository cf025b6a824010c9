// Package config loads the YAML configuration files: display settings, key
// bindings and the UI overlay layout.
package config

import (
	"fmt"
	"image/color"
	"io/fs"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DisplayFile  = "config/display.yaml"
	BindingsFile = "config/bindings.yaml"
	UIFile       = "ui/main.yaml"
)

// Display configures the window.
type Display struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	ClearColor Color  `yaml:"clear_color"`
	Resizable  bool   `yaml:"resizable"`
	VSync      bool   `yaml:"vsync"`
}

// Axis is driven by two sets of keys.
type Axis struct {
	Pos []string `yaml:"pos"`
	Neg []string `yaml:"neg"`
}

// Bindings maps axis and action names to key names.
type Bindings struct {
	Axes    map[string]Axis     `yaml:"axes"`
	Actions map[string][]string `yaml:"actions"`
}

// Keys returns every key name referenced by the bindings.
func (b Bindings) Keys() []string {
	var keys []string
	for _, axis := range b.Axes {
		keys = append(keys, axis.Pos...)
		keys = append(keys, axis.Neg...)
	}
	for _, action := range b.Actions {
		keys = append(keys, action...)
	}
	return keys
}

// Label is one text element of the overlay.
type Label struct {
	ID     string `yaml:"id"`
	Text   string `yaml:"text"`
	Anchor string `yaml:"anchor"`
	Color  Color  `yaml:"color"`
}

// UILayout describes the overlay.
type UILayout struct {
	Labels []Label `yaml:"labels"`
}

func defaultDisplay() Display {
	return Display{
		Title:      "blockmap",
		Width:      800,
		Height:     800,
		ClearColor: Color{NRGBA: color.NRGBA{A: 255}},
		VSync:      true,
	}
}

// LoadDisplay reads DisplayFile. Missing fields keep their defaults.
func LoadDisplay(fsys fs.FS) (Display, error) {
	d := defaultDisplay()
	if err := load(fsys, DisplayFile, &d); err != nil {
		return Display{}, err
	}
	if d.Width <= 0 || d.Height <= 0 {
		return Display{}, fmt.Errorf("config: %s: window size %dx%d", DisplayFile, d.Width, d.Height)
	}
	return d, nil
}

// LoadBindings reads BindingsFile.
func LoadBindings(fsys fs.FS) (Bindings, error) {
	var b Bindings
	if err := load(fsys, BindingsFile, &b); err != nil {
		return Bindings{}, err
	}
	for name, axis := range b.Axes {
		if len(axis.Pos) == 0 && len(axis.Neg) == 0 {
			return Bindings{}, fmt.Errorf("config: %s: axis %q has no keys", BindingsFile, name)
		}
	}
	return b, nil
}

// LoadUI reads UIFile.
func LoadUI(fsys fs.FS) (UILayout, error) {
	var ui UILayout
	if err := load(fsys, UIFile, &ui); err != nil {
		return UILayout{}, err
	}
	seen := make(map[string]bool, len(ui.Labels))
	for _, l := range ui.Labels {
		if l.ID == "" {
			return UILayout{}, fmt.Errorf("config: %s: label without id", UIFile)
		}
		if seen[l.ID] {
			return UILayout{}, fmt.Errorf("config: %s: duplicate label %q", UIFile, l.ID)
		}
		seen[l.ID] = true
	}
	return ui, nil
}

func load(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("config: load %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config: unmarshal %s: %w", name, err)
	}
	return nil
}

// Color is a "#rrggbb" or "#rrggbbaa" string in YAML.
type Color struct {
	color.NRGBA
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var ch [4]uint8
	ch[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		ch[i] = uint8(v)
	}

	c.NRGBA = color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
	return nil
}
