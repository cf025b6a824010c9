// Package assets embeds the default configuration, images and UI layout.
package assets

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed config/*.yaml images/*.png images/*.yaml ui/*.yaml
var embedded embed.FS

// FS returns the embedded assets.
func FS() fs.FS {
	return embedded
}

// Overlay serves files from dir when they exist there and falls back to the
// embedded copy otherwise. An empty dir returns the embedded assets.
func Overlay(dir string) fs.FS {
	if dir == "" {
		return embedded
	}
	return overlayFS{disk: os.DirFS(dir), fallback: embedded}
}

type overlayFS struct {
	disk     fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if f, err := o.disk.Open(name); err == nil {
		return f, nil
	}
	return o.fallback.Open(name)
}
