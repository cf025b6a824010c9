// Package sprite loads sprite sheets: a PNG texture plus a YAML file that
// cuts it into numbered sprites.
package sprite

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"

	"gopkg.in/yaml.v3"
)

var (
	ErrTextureSize = errors.New("sprite: texture size does not match image")
	ErrOutOfBounds = errors.New("sprite: sprite outside texture")
	ErrLayout      = errors.New("sprite: invalid layout")
)

// Sprite is one region of a sheet. The offset is the pixel, measured from
// the region's top-left corner, that is placed on the entity position. A
// zero offset anchors the sprite at its center.
type Sprite struct {
	Bounds  image.Rectangle
	OffsetX float64
	OffsetY float64
}

// Anchor returns the anchor pixel of the sprite.
func (s Sprite) Anchor() (x, y float64) {
	if s.OffsetX == 0 && s.OffsetY == 0 {
		return float64(s.Bounds.Dx()) / 2, float64(s.Bounds.Dy()) / 2
	}
	return s.OffsetX, s.OffsetY
}

// Sheet is a decoded texture and its sprite regions.
type Sheet struct {
	ImagePath string
	MetaPath  string
	Image     image.Image
	Sprites   []Sprite
}

// Len returns the number of sprites on the sheet.
func (s *Sheet) Len() int {
	return len(s.Sprites)
}

// Sprite returns sprite i.
func (s *Sheet) Sprite(i int) (Sprite, bool) {
	if i < 0 || i >= len(s.Sprites) {
		return Sprite{}, false
	}
	return s.Sprites[i], true
}

type metadata struct {
	TextureWidth  int          `yaml:"texture_width"`
	TextureHeight int          `yaml:"texture_height"`
	Sprites       []spriteSpec `yaml:"sprites"`
	Grid          *gridSpec    `yaml:"grid"`
}

type spriteSpec struct {
	X       int       `yaml:"x"`
	Y       int       `yaml:"y"`
	Width   int       `yaml:"width"`
	Height  int       `yaml:"height"`
	Offsets []float64 `yaml:"offsets"`
}

type gridSpec struct {
	Columns    int `yaml:"columns"`
	Rows       int `yaml:"rows"`
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// Load reads and validates a sheet from fsys.
func Load(fsys fs.FS, imagePath, metaPath string) (*Sheet, error) {
	data, err := fs.ReadFile(fsys, imagePath)
	if err != nil {
		return nil, fmt.Errorf("sprite: load %s: %w", imagePath, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("sprite: decode %s: %w", imagePath, err)
	}

	data, err = fs.ReadFile(fsys, metaPath)
	if err != nil {
		return nil, fmt.Errorf("sprite: load %s: %w", metaPath, err)
	}
	var meta metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("sprite: unmarshal %s: %w", metaPath, err)
	}

	sprites, err := meta.sprites(img.Bounds().Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", metaPath, err)
	}

	return &Sheet{
		ImagePath: imagePath,
		MetaPath:  metaPath,
		Image:     img,
		Sprites:   sprites,
	}, nil
}

func (m metadata) sprites(size image.Point) ([]Sprite, error) {
	if m.TextureWidth != size.X || m.TextureHeight != size.Y {
		return nil, fmt.Errorf("%w: declared %dx%d, image %dx%d",
			ErrTextureSize, m.TextureWidth, m.TextureHeight, size.X, size.Y)
	}
	if m.Grid != nil && len(m.Sprites) > 0 {
		return nil, fmt.Errorf("%w: both grid and sprites given", ErrLayout)
	}

	texture := image.Rect(0, 0, m.TextureWidth, m.TextureHeight)

	if g := m.Grid; g != nil {
		if g.Columns < 0 || g.Rows < 0 || g.CellWidth <= 0 || g.CellHeight <= 0 {
			return nil, fmt.Errorf("%w: grid %dx%d of %dx%d", ErrLayout, g.Columns, g.Rows, g.CellWidth, g.CellHeight)
		}
		sprites := make([]Sprite, 0, g.Columns*g.Rows)
		for row := 0; row < g.Rows; row++ {
			for col := 0; col < g.Columns; col++ {
				r := image.Rect(0, 0, g.CellWidth, g.CellHeight).Add(image.Pt(col*g.CellWidth, row*g.CellHeight))
				if !r.In(texture) {
					return nil, fmt.Errorf("%w: grid cell %d,%d at %v", ErrOutOfBounds, col, row, r)
				}
				sprites = append(sprites, Sprite{Bounds: r})
			}
		}
		return sprites, nil
	}

	sprites := make([]Sprite, 0, len(m.Sprites))
	for i, s := range m.Sprites {
		r := image.Rect(s.X, s.Y, s.X+s.Width, s.Y+s.Height)
		if s.Width <= 0 || s.Height <= 0 || s.X < 0 || s.Y < 0 || !r.In(texture) {
			return nil, fmt.Errorf("%w: sprite %d at %v", ErrOutOfBounds, i, r)
		}
		sp := Sprite{Bounds: r}
		switch len(s.Offsets) {
		case 0:
		case 2:
			sp.OffsetX, sp.OffsetY = s.Offsets[0], s.Offsets[1]
		default:
			return nil, fmt.Errorf("%w: sprite %d has %d offsets", ErrLayout, i, len(s.Offsets))
		}
		sprites = append(sprites, sp)
	}
	return sprites, nil
}
