// Package tilemap holds a fixed-size grid of sprite tiles and converts
// between world positions and grid cells.
//
// The world is y-up and a map is centered on its origin. Row 0 is the top
// row, so Coord{0, 0} is the top-left cell.
package tilemap

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

// NoSprite marks a tile that draws nothing.
const NoSprite = -1

// Coord addresses one grid cell.
type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Tile is the content of one cell: an index into the map's sprite sheet.
type Tile struct {
	Sprite int
}

// Config describes a map. Encoder defaults to NewMortonEncoder.
type Config struct {
	Width, Height         int
	TileWidth, TileHeight float64
	Encoder               NewEncoderFunc
}

var ErrInvalidSize = errors.New("tilemap: invalid size")

// Map is a grid fixed at construction.
type Map struct {
	width, height         int
	tileWidth, tileHeight float64
	encoder               Encoder
	cells                 []Tile
}

// New allocates a map with every tile set to NoSprite.
func New(cfg Config) (*Map, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d cells", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	if cfg.TileWidth <= 0 || cfg.TileHeight <= 0 {
		return nil, fmt.Errorf("%w: tile %gx%g", ErrInvalidSize, cfg.TileWidth, cfg.TileHeight)
	}

	newEncoder := cfg.Encoder
	if newEncoder == nil {
		newEncoder = NewMortonEncoder
	}
	enc := newEncoder(cfg.Width, cfg.Height)

	m := &Map{
		width:      cfg.Width,
		height:     cfg.Height,
		tileWidth:  cfg.TileWidth,
		tileHeight: cfg.TileHeight,
		encoder:    enc,
		cells:      make([]Tile, enc.Len()),
	}
	for i := range m.cells {
		m.cells[i] = Tile{Sprite: NoSprite}
	}
	return m, nil
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// Len is the number of cells, width*height.
func (m *Map) Len() int { return m.width * m.height }

// TileSize returns the world size of one cell.
func (m *Map) TileSize() (w, h float64) {
	return m.tileWidth, m.tileHeight
}

// Contains reports whether c is on the grid.
func (m *Map) Contains(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < m.width && c.Y < m.height
}

// Get returns the tile at c.
func (m *Map) Get(c Coord) (Tile, bool) {
	if !m.Contains(c) {
		return Tile{}, false
	}
	return m.cells[m.encoder.Encode(c)], true
}

// Set replaces the tile at c. It returns false when c is off the grid.
func (m *Map) Set(c Coord, t Tile) bool {
	if !m.Contains(c) {
		return false
	}
	m.cells[m.encoder.Encode(c)] = t
	return true
}

// Fill sets every cell from fn.
func (m *Map) Fill(fn func(Coord) Tile) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := Coord{X: x, Y: y}
			m.cells[m.encoder.Encode(c)] = fn(c)
		}
	}
}

// All yields every cell in storage order.
func (m *Map) All() iter.Seq2[Coord, Tile] {
	return func(yield func(Coord, Tile) bool) {
		for i, t := range m.cells {
			c := m.encoder.Decode(i)
			if !m.Contains(c) {
				continue
			}
			if !yield(c, t) {
				return
			}
		}
	}
}

// Bounds returns the world rectangle covered by a map centered on (ox, oy).
func (m *Map) Bounds(ox, oy float64) (minX, minY, maxX, maxY float64) {
	halfW := float64(m.width) * m.tileWidth / 2
	halfH := float64(m.height) * m.tileHeight / 2
	return ox - halfW, oy - halfH, ox + halfW, oy + halfH
}

// ToTile returns the cell containing world point (wx, wy) for a map centered
// on (ox, oy). Points on a shared edge belong to the cell right of / below it.
func (m *Map) ToTile(ox, oy, wx, wy float64) (Coord, bool) {
	minX, _, _, maxY := m.Bounds(ox, oy)

	fx := math.Floor((wx - minX) / m.tileWidth)
	fy := math.Floor((maxY - wy) / m.tileHeight)
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return Coord{}, false
	}

	c := Coord{X: int(fx), Y: int(fy)}
	if fx < 0 || fy < 0 || !m.Contains(c) {
		return Coord{}, false
	}
	return c, true
}

// ToWorld returns the world center of cell c for a map centered on (ox, oy).
func (m *Map) ToWorld(ox, oy float64, c Coord) (wx, wy float64) {
	minX, _, _, maxY := m.Bounds(ox, oy)
	wx = minX + (float64(c.X)+0.5)*m.tileWidth
	wy = maxY - (float64(c.Y)+0.5)*m.tileHeight
	return wx, wy
}
