package tilemap_test

import (
	"testing"

	"github.com/plus3/blockmap/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMortonRoundTrip(t *testing.T) {
	enc := tilemap.NewMortonEncoder(32, 32)
	assert.Equal(t, 32*32, enc.Len())

	seen := make(map[int]tilemap.Coord, 32*32)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := tilemap.Coord{X: x, Y: y}
			i := enc.Encode(c)
			require.Less(t, i, enc.Len())
			if prev, ok := seen[i]; ok {
				t.Fatalf("index %d used by %v and %v", i, prev, c)
			}
			seen[i] = c
			assert.Equal(t, c, enc.Decode(i))
		}
	}
}

func TestMortonInterleave(t *testing.T) {
	enc := tilemap.NewMortonEncoder(4, 4)
	assert.Equal(t, 0, enc.Encode(tilemap.Coord{X: 0, Y: 0}))
	assert.Equal(t, 1, enc.Encode(tilemap.Coord{X: 1, Y: 0}))
	assert.Equal(t, 2, enc.Encode(tilemap.Coord{X: 0, Y: 1}))
	assert.Equal(t, 3, enc.Encode(tilemap.Coord{X: 1, Y: 1}))
	assert.Equal(t, 4, enc.Encode(tilemap.Coord{X: 2, Y: 0}))
}

func TestMortonAllocationRoundsUp(t *testing.T) {
	assert.Equal(t, 64, tilemap.NewMortonEncoder(5, 3).Len())
	assert.Equal(t, 1, tilemap.NewMortonEncoder(1, 1).Len())
}

func TestFlatEncoder(t *testing.T) {
	enc := tilemap.NewFlatEncoder(5, 3)
	assert.Equal(t, 15, enc.Len())
	assert.Equal(t, 7, enc.Encode(tilemap.Coord{X: 2, Y: 1}))
	assert.Equal(t, tilemap.Coord{X: 4, Y: 2}, enc.Decode(14))
}

func newMap(t *testing.T, enc tilemap.NewEncoderFunc) *tilemap.Map {
	t.Helper()
	m, err := tilemap.New(tilemap.Config{
		Width: 4, Height: 2, TileWidth: 10, TileHeight: 5, Encoder: enc,
	})
	require.NoError(t, err)
	return m
}

func TestNewRejectsInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		cfg  tilemap.Config
	}{
		{"zero width", tilemap.Config{Width: 0, Height: 2, TileWidth: 1, TileHeight: 1}},
		{"negative height", tilemap.Config{Width: 2, Height: -1, TileWidth: 1, TileHeight: 1}},
		{"zero tile", tilemap.Config{Width: 2, Height: 2, TileWidth: 0, TileHeight: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tilemap.New(tt.cfg)
			assert.ErrorIs(t, err, tilemap.ErrInvalidSize)
		})
	}
}

func TestGetSet(t *testing.T) {
	m := newMap(t, nil)
	assert.Equal(t, 8, m.Len())

	tile, ok := m.Get(tilemap.Coord{X: 3, Y: 1})
	require.True(t, ok)
	assert.Equal(t, tilemap.NoSprite, tile.Sprite)

	assert.True(t, m.Set(tilemap.Coord{X: 3, Y: 1}, tilemap.Tile{Sprite: 7}))
	tile, _ = m.Get(tilemap.Coord{X: 3, Y: 1})
	assert.Equal(t, 7, tile.Sprite)

	assert.False(t, m.Set(tilemap.Coord{X: 4, Y: 0}, tilemap.Tile{}))
	_, ok = m.Get(tilemap.Coord{X: -1, Y: 0})
	assert.False(t, ok)
}

func TestAllSkipsPadding(t *testing.T) {
	for name, enc := range map[string]tilemap.NewEncoderFunc{
		"flat":   tilemap.NewFlatEncoder,
		"morton": tilemap.NewMortonEncoder,
	} {
		t.Run(name, func(t *testing.T) {
			m := newMap(t, enc)
			m.Fill(func(c tilemap.Coord) tilemap.Tile {
				return tilemap.Tile{Sprite: c.Y*10 + c.X}
			})

			count := 0
			for c, tile := range m.All() {
				assert.True(t, m.Contains(c))
				assert.Equal(t, c.Y*10+c.X, tile.Sprite)
				count++
			}
			assert.Equal(t, m.Len(), count)
		})
	}
}

func TestToTile(t *testing.T) {
	// 4x2 cells of 10x5 centered on (100, 50): x in [80, 120], y in [45, 55].
	m := newMap(t, nil)

	tests := []struct {
		name   string
		wx, wy float64
		want   tilemap.Coord
		ok     bool
	}{
		{"top left", 81, 54, tilemap.Coord{X: 0, Y: 0}, true},
		{"bottom right", 119, 46, tilemap.Coord{X: 3, Y: 1}, true},
		{"center", 100, 50, tilemap.Coord{X: 2, Y: 1}, true},
		{"left of map", 79, 50, tilemap.Coord{}, false},
		{"above map", 100, 56, tilemap.Coord{}, false},
		{"right edge", 120, 50, tilemap.Coord{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.ToTile(100, 50, tt.wx, tt.wy)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToWorldInvertsToTile(t *testing.T) {
	m := newMap(t, nil)
	for c := range m.All() {
		wx, wy := m.ToWorld(100, 50, c)
		got, ok := m.ToTile(100, 50, wx, wy)
		require.True(t, ok)
		assert.Equal(t, c, got)
	}
}
