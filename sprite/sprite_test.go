package sprite_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/plus3/blockmap/sprite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sheetFS(t *testing.T, meta string) fstest.MapFS {
	return fstest.MapFS{
		"sheet.png":  {Data: pngBytes(t, 64, 32)},
		"sheet.yaml": {Data: []byte(meta)},
	}
}

func TestLoadSprites(t *testing.T) {
	fsys := sheetFS(t, `
texture_width: 64
texture_height: 32
sprites:
  - {x: 0, y: 0, width: 16, height: 32, offsets: [8, 16]}
  - {x: 16, y: 0, width: 48, height: 32}
`)
	sheet, err := sprite.Load(fsys, "sheet.png", "sheet.yaml")
	require.NoError(t, err)
	require.Equal(t, 2, sheet.Len())

	first, ok := sheet.Sprite(0)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 16, 32), first.Bounds)
	assert.Equal(t, 8.0, first.OffsetX)
	assert.Equal(t, 16.0, first.OffsetY)

	_, ok = sheet.Sprite(2)
	assert.False(t, ok)
}

func TestLoadGrid(t *testing.T) {
	fsys := sheetFS(t, `
texture_width: 64
texture_height: 32
grid: {columns: 4, rows: 2, cell_width: 16, cell_height: 16}
`)
	sheet, err := sprite.Load(fsys, "sheet.png", "sheet.yaml")
	require.NoError(t, err)
	require.Equal(t, 8, sheet.Len())
	assert.Equal(t, image.Rect(16, 16, 32, 32), sheet.Sprites[5].Bounds)
}

func TestLoadEmpty(t *testing.T) {
	sheet, err := sprite.Load(sheetFS(t, "texture_width: 64\ntexture_height: 32\n"), "sheet.png", "sheet.yaml")
	require.NoError(t, err)
	assert.Equal(t, 0, sheet.Len())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		meta string
		want error
	}{
		{
			name: "texture size mismatch",
			meta: "texture_width: 32\ntexture_height: 32\n",
			want: sprite.ErrTextureSize,
		},
		{
			name: "sprite past right edge",
			meta: "texture_width: 64\ntexture_height: 32\nsprites: [{x: 60, y: 0, width: 8, height: 8}]\n",
			want: sprite.ErrOutOfBounds,
		},
		{
			name: "negative origin",
			meta: "texture_width: 64\ntexture_height: 32\nsprites: [{x: -1, y: 0, width: 8, height: 8}]\n",
			want: sprite.ErrOutOfBounds,
		},
		{
			name: "zero size",
			meta: "texture_width: 64\ntexture_height: 32\nsprites: [{x: 0, y: 0, width: 0, height: 8}]\n",
			want: sprite.ErrOutOfBounds,
		},
		{
			name: "grid too large",
			meta: "texture_width: 64\ntexture_height: 32\ngrid: {columns: 5, rows: 1, cell_width: 16, cell_height: 16}\n",
			want: sprite.ErrOutOfBounds,
		},
		{
			name: "grid and sprites",
			meta: "texture_width: 64\ntexture_height: 32\ngrid: {columns: 1, rows: 1, cell_width: 16, cell_height: 16}\nsprites: [{x: 0, y: 0, width: 8, height: 8}]\n",
			want: sprite.ErrLayout,
		},
		{
			name: "one offset",
			meta: "texture_width: 64\ntexture_height: 32\nsprites: [{x: 0, y: 0, width: 8, height: 8, offsets: [1]}]\n",
			want: sprite.ErrLayout,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sprite.Load(sheetFS(t, tt.meta), "sheet.png", "sheet.yaml")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := sprite.Load(fstest.MapFS{}, "missing.png", "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sprite: load missing.png")
}

func TestStore(t *testing.T) {
	fsys := sheetFS(t, "texture_width: 64\ntexture_height: 32\ngrid: {columns: 2, rows: 1, cell_width: 32, cell_height: 32}\n")
	store := sprite.NewStore(fsys)

	h, err := store.Load("sheet.png", "sheet.yaml")
	require.NoError(t, err)
	assert.NotEqual(t, sprite.Handle(0), h)

	again, err := store.Load("sheet.png", "sheet.yaml")
	require.NoError(t, err)
	assert.Equal(t, h, again)
	assert.Equal(t, 1, store.Len())

	sheet, ok := store.Get(h)
	require.True(t, ok)
	assert.Equal(t, 2, sheet.Len())

	_, ok = store.Get(0)
	assert.False(t, ok)
	_, ok = store.Get(h + 1)
	assert.False(t, ok)
}

func TestStoreReload(t *testing.T) {
	fsys := sheetFS(t, "texture_width: 64\ntexture_height: 32\ngrid: {columns: 2, rows: 1, cell_width: 32, cell_height: 32}\n")
	store := sprite.NewStore(fsys)
	h, err := store.Load("sheet.png", "sheet.yaml")
	require.NoError(t, err)

	fsys["sheet.yaml"] = &fstest.MapFile{Data: []byte("texture_width: 64\ntexture_height: 32\ngrid: {columns: 4, rows: 2, cell_width: 16, cell_height: 16}\n")}
	n, err := store.Reload("sheet.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	sheet, _ := store.Get(h)
	assert.Equal(t, 8, sheet.Len())

	n, err = store.Reload("other.yaml")
	require.NoError(t, err)
	assert.Zero(t, n)

	fsys["sheet.yaml"] = &fstest.MapFile{Data: []byte("texture_width: 1\ntexture_height: 1\n")}
	_, err = store.Reload("sheet.yaml")
	assert.ErrorIs(t, err, sprite.ErrTextureSize)
	sheet, _ = store.Get(h)
	assert.Equal(t, 8, sheet.Len())
}

func TestSpriteAnchor(t *testing.T) {
	s := sprite.Sprite{Bounds: image.Rect(16, 0, 32, 64)}
	x, y := s.Anchor()
	assert.Equal(t, 8.0, x)
	assert.Equal(t, 32.0, y)

	s.OffsetX, s.OffsetY = 2, 60
	x, y = s.Anchor()
	assert.Equal(t, 2.0, x)
	assert.Equal(t, 60.0, y)
}
