package game

import (
	"fmt"

	"github.com/plus3/blockmap/ecs"
	"github.com/plus3/blockmap/sprite"
	"github.com/plus3/blockmap/tilemap"
)

// InitialiseBlock spawns a block at the left edge of the arena, vertically
// centered. Every call spawns a new entity.
func InitialiseBlock(storage *ecs.Storage, sheet sprite.Handle, index int) ecs.EntityId {
	return storage.Spawn(
		SpriteRender{Sheet: sheet, Index: index},
		Block{Width: BlockWidth, Height: BlockHeight},
		Transform{Translation: Vec3{X: BlockWidth * 0.5, Y: ArenaHeight / 2}},
	)
}

// InitialiseCamera spawns the camera looking at the whole arena.
func InitialiseCamera(storage *ecs.Storage) ecs.EntityId {
	return storage.Spawn(
		Transform{Translation: Vec3{X: ArenaWidth * 0.5, Y: ArenaHeight * 0.5, Z: 1}},
		Camera{
			Projection: Orthographic{Width: ArenaWidth, Height: ArenaHeight},
			Zoom:       1,
		},
	)
}

// FillFunc picks the tile for c given how many sprites the sheet holds.
type FillFunc func(c tilemap.Coord, sprites int) tilemap.Tile

// CheckerFill alternates the first two sprites of the sheet. A sheet with a
// single sprite uses it everywhere and an empty sheet gives NoSprite.
func CheckerFill(c tilemap.Coord, sprites int) tilemap.Tile {
	switch {
	case sprites <= 0:
		return tilemap.Tile{Sprite: tilemap.NoSprite}
	case sprites == 1:
		return tilemap.Tile{Sprite: 0}
	}
	return tilemap.Tile{Sprite: (c.X + c.Y) % 2}
}

// InitialiseMap spawns the MapWidth x MapHeight tile map centered on the
// arena, below the block and camera. A nil fill uses CheckerFill.
func InitialiseMap(storage *ecs.Storage, sheets *sprite.Store, handle sprite.Handle, fill FillFunc) (ecs.EntityId, error) {
	m, err := tilemap.New(tilemap.Config{
		Width:      MapWidth,
		Height:     MapHeight,
		TileWidth:  TileWidth,
		TileHeight: TileHeight,
		Encoder:    tilemap.NewMortonEncoder,
	})
	if err != nil {
		return 0, fmt.Errorf("game: tile map: %w", err)
	}

	if fill == nil {
		fill = CheckerFill
	}
	sprites := 0
	if sheet, ok := sheets.Get(handle); ok {
		sprites = sheet.Len()
	}
	m.Fill(func(c tilemap.Coord) tilemap.Tile {
		return fill(c, sprites)
	})

	return storage.Spawn(
		TileMap{Map: m, Sheet: handle},
		Transform{Translation: Vec3{X: ArenaWidth * 0.5, Y: ArenaHeight * 0.5, Z: -1}},
	), nil
}
