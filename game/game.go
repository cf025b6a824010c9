package game

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/plus3/blockmap/ecs"
	"github.com/plus3/blockmap/input"
	"github.com/plus3/blockmap/pick"
	"github.com/plus3/blockmap/sprite"
)

// Paths names the sprite sheet files inside the assets FS.
type Paths struct {
	SpritesImage, SpritesMeta string
	TilesImage, TilesMeta     string
}

// DefaultPaths names the sheets shipped in the assets package.
func DefaultPaths() Paths {
	return Paths{
		SpritesImage: "images/hyptosis_sprites.png",
		SpritesMeta:  "images/hyptosis_sprites.yaml",
		TilesImage:   "images/hyptosis_tile-art-batch-1.png",
		TilesMeta:    "images/hyptosis_tile-art-batch-1.yaml",
	}
}

// Scene lists what Setup created.
type Scene struct {
	Block, Camera, Map ecs.EntityId
	Sprites, Tiles     sprite.Handle
}

// Setup adds the singletons, loads both sprite sheets and spawns the block,
// the camera and the tile map. storage must use a registry that went
// through RegisterComponents.
func Setup(storage *ecs.Storage, fsys fs.FS, paths Paths) (Scene, error) {
	store := sprite.NewStore(fsys)
	storage.AddSingleton(Assets{Sprites: store})
	storage.AddSingleton(DefaultArena())
	storage.AddSingleton(Hover{})
	space := pick.New()
	storage.AddSingleton(Picking{Space: space})
	storage.AddSingleton(input.State{})

	var scene Scene
	var err error

	scene.Sprites, err = store.Load(paths.SpritesImage, paths.SpritesMeta)
	if err != nil {
		return Scene{}, fmt.Errorf("game: block sprites: %w", err)
	}
	scene.Block = InitialiseBlock(storage, scene.Sprites, 0)
	SyncPickSpace(storage, space)
	scene.Camera = InitialiseCamera(storage)

	scene.Tiles, err = store.Load(paths.TilesImage, paths.TilesMeta)
	if err != nil {
		return Scene{}, fmt.Errorf("game: tile sprites: %w", err)
	}
	scene.Map, err = InitialiseMap(storage, store, scene.Tiles, nil)
	if err != nil {
		return Scene{}, err
	}

	log.Printf("game: scene ready, %d sprite sheets", store.Len())
	return scene, nil
}

// Systems are the update systems Schedule registers.
type Systems struct {
	Input    *input.System
	PickSync *PickSyncSystem
	Camera   *CameraSystem
	Raycast  *MouseRaycastSystem
	HoverLog *HoverLogSystem
}

// Schedule registers the update systems and resolves their order: input
// first, then the camera and the raycast, then the hover log.
func Schedule(scheduler *ecs.Scheduler, handler *input.Handler, device input.Device, logger *log.Logger) (*Systems, error) {
	s := &Systems{
		Input:    &input.System{Handler: handler, Device: device},
		PickSync: &PickSyncSystem{},
		Camera:   &CameraSystem{},
		Raycast:  &MouseRaycastSystem{},
		HoverLog: &HoverLogSystem{Logger: logger},
	}

	scheduler.Register(s.Input, ecs.Named(input.SystemName))
	scheduler.Register(s.PickSync, ecs.Named(PickSyncSystemName), ecs.After(input.SystemName))
	scheduler.Register(s.Camera, ecs.Named(CameraSystemName), ecs.After(input.SystemName))
	scheduler.Register(s.Raycast, ecs.Named(RaycastSystemName), ecs.After(input.SystemName, PickSyncSystemName))
	scheduler.Register(s.HoverLog, ecs.Named(HoverLogSystemName), ecs.After(RaycastSystemName))

	if err := scheduler.Build(); err != nil {
		return nil, fmt.Errorf("game: schedule: %w", err)
	}
	return s, nil
}
