package game

import (
	"github.com/plus3/blockmap/ecs"
	"github.com/plus3/blockmap/pick"
	"github.com/plus3/blockmap/sprite"
	"github.com/plus3/blockmap/tilemap"
)

// Vec3 is a world position. The world is y-up; z orders layers, larger z
// drawn later.
type Vec3 struct {
	X, Y, Z float64
}

type Transform struct {
	Translation Vec3
	// Scale multiplies sprite size. Zero means 1.
	Scale float64
}

// UniformScale returns the scale with the zero value read as 1.
func (t *Transform) UniformScale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// SpriteRender draws one sprite of a sheet at the entity's Transform.
type SpriteRender struct {
	Sheet sprite.Handle
	Index int
}

// Block is the static geometry of a block entity in world units.
type Block struct {
	Width, Height float64
}

// Orthographic is the world area visible at zoom 1.
type Orthographic struct {
	Width, Height float64
}

// Camera views the world from its Transform. When Target resolves to an
// entity with a Transform the camera tracks that entity, otherwise it tracks
// the arena center. Offset is the player's pan away from the tracked point.
type Camera struct {
	Projection Orthographic
	Zoom       float64
	Target     *ecs.EntityRef

	OffsetX, OffsetY float64
}

// TileMap puts a tile grid in the world, centered on the entity's Transform.
type TileMap struct {
	Map   *tilemap.Map
	Sheet sprite.Handle
}

// Ray is a cursor ray in world space, rebuilt every tick.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// IntersectZ returns the point where the ray crosses the plane z.
func (r Ray) IntersectZ(z float64) (Vec3, bool) {
	if r.Direction.Z == 0 {
		return Vec3{}, false
	}
	t := (z - r.Origin.Z) / r.Direction.Z
	if t < 0 {
		return Vec3{}, false
	}
	return Vec3{
		X: r.Origin.X + r.Direction.X*t,
		Y: r.Origin.Y + r.Direction.Y*t,
		Z: z,
	}, true
}

// Hover is the published result of the mouse raycast.
type Hover struct {
	// Valid is false when the cursor is outside the window or nothing can
	// see it; the other fields are then zero.
	Valid bool
	World Vec3

	HasTile bool
	Tile    tilemap.Coord
	Map     ecs.EntityId

	HasEntity bool
	Entity    ecs.EntityId

	// Changed is set when the hovered tile or entity differs from the
	// previous tick.
	Changed bool
}

// Assets is the singleton holding loaded sprite sheets.
type Assets struct {
	Sprites *sprite.Store
}

// Arena is the playing field the camera is kept inside.
type Arena struct {
	MinX, MinY, MaxX, MaxY float64
}

// Center returns the middle of the arena.
func (a Arena) Center() (float64, float64) {
	return (a.MinX + a.MaxX) / 2, (a.MinY + a.MaxY) / 2
}

// HalfSize returns half the arena width and height.
func (a Arena) HalfSize() (float64, float64) {
	return (a.MaxX - a.MinX) / 2, (a.MaxY - a.MinY) / 2
}

// Clamp limits (x, y) to the arena.
func (a Arena) Clamp(x, y float64) (float64, float64) {
	return min(max(x, a.MinX), a.MaxX), min(max(y, a.MinY), a.MaxY)
}

// Picking is the singleton holding the pick space of block entities.
type Picking struct {
	Space *pick.Space
}

// RegisterComponents registers every component type the game spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[SpriteRender](registry)
	ecs.RegisterComponent[Block](registry)
	ecs.RegisterComponent[Camera](registry)
	ecs.RegisterComponent[TileMap](registry)
}
