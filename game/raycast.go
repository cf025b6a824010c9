package game

import (
	"github.com/plus3/blockmap/ecs"
	"github.com/plus3/blockmap/input"
)

// ScreenToWorld returns the ray through screen pixel (sx, sy) of a w x h
// window for a camera at t. Screen space is y-down and world space y-up.
func ScreenToWorld(cam *Camera, t *Transform, sx, sy float64, w, h int) Ray {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return Ray{
		Origin: Vec3{
			X: t.Translation.X + (sx/float64(w)-0.5)*cam.Projection.Width/zoom,
			Y: t.Translation.Y + (0.5-sy/float64(h))*cam.Projection.Height/zoom,
			Z: t.Translation.Z,
		},
		Direction: Vec3{Z: -1},
	}
}

// WorldToScreen is the inverse of ScreenToWorld for points on any plane.
func WorldToScreen(cam *Camera, t *Transform, wx, wy float64, w, h int) (sx, sy float64) {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	sx = ((wx-t.Translation.X)*zoom/cam.Projection.Width + 0.5) * float64(w)
	sy = (0.5 - (wy-t.Translation.Y)*zoom/cam.Projection.Height) * float64(h)
	return sx, sy
}

// MouseRaycastSystem resolves the cursor to a world point, a tile and a
// block entity, and publishes the result in the Hover singleton.
type MouseRaycastSystem struct {
	Cameras ecs.Query[struct {
		*Transform
		*Camera
	}]
	Maps ecs.Query[struct {
		ecs.EntityId
		*Transform
		*TileMap
	}]
	Input   ecs.Singleton[input.State]
	Hover   ecs.Singleton[Hover]
	Picking ecs.Singleton[Picking]
}

// Execute publishes this tick's Hover.
func (s *MouseRaycastSystem) Execute(frame *ecs.UpdateFrame) {
	hover := s.Hover.Get()
	if hover == nil {
		s.Hover.Set(Hover{})
		hover = s.Hover.Get()
	}
	prev := *hover
	next := s.resolve()
	next.Changed = next.HasTile != prev.HasTile || next.Tile != prev.Tile || next.Map != prev.Map ||
		next.HasEntity != prev.HasEntity || next.Entity != prev.Entity
	*hover = next
}

func (s *MouseRaycastSystem) resolve() Hover {
	state := s.Input.Get()
	if state == nil || !state.CursorInWindow || state.WindowWidth <= 0 || state.WindowHeight <= 0 {
		return Hover{}
	}
	_, cam, ok := s.Cameras.First()
	if !ok {
		return Hover{}
	}

	ray := ScreenToWorld(cam.Camera, cam.Transform, float64(state.CursorX), float64(state.CursorY),
		state.WindowWidth, state.WindowHeight)
	point, ok := ray.IntersectZ(0)
	if !ok {
		return Hover{}
	}

	h := Hover{Valid: true, World: point}
	for _, m := range s.Maps.Iter() {
		if c, ok := m.TileMap.Map.ToTile(m.Transform.Translation.X, m.Transform.Translation.Y, point.X, point.Y); ok {
			h.HasTile, h.Tile, h.Map = true, c, m.EntityId
			break
		}
	}
	if p := s.Picking.Get(); p != nil && p.Space != nil {
		h.Entity, h.HasEntity = p.Space.At(point.X, point.Y)
	}
	return h
}
