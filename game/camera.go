package game

import (
	"math"

	"github.com/plus3/blockmap/ecs"
	"github.com/plus3/blockmap/input"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type recenter struct {
	tweenX, tweenY *gween.Tween
	doneX, doneY   bool
}

// CameraSystem moves every camera. Each camera follows an anchor, its target
// or the arena center when it has none, at a panned offset. Pan and zoom
// come from input, camera_center eases the offset back to zero, and the
// resulting center is kept inside the arena.
type CameraSystem struct {
	Cameras ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Camera
	}]
	Input ecs.Singleton[input.State]
	Arena ecs.Singleton[Arena]

	recentering map[ecs.EntityId]*recenter
}

// Execute updates zoom, offset and translation of every camera for one tick.
func (s *CameraSystem) Execute(frame *ecs.UpdateFrame) {
	arena := DefaultArena()
	if a := s.Arena.Get(); a != nil {
		arena = *a
	}
	state := s.Input.Get()
	if state == nil {
		state = &input.State{}
	}
	if s.recentering == nil {
		s.recentering = make(map[ecs.EntityId]*recenter)
	}

	dt := frame.DeltaTime
	for _, c := range s.Cameras.Iter() {
		cam := c.Camera

		anchorX, anchorY := arena.Center()
		if id, ok := frame.Storage.ResolveEntityRef(cam.Target); ok {
			if t := ecs.ReadComponent[Transform](frame.Storage, id); t != nil {
				anchorX, anchorY = t.Translation.X, t.Translation.Y
			}
		}

		if cam.Zoom <= 0 {
			cam.Zoom = 1
		}
		if z := state.Axis(AxisCameraZoom); z != 0 {
			cam.Zoom *= math.Exp(z * ZoomSpeed * dt)
		}
		cam.Zoom = min(max(cam.Zoom, MinZoom), MaxZoom)

		panX, panY := state.Axis(AxisCameraX), state.Axis(AxisCameraY)
		if panX != 0 || panY != 0 {
			delete(s.recentering, c.EntityId)
			cam.OffsetX += panX * PanSpeed / cam.Zoom * dt
			cam.OffsetY += panY * PanSpeed / cam.Zoom * dt
		}

		if state.JustPressed(ActionCameraCenter) {
			s.recentering[c.EntityId] = &recenter{
				tweenX: gween.New(float32(cam.OffsetX), 0, RecenterDuration, ease.OutCubic),
				tweenY: gween.New(float32(cam.OffsetY), 0, RecenterDuration, ease.OutCubic),
			}
		}
		if r := s.recentering[c.EntityId]; r != nil {
			if !r.doneX {
				v, done := r.tweenX.Update(float32(dt))
				cam.OffsetX, r.doneX = float64(v), done
			}
			if !r.doneY {
				v, done := r.tweenY.Update(float32(dt))
				cam.OffsetY, r.doneY = float64(v), done
			}
			if r.doneX && r.doneY {
				cam.OffsetX, cam.OffsetY = 0, 0
				delete(s.recentering, c.EntityId)
			}
		}

		// Bounded by the arena size only; the anchor may lie outside it.
		halfW, halfH := arena.HalfSize()
		cam.OffsetX = min(max(cam.OffsetX, -halfW), halfW)
		cam.OffsetY = min(max(cam.OffsetY, -halfH), halfH)

		x, y := arena.Clamp(anchorX+cam.OffsetX, anchorY+cam.OffsetY)
		c.Transform.Translation.X, c.Transform.Translation.Y = x, y
	}
}

// DefaultArena covers ArenaWidth x ArenaHeight from the origin.
func DefaultArena() Arena {
	return Arena{MaxX: ArenaWidth, MaxY: ArenaHeight}
}
