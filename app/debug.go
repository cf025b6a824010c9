package app

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockmap/ecs"
	"github.com/plus3/blockmap/ecs/debugui"
	"github.com/plus3/blockmap/game"
)

// spawnHoverWindow adds an ImGui window showing the published hover and
// the camera state.
func spawnHoverWindow(storage *ecs.Storage, camera ecs.EntityId) ecs.EntityId {
	return storage.Spawn(debugui.ImguiItem{
		Render: func() {
			var hover *game.Hover
			if !storage.ReadSingleton(&hover) {
				return
			}

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 120), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(260, 180), imgui.CondOnce)
			if !imgui.BeginV("Hover", nil, imgui.WindowFlagsNone) {
				imgui.End()
				return
			}

			if hover.Valid {
				imgui.Text(fmt.Sprintf("World: %.2f, %.2f", hover.World.X, hover.World.Y))
			} else {
				imgui.Text("World: -")
			}
			if hover.HasTile {
				imgui.Text(fmt.Sprintf("Tile: %d, %d", hover.Tile.X, hover.Tile.Y))
			} else {
				imgui.Text("Tile: -")
			}
			if hover.HasEntity {
				imgui.Text(fmt.Sprintf("Entity: %d", hover.Entity))
			}

			imgui.Separator()
			if t := ecs.ReadComponent[game.Transform](storage, camera); t != nil {
				imgui.Text(fmt.Sprintf("Camera: %.2f, %.2f, %.2f", t.Translation.X, t.Translation.Y, t.Translation.Z))
			}
			if c := ecs.ReadComponent[game.Camera](storage, camera); c != nil {
				imgui.Text(fmt.Sprintf("Zoom: %.2f", c.Zoom))
				imgui.Text(fmt.Sprintf("Offset: %.2f, %.2f", c.OffsetX, c.OffsetY))
			}
			imgui.End()
		},
	})
}
