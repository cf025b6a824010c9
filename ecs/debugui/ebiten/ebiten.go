// Package ebiten connects the debugui windows to an Ebiten game loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend. Call BeginFrame before
// the update scheduler runs, EndFrame after it, and Draw last in Draw.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. ImGui's ini file is
// disabled so window layout is not written next to the binary.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}
