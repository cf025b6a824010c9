// Package debugui renders Dear ImGui windows from ECS entities. Windows are
// ImguiItem components; ImguiSystem queues their render functions as
// deferred commands so they draw after every other system of the tick.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockmap/ecs"
)

// ImguiItem holds one ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether ImGui wants the mouse or keyboard this
// frame. Game systems read it to ignore input over debug windows.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem publishes ImguiInputState and defers every ImguiItem.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// RegisterComponents registers the package's component types.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}
