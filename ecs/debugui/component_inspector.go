package debugui

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockmap/ecs"
)

// ComponentInspector edits the components of the entity selected in an
// EntityBrowser. Numbers, bools and strings are editable in place; fields
// reached through pointers and components of read-only types are shown only.
type ComponentInspector struct {
	browser  *EntityBrowser
	readOnly []reflect.Type
}

func NewComponentInspector(browser *EntityBrowser, readOnly ...reflect.Type) *ComponentInspector {
	return &ComponentInspector{browser: browser, readOnly: readOnly}
}

// Spawn adds the inspector window to storage as an ImguiItem.
func (ci *ComponentInspector) Spawn(storage *ecs.Storage) ecs.EntityId {
	return storage.Spawn(ImguiItem{Render: func() { ci.Render(storage) }})
}

// Components returns the fields of every component of id, keyed by type
// and in archetype order. It returns nil for dead entities.
func (ci *ComponentInspector) Components(storage *ecs.Storage, id ecs.EntityId) ([]reflect.Type, map[reflect.Type][]Field) {
	if id == 0 || !storage.Alive(id) {
		return nil, nil
	}
	archetype := storage.ArchetypeOf(id)
	if archetype == nil {
		return nil, nil
	}

	types := archetype.Types()
	fields := make(map[reflect.Type][]Field, len(types))
	for _, t := range types {
		component := storage.GetComponent(id, t)
		if component == nil {
			continue
		}
		fields[t] = ComponentFields(component, !slices.Contains(ci.readOnly, t))
	}
	return types, fields
}

func (ci *ComponentInspector) Render(storage *ecs.Storage) {
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 280), imgui.CondOnce)
	if !imgui.BeginV("Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	id := ci.browser.Selected()
	types, fields := ci.Components(storage, id)
	if types == nil {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d:%d", id.ArchetypeId(), id.Index()))
	imgui.Separator()
	for _, t := range types {
		if imgui.TreeNodeStr(t.String()) {
			for _, f := range fields[t] {
				renderField(f)
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

func renderField(f Field) {
	if !f.Editable || !f.Value.IsValid() {
		imgui.Text(fmt.Sprintf("%s: %s", f.Path, f))
		return
	}

	id := "##" + f.Path
	switch {
	case f.Value.CanFloat():
		v := float32(f.Value.Float())
		imgui.Text(f.Path + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			f.Set(float64(v))
		}
	case f.Value.CanInt():
		v := int32(f.Value.Int())
		imgui.Text(f.Path + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			f.Set(int64(v))
		}
	case f.Value.CanUint():
		v := int32(f.Value.Uint())
		imgui.Text(f.Path + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 {
			f.Set(uint64(v))
		}
	case f.Value.Kind() == reflect.Bool:
		v := f.Value.Bool()
		if imgui.Checkbox(f.Path, &v) {
			f.Set(v)
		}
	case f.Value.Kind() == reflect.String:
		v := f.Value.String()
		imgui.Text(f.Path + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			f.Set(v)
		}
	default:
		imgui.Text(fmt.Sprintf("%s: %s", f.Path, f))
	}
}
