package debugui

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockmap/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// ListEntities returns the live entities of storage ordered by id. Entities
// holding any of the hidden types are skipped. A non-empty filter keeps the
// entities whose id or component type names contain it, ignoring case.
func ListEntities(storage *ecs.Storage, filter string, hidden ...reflect.Type) []EntityInfo {
	filter = strings.ToLower(filter)

	var entities []EntityInfo
	for archetype := range storage.Archetypes() {
		types := archetype.Types()
		if slices.ContainsFunc(types, func(t reflect.Type) bool { return slices.Contains(hidden, t) }) {
			continue
		}
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		joined := strings.ToLower(strings.Join(names, " "))

		for id := range archetype.Iter() {
			if filter != "" && !strings.Contains(fmt.Sprintf("%d", id), filter) && !strings.Contains(joined, filter) {
				continue
			}
			entities = append(entities, EntityInfo{ID: id, ArchetypeID: archetype.ID(), ComponentTypes: names})
		}
	}

	slices.SortFunc(entities, func(a, b EntityInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return entities
}

// EntityBrowser is a paged, filterable ImGui table of entities. The selected
// row is what ComponentInspector shows.
type EntityBrowser struct {
	hidden   []reflect.Type
	pageSize int

	filterText  string
	currentPage int
	selected    ecs.EntityId
}

// NewEntityBrowser shows pageSize rows at a time and never lists entities
// holding a hidden type, such as the debug windows themselves.
func NewEntityBrowser(pageSize int, hidden ...reflect.Type) *EntityBrowser {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &EntityBrowser{hidden: hidden, pageSize: pageSize}
}

// Selected returns the selected entity, or 0.
func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

// Select changes the selection.
func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selected = id
}

// Spawn adds the browser window to storage as an ImguiItem.
func (eb *EntityBrowser) Spawn(storage *ecs.Storage) ecs.EntityId {
	return storage.Spawn(ImguiItem{Render: func() { eb.Render(storage) }})
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 240), imgui.CondOnce)
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		eb.filterText = ""
		eb.currentPage = 0
	}

	entities := ListEntities(storage, eb.filterText, eb.hidden...)
	totalPages := max(1, (len(entities)+eb.pageSize-1)/eb.pageSize)
	eb.currentPage = min(eb.currentPage, totalPages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 160), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		start := eb.currentPage * eb.pageSize
		end := min(start+eb.pageSize, len(entities))
		for _, entity := range entities[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("%d:%d", entity.ID.ArchetypeId(), entity.ID.Index())
			if imgui.SelectableBoolV(label, eb.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%08X", entity.ArchetypeID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(entities)))
	imgui.SameLine()
	if imgui.Button("Prev") && eb.currentPage > 0 {
		eb.currentPage--
	}
	imgui.SameLine()
	if imgui.Button("Next") && eb.currentPage < totalPages-1 {
		eb.currentPage++
	}

	imgui.End()
}
