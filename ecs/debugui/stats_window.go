package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockmap/ecs"
)

// StatsWindow shows frame times, storage occupancy and per-system timings.
type StatsWindow struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	frameHistory []float32
	frameIndex   int
	lastFrame    time.Time
}

// NewStatsWindow keeps historyFrames frame times for the graph.
func NewStatsWindow(storage *ecs.Storage, scheduler *ecs.Scheduler, historyFrames int) *StatsWindow {
	return &StatsWindow{
		storage:      storage,
		scheduler:    scheduler,
		frameHistory: make([]float32, historyFrames),
	}
}

// Spawn adds the window to storage as an ImguiItem.
func (w *StatsWindow) Spawn(storage *ecs.Storage) ecs.EntityId {
	return storage.Spawn(ImguiItem{Render: w.Render})
}

func (w *StatsWindow) sample() float32 {
	now := time.Now()
	if w.lastFrame.IsZero() {
		w.lastFrame = now
		return 0
	}
	ms := float32(now.Sub(w.lastFrame).Seconds() * 1000)
	w.lastFrame = now

	w.frameHistory[w.frameIndex] = ms
	w.frameIndex = (w.frameIndex + 1) % len(w.frameHistory)

	var avg float32
	for _, ft := range w.frameHistory {
		avg += ft
	}
	return avg / float32(len(w.frameHistory))
}

func (w *StatsWindow) Render() {
	avg := w.sample()

	if !imgui.BeginV("Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := w.storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
		stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg frame: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &w.frameHistory[0], int32(len(w.frameHistory)))

	imgui.Separator()

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStats", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()

			for _, sys := range w.scheduler.GetStats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetypes") {
		for _, arch := range stats.ArchetypeBreakdown {
			imgui.BulletText(fmt.Sprintf("0x%08X  %d entities  %v", arch.ID, arch.EntityCount, arch.ComponentTypes))
		}
		imgui.TreePop()
	}

	imgui.End()
}
