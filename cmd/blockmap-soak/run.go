package main

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"runtime"
	"time"

	"github.com/plus3/blockmap/config"
	"github.com/plus3/blockmap/ecs"
	"github.com/plus3/blockmap/game"
	"github.com/plus3/blockmap/input"
	"github.com/plus3/blockmap/tilemap"
)

const (
	windowWidth  = 800
	windowHeight = 800
)

// script drives a FakeDevice: the cursor sweeps the window on a diagonal
// while pan, zoom and recenter keys are pressed in turn.
type script struct {
	dev   *input.FakeDevice
	phase []string
}

func newScript(dev *input.FakeDevice) *script {
	return &script{
		dev:   dev,
		phase: []string{"D", "W", "E", "A", "S", "Q", "C", ""},
	}
}

const phaseTicks = 90

func (s *script) step(tick int) {
	for _, k := range s.phase {
		if k != "" {
			s.dev.Release(k)
		}
	}
	if k := s.phase[(tick/phaseTicks)%len(s.phase)]; k != "" {
		s.dev.Press(k)
	}

	period := 2 * (windowWidth + 40)
	p := tick % period
	if p > period/2 {
		p = period - p
	}
	// overshoot the window edges by 20 pixels
	s.dev.MoveCursor(p-20, p-20)
}

func run(fsys fs.FS, ticks int, dt float64) (*Report, error) {
	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	scene, err := game.Setup(storage, fsys, game.DefaultPaths())
	if err != nil {
		return nil, err
	}
	bindings, err := config.LoadBindings(fsys)
	if err != nil {
		return nil, err
	}

	dev := input.NewFakeDevice(windowWidth, windowHeight)
	scheduler := ecs.NewScheduler(storage)
	systems, err := game.Schedule(scheduler, input.NewHandler(bindings), dev, log.New(io.Discard, "", 0))
	if err != nil {
		return nil, err
	}

	report := &Report{
		Ticks:     ticks,
		DeltaTime: dt,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, ticks),
		},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	hover := ecs.NewSingleton[game.Hover](storage)
	script := newScript(dev)
	tiles := make(map[tilemap.Coord]bool)

	start := time.Now()
	for tick := range ticks {
		script.step(tick)

		updateStart := time.Now()
		scheduler.Once(dt)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		h := hover.Get()
		if !h.Valid {
			report.Misses++
		}
		if h.HasTile {
			tiles[h.Tile] = true
		}
		if h.HasEntity {
			report.BlockHits++
		}
	}
	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.TilesVisited = len(tiles)
	report.HoverChanges = systems.HoverLog.Changes
	report.Storage = storage.CollectStats()
	report.Scheduler = scheduler.GetStats()

	cam := ecs.ReadComponent[game.Camera](storage, scene.Camera)
	t := ecs.ReadComponent[game.Transform](storage, scene.Camera)
	if cam == nil || t == nil {
		return nil, fmt.Errorf("camera %d disappeared", scene.Camera)
	}
	report.FinalCamera = fmt.Sprintf("(%.2f, %.2f) zoom %.2f", t.Translation.X, t.Translation.Y, cam.Zoom)

	return report, nil
}
