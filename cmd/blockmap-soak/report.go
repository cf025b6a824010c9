package main

import (
	"io"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/blockmap/ecs"
)

type Report struct {
	// Configuration
	Ticks     int
	DeltaTime float64

	// Results
	TotalTime    time.Duration
	UpdateTime   Stats
	HoverChanges int
	TilesVisited int
	BlockHits    int
	Misses       int
	FinalCamera  string

	Storage   ecs.StorageStats
	Scheduler *ecs.SchedulerStats

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Blockmap Soak Report

## Run
- **Ticks:** {{.Ticks}}
- **Tick Length:** {{printf "%.4f" .DeltaTime}}s
- **Wall Time:** {{.TotalTime}}
- **Update Time:** avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}

## Cursor
- **Hover Changes:** {{.HoverChanges}}
- **Distinct Tiles Hovered:** {{.TilesVisited}}
- **Ticks Over The Block:** {{.BlockHits}}
- **Ticks Outside The Window:** {{.Misses}}
- **Final Camera:** {{.FinalCamera}}

## Storage
- **Entities:** {{.Storage.TotalEntityCount}} in {{.Storage.ArchetypeCount}} archetypes
- **Singletons:** {{join .Storage.SingletonTypes ", "}}
{{range .Storage.ArchetypeBreakdown}}
- archetype {{.ID}}: {{.EntityCount}} x [{{join .ComponentTypes ", "}}]{{end}}

## Systems
| System | Runs | Avg | Max |
|---|---|---|---|
{{range .Scheduler.Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Memory (Raw Bytes)
- Heap Alloc:  {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc: {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"join": strings.Join,
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
