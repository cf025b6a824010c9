package ecs

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

var (
	ErrUnknownDependency = errors.New("ecs: unknown system dependency")
	ErrDependencyCycle   = errors.New("ecs: system dependency cycle")
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// SystemOption configures a system at registration.
type SystemOption func(*systemEntry)

// Named sets the name other systems use in After. Defaults to the type name.
func Named(name string) SystemOption {
	return func(e *systemEntry) {
		e.name = name
	}
}

// After makes the system run after every system registered under each name.
func After(names ...string) SystemOption {
	return func(e *systemEntry) {
		e.after = append(e.after, names...)
	}
}

type queryExecutor interface {
	Execute()
}

type storageBinder interface {
	Init(*Storage)
}

type systemEntry struct {
	system  System
	name    string
	after   []string
	queries []queryExecutor

	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs systems once per tick in an order derived from their After
// dependencies. Systems without a dependency between them keep their
// registration order. The order is resolved once, on Build or on the first
// tick after a registration.
type Scheduler struct {
	storage *Storage
	entries []*systemEntry
	order   []*systemEntry
	dirty   bool
	tick    int64
}

// NewScheduler creates a scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register adds a system and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System, opts ...SystemOption) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	entry := &systemEntry{
		system:      system,
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	}
	for _, opt := range opts {
		opt(entry)
	}
	entry.queries = s.initializeFields(system)

	s.entries = append(s.entries, entry)
	s.dirty = true
}

func (s *Scheduler) initializeFields(system System) []queryExecutor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []queryExecutor
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if q, ok := binder.(queryExecutor); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Build resolves the execution order. It reports dependencies on names no
// system was registered under, and dependency cycles.
func (s *Scheduler) Build() error {
	if !s.dirty {
		return nil
	}

	byName := make(map[string][]int)
	for i, e := range s.entries {
		byName[e.name] = append(byName[e.name], i)
	}

	indegree := make([]int, len(s.entries))
	dependents := make([][]int, len(s.entries))
	for i, e := range s.entries {
		for _, dep := range e.after {
			targets, ok := byName[dep]
			if !ok {
				return fmt.Errorf("%w: %s runs after %q", ErrUnknownDependency, e.name, dep)
			}
			for _, t := range targets {
				if t == i {
					return fmt.Errorf("%w: %s depends on itself", ErrDependencyCycle, e.name)
				}
				dependents[t] = append(dependents[t], i)
				indegree[i]++
			}
		}
	}

	order := make([]*systemEntry, 0, len(s.entries))
	done := make([]bool, len(s.entries))
	for len(order) < len(s.entries) {
		next := -1
		for i := range s.entries {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			var stuck []string
			for i, e := range s.entries {
				if !done[i] {
					stuck = append(stuck, e.name)
				}
			}
			return fmt.Errorf("%w: %s", ErrDependencyCycle, strings.Join(stuck, ", "))
		}

		done[next] = true
		order = append(order, s.entries[next])
		for _, d := range dependents[next] {
			indegree[d]--
		}
	}

	s.order = order
	s.dirty = false
	return nil
}

// Order returns the system names in execution order.
func (s *Scheduler) Order() ([]string, error) {
	if err := s.Build(); err != nil {
		return nil, err
	}
	names := make([]string, len(s.order))
	for i, e := range s.order {
		names[i] = e.name
	}
	return names, nil
}

// Once runs every system once and then flushes queued commands. A
// dependency error panics; call Build during setup to surface it as an error.
func (s *Scheduler) Once(dt float64) {
	if err := s.Build(); err != nil {
		panic(err)
	}

	s.tick++
	frame := &UpdateFrame{
		DeltaTime: dt,
		Tick:      s.tick,
		Commands:  newCommands(),
		Storage:   s.storage,
	}

	for _, e := range s.order {
		start := time.Now()
		for _, q := range e.queries {
			q.Execute()
		}
		e.system.Execute(frame)
		duration := time.Since(start)

		e.executionCount++
		e.lastDuration = duration
		e.totalDuration += duration
		e.minDuration = min(e.minDuration, duration)
		e.maxDuration = max(e.maxDuration, duration)
	}

	frame.Commands.Flush(s.storage)
}

// Run ticks at the given interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics in registration order.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.entries),
		Systems:     make([]SystemStats, len(s.entries)),
	}

	for i, e := range s.entries {
		var avg time.Duration
		if e.executionCount > 0 {
			avg = e.totalDuration / time.Duration(e.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           e.name,
			ExecutionCount: e.executionCount,
			MinDuration:    e.minDuration,
			MaxDuration:    e.maxDuration,
			AvgDuration:    avg,
			LastDuration:   e.lastDuration,
			TotalDuration:  e.totalDuration,
		}
		stats.TotalExecutions += e.executionCount
	}

	return stats
}
