package ecs_test

import (
	"fmt"
	"reflect"
	"runtime"
	"testing"

	"github.com/plus3/blockmap/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Name{Value: "block"})
	assert.NotEqual(t, ecs.EntityId(0), id)
	assert.True(t, storage.Alive(id))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(3), pos.X)
	assert.Equal(t, float32(4), pos.Y)

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Name]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Health]()))
}

func TestSpawnOrderDoesNotChangeArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a, b)
	assert.Same(t, storage.GetArchetype(Position{}, Velocity{}), storage.GetArchetype(Velocity{}, Position{}))
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
	assert.Panics(t, func() { storage.Spawn(Velocity{}, struct{ Unregistered int }{}) })
}

func TestDeleteReusesSlot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	second := storage.Spawn(Position{X: 2})

	storage.Delete(first)
	assert.False(t, storage.Alive(first))
	assert.True(t, storage.Alive(second))
	assert.Nil(t, ecs.ReadComponent[Position](storage, first))

	third := storage.Spawn(Position{X: 3})
	assert.Equal(t, first.Index(), third.Index())
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, third).X)

	storage.Delete(ecs.NewEntityId(1, 99))
}

func TestArchetypeGrowsAcrossBlocks(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ids := make([]ecs.EntityId, 200)
	for i := range ids {
		ids[i] = storage.Spawn(Score(i))
	}

	for i, id := range ids {
		assert.Equal(t, Score(i), *ecs.ReadComponent[Score](storage, id))
	}
	assert.Equal(t, 200, storage.GetArchetype(Score(0)).Len())
}

func TestEntityRefLifecycle(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1})
	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)
	assert.Same(t, ref, storage.CreateEntityRef(id))

	resolved, ok := storage.ResolveEntityRef(ref)
	assert.True(t, ok)
	assert.Equal(t, id, resolved)

	storage.Delete(id)
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)
	assert.Nil(t, ref.Archetype)

	assert.Nil(t, storage.CreateEntityRef(ecs.NewEntityId(7, 0)))
	assert.False(t, storage.InvalidateEntityRef(nil))
}

func TestEntityRefInvalidate(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{})
	ref := storage.CreateEntityRef(id)

	assert.True(t, storage.InvalidateEntityRef(ref))
	assert.False(t, storage.InvalidateEntityRef(ref))
	assert.True(t, storage.Alive(id))

	runtime.GC()
	fresh := storage.CreateEntityRef(id)
	require.NotNil(t, fresh)
	assert.Equal(t, id, fresh.Id)
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	health := ecs.NewSingleton(storage, Health{Current: 10, Max: 10})
	require.NotNil(t, health.Get())
	assert.Equal(t, 10, health.Get().Current)

	health.Get().Current = 4
	again := ecs.NewSingleton[Health](storage)
	assert.Equal(t, 4, again.Get().Current, "existing singleton must not be replaced by a second accessor")

	var read *Health
	require.True(t, storage.ReadSingleton(&read))
	assert.Same(t, health.Get(), read)

	storage.AddSingleton(Health{Current: 1, Max: 2})
	assert.Equal(t, 1, read.Current, "AddSingleton overwrites in place")

	var missing *Position
	assert.False(t, storage.ReadSingleton(&missing))
	assert.Panics(t, func() { storage.ReadSingleton(missing) })

	lazy := &ecs.Singleton[Tag]{}
	lazy.Init(storage)
	assert.False(t, lazy.Exists())
	lazy.Set("ready")
	assert.Equal(t, Tag("ready"), *lazy.Get())
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)

	storage.Spawn(Score(1), Tag("a"))
	storage.Spawn(Score(2), Tag("b"))
	gone := storage.Spawn(Position{})
	storage.Spawn(Position{})
	storage.Delete(gone)
	ecs.NewSingleton(storage, Health{})

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Health"}, stats.SingletonTypes)

	counts := map[int]int{}
	for _, arch := range stats.ArchetypeBreakdown {
		counts[len(arch.ComponentTypes)] = arch.EntityCount
	}
	assert.Equal(t, map[int]int{2: 2, 1: 1}, counts)
}
