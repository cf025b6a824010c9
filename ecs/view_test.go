package ecs_test

import (
	"testing"

	"github.com/plus3/blockmap/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(&Position{X: 1, Y: 2}, Score(32))

	view := ecs.NewView[struct {
		*Position
		*Score
	}](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, Score(32), *item.Score)
	assert.Equal(t, float32(1), item.Position.X)

	item.Position.X = 9
	assert.Equal(t, float32(9), ecs.ReadComponent[Position](storage, id).X, "views hand out pointers into storage")
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Position{X: 1})
	b := storage.Spawn(Position{X: 2}, Tag("b"))

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
	}](storage)

	seen := map[ecs.EntityId]float32{}
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.EntityId)
		seen[item.EntityId] = item.Position.X
	}
	assert.Equal(t, map[ecs.EntityId]float32{a: 1, b: 2}, seen)
	assert.Equal(t, b, view.Get(b).EntityId)
}

func TestViewOptionalComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	withTag := storage.Spawn(Position{}, Tag("t"))
	withoutTag := storage.Spawn(Position{})

	view := ecs.NewView[struct {
		*Position
		Tag *Tag `ecs:"optional"`
	}](storage)

	require.NotNil(t, view.Get(withTag).Tag)
	assert.Nil(t, view.Get(withoutTag).Tag)
	assert.Equal(t, 2, view.Count())
}

func TestViewMissingAndDeleted(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)
	assert.Nil(t, view.Get(id))

	posView := ecs.NewView[struct{ *Position }](storage)
	ref := storage.CreateEntityRef(id)
	assert.NotNil(t, posView.GetRef(ref))

	storage.Delete(id)
	assert.Nil(t, posView.Get(id))
	assert.Nil(t, posView.GetRef(ref))
	assert.Zero(t, posView.Count())
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](storage)

	id := view.Spawn(struct {
		*Position
		Name *Name `ecs:"optional"`
	}{Position: &Position{X: 5}})

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, float32(5), item.Position.X)
	assert.Nil(t, item.Name)
}

func TestViewInvalidSignatures(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"maybe"`
		}](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			A ecs.EntityId
			B ecs.EntityId
		}](storage)
	})
}

func TestQuerySnapshot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1})

	query := ecs.NewQuery[struct{ *Position }](storage)
	assert.Panics(t, func() { query.Iter() })

	query.Execute()
	assert.Equal(t, 1, query.Len())

	storage.Spawn(Position{X: 2}, Tag("new archetype"))
	assert.Equal(t, 1, query.Len(), "snapshot only changes on Execute")

	query.Execute()
	assert.Equal(t, 2, query.Len())

	_, first, ok := query.First()
	require.True(t, ok)
	assert.NotNil(t, first.Position)

	total := float32(0)
	for item := range query.Values() {
		total += item.Position.X
	}
	assert.Equal(t, float32(3), total)
}
