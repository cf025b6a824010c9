package ecs

import (
	"iter"
)

// Query is a View cached for a system. The Scheduler calls Execute before
// the owning system runs, so Iter sees a snapshot of the store as it was at
// the start of that system.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a standalone query. Call Execute before Iter.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. Called by the Scheduler on registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the per-frame entity and component snapshot.
func (q *Query[T]) Execute() {
	if n := len(q.storage.archetypes); n != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.archetypes {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.lastArchetypeCount = n
	}

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, item)
		}
	}

	q.cacheValid = true
}

// Len returns the number of entities in the current snapshot.
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}

// First returns the first entity of the snapshot.
func (q *Query[T]) First() (EntityId, T, bool) {
	if !q.cacheValid {
		panic("Query.First() called before Query.Execute()")
	}
	if len(q.cachedEntities) == 0 {
		var zero T
		return 0, zero, false
	}
	return q.cachedEntities[0], q.cachedComponents[0], true
}

// Iter yields the snapshot. Panics if Execute has not run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values yields the snapshot's component signatures.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}
