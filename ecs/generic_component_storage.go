package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to storage factories. Each Storage
// is bound to one registry, and a type must be registered before an entity
// carrying it can be spawned.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry returns an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers T with the registry. Registering twice is a no-op.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.factories[t]; ok {
		return
	}
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// Registered reports whether T has been registered.
func Registered[T any](r *ComponentRegistry) bool {
	_, ok := r.factories[reflect.TypeFor[T]()]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const blockSize = 64

// genericComponentStorage keeps components of type T in fixed-size blocks so
// that pointers handed out by Get stay valid while the storage grows.
type genericComponentStorage[T any] struct {
	blocks    [][blockSize]T
	filled    [][blockSize]bool
	freeSlots []int
	nextIndex int
}

func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/blockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, [blockSize]T{})
			cs.filled = append(cs.filled, [blockSize]bool{})
		}
	}

	b, s := index/blockSize, index%blockSize
	cs.blocks[b][s] = value
	cs.filled[b][s] = true
	return index
}

func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/blockSize][index%blockSize]
}

func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}
	b, s := index/blockSize, index%blockSize
	var zero T
	cs.blocks[b][s] = zero
	cs.filled[b][s] = false
	cs.freeSlots = append(cs.freeSlots, index)
}

func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 || index >= cs.nextIndex {
		return false
	}
	return cs.filled[index/blockSize][index%blockSize]
}

func (cs *genericComponentStorage[T]) Len() int {
	return cs.nextIndex - len(cs.freeSlots)
}

func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if !cs.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
