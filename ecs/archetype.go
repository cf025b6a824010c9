package ecs

import (
	"reflect"
	"slices"
	"sort"
	"weak"

	"github.com/kamstrup/intmap"
)

// sortTypes orders component types by name so that every permutation of the
// same component set hashes to the same archetype.
func sortTypes(types []reflect.Type) {
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
}

// Archetype owns one dense storage per component type for every entity that
// has exactly that set of components.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype allocates the storages for the given sorted component types.
// It panics when a type was never registered.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

func (a *Archetype) storageIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// Spawn appends one component of each type and returns the slot index.
// All storages of an archetype grow in lockstep so the slot is shared.
func (a *Archetype) Spawn(components []any) uint32 {
	var slot int
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}
		if idx := a.storageIndex(compType); idx != -1 {
			slot = a.storages[idx].Append(comp)
		}
	}
	return uint32(slot)
}

// GetComponent returns a pointer to the component in the given slot, or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	idx := a.storageIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(entityIndex))
}

// Delete frees the slot and clears any EntityRef pointing at it.
func (a *Archetype) Delete(entityIndex uint32) {
	entityId := NewEntityId(a.id, entityIndex)

	if weakPtr, ok := a.refs.Get(entityId); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(entityId)
	}

	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
}

// HasComponent reports whether the archetype stores the given type.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype hash.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter yields the id of every live entity in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
