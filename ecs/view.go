package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View matches entities against a struct signature. Every field of T is a
// pointer to a component type, except an optional EntityId field which is
// filled with the matched entity's id. Embedded component fields are always
// required; named fields may carry `ecs:"optional"`.
//
//	ecs.NewView[struct {
//		ecs.EntityId
//		*Transform
//		*Camera
//	}](storage)
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr

	hasId    bool
	idOffset uintptr
}

// NewView parses T and panics if it is not a valid signature.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			if v.hasId {
				panic("View struct may hold at most one EntityId field")
			}
			v.hasId = true
			v.idOffset = field.Offset
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// Fill populates *ptr for the entity. It returns false when a required
// component is missing; missing optional components are left nil.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	if len(archetype.storages) == 0 || !archetype.storages[0].Has(int(id.Index())) {
		return false
	}
	return v.populateResult(unsafe.Pointer(ptr), archetype, int(id.Index()), v.buildStorageIndices(archetype))
}

// Get returns the populated signature for the entity, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef is Get through an EntityRef.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, required := range v.types {
		if v.optional[i] {
			continue
		}
		if !archetype.HasComponent(required) {
			return false
		}
	}
	return true
}

func (v *View[T]) buildStorageIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, componentType := range v.types {
		indices[i] = archetype.storageIndex(componentType)
	}
	return indices
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, archetype *Archetype, entityIndex int, storageIndices []int) bool {
	if v.hasId {
		*(*EntityId)(unsafe.Add(resultPtr, v.idOffset)) = NewEntityId(archetype.id, uint32(entityIndex))
	}

	for i, storageIdx := range storageIndices {
		fieldPtr := unsafe.Add(resultPtr, v.fieldOffset[i])

		var component any
		if storageIdx != -1 {
			component = archetype.storages[storageIdx].Get(entityIndex)
		}

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(archetype.storages) == 0 {
			return
		}

		storageIndices := v.buildStorageIndices(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)

		for entityIndex := range archetype.storages[0].Iter() {
			if !v.populateResult(resultPtr, archetype, entityIndex, storageIndices) {
				continue
			}
			if !yield(NewEntityId(archetype.id, uint32(entityIndex)), result) {
				return
			}
		}
	}
}

// Iter yields every matching entity with its populated signature.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.archetypes {
			if !v.matchesArchetype(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values is Iter without the ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}

// Spawn creates an entity from the non-nil component fields of data.
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, componentType := range v.types {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))
		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(componentType, componentPtr).Elem().Interface())
	}

	return v.storage.Spawn(components...)
}
