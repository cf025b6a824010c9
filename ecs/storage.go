package ecs

import (
	"reflect"
	"unsafe"
	"weak"
)

// Storage is the entity store shared by every system of a scheduler.
// Structural changes made while systems run should go through Commands.
type Storage struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage bound to the registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// CreateEntityRef returns the ref for id, reusing a live one when present.
// Returns nil if the archetype is unknown.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the id behind ref, false once the entity is gone.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref from its entity without deleting it.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if ref == nil || ref.Id == 0 {
		return false
	}
	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}
	ref.Id = 0
	ref.Archetype = nil
	return true
}

// GetArchetype returns the archetype holding exactly the given components' types.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeByTypes is GetArchetype keyed by reflect types.
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := append([]reflect.Type(nil), types...)
	sortTypes(sorted)
	return s.archetypes[hashTypesToUint32(sorted)]
}

// Archetypes yields every archetype in no particular order.
func (s *Storage) Archetypes() func(yield func(*Archetype) bool) {
	return func(yield func(*Archetype) bool) {
		for _, a := range s.archetypes {
			if !yield(a) {
				return
			}
		}
	}
}

// ArchetypeOf returns the archetype holding id, or nil.
func (s *Storage) ArchetypeOf(id EntityId) *Archetype {
	return s.archetypes[id.ArchetypeId()]
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = NewArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
	}
	return archetype
}

// Spawn creates an entity from the given component values (or pointers to them).
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	index := archetype.Spawn(components)
	return NewEntityId(archetype.id, index)
}

// Delete removes the entity. Unknown ids are ignored.
func (s *Storage) Delete(id EntityId) {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return
	}
	archetype.Delete(id.Index())
}

// Alive reports whether id still names an entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || len(archetype.storages) == 0 {
		return false
	}
	return archetype.storages[0].Has(int(id.Index()))
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype includes compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// AddSingleton stores value as the singleton of its type. An existing
// singleton is overwritten in place so cached pointers keep working.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	if entry, ok := s.singletons[t]; ok {
		entry.value.Elem().Set(v)
		return
	}

	holder := reflect.New(t)
	holder.Elem().Set(v)
	s.singletons[t] = &singletonEntry{
		value:   holder,
		dataPtr: holder.UnsafePointer(),
	}
}

// RemoveSingleton drops the singleton of compType.
func (s *Storage) RemoveSingleton(compType reflect.Type) {
	delete(s.singletons, compType)
}

// ReadSingleton points *target at the stored singleton. target must be a
// pointer to a pointer, e.g. var cam *Camera; storage.ReadSingleton(&cam).
func (s *Storage) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}
	entry := s.getSingletonEntry(tv.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	tv.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// extractComponentTypes returns the sorted value types of the components.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sortTypes(types)
	return types
}

func typeId(t reflect.Type) uintptr {
	return uintptr((*iface)(unsafe.Pointer(&t)).data)
}

// hashTypesToUint32 folds the sorted types' runtime pointers with FNV-1a.
func hashTypesToUint32(types []reflect.Type) uint32 {
	const prime uint32 = 16777619
	h := uint32(2166136261)

	for _, t := range types {
		ptr := typeId(t)
		val := uint32(ptr)
		if unsafe.Sizeof(ptr) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}

	return h
}

// ComponentReader is satisfied by Storage.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil when it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
