package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton gives typed access to a value stored once per Storage instead of
// on an entity: world configuration, input state, published per-frame results.
type Singleton[T any] struct {
	storage       *Storage
	componentPtr  unsafe.Pointer
	componentType reflect.Type
}

// NewSingleton returns an accessor for T, creating the singleton from
// initializer (or the zero value) when the storage does not hold one yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	entry := storage.getSingletonEntry(componentType)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
		entry = storage.getSingletonEntry(componentType)
	}

	return &Singleton[T]{
		storage:       storage,
		componentPtr:  entry.dataPtr,
		componentType: componentType,
	}
}

// Init binds the accessor to storage. The Scheduler calls it for Singleton
// fields of registered systems.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentType = reflect.TypeFor[T]()
	s.componentPtr = nil
	s.updateCache()
}

// Get returns the singleton, or nil if it was never added.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	if s.componentPtr == nil {
		return nil
	}
	return (*T)(s.componentPtr)
}

// Set overwrites the singleton value, adding it if needed.
func (s *Singleton[T]) Set(value T) {
	if s.storage == nil {
		return
	}
	s.storage.AddSingleton(value)
	s.updateCache()
}

// Exists reports whether the singleton has been added.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(s.componentType); entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}
