package ecs

// EntityId packs the archetype id into the upper 32 bits and the slot index
// inside that archetype into the lower 32 bits.
type EntityId uint64

// NewEntityId builds an EntityId from an archetype id and a slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId returns the archetype half of the id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the slot index half of the id.
func (e EntityId) Index() uint32 {
	return uint32(e)
}

// EntityRef is a handle that is cleared when its entity is deleted.
// A zero Id means the entity no longer exists.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}
