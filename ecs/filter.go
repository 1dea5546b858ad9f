package ecs

// Filter provides a fast iterator over entities with component T.
type Filter[T any] struct {
	world          *World
	mask           maskType
	compID         ComponentID
	matchingArches []*Archetype
	lastVersion    uint32
	curMatchIdx    int
	curIdx         int
	curEnt         Entity
}

// NewFilter creates a filter for entities with component T.
func NewFilter[T any](w *World) *Filter[T] {
	id := GetID[T]()
	f := &Filter[T]{
		world:          w,
		mask:           makeMask1(id),
		compID:         id,
		curIdx:         -1,
		matchingArches: make([]*Archetype, 0, 4),
	}
	f.updateMatching()
	return f
}

// updateMatching updates the list of matching archetypes.
func (self *Filter[T]) updateMatching() {
	self.matchingArches = self.matchingArches[:0]
	for _, a := range self.world.archetypesList {
		if includesAll(a.mask, self.mask) {
			self.matchingArches = append(self.matchingArches, a)
		}
	}
	self.lastVersion = self.world.archetypeVersion
}

// Reset resets the filter iterator.
func (self *Filter[T]) Reset() {
	if self.world.archetypeVersion != self.lastVersion {
		self.updateMatching()
	}
	self.curMatchIdx = 0
	self.curIdx = -1
}

// Next advances to the next entity with the component, returning true if found.
func (self *Filter[T]) Next() bool {
	for {
		self.curIdx++
		if self.curMatchIdx >= len(self.matchingArches) {
			return false
		}
		a := self.matchingArches[self.curMatchIdx]
		if self.curIdx >= a.Len() {
			self.curMatchIdx++
			self.curIdx = -1
			continue
		}
		self.curEnt = a.entities[self.curIdx]
		return true
	}
}

// Entity returns the current entity.
func (self *Filter[T]) Entity() Entity {
	return self.curEnt
}

// Get returns a pointer to the current component T.
func (self *Filter[T]) Get() *T {
	a := self.matchingArches[self.curMatchIdx]
	return (*T)(a.componentPtr(a.getSlot(self.compID), self.curIdx))
}
