package ecs

// Filter2 provides a fast iterator over entities with components T1 and T2.
type Filter2[T1, T2 any] struct {
	world          *World
	mask           maskType
	id1, id2       ComponentID
	matchingArches []*Archetype
	lastVersion    uint32
	curMatchIdx    int
	curIdx         int
	curEnt         Entity
}

// NewFilter2 creates a filter for entities with components T1 and T2.
func NewFilter2[T1, T2 any](w *World) *Filter2[T1, T2] {
	id1 := GetID[T1]()
	id2 := GetID[T2]()
	f := &Filter2[T1, T2]{
		world:          w,
		mask:           makeMask2(id1, id2),
		id1:            id1,
		id2:            id2,
		curIdx:         -1,
		matchingArches: make([]*Archetype, 0, 4),
	}
	f.updateMatching()
	return f
}

// updateMatching updates the list of matching archetypes.
func (self *Filter2[T1, T2]) updateMatching() {
	self.matchingArches = self.matchingArches[:0]
	for _, a := range self.world.archetypesList {
		if includesAll(a.mask, self.mask) {
			self.matchingArches = append(self.matchingArches, a)
		}
	}
	self.lastVersion = self.world.archetypeVersion
}

// Reset resets the filter iterator.
func (self *Filter2[T1, T2]) Reset() {
	if self.world.archetypeVersion != self.lastVersion {
		self.updateMatching()
	}
	self.curMatchIdx = 0
	self.curIdx = -1
}

// Next advances to the next entity with both components, returning true if found.
func (self *Filter2[T1, T2]) Next() bool {
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
func (self *Filter2[T1, T2]) Entity() Entity {
	return self.curEnt
}

// Get returns pointers to the current components T1 and T2.
func (self *Filter2[T1, T2]) Get() (*T1, *T2) {
	a := self.matchingArches[self.curMatchIdx]
	p1 := (*T1)(a.componentPtr(a.getSlot(self.id1), self.curIdx))
	p2 := (*T2)(a.componentPtr(a.getSlot(self.id2), self.curIdx))
	return p1, p2
}
