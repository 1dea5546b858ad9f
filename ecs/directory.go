package ecs

// entityEntry is one slot of the directory's free-list pool.
type entityEntry struct {
	location   entityLocation
	generation uint32
}

// entityDirectory allocates generational entity IDs and maps a live ID to its
// (archetype, row) location. Destroying an entity bumps the slot's generation
// so any ID still circulating for it fails lookup.
type entityDirectory struct {
	entries []entityEntry
	free    []uint32
}

// create allocates a fresh entity at the given location, reusing a freed slot
// when one is available.
func (self *entityDirectory) create(loc entityLocation) Entity {
	var id uint32
	if n := len(self.free); n > 0 {
		id = self.free[n-1]
		self.free = self.free[:n-1]
	} else {
		id = uint32(len(self.entries))
		self.entries = extendSlice(self.entries, 1)
		self.entries[id].generation = 1
	}
	entry := &self.entries[id]
	entry.location = loc
	return Entity{ID: id, Version: entry.generation}
}

// lookup resolves a live entity to its location. Stale or freed IDs fail.
func (self *entityDirectory) lookup(e Entity) (entityLocation, bool) {
	if int(e.ID) >= len(self.entries) {
		return entityLocation{}, false
	}
	entry := &self.entries[e.ID]
	if entry.generation != e.Version || entry.location.archetype == nil {
		return entityLocation{}, false
	}
	return entry.location, true
}

// update repositions a live entity after an archetype move or a swap-remove.
func (self *entityDirectory) update(id uint32, loc entityLocation) {
	self.entries[id].location = loc
}

// destroy validates the generation, frees the slot and bumps the generation.
// Returns false for stale or already-destroyed IDs.
func (self *entityDirectory) destroy(e Entity) bool {
	if int(e.ID) >= len(self.entries) {
		return false
	}
	entry := &self.entries[e.ID]
	if entry.generation != e.Version || entry.location.archetype == nil {
		return false
	}
	entry.location = entityLocation{}
	entry.generation++
	if entry.generation == 0 {
		entry.generation = 1
	}
	self.free = append(self.free, e.ID)
	return true
}

// len returns the number of slots ever allocated.
func (self *entityDirectory) len() int {
	return len(self.entries)
}
