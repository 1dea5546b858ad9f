package ecs

import "math/bits"

// WorldOptions provides configuration options for creating a new World.
type WorldOptions struct {
	InitialCapacity int // The initial capacity for entities and components.
}

// transition caches the target archetype and precomputed copy operations for
// an add- or remove-component edge of the archetype graph.
type transition struct {
	target *Archetype
	copies []copyOp
}

// World manages all entities, components and archetypes.
type World struct {
	directory      entityDirectory
	archetypes     map[maskType]*Archetype
	archetypesList []*Archetype
	toRemove       []Entity
	removeSet      []Entity

	// Archetype graph edges, keyed by source archetype and the mask being
	// added or removed. Populated lazily on first traversal.
	addTransitions    map[*Archetype]map[maskType]transition
	removeTransitions map[*Archetype]map[maskType]transition

	resources        Resources
	events           EventBus
	initialCapacity  int
	archetypeVersion uint32 // bumped whenever an archetype is created
}

// NewWorld creates a new World with default options.
func NewWorld() *World {
	return NewWorldWithOptions(WorldOptions{})
}

// NewWorldWithOptions creates a new World with the specified options.
func NewWorldWithOptions(opts WorldOptions) *World {
	cap := defaultInitialCapacity
	if opts.InitialCapacity > 0 {
		cap = opts.InitialCapacity
	}
	w := &World{
		archetypes:        make(map[maskType]*Archetype, 32),
		archetypesList:    make([]*Archetype, 0, 64),
		addTransitions:    make(map[*Archetype]map[maskType]transition),
		removeTransitions: make(map[*Archetype]map[maskType]transition),
		initialCapacity:   cap,
	}
	w.getOrCreateArchetype(maskType{})
	return w
}

// Resources exposes the world's resource registry.
func (self *World) Resources() *Resources {
	return &self.resources
}

// Events exposes the world's event bus.
func (self *World) Events() *EventBus {
	return &self.events
}

// getOrCreateArchetype gets an existing archetype or creates a new one for the given component mask.
func (self *World) getOrCreateArchetype(mask maskType) *Archetype {
	if arch, ok := self.archetypes[mask]; ok {
		return arch
	}

	var count int
	for _, w := range mask {
		count += bits.OnesCount64(w)
	}
	compIDs := make([]ComponentID, 0, count)
	for word := 0; word < maskWords; word++ {
		w := mask[word]
		baseID := ComponentID(word * bitsPerWord)
		for bit := uint(0); bit < bitsPerWord; bit++ {
			if (w & (1 << bit)) != 0 {
				compIDs = append(compIDs, baseID+ComponentID(bit))
			}
		}
	}
	// No need to sort; IDs are appended in ascending order.

	newArch := &Archetype{
		mask:          mask,
		entities:      make([]Entity, 0, self.initialCapacity),
		componentIDs:  compIDs,
		componentData: make([][]byte, len(compIDs)),
	}
	var slots [maxComponentTypes]int
	for i := range slots {
		slots[i] = -1
	}
	for i, id := range compIDs {
		slots[id] = i
	}
	newArch.slots = slots

	for i, id := range compIDs {
		size := int(componentSizes[id])
		newArch.componentData[i] = make([]byte, 0, self.initialCapacity*size)
	}

	self.archetypes[mask] = newArch
	self.archetypesList = append(self.archetypesList, newArch)
	self.archetypeVersion++
	return newArch
}

// followTransition resolves the archetype reached from arch by adding or
// removing the components in mask. The cached edge is consulted first; on a
// miss the destination layout is derived and the edge with its precomputed
// copy set is cached. Returns ok=false for an identity transition (adding
// components already present, removing components already absent).
func (self *World) followTransition(arch *Archetype, mask maskType, add bool) (transition, bool) {
	cache := self.removeTransitions
	if add {
		cache = self.addTransitions
	}
	if edges, ok := cache[arch]; ok {
		if tr, ok := edges[mask]; ok {
			return tr, tr.target != nil
		}
	}

	newMask := andNotMask(arch.mask, mask)
	if add {
		newMask = orMask(arch.mask, mask)
	}

	var tr transition
	if newMask != arch.mask {
		target := self.getOrCreateArchetype(newMask)
		copies := make([]copyOp, 0, len(arch.componentIDs))
		for from, id := range arch.componentIDs {
			to := target.getSlot(id)
			if to >= 0 {
				copies = append(copies, copyOp{from: from, to: to, size: int(componentSizes[id])})
			}
		}
		tr = transition{target: target, copies: copies}
	}
	if _, ok := cache[arch]; !ok {
		cache[arch] = make(map[maskType]transition)
	}
	cache[arch][mask] = tr
	return tr, tr.target != nil
}

// moveEntity moves a live entity across a resolved transition without running
// droppers; the component data is transplanted, not destroyed. Returns the
// entity's new row.
func (self *World) moveEntity(e Entity, loc entityLocation, tr transition) int {
	newRow := tr.target.copyRowFromArchetype(loc.archetype, loc.row, tr.copies)
	tr.target.updateEntityID(newRow, e)
	self.directory.update(e.ID, entityLocation{archetype: tr.target, row: newRow})

	if moved, ok := loc.archetype.removeRow(loc.row, false); ok {
		self.directory.update(moved.ID, loc)
	}
	return newRow
}

// CreateEntity creates a new entity with no components.
func (self *World) CreateEntity() Entity {
	arch := self.getOrCreateArchetype(maskType{})
	row := arch.allocateRows(1)
	e := self.directory.create(entityLocation{archetype: arch, row: row})
	arch.updateEntityID(row, e)
	return e
}

// CreateEntities creates a batch of new entities with no components.
func (self *World) CreateEntities(count int) []Entity {
	if count <= 0 {
		return nil
	}
	arch := self.getOrCreateArchetype(maskType{})
	base := arch.allocateRows(count)
	entities := make([]Entity, count)
	for i := 0; i < count; i++ {
		e := self.directory.create(entityLocation{archetype: arch, row: base + i})
		arch.updateEntityID(base+i, e)
		entities[i] = e
	}
	return entities
}

// IsValid checks if the entity is still alive.
func (self *World) IsValid(e Entity) bool {
	_, ok := self.directory.lookup(e)
	return ok
}

// DestroyEntity destroys an entity immediately, running component droppers.
// Returns false for stale or already-destroyed IDs.
func (self *World) DestroyEntity(e Entity) bool {
	loc, ok := self.directory.lookup(e)
	if !ok {
		return false
	}
	if moved, ok := loc.archetype.removeRow(loc.row, true); ok {
		self.directory.update(moved.ID, loc)
	}
	return self.directory.destroy(e)
}

// RemoveEntity marks an entity for removal. The actual removal is processed by ProcessRemovals.
func (self *World) RemoveEntity(e Entity) {
	self.toRemove = append(self.toRemove, e)
}

// ProcessRemovals processes the entities marked for removal.
// This should be called once per frame, e.g., at the end of the game loop.
func (self *World) ProcessRemovals() {
	if len(self.toRemove) == 0 {
		return
	}

	self.removeSet = self.removeSet[:0]
	for _, e := range self.toRemove {
		if self.IsValid(e) {
			self.removeSet = append(self.removeSet, e)
		}
	}
	for _, e := range self.removeSet {
		self.DestroyEntity(e)
	}
	self.toRemove = self.toRemove[:0]
}

// EntityCount returns the number of live entities across all archetypes.
func (self *World) EntityCount() int {
	total := 0
	for _, arch := range self.archetypesList {
		total += arch.Len()
	}
	return total
}
