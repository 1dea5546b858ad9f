package ecs

// AddComponent adds a component of type T to an entity.
// It returns a pointer to the newly added component and a boolean indicating success.
// If the entity already has the component, it returns a pointer to the existing component.
func AddComponent[T any](w *World, e Entity) (*T, bool) {
	loc, ok := w.directory.lookup(e)
	if !ok {
		return nil, false
	}
	compID, ok := TryGetID[T]()
	if !ok {
		return nil, false
	}

	arch := loc.archetype
	if arch.mask.has(compID) {
		return (*T)(arch.componentPtr(arch.getSlot(compID), loc.row)), true
	}

	tr, ok := w.followTransition(arch, makeMask1(compID), true)
	if !ok {
		return nil, false
	}
	newRow := w.moveEntity(e, loc, tr)

	// The new column was zero-initialised by the row allocation.
	target := tr.target
	return (*T)(target.componentPtr(target.getSlot(compID), newRow)), true
}

// AddComponent2 adds two components to an entity if not already present.
// It returns pointers to the components (existing or new) and a boolean indicating success.
func AddComponent2[T1, T2 any](w *World, e Entity) (*T1, *T2, bool) {
	loc, ok := w.directory.lookup(e)
	if !ok {
		return nil, nil, false
	}
	id1, ok1 := TryGetID[T1]()
	id2, ok2 := TryGetID[T2]()
	if !ok1 || !ok2 {
		return nil, nil, false
	}

	arch := loc.archetype
	addMask := makeMask2(id1, id2)
	if includesAll(arch.mask, addMask) {
		p1 := (*T1)(arch.componentPtr(arch.getSlot(id1), loc.row))
		p2 := (*T2)(arch.componentPtr(arch.getSlot(id2), loc.row))
		return p1, p2, true
	}

	tr, ok := w.followTransition(arch, addMask, true)
	if !ok {
		return nil, nil, false
	}
	newRow := w.moveEntity(e, loc, tr)

	target := tr.target
	p1 := (*T1)(target.componentPtr(target.getSlot(id1), newRow))
	p2 := (*T2)(target.componentPtr(target.getSlot(id2), newRow))
	return p1, p2, true
}

// GetComponent2 returns pointers to the entity's components T1 and T2, or
// nils if the entity is stale or lacks either component.
func GetComponent2[T1, T2 any](w *World, e Entity) (*T1, *T2) {
	loc, ok := w.directory.lookup(e)
	if !ok {
		return nil, nil
	}
	id1, ok1 := TryGetID[T1]()
	id2, ok2 := TryGetID[T2]()
	if !ok1 || !ok2 {
		return nil, nil
	}
	s1 := loc.archetype.getSlot(id1)
	s2 := loc.archetype.getSlot(id2)
	if s1 == -1 || s2 == -1 {
		return nil, nil
	}
	return (*T1)(loc.archetype.componentPtr(s1, loc.row)), (*T2)(loc.archetype.componentPtr(s2, loc.row))
}

// SetComponent adds the component if missing and assigns its value.
func SetComponent[T any](w *World, e Entity, value T) bool {
	p, ok := AddComponent[T](w, e)
	if !ok {
		return false
	}
	*p = value
	return true
}

// GetComponent returns a pointer to the entity's component of type T, or nil
// if the entity is stale or lacks the component.
func GetComponent[T any](w *World, e Entity) *T {
	loc, ok := w.directory.lookup(e)
	if !ok {
		return nil
	}
	compID, ok := TryGetID[T]()
	if !ok {
		return nil
	}
	slot := loc.archetype.getSlot(compID)
	if slot == -1 {
		return nil
	}
	return (*T)(loc.archetype.componentPtr(slot, loc.row))
}

// HasComponent reports whether the entity currently has component T.
func HasComponent[T any](w *World, e Entity) bool {
	loc, ok := w.directory.lookup(e)
	if !ok {
		return false
	}
	compID, ok := TryGetID[T]()
	if !ok {
		return false
	}
	return loc.archetype.mask.has(compID)
}

// RemoveComponent removes component T from an entity, running its dropper on
// the removed value. Returns false if the entity is stale or lacks T.
func RemoveComponent[T any](w *World, e Entity) bool {
	loc, ok := w.directory.lookup(e)
	if !ok {
		return false
	}
	compID, ok := TryGetID[T]()
	if !ok {
		return false
	}
	arch := loc.archetype
	if !arch.mask.has(compID) {
		return false
	}

	// The dropper runs on the value still in place in the source archetype;
	// the move below copies only the surviving columns.
	arch.dropComponentInSlot(arch.getSlot(compID), loc.row)

	tr, ok := w.followTransition(arch, makeMask1(compID), false)
	if !ok {
		return false
	}
	w.moveEntity(e, loc, tr)
	return true
}

// ComponentIDsOf returns the component IDs of the archetype the entity
// currently belongs to, in ascending order.
func (self *World) ComponentIDsOf(e Entity) []ComponentID {
	loc, ok := self.directory.lookup(e)
	if !ok {
		return nil
	}
	out := make([]ComponentID, len(loc.archetype.componentIDs))
	copy(out, loc.archetype.componentIDs)
	return out
}

// componentBytes returns the raw bytes of the entity's component, for tests
// and tooling that compare storage without knowing the concrete type.
func (self *World) componentBytes(e Entity, id ComponentID) []byte {
	loc, ok := self.directory.lookup(e)
	if !ok {
		return nil
	}
	slot := loc.archetype.getSlot(id)
	if slot == -1 {
		return nil
	}
	size := int(componentSizes[id])
	return loc.archetype.componentData[slot][loc.row*size : (loc.row+1)*size]
}
