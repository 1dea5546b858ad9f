package ecs

import "unsafe"

// valueBytes views a component value as its raw storage bytes.
func valueBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// repeatColumn builds a component-major column holding count copies of value.
func repeatColumn[T any](id ComponentID, count int, value T) columnSource {
	size := int(componentSizes[id])
	data := make([]byte, count*size)
	src := valueBytes(&value)
	for i := 0; i < count; i++ {
		copy(data[i*size:], src)
	}
	return columnSource{id: id, data: data}
}

// spawnRows reserves count rows in arch, fills them from src and registers
// the new entities with the directory.
func (self *World) spawnRows(arch *Archetype, count int, src []columnSource) []Entity {
	base := arch.allocateRows(count)
	arch.copyFromSource(base, src)
	entities := make([]Entity, count)
	for i := 0; i < count; i++ {
		e := self.directory.create(entityLocation{archetype: arch, row: base + i})
		arch.updateEntityID(base+i, e)
		entities[i] = e
	}
	return entities
}

// SpawnBatch creates count entities with component T set to value.
func SpawnBatch[T any](w *World, count int, value T) []Entity {
	if count <= 0 {
		return nil
	}
	id := GetID[T]()
	arch := w.getOrCreateArchetype(makeMask1(id))
	return w.spawnRows(arch, count, []columnSource{repeatColumn(id, count, value)})
}

// SpawnBatch2 creates count entities with components T1 and T2 set to the
// given values.
func SpawnBatch2[T1, T2 any](w *World, count int, v1 T1, v2 T2) []Entity {
	if count <= 0 {
		return nil
	}
	id1 := GetID[T1]()
	id2 := GetID[T2]()
	arch := w.getOrCreateArchetype(makeMask2(id1, id2))
	return w.spawnRows(arch, count, []columnSource{
		repeatColumn(id1, count, v1),
		repeatColumn(id2, count, v2),
	})
}
