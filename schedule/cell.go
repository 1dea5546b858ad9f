package schedule

import (
	"sync/atomic"
	"unsafe"

	"github.com/edwinsyarief/kurogane/ecs"
)

// System is a unit of work over the world. DeclareAccess is called at graph
// build time; Execute once per run. The scheduler guarantees the declared
// access is satisfied when Execute runs.
type System interface {
	DeclareAccess(d *AccessDescriptor)
	Execute(w *ecs.World)
}

// systemCell is a single-word atomic take/put slot. A system box moves
// between worker goroutines through its cell without a lock while remaining
// owned by the schedule.
type systemCell struct {
	slot atomic.Pointer[System]
}

// The cell must stay a single word so the swap is a plain atomic exchange.
var _ [unsafe.Sizeof(atomic.Pointer[System]{}) - unsafe.Sizeof(uintptr(0))]byte

// put stores a system into an empty cell.
func (self *systemCell) put(s System) {
	boxed := &s
	if !self.slot.CompareAndSwap(nil, boxed) {
		panic("schedule: system cell already occupied")
	}
}

// take removes the system from the cell. The graph guarantees a single
// consumer; taking from an empty cell is a scheduling bug.
func (self *systemCell) take() System {
	p := self.slot.Swap(nil)
	if p == nil {
		panic("schedule: system cell empty; system taken twice")
	}
	return *p
}
