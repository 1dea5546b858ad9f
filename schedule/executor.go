package schedule

import (
	"sync"
	"sync/atomic"

	"github.com/edwinsyarief/kurogane/ecs"
)

// runState is the per-run bookkeeping of the parallel executor: one done flag
// and one pending-predecessor counter per system.
type runState struct {
	done    []atomic.Bool
	pending []atomic.Int32
}

func newRunState(systems []*systemBox) *runState {
	st := &runState{
		done:    make([]atomic.Bool, len(systems)),
		pending: make([]atomic.Int32, len(systems)),
	}
	for i, box := range systems {
		st.pending[i].Store(int32(len(box.predecessors)))
	}
	return st
}

// runExclusive executes the exclusive-at-start stream sequentially, in
// registration order filtered by the graph. The systems hold the world
// exclusively; a panic here aborts the frame run.
func (self *Schedule) runExclusive(w *ecs.World) {
	for _, index := range self.exclusiveOrder {
		box := self.exclusiveSystems[index]
		sys := box.cell.take()
		sys.Execute(w)
		box.cell.put(sys)
	}
}

// runParallel executes the parallel stream as an explicit work queue: the
// ready list seeds with the graph's roots, workers pop a system, run it, mark
// it done and release each successor whose pending-predecessor counter hits
// zero. Completion of a predecessor happens-before the start of every
// successor; systems with no path between them may run in any order or
// concurrently.
func (self *Schedule) runParallel(w *ecs.World) {
	n := len(self.systems)
	if n == 0 {
		return
	}

	st := newRunState(self.systems)
	ready := make(chan int, n)
	for _, root := range self.roots {
		ready <- root
	}

	var wg sync.WaitGroup
	wg.Add(n)

	workers := min(self.workers, n)
	for i := 0; i < workers; i++ {
		go func() {
			for index := range ready {
				self.execOne(w, st, index, ready)
				wg.Done()
			}
		}()
	}

	wg.Wait()
	close(ready)
}

// execOne runs one system and schedules any successors it released.
func (self *Schedule) execOne(w *ecs.World, st *runState, index int, ready chan<- int) {
	box := self.systems[index]

	// The graph guarantees a single consumer per cell per run.
	sys := box.cell.take()
	sys.Execute(w)
	box.cell.put(sys)

	st.done[index].Store(true)
	for succ := range box.successors {
		if st.pending[succ].Add(-1) == 0 {
			ready <- succ
		}
	}
}
