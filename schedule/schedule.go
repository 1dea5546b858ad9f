package schedule

import (
	"fmt"
	"runtime"

	"github.com/edwinsyarief/kurogane/ecs"
)

// systemBox pairs a registered system with its access descriptor and its
// edges in the derived graph. The slice index of the box is its identity.
type systemBox struct {
	label        string
	cell         systemCell
	access       *AccessDescriptor
	predecessors map[int]struct{}
	successors   map[int]struct{}
}

func newSystemBox(label string, sys System) *systemBox {
	b := &systemBox{
		label:        label,
		access:       newAccessDescriptor(label),
		predecessors: make(map[int]struct{}),
		successors:   make(map[int]struct{}),
	}
	b.cell.put(sys)
	return b
}

// ScheduleOptions configures a Schedule.
type ScheduleOptions struct {
	Workers int // Worker goroutines for the parallel stream; GOMAXPROCS when zero.
}

// Schedule owns two streams of systems: exclusive-at-start systems that run
// sequentially before everything else, and parallel systems that run
// concurrently wherever their declared accesses permit. Each stream has its
// own label namespace and derived graph.
type Schedule struct {
	systems          []*systemBox
	exclusiveSystems []*systemBox

	labelMap          map[string]int
	exclusiveLabelMap map[string]int

	order          []int // parallel stream topological order (tie-break: registration)
	exclusiveOrder []int

	roots          []int
	exclusiveRoots []int

	workers int
	dirty   bool
}

// New creates a Schedule with default options.
func New() *Schedule {
	return NewWithOptions(ScheduleOptions{})
}

// NewWithOptions creates a Schedule with the specified options.
func NewWithOptions(opts ScheduleOptions) *Schedule {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Schedule{
		labelMap:          make(map[string]int),
		exclusiveLabelMap: make(map[string]int),
		workers:           workers,
	}
}

// AddSystem registers a parallel system under a unique label.
func (self *Schedule) AddSystem(label string, sys System) {
	if _, ok := self.labelMap[label]; ok {
		panic(fmt.Sprintf("schedule: duplicate system label %q", label))
	}
	self.labelMap[label] = len(self.systems)
	self.systems = append(self.systems, newSystemBox(label, sys))
	self.dirty = true
}

// AddExclusiveAtStartSystem registers a system that runs before the parallel
// stream while holding the world exclusively.
func (self *Schedule) AddExclusiveAtStartSystem(label string, sys System) {
	if _, ok := self.exclusiveLabelMap[label]; ok {
		panic(fmt.Sprintf("schedule: duplicate exclusive system label %q", label))
	}
	self.exclusiveLabelMap[label] = len(self.exclusiveSystems)
	self.exclusiveSystems = append(self.exclusiveSystems, newSystemBox(label, sys))
	self.dirty = true
}

// RunOnce rebuilds the graphs if registration changed, then executes the
// exclusive stream sequentially and the parallel stream on the worker pool.
func (self *Schedule) RunOnce(w *ecs.World) {
	self.checkDirty()
	self.runExclusive(w)
	self.runParallel(w)
}

func (self *Schedule) checkDirty() {
	if self.dirty {
		self.rebuildGraph()
	}
}
