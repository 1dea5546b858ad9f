// Package schedule runs systems against an ecs.World in an order derived from
// their declared component and resource accesses. Registration produces an
// immutable dependency graph; execution walks it, in parallel for the main
// stream and sequentially for the exclusive-at-start stream.
package schedule

import (
	"fmt"

	"github.com/edwinsyarief/kurogane/ecs"
)

// AccessDescriptor collects everything one system declares about itself: the
// components and resources it touches and the labels it must order against.
// The derived graph is the only mechanism keeping concurrent systems apart,
// so an undeclared access is a soundness violation.
type AccessDescriptor struct {
	label string

	componentReads  map[ecs.ComponentID]struct{}
	componentWrites map[ecs.ComponentID]struct{}
	resourceReads   map[int]struct{}
	resourceWrites  map[int]struct{}

	runsBefore []string
	runsAfter  []string
}

func newAccessDescriptor(label string) *AccessDescriptor {
	return &AccessDescriptor{
		label:           label,
		componentReads:  make(map[ecs.ComponentID]struct{}),
		componentWrites: make(map[ecs.ComponentID]struct{}),
		resourceReads:   make(map[int]struct{}),
		resourceWrites:  make(map[int]struct{}),
	}
}

func (self *AccessDescriptor) clear() {
	clear(self.componentReads)
	clear(self.componentWrites)
	clear(self.resourceReads)
	clear(self.resourceWrites)
	self.runsBefore = self.runsBefore[:0]
	self.runsAfter = self.runsAfter[:0]
}

// ReadsComponent declares shared access to a component type.
func (self *AccessDescriptor) ReadsComponent(id ecs.ComponentID) {
	if _, ok := self.componentWrites[id]; ok {
		panic(fmt.Sprintf("schedule: system %q declares shared access to component %d after exclusive", self.label, id))
	}
	if _, ok := self.componentReads[id]; ok {
		panic(fmt.Sprintf("schedule: system %q declares component %d read twice", self.label, id))
	}
	self.componentReads[id] = struct{}{}
}

// WritesComponent declares exclusive access to a component type.
func (self *AccessDescriptor) WritesComponent(id ecs.ComponentID) {
	if _, ok := self.componentReads[id]; ok {
		panic(fmt.Sprintf("schedule: system %q declares exclusive access to component %d after shared", self.label, id))
	}
	if _, ok := self.componentWrites[id]; ok {
		panic(fmt.Sprintf("schedule: system %q declares component %d write twice", self.label, id))
	}
	self.componentWrites[id] = struct{}{}
}

// ReadsResource declares shared access to a world resource by its registry ID.
func (self *AccessDescriptor) ReadsResource(id int) {
	if _, ok := self.resourceWrites[id]; ok {
		panic(fmt.Sprintf("schedule: system %q declares shared access to resource %d after exclusive", self.label, id))
	}
	if _, ok := self.resourceReads[id]; ok {
		panic(fmt.Sprintf("schedule: system %q declares resource %d read twice", self.label, id))
	}
	self.resourceReads[id] = struct{}{}
}

// WritesResource declares exclusive access to a world resource.
func (self *AccessDescriptor) WritesResource(id int) {
	if _, ok := self.resourceReads[id]; ok {
		panic(fmt.Sprintf("schedule: system %q declares exclusive access to resource %d after shared", self.label, id))
	}
	if _, ok := self.resourceWrites[id]; ok {
		panic(fmt.Sprintf("schedule: system %q declares resource %d write twice", self.label, id))
	}
	self.resourceWrites[id] = struct{}{}
}

// RunsBefore orders this system before the system with the given label.
func (self *AccessDescriptor) RunsBefore(label string) {
	self.runsBefore = append(self.runsBefore, label)
}

// RunsAfter orders this system after the system with the given label.
func (self *AccessDescriptor) RunsAfter(label string) {
	self.runsAfter = append(self.runsAfter, label)
}
