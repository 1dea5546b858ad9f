package schedule

import (
	"fmt"

	"github.com/edwinsyarief/kurogane/ecs"
)

// rebuildGraph rebuilds both streams' dependency graphs from scratch. Edges
// come from two sources: explicit runs-before/runs-after labels and the
// read/write access sets processed in registration order.
func (self *Schedule) rebuildGraph() {
	clearGraphNodes(self.systems)
	clearGraphNodes(self.exclusiveSystems)

	collectAccessDescriptors(self.systems, self.labelMap)
	collectAccessDescriptors(self.exclusiveSystems, self.exclusiveLabelMap)

	self.roots = buildGraphNodes(self.systems)
	self.exclusiveRoots = buildGraphNodes(self.exclusiveSystems)

	self.order = topoOrder(self.systems)
	self.exclusiveOrder = topoOrder(self.exclusiveSystems)

	self.dirty = false

	log.WithFields(map[string]any{
		"systems":   len(self.systems),
		"exclusive": len(self.exclusiveSystems),
		"roots":     len(self.roots),
	}).Debug("system graph rebuilt")
}

// clearGraphNodes drops all edges prior to a rebuild.
func clearGraphNodes(systems []*systemBox) {
	for _, box := range systems {
		clear(box.predecessors)
		clear(box.successors)
	}
}

// collectAccessDescriptors re-declares every system's access and applies the
// explicit label ordering constraints.
func collectAccessDescriptors(systems []*systemBox, labelMap map[string]int) {
	for i, box := range systems {
		box.access.clear()
		sys := box.cell.take()
		sys.DeclareAccess(box.access)
		box.cell.put(sys)

		for _, label := range box.access.runsBefore {
			before, ok := labelMap[label]
			if !ok {
				panic(fmt.Sprintf("schedule: system %q runs before unknown label %q", box.label, label))
			}
			systems[before].predecessors[i] = struct{}{}
			box.successors[before] = struct{}{}
		}
		for _, label := range box.access.runsAfter {
			after, ok := labelMap[label]
			if !ok {
				panic(fmt.Sprintf("schedule: system %q runs after unknown label %q", box.label, label))
			}
			systems[after].successors[i] = struct{}{}
			box.predecessors[after] = struct{}{}
		}
	}
}

// buildGraphNodes derives the data-dependency edges and returns the root set.
// Systems are processed in registration order, writes before reads, with
// last-write and pending-read bookkeeping per component and per resource:
// a write orders after every pending read and the previous write; a read
// orders after the last write.
func buildGraphNodes(systems []*systemBox) []int {
	lastComponentWrite := make(map[ecs.ComponentID]int)
	lastComponentReads := make(map[ecs.ComponentID][]int)
	lastResourceWrite := make(map[int]int)
	lastResourceReads := make(map[int][]int)

	for i, box := range systems {
		handleWrites(systems, mapKeys(box.access.componentWrites), lastComponentWrite, lastComponentReads, i)
		handleWrites(systems, mapKeys(box.access.resourceWrites), lastResourceWrite, lastResourceReads, i)
		handleReads(systems, mapKeys(box.access.componentReads), lastComponentWrite, lastComponentReads, i)
		handleReads(systems, mapKeys(box.access.resourceReads), lastResourceWrite, lastResourceReads, i)
	}

	var roots []int
	for i, box := range systems {
		if len(box.predecessors) == 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

func handleWrites[T comparable](systems []*systemBox, writes []T, lastWrite map[T]int, lastReads map[T][]int, system int) {
	for _, w := range writes {
		if prev, ok := lastWrite[w]; ok && prev != system {
			systems[system].predecessors[prev] = struct{}{}
			systems[prev].successors[system] = struct{}{}
		}
		lastWrite[w] = system

		reads := lastReads[w]
		for _, read := range reads {
			if read != system {
				systems[system].predecessors[read] = struct{}{}
				systems[read].successors[system] = struct{}{}
			}
		}
		lastReads[w] = reads[:0]
	}
}

func handleReads[T comparable](systems []*systemBox, reads []T, lastWrite map[T]int, lastReads map[T][]int, system int) {
	for _, r := range reads {
		lastReads[r] = append(lastReads[r], system)
		if write, ok := lastWrite[r]; ok && write != system {
			systems[system].predecessors[write] = struct{}{}
			systems[write].successors[system] = struct{}{}
		}
	}
}

// topoOrder computes a topological order with registration order as the
// tie-break. Data edges always point from earlier to later registration;
// label edges can point backwards, so a defensive cycle check stays.
func topoOrder(systems []*systemBox) []int {
	n := len(systems)
	indegree := make([]int, n)
	for i, box := range systems {
		indegree[i] = len(box.predecessors)
	}
	order := make([]int, 0, n)
	done := make([]bool, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			panic("schedule: ordering constraints form a cycle")
		}
		done[next] = true
		order = append(order, next)
		for s := range systems[next].successors {
			indegree[s]--
		}
	}
	return order
}

func mapKeys[K comparable](m map[K]struct{}) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
