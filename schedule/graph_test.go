package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwinsyarief/kurogane/ecs"
)

type position struct{ X, Y float32 }
type velocity struct{ DX, DY float32 }

func registerTestComponents() (pos, vel ecs.ComponentID) {
	ecs.ResetGlobalRegistry()
	pos = ecs.RegisterComponent[position]()
	vel = ecs.RegisterComponent[velocity]()
	return pos, vel
}

func declaring(declare func(*AccessDescriptor)) System {
	return SystemFunc{Declare: declare}
}

func hasEdge(s *Schedule, from, to string) bool {
	i := s.labelMap[from]
	j := s.labelMap[to]
	_, ok := s.systems[i].successors[j]
	return ok
}

// Write/read chains produce the expected edges: the Position writer precedes
// the Position reader, which precedes the Velocity reader through its write.
func TestDataDependencyEdges(t *testing.T) {
	pos, vel := registerTestComponents()

	s := New()
	s.AddSystem("s1", declaring(func(d *AccessDescriptor) { d.WritesComponent(pos) }))
	s.AddSystem("s2", declaring(func(d *AccessDescriptor) {
		d.ReadsComponent(pos)
		d.WritesComponent(vel)
	}))
	s.AddSystem("s3", declaring(func(d *AccessDescriptor) { d.ReadsComponent(vel) }))

	s.rebuildGraph()

	assert.True(t, hasEdge(s, "s1", "s2"))
	assert.True(t, hasEdge(s, "s2", "s3"))
	assert.False(t, hasEdge(s, "s1", "s3"), "s1 and s3 share no components")
	assert.Equal(t, []int{0}, s.roots)
}

// Two writers of one component are ordered even with no reader in between.
func TestWriteWriteEdge(t *testing.T) {
	pos, _ := registerTestComponents()

	s := New()
	s.AddSystem("w1", declaring(func(d *AccessDescriptor) { d.WritesComponent(pos) }))
	s.AddSystem("w2", declaring(func(d *AccessDescriptor) { d.WritesComponent(pos) }))
	s.rebuildGraph()

	assert.True(t, hasEdge(s, "w1", "w2"))
}

// For any two systems with conflicting accesses there must be a path between
// them in the built graph.
func TestEdgeSoundness(t *testing.T) {
	pos, vel := registerTestComponents()

	s := New()
	s.AddSystem("a", declaring(func(d *AccessDescriptor) { d.WritesComponent(pos) }))
	s.AddSystem("b", declaring(func(d *AccessDescriptor) { d.ReadsComponent(pos) }))
	s.AddSystem("c", declaring(func(d *AccessDescriptor) {
		d.ReadsComponent(pos)
		d.WritesComponent(vel)
	}))
	s.AddSystem("d", declaring(func(d *AccessDescriptor) { d.WritesComponent(pos) }))
	s.rebuildGraph()

	reach := func(from int) map[int]bool {
		seen := map[int]bool{}
		stack := []int{from}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for succ := range s.systems[n].successors {
				if !seen[succ] {
					seen[succ] = true
					stack = append(stack, succ)
				}
			}
		}
		return seen
	}

	conflicts := [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 3}, {2, 3}}
	for _, pair := range conflicts {
		a, b := pair[0], pair[1]
		if !reach(a)[b] && !reach(b)[a] {
			t.Errorf("no path between conflicting systems %d and %d", a, b)
		}
	}
}

// A runs-before label constraint alone creates an edge.
func TestLabelOrdering(t *testing.T) {
	pos, vel := registerTestComponents()

	s := New()
	s.AddSystem("s1", declaring(func(d *AccessDescriptor) {
		d.ReadsComponent(pos)
		d.RunsBefore("B")
	}))
	s.AddSystem("B", declaring(func(d *AccessDescriptor) { d.ReadsComponent(vel) }))
	s.rebuildGraph()

	assert.True(t, hasEdge(s, "s1", "B"))
}

func TestRunsAfterLabel(t *testing.T) {
	registerTestComponents()

	s := New()
	s.AddSystem("first", declaring(func(d *AccessDescriptor) {}))
	s.AddSystem("second", declaring(func(d *AccessDescriptor) { d.RunsAfter("first") }))
	s.rebuildGraph()

	assert.True(t, hasEdge(s, "first", "second"))
}

func TestDuplicateLabelPanics(t *testing.T) {
	registerTestComponents()
	s := New()
	s.AddSystem("dup", declaring(func(d *AccessDescriptor) {}))
	require.PanicsWithValue(t, `schedule: duplicate system label "dup"`, func() {
		s.AddSystem("dup", declaring(func(d *AccessDescriptor) {}))
	})
}

func TestUnknownLabelPanics(t *testing.T) {
	registerTestComponents()
	s := New()
	s.AddSystem("sys", declaring(func(d *AccessDescriptor) { d.RunsBefore("ghost") }))
	require.Panics(t, func() { s.rebuildGraph() })
}

func TestConflictingAccessPanics(t *testing.T) {
	pos, _ := registerTestComponents()

	s := New()
	s.AddSystem("bad", declaring(func(d *AccessDescriptor) {
		d.ReadsComponent(pos)
		d.WritesComponent(pos)
	}))
	require.Panics(t, func() { s.rebuildGraph() })
}

func TestDuplicateDeclarationPanics(t *testing.T) {
	pos, _ := registerTestComponents()

	s := New()
	s.AddSystem("bad", declaring(func(d *AccessDescriptor) {
		d.ReadsComponent(pos)
		d.ReadsComponent(pos)
	}))
	require.Panics(t, func() { s.rebuildGraph() })
}

func TestLabelCyclePanics(t *testing.T) {
	registerTestComponents()
	s := New()
	s.AddSystem("a", declaring(func(d *AccessDescriptor) { d.RunsAfter("b") }))
	s.AddSystem("b", declaring(func(d *AccessDescriptor) { d.RunsAfter("a") }))
	require.Panics(t, func() { s.rebuildGraph() })
}
