package framegraph

import (
	"fmt"

	"github.com/edwinsyarief/kurogane/rhi"
)

// plannedBarrier is one synthesised barrier. beforePass/afterPass are pass
// indices, or passNone when the edge pairs with an import's declared external
// state.
type plannedBarrier struct {
	root uint16
	kind resourceKind

	beforePass int
	afterPass  int

	beforeSync   rhi.BarrierSync
	afterSync    rhi.BarrierSync
	beforeAccess rhi.BarrierAccess
	afterAccess  rhi.BarrierAccess
	beforeLayout rhi.ImageLayout
	afterLayout  rhi.ImageLayout
}

// useBlock is one element of a root's linear use sequence. All readers of a
// version collapse into a single block; writes and import edges stand alone.
type useBlock struct {
	firstPass int // earliest scheduled pass in the block; passNone for import edges
	lastPass  int // latest scheduled pass in the block
	sync      rhi.BarrierSync
	access    rhi.BarrierAccess
	layout    rhi.ImageLayout
}

// plan linearises the builder's declarations, synthesises barriers and
// assembles the immutable graph. It is total over any builder-accepted input:
// the write-once renaming discipline makes the pass DAG acyclic by
// construction.
func plan(b *FrameGraphBuilder) *FrameGraph {
	order := linearise(b)

	position := make([]int, len(b.passes)) // pass index -> schedule position
	for pos, pass := range order {
		position[pass] = pos
	}

	g := &FrameGraph{
		passes:      b.passes,
		order:       order,
		preBarriers: make([][]plannedBarrier, len(order)),
	}
	g.drops = b.drops
	b.drops = dropList{}

	g.names = make([]string, len(b.passes))
	for i, p := range b.passes {
		g.names[i] = p.name
	}

	g.roots = make([]plannedRoot, len(b.roots))
	for i := range b.roots {
		root := &b.roots[i]
		g.roots[i] = plannedRoot{kind: root.kind, name: root.name, usage: root.usage}
		switch {
		case root.imported != nil:
			g.imports = append(g.imports, importEntry{root: uint16(i), kind: root.kind, name: root.name})
		case root.kind == resourceKindBuffer:
			desc := *root.bufferDesc
			desc.Usage = root.usage
			g.transientBuffers = append(g.transientBuffers, transientBuffer{root: uint16(i), desc: desc})
		case root.kind == resourceKindTexture:
			desc := *root.textureDesc
			desc.Usage = root.usage
			g.transientTextures = append(g.transientTextures, transientTexture{root: uint16(i), desc: desc})
		}
	}

	barriers := 0
	for rootID := range b.roots {
		blocks := buildUseBlocks(b, uint16(rootID), position)
		for i := 1; i < len(blocks); i++ {
			prev, next := blocks[i-1], blocks[i]
			pb := plannedBarrier{
				root:         uint16(rootID),
				kind:         b.roots[rootID].kind,
				beforePass:   prev.lastPass,
				afterPass:    next.firstPass,
				beforeSync:   prev.sync,
				afterSync:    next.sync,
				beforeAccess: prev.access,
				afterAccess:  next.access,
				beforeLayout: prev.layout,
				afterLayout:  next.layout,
			}
			barriers++
			if next.firstPass == passNone {
				g.epilogue = append(g.epilogue, pb)
				continue
			}
			pos := position[next.firstPass]
			g.preBarriers[pos] = append(g.preBarriers[pos], pb)
		}
	}

	log.WithFields(map[string]any{
		"passes":   len(g.passes),
		"roots":    len(g.roots),
		"barriers": barriers,
	}).Debug("frame graph planned")

	return g
}

// linearise computes a topological order of the passes. Edges follow the
// version chains: a version's producer runs before the next version's
// producer and before every reader of its version; readers run before the
// next version's producer. Ties break on pass insertion order.
func linearise(b *FrameGraphBuilder) []int {
	n := len(b.passes)
	indegree := make([]int, n)
	successors := make([][]int, n)
	seen := make(map[[2]int]struct{})

	addEdge := func(from, to int) {
		if from == to || from == passNone || to == passNone {
			return
		}
		key := [2]int{from, to}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		successors[from] = append(successors[from], to)
		indegree[to]++
	}

	for i := range b.versions {
		v := &b.versions[i]
		if v.previous != VersionNull {
			prev := &b.versions[v.previous]
			addEdge(prev.producer, v.producer)
			for _, r := range prev.reads {
				addEdge(r.pass, v.producer)
			}
		}
		for _, r := range v.reads {
			addEdge(v.producer, r.pass)
		}
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
			// Unreachable over builder-accepted input; the SSA discipline
			// precludes cycles.
			panic("framegraph: pass dependencies form a cycle")
		}
		done[next] = true
		order = append(order, next)
		for _, s := range successors[next] {
			indegree[s]--
		}
	}
	return order
}

// buildUseBlocks flattens a root's version chain into the ordered sequence of
// states the resource moves through during the frame.
func buildUseBlocks(b *FrameGraphBuilder, rootID uint16, position []int) []useBlock {
	root := &b.roots[rootID]
	var blocks []useBlock

	if root.imported != nil {
		blocks = append(blocks, useBlock{
			firstPass: passNone,
			lastPass:  passNone,
			sync:      root.imported.beforeSync,
			access:    root.imported.beforeAccess,
			layout:    root.imported.beforeLayout,
		})
	}

	// Versions are minted in chain order, so an index walk visits the chain
	// in increasing version order.
	for i := range b.versions {
		v := &b.versions[i]
		if v.root != rootID {
			continue
		}
		if v.producer != passNone {
			blocks = append(blocks, useBlock{
				firstPass: v.producer,
				lastPass:  v.producer,
				sync:      v.producerSync,
				access:    rhi.BarrierAccessFor(v.producerUsage),
				layout:    v.producerLayout,
			})
		}
		if len(v.reads) > 0 {
			blocks = append(blocks, combineReads(b, rootID, v, position))
		}
	}

	if root.imported != nil {
		blocks = append(blocks, useBlock{
			firstPass: passNone,
			lastPass:  passNone,
			sync:      root.imported.afterSync,
			access:    root.imported.afterAccess,
			layout:    root.imported.afterLayout,
		})
	}
	return blocks
}

// combineReads folds every reader of one version into a single use block.
// Readers of a version may run in any order relative to each other, so they
// share one barrier on each side; their layouts must agree.
func combineReads(b *FrameGraphBuilder, rootID uint16, v *resourceVersion, position []int) useBlock {
	root := &b.roots[rootID]
	block := useBlock{
		firstPass: v.reads[0].pass,
		lastPass:  v.reads[0].pass,
		layout:    v.reads[0].layout,
	}
	for _, r := range v.reads {
		if root.kind == resourceKindTexture && r.layout != block.layout {
			panic(fmt.Sprintf("framegraph: readers of one version of %q disagree on image layout", root.name))
		}
		block.sync |= r.sync
		block.access |= rhi.BarrierAccessFor(r.usage)
		if position[r.pass] < position[block.firstPass] {
			block.firstPass = r.pass
		}
		if position[r.pass] > position[block.lastPass] {
			block.lastPass = r.pass
		}
	}
	return block
}
