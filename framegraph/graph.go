package framegraph

import "github.com/edwinsyarief/kurogane/rhi"

// FrameGraph is the immutable product of a build: the linearised pass list,
// the per-pass barrier groups, the transient resource descriptors and the
// import obligations. It can be executed any number of times.
type FrameGraph struct {
	passes []*passRecord
	names  []string

	order       []int              // schedule position -> pass index
	preBarriers [][]plannedBarrier // indexed by schedule position
	epilogue    []plannedBarrier   // import after-state transitions

	transientBuffers  []transientBuffer
	transientTextures []transientTexture
	imports           []importEntry

	roots []plannedRoot

	drops dropList
}

// plannedRoot is the slice of root state the executor still needs.
type plannedRoot struct {
	kind  resourceKind
	name  string
	usage rhi.ResourceUsageFlags
}

type transientBuffer struct {
	root uint16
	desc rhi.BufferDesc
}

type transientTexture struct {
	root uint16
	desc rhi.TextureDesc
}

type importEntry struct {
	root uint16
	kind resourceKind
	name string
}

// PassCount returns the number of passes in the graph.
func (self *FrameGraph) PassCount() int {
	return len(self.passes)
}

// ExecutionOrder returns pass indices in scheduled order.
func (self *FrameGraph) ExecutionOrder() []int {
	out := make([]int, len(self.order))
	copy(out, self.order)
	return out
}

// PassName returns the registered name of a pass.
func (self *FrameGraph) PassName(pass int) string {
	return self.names[pass]
}

// Close releases the pass payloads. The graph must not be executed afterwards.
func (self *FrameGraph) Close() {
	self.drops.release()
	self.passes = nil
}
