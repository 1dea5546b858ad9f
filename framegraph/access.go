package framegraph

import "github.com/edwinsyarief/kurogane/rhi"

// passAccess accumulates the declarations one setup callback makes. It is
// cleared between passes; the durable state lives in the version records.
type passAccess struct {
	reads   []ResourceRef
	writes  []ResourceMut
	creates []ResourceMut
	imports []ResourceMut
}

func (self *passAccess) clear() {
	self.reads = self.reads[:0]
	self.writes = self.writes[:0]
	self.creates = self.creates[:0]
	self.imports = self.imports[:0]
}

// BufferImportDesc declares an externally owned buffer entering the graph.
// BeforeSync/BeforeAccess describe the state the resource is in when the frame
// starts; AfterSync/AfterAccess the state the graph must leave it in.
type BufferImportDesc struct {
	Name         string
	BeforeSync   rhi.BarrierSync
	BeforeAccess rhi.BarrierAccess
	AfterSync    rhi.BarrierSync
	AfterAccess  rhi.BarrierAccess
}

// TextureImportDesc declares an externally owned texture entering the graph.
// Static marks a binding whose contents must never be written by a pass, such
// as an immutable sampler table.
type TextureImportDesc struct {
	Name         string
	BeforeSync   rhi.BarrierSync
	BeforeAccess rhi.BarrierAccess
	BeforeLayout rhi.ImageLayout
	AfterSync    rhi.BarrierSync
	AfterAccess  rhi.BarrierAccess
	AfterLayout  rhi.ImageLayout
	Static       bool
}
