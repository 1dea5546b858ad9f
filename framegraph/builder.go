package framegraph

import (
	"fmt"

	"github.com/edwinsyarief/kurogane/rhi"
)

// FrameGraphBuilder captures pass declarations. All methods are build-phase
// only and single-threaded; misuse is programmer error and panics.
type FrameGraphBuilder struct {
	passes   []*passRecord
	roots    []resourceRoot
	versions []resourceVersion
	handles  []handleInfo

	current passAccess // accumulator for the pass currently in setup

	drops dropList
}

// passRecord is one registered pass. The slice index is the pass identity and
// the tie-break for any ordering ambiguity.
type passRecord struct {
	name string
	exec func(enc rhi.GeneralEncoder, view *ResourceView, ectx *ExecContext) error
}

// NewFrameGraphBuilder creates an empty builder.
func NewFrameGraphBuilder() *FrameGraphBuilder {
	return &FrameGraphBuilder{}
}

// ResourceRegistry is the view of the builder handed to setup callbacks.
type ResourceRegistry struct {
	builder *FrameGraphBuilder
	pass    int
}

// AddPass registers a pass. The setup callback runs immediately against a
// fresh payload of type T; the exec callback runs once per graph execution
// with the same payload. The payload stays alive until the graph is closed.
func AddPass[T any](b *FrameGraphBuilder, name string, setup func(*T, *ResourceRegistry), exec func(*T, rhi.GeneralEncoder, *ResourceView, *ExecContext) error) {
	payload := new(T)
	b.drops.retain(payload)

	index := len(b.passes)
	rec := &passRecord{
		name: name,
		exec: func(enc rhi.GeneralEncoder, view *ResourceView, ectx *ExecContext) error {
			return exec(payload, enc, view, ectx)
		},
	}
	b.passes = append(b.passes, rec)

	b.current.clear()
	setup(payload, &ResourceRegistry{builder: b, pass: index})
	log.WithFields(map[string]any{
		"pass":    name,
		"reads":   len(b.current.reads),
		"writes":  len(b.current.writes),
		"creates": len(b.current.creates),
		"imports": len(b.current.imports),
	}).Debug("pass registered")
}

// ImportBuffer brings an externally owned buffer into the graph. The returned
// handle is the initial version; its synthetic producer is the declared
// before-state.
func (self *FrameGraphBuilder) ImportBuffer(desc *BufferImportDesc) ResourceMut {
	r := self.createRootHandle(passNone)
	root := &self.roots[r.id.RootID()]
	root.kind = resourceKindBuffer
	root.name = desc.Name
	root.imported = &importedResource{
		beforeSync:   desc.BeforeSync,
		beforeAccess: desc.BeforeAccess,
		afterSync:    desc.AfterSync,
		afterAccess:  desc.AfterAccess,
	}
	return r
}

// ImportTexture brings an externally owned texture into the graph.
func (self *FrameGraphBuilder) ImportTexture(desc *TextureImportDesc) ResourceMut {
	r := self.createRootHandle(passNone)
	root := &self.roots[r.id.RootID()]
	root.kind = resourceKindTexture
	root.name = desc.Name
	root.imported = &importedResource{
		beforeSync:   desc.BeforeSync,
		beforeAccess: desc.BeforeAccess,
		beforeLayout: desc.BeforeLayout,
		afterSync:    desc.AfterSync,
		afterAccess:  desc.AfterAccess,
		afterLayout:  desc.AfterLayout,
		static:       desc.Static,
	}
	return r
}

// CreateBuffer declares a transient buffer. The usage in desc counts as the
// creating pass's usage only; the root accumulates the rest at build time.
func (self *ResourceRegistry) CreateBuffer(desc *rhi.BufferDesc, sync rhi.BarrierSync) ResourceMut {
	b := self.builder
	r := b.createRootHandle(self.pass)
	root := &b.roots[r.id.RootID()]
	root.kind = resourceKindBuffer
	root.name = desc.Name
	d := *desc
	root.bufferDesc = &d

	v := &b.versions[r.id.VersionID()]
	v.producerSync = sync
	v.producerUsage = desc.Usage
	v.usage |= desc.Usage

	b.current.creates = append(b.current.creates, r)
	return r
}

// CreateTexture declares a transient texture. The layout of the creating use
// is derived from the declared usage.
func (self *ResourceRegistry) CreateTexture(desc *rhi.TextureDesc, sync rhi.BarrierSync) ResourceMut {
	b := self.builder
	r := b.createRootHandle(self.pass)
	root := &b.roots[r.id.RootID()]
	root.kind = resourceKindTexture
	root.name = desc.Name
	d := *desc
	root.textureDesc = &d

	v := &b.versions[r.id.VersionID()]
	v.producerSync = sync
	v.producerUsage = desc.Usage
	v.producerLayout = rhi.ImageLayoutFor(desc.Usage)
	v.usage |= desc.Usage

	b.current.creates = append(b.current.creates, r)
	return r
}

// ImportBuffer is the registry form of FrameGraphBuilder.ImportBuffer.
func (self *ResourceRegistry) ImportBuffer(desc *BufferImportDesc) ResourceMut {
	r := self.builder.ImportBuffer(desc)
	self.builder.current.imports = append(self.builder.current.imports, r)
	return r
}

// ImportTexture is the registry form of FrameGraphBuilder.ImportTexture.
func (self *ResourceRegistry) ImportTexture(desc *TextureImportDesc) ResourceMut {
	r := self.builder.ImportTexture(desc)
	self.builder.current.imports = append(self.builder.current.imports, r)
	return r
}

// ReadBuffer records a read of a buffer version. The same handle is returned:
// reads never rename.
func (self *ResourceRegistry) ReadBuffer(r ResourceRef, sync rhi.BarrierSync, usage rhi.ResourceUsageFlags) ResourceRef {
	b := self.builder
	b.assertHandleKind(r.id, resourceKindBuffer)
	b.recordRead(self.pass, r.id, sync, usage, rhi.LayoutUndefined)
	return r
}

// ReadTexture records a read of a texture version with an explicit layout.
func (self *ResourceRegistry) ReadTexture(r ResourceRef, sync rhi.BarrierSync, usage rhi.ResourceUsageFlags, layout rhi.ImageLayout) ResourceRef {
	b := self.builder
	b.assertHandleKind(r.id, resourceKindTexture)
	b.recordRead(self.pass, r.id, sync, usage, layout)
	return r
}

// WriteBuffer consumes the handle and mints the next version of the buffer.
func (self *ResourceRegistry) WriteBuffer(r ResourceMut, sync rhi.BarrierSync, usage rhi.ResourceUsageFlags) ResourceMut {
	b := self.builder
	b.assertHandleKind(r.id, resourceKindBuffer)
	b.consumeWriteHandle(r)
	nr := b.incrementHandleForWrite(r, self.pass)
	v := &b.versions[nr.id.VersionID()]
	v.producerSync = sync
	v.producerUsage = usage
	v.usage |= usage
	b.current.writes = append(b.current.writes, nr)
	return nr
}

// WriteTexture consumes the handle and mints the next version of the texture.
func (self *ResourceRegistry) WriteTexture(r ResourceMut, sync rhi.BarrierSync, usage rhi.ResourceUsageFlags, layout rhi.ImageLayout) ResourceMut {
	b := self.builder
	b.assertHandleKind(r.id, resourceKindTexture)
	b.consumeWriteHandle(r)
	nr := b.incrementHandleForWrite(r, self.pass)
	v := &b.versions[nr.id.VersionID()]
	v.producerSync = sync
	v.producerUsage = usage
	v.producerLayout = layout
	v.usage |= usage
	b.current.writes = append(b.current.writes, nr)
	return nr
}

// recordRead appends a read against the version the handle points at and ORs
// the usage into that version's flag set.
func (self *FrameGraphBuilder) recordRead(pass int, id ResourceID, sync rhi.BarrierSync, usage rhi.ResourceUsageFlags, layout rhi.ImageLayout) {
	v := &self.versions[id.VersionID()]
	v.usage |= usage
	v.reads = append(v.reads, versionRead{pass: pass, sync: sync, usage: usage, layout: layout})
	self.current.reads = append(self.current.reads, ResourceRef{id})
}

// consumeWriteHandle enforces the write-once discipline on a handle.
func (self *FrameGraphBuilder) consumeWriteHandle(r ResourceMut) {
	if r.id.IsNull() {
		panic("framegraph: write through the null handle")
	}
	root := &self.roots[r.id.RootID()]
	if root.imported != nil && root.imported.static {
		panic(fmt.Sprintf("framegraph: write to static import %q", root.name))
	}
	h := &self.handles[r.id.HandleID()]
	if h.written {
		panic(fmt.Sprintf("framegraph: resource %q written through the same handle twice", root.name))
	}
	h.written = true
}

// incrementHandleForWrite mints the next version and handle of r's root.
func (self *FrameGraphBuilder) incrementHandleForWrite(r ResourceMut, pass int) ResourceMut {
	rootID := r.id.RootID()
	version := self.pushVersion(resourceVersion{
		root:     rootID,
		previous: r.id.VersionID(),
		producer: pass,
	})
	handle := uint16(len(self.handles))
	self.handles = append(self.handles, handleInfo{})
	self.roots[rootID].headVersion = version
	return ResourceMut{newResourceID(rootID, version, handle)}
}

// createRootHandle mints a new root together with its initial version and
// handle.
func (self *FrameGraphBuilder) createRootHandle(pass int) ResourceMut {
	rootID := uint16(len(self.roots))
	self.roots = append(self.roots, resourceRoot{})
	version := self.pushVersion(resourceVersion{
		root:     rootID,
		previous: VersionNull,
		producer: pass,
	})
	handle := uint16(len(self.handles))
	self.handles = append(self.handles, handleInfo{})
	self.roots[rootID].headVersion = version
	return ResourceMut{newResourceID(rootID, version, handle)}
}

// pushVersion appends a version record, asserting the VersionNull niche is
// never allocated.
func (self *FrameGraphBuilder) pushVersion(v resourceVersion) uint16 {
	index := len(self.versions)
	if index+1 >= int(VersionNull) {
		panic("framegraph: version count exceeds 65534")
	}
	self.versions = append(self.versions, v)
	return uint16(index)
}

// assertHandleKind validates that the handle refers to the expected resource
// kind. Reading a buffer as a texture (or the reverse) is fatal.
func (self *FrameGraphBuilder) assertHandleKind(id ResourceID, expected resourceKind) {
	if id.IsNull() {
		panic("framegraph: access through the null handle")
	}
	got := self.roots[id.RootID()].kind
	if got != expected {
		panic(fmt.Sprintf("framegraph: %s handle used as %s", got, expected))
	}
}

// collectResourceUsages folds every version's usage flags into its root. After
// this the root's usage is the full union the driver resource is created with.
func (self *FrameGraphBuilder) collectResourceUsages() {
	for i := range self.versions {
		v := &self.versions[i]
		self.roots[v.root].usage |= v.usage
	}
}

// Build finalises the declarations and plans the graph. The builder must not
// be used afterwards; payloads and names move to the returned graph.
func (self *FrameGraphBuilder) Build() *FrameGraph {
	self.collectResourceUsages()
	g := plan(self)
	self.passes = nil
	self.roots = nil
	self.versions = nil
	self.handles = nil
	return g
}
