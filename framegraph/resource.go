// Package framegraph implements a declarative per-frame GPU workload
// scheduler. Passes declare their resource accesses during a build phase; the
// planner linearises them into a safe execution order, accumulates usage
// flags, synthesises the minimum pipeline barriers and records transient
// resource descriptors; the executor walks the plan against an rhi driver.
package framegraph

import (
	"github.com/edwinsyarief/kurogane/rhi"
)

// VersionNull is the reserved null version index. The builder guarantees
// fewer than 65535 versions per graph so this value is never a valid index.
const VersionNull = uint16(0xFFFF)

// ResourceID packs the (root, version, handle) triple identifying one state of
// one resource. The top bit tags a live ID so the zero value stays null.
type ResourceID uint64

const residLiveBit = uint64(1) << 63

func newResourceID(root, version, handle uint16) ResourceID {
	return ResourceID(residLiveBit | uint64(root)<<32 | uint64(version)<<16 | uint64(handle))
}

// RootID returns the index of the underlying root resource.
func (self ResourceID) RootID() uint16 { return uint16(self >> 32) }

// VersionID returns the index of the resource version this ID refers to.
func (self ResourceID) VersionID() uint16 { return uint16(self >> 16) }

// HandleID returns the index of the handle record backing this ID.
func (self ResourceID) HandleID() uint16 { return uint16(self) }

// IsNull reports whether the ID is the null handle.
func (self ResourceID) IsNull() bool { return uint64(self)&residLiveBit == 0 }

// ResourceRef is a read-only reference to a resource version. A read through a
// ref returns the very same handle value; only writes mint new handles.
type ResourceRef struct {
	id ResourceID
}

// ResourceMut is a writable reference to a resource version. Each ResourceMut
// may be passed to a write operation at most once; the planner derives the
// program order from that single-write discipline.
type ResourceMut struct {
	id ResourceID
}

// Ref converts a writable reference into a read-only one.
func (self ResourceMut) Ref() ResourceRef { return ResourceRef{self.id} }

// ID exposes the packed identity of the reference.
func (self ResourceRef) ID() ResourceID { return self.id }

// ID exposes the packed identity of the reference.
func (self ResourceMut) ID() ResourceID { return self.id }

// IsNull reports whether the reference is the null handle.
func (self ResourceRef) IsNull() bool { return self.id.IsNull() }

// IsNull reports whether the reference is the null handle.
func (self ResourceMut) IsNull() bool { return self.id.IsNull() }

type resourceKind uint8

const (
	resourceKindUnknown resourceKind = iota
	resourceKindBuffer
	resourceKindTexture
)

func (self resourceKind) String() string {
	switch self {
	case resourceKindBuffer:
		return "buffer"
	case resourceKindTexture:
		return "texture"
	default:
		return "unknown"
	}
}

// importedResource carries the externally declared before/after barrier state
// of an imported root. The concrete driver resource arrives at execution time
// through the ImportBundle.
type importedResource struct {
	beforeSync   rhi.BarrierSync
	beforeAccess rhi.BarrierAccess
	beforeLayout rhi.ImageLayout
	afterSync    rhi.BarrierSync
	afterAccess  rhi.BarrierAccess
	afterLayout  rhi.ImageLayout
	static       bool
}

// resourceRoot aggregates everything known about one underlying resource
// across all of its versions.
type resourceRoot struct {
	kind        resourceKind
	name        string
	usage       rhi.ResourceUsageFlags // union across every version, folded in collectResourceUsages
	imported    *importedResource      // nil for transients
	bufferDesc  *rhi.BufferDesc        // transient buffer descriptor
	textureDesc *rhi.TextureDesc       // transient texture descriptor
	headVersion uint16                 // latest version minted for this root
}

// versionRead records one read access against a version.
type versionRead struct {
	pass   int
	sync   rhi.BarrierSync
	usage  rhi.ResourceUsageFlags
	layout rhi.ImageLayout
}

// resourceVersion is the per-write record. Version N's producer must run
// before version N+1's producer and before every reader of version N.
type resourceVersion struct {
	root     uint16
	previous uint16 // VersionNull terminates the chain
	producer int    // pass index; passNone for the synthetic import state

	producerSync   rhi.BarrierSync
	producerUsage  rhi.ResourceUsageFlags
	producerLayout rhi.ImageLayout

	usage rhi.ResourceUsageFlags // producer usage plus every reader's usage
	reads []versionRead
}

// passNone marks the synthetic producer of an import's initial version.
const passNone = -1

// handleInfo flags whether a handle has been consumed by a write.
type handleInfo struct {
	written bool
}
