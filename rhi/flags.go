// Package rhi declares the abstract GPU driver contract the engine core is
// written against. A concrete backend (Vulkan, D3D12, a software mock) supplies
// the interfaces; the core only consumes them.
package rhi

// BarrierSync is a set of pipeline stages a barrier synchronises against.
type BarrierSync uint32

const (
	SyncNone           BarrierSync = 0
	SyncAll            BarrierSync = 1 << 0
	SyncDraw           BarrierSync = 1 << 1
	SyncIndexInput     BarrierSync = 1 << 2
	SyncVertexShading  BarrierSync = 1 << 3
	SyncPixelShading   BarrierSync = 1 << 4
	SyncDepthStencil   BarrierSync = 1 << 5
	SyncRenderTarget   BarrierSync = 1 << 6
	SyncComputeShading BarrierSync = 1 << 7
	SyncCopy           BarrierSync = 1 << 8
	SyncResolve        BarrierSync = 1 << 9
	SyncPresent        BarrierSync = 1 << 10
)

// BarrierAccess is a set of memory access kinds made visible by a barrier.
type BarrierAccess uint32

const (
	AccessNone               BarrierAccess = 0
	AccessVertexBufferRead   BarrierAccess = 1 << 0
	AccessIndexBufferRead    BarrierAccess = 1 << 1
	AccessConstantBufferRead BarrierAccess = 1 << 2
	AccessIndirectArgsRead   BarrierAccess = 1 << 3
	AccessShaderRead         BarrierAccess = 1 << 4
	AccessShaderWrite        BarrierAccess = 1 << 5
	AccessRenderTargetRead   BarrierAccess = 1 << 6
	AccessRenderTargetWrite  BarrierAccess = 1 << 7
	AccessDepthStencilRead   BarrierAccess = 1 << 8
	AccessDepthStencilWrite  BarrierAccess = 1 << 9
	AccessCopyRead           BarrierAccess = 1 << 10
	AccessCopyWrite          BarrierAccess = 1 << 11
)

// ImageLayout describes the memory layout a texture subresource is in.
// LayoutUndefined marks the contents as discardable.
type ImageLayout uint32

const (
	LayoutUndefined ImageLayout = iota
	LayoutCommon
	LayoutPresentSrc
	LayoutColorAttachment
	LayoutDepthStencilAttachment
	LayoutDepthStencilReadOnly
	LayoutShaderReadOnly
	LayoutUnorderedAccess
	LayoutCopySrc
	LayoutCopyDst
)

// ResourceUsageFlags is the shared buffer/texture usage bit-set. A resource is
// created with the union of every usage any pass declares for it.
type ResourceUsageFlags uint32

const (
	UsageNone            ResourceUsageFlags = 0
	UsageCopySource      ResourceUsageFlags = 1 << 0
	UsageCopyDest        ResourceUsageFlags = 1 << 1
	UsageVertexBuffer    ResourceUsageFlags = 1 << 2
	UsageIndexBuffer     ResourceUsageFlags = 1 << 3
	UsageConstantBuffer  ResourceUsageFlags = 1 << 4
	UsageIndirectArgs    ResourceUsageFlags = 1 << 5
	UsageShaderResource  ResourceUsageFlags = 1 << 6
	UsageUnorderedAccess ResourceUsageFlags = 1 << 7
	UsageRenderTarget    ResourceUsageFlags = 1 << 8
	UsageDepthStencil    ResourceUsageFlags = 1 << 9
)

// writableUsages are the usages that can mutate resource contents.
const writableUsages = UsageCopyDest | UsageUnorderedAccess | UsageRenderTarget | UsageDepthStencil

// IsWritable reports whether any usage in the set can mutate the resource.
func (u ResourceUsageFlags) IsWritable() bool {
	return u&writableUsages != 0
}

// BarrierAccessFor derives the memory access set implied by a usage set.
func BarrierAccessFor(u ResourceUsageFlags) BarrierAccess {
	var a BarrierAccess
	if u&UsageCopySource != 0 {
		a |= AccessCopyRead
	}
	if u&UsageCopyDest != 0 {
		a |= AccessCopyWrite
	}
	if u&UsageVertexBuffer != 0 {
		a |= AccessVertexBufferRead
	}
	if u&UsageIndexBuffer != 0 {
		a |= AccessIndexBufferRead
	}
	if u&UsageConstantBuffer != 0 {
		a |= AccessConstantBufferRead
	}
	if u&UsageIndirectArgs != 0 {
		a |= AccessIndirectArgsRead
	}
	if u&UsageShaderResource != 0 {
		a |= AccessShaderRead
	}
	if u&UsageUnorderedAccess != 0 {
		a |= AccessShaderRead | AccessShaderWrite
	}
	if u&UsageRenderTarget != 0 {
		a |= AccessRenderTargetRead | AccessRenderTargetWrite
	}
	if u&UsageDepthStencil != 0 {
		a |= AccessDepthStencilRead | AccessDepthStencilWrite
	}
	return a
}

// ImageLayoutFor derives the texture layout required by a usage set.
// At most one layout-relevant usage may be present (none yields
// LayoutUndefined); mixed sets panic because a single subresource cannot be in
// two layouts at once.
func ImageLayoutFor(u ResourceUsageFlags) ImageLayout {
	switch u &^ (UsageVertexBuffer | UsageIndexBuffer | UsageConstantBuffer | UsageIndirectArgs) {
	case UsageNone:
		return LayoutUndefined
	case UsageCopySource:
		return LayoutCopySrc
	case UsageCopyDest:
		return LayoutCopyDst
	case UsageShaderResource:
		return LayoutShaderReadOnly
	case UsageUnorderedAccess:
		return LayoutUnorderedAccess
	case UsageRenderTarget:
		return LayoutColorAttachment
	case UsageDepthStencil:
		return LayoutDepthStencilAttachment
	default:
		panic("rhi: usage set maps to more than one image layout")
	}
}
