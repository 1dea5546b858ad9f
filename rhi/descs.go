package rhi

// Format is the pixel format of a texture resource.
type Format uint32

const (
	FormatUnknown Format = iota
	FormatR8Unorm
	FormatRG8Unorm
	FormatRGBA8Unorm
	FormatRGBA8Srgb
	FormatBGRA8Unorm
	FormatR16Float
	FormatRG16Float
	FormatRGBA16Float
	FormatR32Float
	FormatRG32Float
	FormatRGBA32Float
	FormatDepth32Float
	FormatDepth24Stencil8
)

// QueueKind selects one of the driver's submission queues.
type QueueKind uint32

const (
	QueueGeneral QueueKind = iota
	QueueCompute
	QueueTransfer
)

// BufferDesc describes a buffer resource.
type BufferDesc struct {
	Size  uint64
	Usage ResourceUsageFlags
	Name  string
}

// TextureDesc describes a texture resource.
type TextureDesc struct {
	Width     uint32
	Height    uint32
	Depth     uint32
	Format    Format
	MipLevels uint32
	ArraySize uint32
	Usage     ResourceUsageFlags
	Name      string
}

// SamplerDesc describes an immutable sampler object.
type SamplerDesc struct {
	MinFilter   uint32
	MagFilter   uint32
	AddressMode uint32
	Name        string
}

// TextureSubResourceSet selects a range of mips and array slices.
type TextureSubResourceSet struct {
	BaseMipLevel   uint32
	NumMipLevels   uint32
	BaseArraySlice uint32
	NumArraySlices uint32
}

// WholeTexture selects every subresource of a texture.
func WholeTexture() TextureSubResourceSet {
	return TextureSubResourceSet{NumMipLevels: ^uint32(0), NumArraySlices: ^uint32(0)}
}

// GlobalBarrier orders all prior memory accesses against all following ones.
type GlobalBarrier struct {
	BeforeSync   BarrierSync
	AfterSync    BarrierSync
	BeforeAccess BarrierAccess
	AfterAccess  BarrierAccess
}

// BufferBarrier orders accesses to a single buffer.
type BufferBarrier struct {
	Buffer       Buffer
	BeforeSync   BarrierSync
	AfterSync    BarrierSync
	BeforeAccess BarrierAccess
	AfterAccess  BarrierAccess
	Offset       uint64
	Size         uint64
}

// TextureBarrier orders accesses to a texture subresource range and performs
// the layout transition when BeforeLayout != AfterLayout.
type TextureBarrier struct {
	Texture      Texture
	BeforeSync   BarrierSync
	AfterSync    BarrierSync
	BeforeAccess BarrierAccess
	AfterAccess  BarrierAccess
	BeforeLayout ImageLayout
	AfterLayout  ImageLayout
	SubResources TextureSubResourceSet
}

// Viewport matches the fixed-function viewport state.
type Viewport struct {
	X, Y, Width, Height, MinDepth, MaxDepth float32
}

// Rect is a scissor rectangle.
type Rect struct {
	X, Y          int32
	Width, Height uint32
}

// BufferCopyRegion describes one region of a buffer-to-buffer copy.
type BufferCopyRegion struct {
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

// BeginRenderingInfo opens a dynamic rendering scope on a general encoder.
type BeginRenderingInfo struct {
	ColorAttachments []Texture
	DepthAttachment  Texture
	RenderWidth      uint32
	RenderHeight     uint32
}

// SubmitInfo is one queue submission batch.
type SubmitInfo struct {
	CommandLists     []CommandList
	WaitSemaphores   []Semaphore
	SignalSemaphores []Semaphore
	Fence            Fence
	FenceValue       uint64
}

// PresentInfo presents a swap-chain image.
type PresentInfo struct {
	SwapChain      SwapChain
	WaitSemaphores []Semaphore
}
