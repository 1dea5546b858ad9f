package rhi

import "context"

// Device is the root driver object. The core never assumes a device is safe
// for concurrent use; all frame graph encoding happens on one goroutine.
type Device interface {
	CreateBuffer(desc *BufferDesc) (Buffer, error)
	CreateTexture(desc *TextureDesc) (Texture, error)
	CreateSampler(desc *SamplerDesc) (Sampler, error)
	CreateCommandList() (CommandList, error)
	Queue(kind QueueKind) (Queue, error)
}

// Buffer is an opaque driver buffer handle.
type Buffer interface {
	Desc() *BufferDesc
}

// Texture is an opaque driver texture handle.
type Texture interface {
	Desc() *TextureDesc
}

// Sampler is an opaque driver sampler handle.
type Sampler interface {
	Desc() *SamplerDesc
}

// SwapChain is an opaque presentable surface.
type SwapChain interface {
	CurrentImage() Texture
}

// CommandList records GPU work. BeginGeneral opens the most capable encoder;
// the narrower encoders are views over the same recording state.
type CommandList interface {
	BeginGeneral() (GeneralEncoder, error)
	BeginCompute() (ComputeEncoder, error)
	BeginTransfer() (TransferEncoder, error)
	Close() error
}

// TransferEncoder records copies and barriers.
type TransferEncoder interface {
	ResourceBarrier(global []GlobalBarrier, buffers []BufferBarrier, textures []TextureBarrier)
	CopyBuffer(src, dst Buffer, regions []BufferCopyRegion)
	CopyTexture(src, dst Texture, subresources TextureSubResourceSet)
}

// ComputeEncoder additionally records dispatches.
type ComputeEncoder interface {
	TransferEncoder
	BindComputePipeline(pipeline any)
	BindDescriptorSets(sets []any)
	SetPushConstantBlock(blockIndex int, data []byte)
	Dispatch(x, y, z uint32)
}

// GeneralEncoder additionally records rasterisation work.
type GeneralEncoder interface {
	ComputeEncoder
	BindGraphicsPipeline(pipeline any)
	BeginRendering(info *BeginRenderingInfo)
	EndRendering()
	SetViewports(viewports []Viewport)
	SetScissorRects(rects []Rect)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32)
}

// Queue accepts recorded command lists for execution.
type Queue interface {
	Submit(ctx context.Context, info *SubmitInfo) error
	Present(ctx context.Context, info *PresentInfo) error
	WaitIdle(ctx context.Context) error
	SupportsPresent() bool
}

// Fence is a monotonic counter signalled by the GPU. Polling a not-yet
// signalled fence is a normal result, not an error.
type Fence interface {
	CompletedValue() uint64
	Signaled(value uint64) bool
}

// Semaphore is a binary GPU/GPU sync primitive with a CPU-observable state.
type Semaphore interface {
	Signaled() bool
}
