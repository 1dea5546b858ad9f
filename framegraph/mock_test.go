package framegraph

import (
	"context"

	"github.com/edwinsyarief/kurogane/rhi"
)

// The mock driver records barriers and submissions so tests can assert what
// the executor encoded without a real GPU backend.

type mockBuffer struct {
	desc rhi.BufferDesc
}

func (self *mockBuffer) Desc() *rhi.BufferDesc { return &self.desc }

type mockTexture struct {
	desc rhi.TextureDesc
}

func (self *mockTexture) Desc() *rhi.TextureDesc { return &self.desc }

type barrierGroup struct {
	global   []rhi.GlobalBarrier
	buffers  []rhi.BufferBarrier
	textures []rhi.TextureBarrier
}

type mockEncoder struct {
	groups []barrierGroup
}

func (self *mockEncoder) ResourceBarrier(global []rhi.GlobalBarrier, buffers []rhi.BufferBarrier, textures []rhi.TextureBarrier) {
	self.groups = append(self.groups, barrierGroup{global: global, buffers: buffers, textures: textures})
}
func (self *mockEncoder) CopyBuffer(src, dst rhi.Buffer, regions []rhi.BufferCopyRegion)       {}
func (self *mockEncoder) CopyTexture(src, dst rhi.Texture, sub rhi.TextureSubResourceSet)      {}
func (self *mockEncoder) BindComputePipeline(pipeline any)                                     {}
func (self *mockEncoder) BindDescriptorSets(sets []any)                                        {}
func (self *mockEncoder) SetPushConstantBlock(blockIndex int, data []byte)                     {}
func (self *mockEncoder) Dispatch(x, y, z uint32)                                              {}
func (self *mockEncoder) BindGraphicsPipeline(pipeline any)                                    {}
func (self *mockEncoder) BeginRendering(info *rhi.BeginRenderingInfo)                          {}
func (self *mockEncoder) EndRendering()                                                        {}
func (self *mockEncoder) SetViewports(viewports []rhi.Viewport)                                {}
func (self *mockEncoder) SetScissorRects(rects []rhi.Rect)                                     {}
func (self *mockEncoder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)   {}
func (self *mockEncoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
}

type mockCommandList struct {
	enc    mockEncoder
	closed bool
}

func (self *mockCommandList) BeginGeneral() (rhi.GeneralEncoder, error)   { return &self.enc, nil }
func (self *mockCommandList) BeginCompute() (rhi.ComputeEncoder, error)   { return &self.enc, nil }
func (self *mockCommandList) BeginTransfer() (rhi.TransferEncoder, error) { return &self.enc, nil }
func (self *mockCommandList) Close() error {
	self.closed = true
	return nil
}

type mockQueue struct {
	submitErr error
	submits   int
}

func (self *mockQueue) Submit(ctx context.Context, info *rhi.SubmitInfo) error {
	if self.submitErr != nil {
		return self.submitErr
	}
	self.submits++
	return nil
}
func (self *mockQueue) Present(ctx context.Context, info *rhi.PresentInfo) error { return nil }
func (self *mockQueue) WaitIdle(ctx context.Context) error                       { return nil }
func (self *mockQueue) SupportsPresent() bool                                    { return false }

type mockDevice struct {
	bufferErr  error
	textureErr error
	queue      mockQueue
	lists      []*mockCommandList
	buffers    []*mockBuffer
	textures   []*mockTexture
}

func (self *mockDevice) CreateBuffer(desc *rhi.BufferDesc) (rhi.Buffer, error) {
	if self.bufferErr != nil {
		return nil, self.bufferErr
	}
	b := &mockBuffer{desc: *desc}
	self.buffers = append(self.buffers, b)
	return b, nil
}

func (self *mockDevice) CreateTexture(desc *rhi.TextureDesc) (rhi.Texture, error) {
	if self.textureErr != nil {
		return nil, self.textureErr
	}
	t := &mockTexture{desc: *desc}
	self.textures = append(self.textures, t)
	return t, nil
}

func (self *mockDevice) CreateSampler(desc *rhi.SamplerDesc) (rhi.Sampler, error) {
	return nil, nil
}

func (self *mockDevice) CreateCommandList() (rhi.CommandList, error) {
	l := &mockCommandList{}
	self.lists = append(self.lists, l)
	return l, nil
}

func (self *mockDevice) Queue(kind rhi.QueueKind) (rhi.Queue, error) {
	return &self.queue, nil
}
