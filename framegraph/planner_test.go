package framegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwinsyarief/kurogane/rhi"
)

// Import round-trip: one pass reads an imported buffer. The plan must carry
// one pre-barrier from the declared before-state and one epilogue barrier to
// the declared after-state, and the root usage is exactly the read's usage.
func TestImportRoundTrip(t *testing.T) {
	b := NewFrameGraphBuilder()
	imported := b.ImportBuffer(&BufferImportDesc{
		Name:         "io",
		BeforeSync:   rhi.SyncComputeShading,
		BeforeAccess: rhi.AccessShaderWrite,
		AfterSync:    rhi.SyncCopy,
		AfterAccess:  rhi.AccessCopyRead,
	})

	AddPass(b, "draw", func(_ *struct{}, reg *ResourceRegistry) {
		reg.ReadBuffer(imported.Ref(), rhi.SyncPixelShading, rhi.UsageConstantBuffer)
	}, nopExec)

	g := b.Build()
	defer g.Close()

	assert.Equal(t, rhi.UsageConstantBuffer, g.roots[imported.ID().RootID()].usage)

	require.Len(t, g.preBarriers[0], 1)
	pre := g.preBarriers[0][0]
	assert.Equal(t, rhi.SyncComputeShading, pre.beforeSync)
	assert.Equal(t, rhi.AccessShaderWrite, pre.beforeAccess)
	assert.Equal(t, rhi.SyncPixelShading, pre.afterSync)
	assert.Equal(t, rhi.AccessConstantBufferRead, pre.afterAccess)

	require.Len(t, g.epilogue, 1)
	post := g.epilogue[0]
	assert.Equal(t, rhi.SyncPixelShading, post.beforeSync)
	assert.Equal(t, rhi.AccessConstantBufferRead, post.beforeAccess)
	assert.Equal(t, rhi.SyncCopy, post.afterSync)
	assert.Equal(t, rhi.AccessCopyRead, post.afterAccess)
}

// Transient chain: create -> write -> read. Execution order is A, B, C with a
// shader-write to shader-write barrier before B and a shader-write to
// constant-read barrier before C.
func TestTransientChain(t *testing.T) {
	b := NewFrameGraphBuilder()
	var created, written ResourceMut

	AddPass(b, "a", func(_ *struct{}, reg *ResourceRegistry) {
		created = reg.CreateBuffer(&rhi.BufferDesc{Name: "x", Size: 256, Usage: rhi.UsageUnorderedAccess}, rhi.SyncComputeShading)
	}, nopExec)
	AddPass(b, "b", func(_ *struct{}, reg *ResourceRegistry) {
		written = reg.WriteBuffer(created, rhi.SyncComputeShading, rhi.UsageUnorderedAccess)
	}, nopExec)
	AddPass(b, "c", func(_ *struct{}, reg *ResourceRegistry) {
		reg.ReadBuffer(written.Ref(), rhi.SyncPixelShading, rhi.UsageConstantBuffer)
	}, nopExec)

	assert.NotEqual(t, created.ID(), written.ID())

	g := b.Build()
	defer g.Close()

	assert.Equal(t, []int{0, 1, 2}, g.ExecutionOrder())

	require.Len(t, g.preBarriers[0], 0, "the creating pass needs no barrier")
	require.Len(t, g.preBarriers[1], 1)
	require.Len(t, g.preBarriers[2], 1)
	assert.Empty(t, g.epilogue)

	ab := g.preBarriers[1][0]
	assert.Equal(t, rhi.BarrierAccessFor(rhi.UsageUnorderedAccess), ab.beforeAccess)
	assert.Equal(t, rhi.BarrierAccessFor(rhi.UsageUnorderedAccess), ab.afterAccess)
	assert.Equal(t, 0, ab.beforePass)
	assert.Equal(t, 1, ab.afterPass)

	bc := g.preBarriers[2][0]
	assert.Equal(t, rhi.SyncComputeShading, bc.beforeSync)
	assert.Equal(t, rhi.SyncPixelShading, bc.afterSync)
	assert.Equal(t, rhi.AccessConstantBufferRead, bc.afterAccess)
	assert.Equal(t, 1, bc.beforePass)
	assert.Equal(t, 2, bc.afterPass)
}

// Every consecutive pair of uses of a resource must have a barrier between
// them whose before/after passes match the pair.
func TestBarrierSufficiency(t *testing.T) {
	b := NewFrameGraphBuilder()
	var h ResourceMut

	AddPass(b, "p0", func(_ *struct{}, reg *ResourceRegistry) {
		h = reg.CreateBuffer(&rhi.BufferDesc{Name: "x", Size: 64, Usage: rhi.UsageUnorderedAccess}, rhi.SyncComputeShading)
	}, nopExec)
	AddPass(b, "p1", func(_ *struct{}, reg *ResourceRegistry) {
		h = reg.WriteBuffer(h, rhi.SyncComputeShading, rhi.UsageUnorderedAccess)
	}, nopExec)
	AddPass(b, "p2", func(_ *struct{}, reg *ResourceRegistry) {
		h = reg.WriteBuffer(h, rhi.SyncCopy, rhi.UsageCopyDest)
	}, nopExec)
	AddPass(b, "p3", func(_ *struct{}, reg *ResourceRegistry) {
		reg.ReadBuffer(h.Ref(), rhi.SyncPixelShading, rhi.UsageShaderResource)
	}, nopExec)

	g := b.Build()
	defer g.Close()

	var pairs [][2]int
	for _, group := range g.preBarriers {
		for _, pb := range group {
			pairs = append(pairs, [2]int{pb.beforePass, pb.afterPass})
		}
	}
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {2, 3}}, pairs)
}

// All readers of one version share a single barrier on each side; no barrier
// separates the readers from each other.
func TestReadCombining(t *testing.T) {
	b := NewFrameGraphBuilder()
	var h ResourceMut

	AddPass(b, "produce", func(_ *struct{}, reg *ResourceRegistry) {
		h = reg.CreateBuffer(&rhi.BufferDesc{Name: "x", Size: 64, Usage: rhi.UsageUnorderedAccess}, rhi.SyncComputeShading)
	}, nopExec)
	AddPass(b, "readA", func(_ *struct{}, reg *ResourceRegistry) {
		reg.ReadBuffer(h.Ref(), rhi.SyncPixelShading, rhi.UsageConstantBuffer)
	}, nopExec)
	AddPass(b, "readB", func(_ *struct{}, reg *ResourceRegistry) {
		reg.ReadBuffer(h.Ref(), rhi.SyncVertexShading, rhi.UsageVertexBuffer)
	}, nopExec)

	g := b.Build()
	defer g.Close()

	total := 0
	for pos, group := range g.preBarriers {
		total += len(group)
		if len(group) > 0 {
			assert.Equal(t, 1, pos, "the single barrier sits before the first reader")
		}
	}
	assert.Equal(t, 1, total)

	pb := g.preBarriers[1][0]
	assert.Equal(t, rhi.SyncPixelShading|rhi.SyncVertexShading, pb.afterSync)
	assert.Equal(t, rhi.AccessConstantBufferRead|rhi.AccessVertexBufferRead, pb.afterAccess)
}

func TestInsertionOrderTieBreak(t *testing.T) {
	b := NewFrameGraphBuilder()
	for _, name := range []string{"first", "second", "third"} {
		AddPass(b, name, func(_ *struct{}, reg *ResourceRegistry) {}, nopExec)
	}
	g := b.Build()
	defer g.Close()
	assert.Equal(t, []int{0, 1, 2}, g.ExecutionOrder())
}

// Anti-dependency: a reader of version N must execute before the producer of
// version N+1, even when the producer of N+1 is registered before the reader.
func TestReaderBeforeNextWriter(t *testing.T) {
	b := NewFrameGraphBuilder()
	var v0, v1 ResourceMut

	AddPass(b, "produce", func(_ *struct{}, reg *ResourceRegistry) {
		v0 = reg.CreateBuffer(&rhi.BufferDesc{Name: "x", Size: 64, Usage: rhi.UsageUnorderedAccess}, rhi.SyncComputeShading)
	}, nopExec)
	AddPass(b, "rewrite", func(_ *struct{}, reg *ResourceRegistry) {
		v1 = reg.WriteBuffer(v0, rhi.SyncComputeShading, rhi.UsageUnorderedAccess)
	}, nopExec)
	_ = v1
	AddPass(b, "lateRead", func(_ *struct{}, reg *ResourceRegistry) {
		// Reads the old version even though a newer one exists.
		reg.ReadBuffer(v0.Ref(), rhi.SyncComputeShading, rhi.UsageShaderResource)
	}, nopExec)

	g := b.Build()
	defer g.Close()

	order := g.ExecutionOrder()
	pos := make(map[int]int, len(order))
	for p, pass := range order {
		pos[pass] = p
	}
	assert.Less(t, pos[2], pos[1], "reader of the old version must run before its overwriter")
}

func TestMismatchedReadLayoutsPanic(t *testing.T) {
	b := NewFrameGraphBuilder()
	tex := b.ImportTexture(&TextureImportDesc{Name: "t", BeforeLayout: rhi.LayoutShaderReadOnly, AfterLayout: rhi.LayoutShaderReadOnly})

	AddPass(b, "readA", func(_ *struct{}, reg *ResourceRegistry) {
		reg.ReadTexture(tex.Ref(), rhi.SyncPixelShading, rhi.UsageShaderResource, rhi.LayoutShaderReadOnly)
	}, nopExec)
	AddPass(b, "readB", func(_ *struct{}, reg *ResourceRegistry) {
		reg.ReadTexture(tex.Ref(), rhi.SyncCopy, rhi.UsageCopySource, rhi.LayoutCopySrc)
	}, nopExec)

	require.Panics(t, func() { b.Build() })
}

// Texture layout transitions ride on the synthesised barriers.
func TestTextureLayoutTransition(t *testing.T) {
	b := NewFrameGraphBuilder()
	var tex ResourceMut

	AddPass(b, "render", func(_ *struct{}, reg *ResourceRegistry) {
		tex = reg.CreateTexture(&rhi.TextureDesc{
			Name: "color", Width: 16, Height: 16, Format: rhi.FormatRGBA8Unorm,
			Usage: rhi.UsageRenderTarget,
		}, rhi.SyncRenderTarget)
	}, nopExec)
	AddPass(b, "sample", func(_ *struct{}, reg *ResourceRegistry) {
		reg.ReadTexture(tex.Ref(), rhi.SyncPixelShading, rhi.UsageShaderResource, rhi.LayoutShaderReadOnly)
	}, nopExec)

	g := b.Build()
	defer g.Close()

	require.Len(t, g.preBarriers[1], 1)
	pb := g.preBarriers[1][0]
	assert.Equal(t, rhi.LayoutColorAttachment, pb.beforeLayout)
	assert.Equal(t, rhi.LayoutShaderReadOnly, pb.afterLayout)
}
