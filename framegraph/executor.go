package framegraph

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/edwinsyarief/kurogane/rhi"
)

// ImportBundle binds externally owned driver resources to the graph's
// imported roots. A complete bundle for the graph's import list must be
// supplied to every execution.
type ImportBundle struct {
	buffers  map[uint16]rhi.Buffer
	textures map[uint16]rhi.Texture
}

// NewImportBundle creates an empty bundle.
func NewImportBundle() *ImportBundle {
	return &ImportBundle{
		buffers:  make(map[uint16]rhi.Buffer),
		textures: make(map[uint16]rhi.Texture),
	}
}

// BindBuffer supplies the driver buffer backing an imported handle.
func (self *ImportBundle) BindBuffer(r ResourceMut, buf rhi.Buffer) {
	self.buffers[r.id.RootID()] = buf
}

// BindTexture supplies the driver texture backing an imported handle.
func (self *ImportBundle) BindTexture(r ResourceMut, tex rhi.Texture) {
	self.textures[r.id.RootID()] = tex
}

// ResourceView resolves handles to the concrete driver resources bound for
// the current execution, whether imported or transient.
type ResourceView struct {
	graph    *FrameGraph
	buffers  map[uint16]rhi.Buffer
	textures map[uint16]rhi.Texture
}

// Buffer resolves a buffer handle. Kind mismatch is fatal.
func (self *ResourceView) Buffer(r ResourceRef) rhi.Buffer {
	if r.IsNull() {
		panic("framegraph: resolve of the null handle")
	}
	buf, ok := self.buffers[r.id.RootID()]
	if !ok {
		panic(fmt.Sprintf("framegraph: %s handle used as buffer", self.graph.roots[r.id.RootID()].kind))
	}
	return buf
}

// Texture resolves a texture handle. Kind mismatch is fatal.
func (self *ResourceView) Texture(r ResourceRef) rhi.Texture {
	if r.IsNull() {
		panic("framegraph: resolve of the null handle")
	}
	tex, ok := self.textures[r.id.RootID()]
	if !ok {
		panic(fmt.Sprintf("framegraph: %s handle used as texture", self.graph.roots[r.id.RootID()].kind))
	}
	return tex
}

// ExecContext is handed to every exec callback alongside the encoder.
type ExecContext struct {
	Ctx    context.Context
	Device rhi.Device
}

// Execute walks the plan once: creates the transient resources, emits each
// pass's barrier group, invokes the pass callbacks and restores the imported
// resources to their declared after-state. Driver failures are returned,
// never panicked; a missing or mistyped import binding is configuration error
// and fatal.
func (self *FrameGraph) Execute(ctx context.Context, device rhi.Device, bundle *ImportBundle) error {
	view := &ResourceView{
		graph:    self,
		buffers:  make(map[uint16]rhi.Buffer, len(self.transientBuffers)+len(bundle.buffers)),
		textures: make(map[uint16]rhi.Texture, len(self.transientTextures)+len(bundle.textures)),
	}

	for _, imp := range self.imports {
		switch imp.kind {
		case resourceKindBuffer:
			buf, ok := bundle.buffers[imp.root]
			if !ok {
				panic(fmt.Sprintf("framegraph: import bundle missing buffer %q", imp.name))
			}
			view.buffers[imp.root] = buf
		case resourceKindTexture:
			tex, ok := bundle.textures[imp.root]
			if !ok {
				panic(fmt.Sprintf("framegraph: import bundle missing texture %q", imp.name))
			}
			view.textures[imp.root] = tex
		}
	}

	var creation error
	for _, t := range self.transientBuffers {
		buf, err := device.CreateBuffer(&t.desc)
		if err != nil {
			creation = multierror.Append(creation, errors.Wrapf(err, "transient buffer %q", t.desc.Name))
			continue
		}
		view.buffers[t.root] = buf
	}
	for _, t := range self.transientTextures {
		tex, err := device.CreateTexture(&t.desc)
		if err != nil {
			creation = multierror.Append(creation, errors.Wrapf(err, "transient texture %q", t.desc.Name))
			continue
		}
		view.textures[t.root] = tex
	}
	if creation != nil {
		return creation
	}

	list, err := device.CreateCommandList()
	if err != nil {
		return errors.Wrap(err, "create command list")
	}
	enc, err := list.BeginGeneral()
	if err != nil {
		return errors.Wrap(err, "begin encoding")
	}

	ectx := &ExecContext{Ctx: ctx, Device: device}
	for pos, pass := range self.order {
		self.emitBarriers(enc, view, self.preBarriers[pos])
		if err := self.passes[pass].exec(enc, view, ectx); err != nil {
			return errors.Wrapf(err, "pass %q", self.names[pass])
		}
	}
	self.emitBarriers(enc, view, self.epilogue)

	if err := list.Close(); err != nil {
		return errors.Wrap(err, "close command list")
	}

	queue, err := device.Queue(rhi.QueueGeneral)
	if err != nil {
		return errors.Wrap(err, "acquire general queue")
	}
	if err := queue.Submit(ctx, &rhi.SubmitInfo{CommandLists: []rhi.CommandList{list}}); err != nil {
		return errors.Wrap(err, "submit frame")
	}
	return nil
}

// Present presents a swap chain after a frame. Presenting on a queue without
// present support is a configuration error and fatal; driver failure is
// returned.
func Present(ctx context.Context, queue rhi.Queue, sc rhi.SwapChain, waits []rhi.Semaphore) error {
	if !queue.SupportsPresent() {
		panic("framegraph: present on a queue without present support")
	}
	return errors.Wrap(queue.Present(ctx, &rhi.PresentInfo{SwapChain: sc, WaitSemaphores: waits}), "present")
}

// emitBarriers lowers a planned barrier group into driver barrier structs and
// records it on the encoder.
func (self *FrameGraph) emitBarriers(enc rhi.TransferEncoder, view *ResourceView, group []plannedBarrier) {
	if len(group) == 0 {
		return
	}
	var bufs []rhi.BufferBarrier
	var texs []rhi.TextureBarrier
	for _, pb := range group {
		switch pb.kind {
		case resourceKindBuffer:
			bufs = append(bufs, rhi.BufferBarrier{
				Buffer:       view.buffers[pb.root],
				BeforeSync:   pb.beforeSync,
				AfterSync:    pb.afterSync,
				BeforeAccess: pb.beforeAccess,
				AfterAccess:  pb.afterAccess,
			})
		case resourceKindTexture:
			texs = append(texs, rhi.TextureBarrier{
				Texture:      view.textures[pb.root],
				BeforeSync:   pb.beforeSync,
				AfterSync:    pb.afterSync,
				BeforeAccess: pb.beforeAccess,
				AfterAccess:  pb.afterAccess,
				BeforeLayout: pb.beforeLayout,
				AfterLayout:  pb.afterLayout,
				SubResources: rhi.WholeTexture(),
			})
		}
	}
	enc.ResourceBarrier(nil, bufs, texs)
}
