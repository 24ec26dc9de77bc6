package gpu

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/batch"
)

// createNoopContext opens a noop device and wraps it in a Context whose
// device records every render pass.
func createNoopContext(t *testing.T) (*Context, *passLog) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})

	log := &passLog{}
	ctx, err := NewContext(&recordingDevice{Device: openDev.Device, log: log}, openDev.Queue)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	return ctx, log
}

// newTestRenderer configures a renderer on a fresh noop context.
func newTestRenderer(t *testing.T, opts ...Option) (*Renderer, *Context, *passLog) {
	t.Helper()
	ctx, log := createNoopContext(t)
	r, err := Configure(ctx, NewConfig(opts...))
	if err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	t.Cleanup(r.Destroy)
	return r, ctx, log
}

// newTestTarget creates a render texture of the given size.
func newTestTarget(t *testing.T, ctx *Context, w, h uint32) *Texture {
	t.Helper()
	tex, err := NewRenderTexture(ctx, w, h, DefaultTextureFormat)
	if err != nil {
		t.Fatalf("NewRenderTexture failed: %v", err)
	}
	t.Cleanup(tex.Destroy)
	return tex
}

// passRecord is one render pass begun on a recordingDevice.
type passRecord struct {
	Label      string
	View       hal.TextureView
	Clear      bool
	ClearValue gputypes.Color
	Pipelines  []string // labels of the pipelines bound in the pass
	Instances  []uint32 // instance count of each draw
}

type passLog struct {
	passes []passRecord
}

func (l *passLog) reset() { l.passes = l.passes[:0] }

func (l *passLog) labels() []string {
	out := make([]string, len(l.passes))
	for i, p := range l.passes {
		out[i] = p.Label
	}
	return out
}

// recordingDevice wraps a hal.Device and logs the render passes of every
// command encoder it creates.
type recordingDevice struct {
	hal.Device
	log *passLog
}

// labeledPipeline remembers the label a pipeline was created with.
type labeledPipeline struct {
	hal.RenderPipeline
	label string
}

func (d *recordingDevice) CreateRenderPipeline(desc *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	p, err := d.Device.CreateRenderPipeline(desc)
	if err != nil {
		return nil, err
	}
	return &labeledPipeline{RenderPipeline: p, label: desc.Label}, nil
}

func (d *recordingDevice) DestroyRenderPipeline(p hal.RenderPipeline) {
	if lp, ok := p.(*labeledPipeline); ok {
		p = lp.RenderPipeline
	}
	d.Device.DestroyRenderPipeline(p)
}

func (d *recordingDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return &recordingEncoder{CommandEncoder: enc, log: d.log}, nil
}

type recordingEncoder struct {
	hal.CommandEncoder
	log *passLog
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	rec := passRecord{Label: desc.Label}
	if len(desc.ColorAttachments) > 0 {
		att := desc.ColorAttachments[0]
		rec.View = att.View
		rec.Clear = att.LoadOp == gputypes.LoadOpClear
		rec.ClearValue = att.ClearValue
	}
	e.log.passes = append(e.log.passes, rec)
	return &recordingPass{
		RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc),
		log:               e.log,
		index:             len(e.log.passes) - 1,
	}
}

// recordingPass logs the pipelines and draws of one render pass.
type recordingPass struct {
	hal.RenderPassEncoder
	log   *passLog
	index int
}

func (p *recordingPass) record() *passRecord { return &p.log.passes[p.index] }

func (p *recordingPass) SetPipeline(pipeline hal.RenderPipeline) {
	label := "?"
	if lp, ok := pipeline.(*labeledPipeline); ok {
		label = lp.label
		pipeline = lp.RenderPipeline
	}
	rec := p.record()
	rec.Pipelines = append(rec.Pipelines, label)
	p.RenderPassEncoder.SetPipeline(pipeline)
}

func (p *recordingPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	rec := p.record()
	rec.Instances = append(rec.Instances, instanceCount)
	p.RenderPassEncoder.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *recordingPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	rec := p.record()
	rec.Instances = append(rec.Instances, instanceCount)
	p.RenderPassEncoder.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

// mockProvider implements gpucontext.DeviceProvider without HAL access.
type mockProvider struct{}

func (mockProvider) Device() gpucontext.Device             { return nil }
func (mockProvider) Queue() gpucontext.Queue               { return nil }
func (mockProvider) Adapter() gpucontext.Adapter           { return nil }
func (mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

// halMockProvider adds HalDevice and HalQueue to mockProvider.
type halMockProvider struct {
	mockProvider
	device any
	queue  any
}

func (p halMockProvider) HalDevice() any { return p.device }
func (p halMockProvider) HalQueue() any  { return p.queue }

// Batch fixtures.

func rectPrim(x float32) batch.Primitive {
	return batch.NewRect(x, 10, 50, 50, compositor.RGB(1, 0, 0))
}

func glassPrim() batch.GlassPrimitive {
	return batch.NewGlassPrimitive(compositor.Rect{X: 20, Y: 20, W: 100, H: 60},
		compositor.Uniform(12), compositor.RegularGlass())
}

func triangle() ([]batch.PathVertex, []uint32) {
	c := compositor.RGB(0, 0, 1).Array()
	return []batch.PathVertex{
		{Position: [2]float32{0, 0}, Color: c, EndColor: c},
		{Position: [2]float32{40, 0}, Color: c, EndColor: c},
		{Position: [2]float32{0, 40}, Color: c, EndColor: c},
	}, []uint32{0, 1, 2}
}
