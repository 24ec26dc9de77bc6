package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// PipelineSpec describes one render pipeline variant. All compositor
// pipelines draw triangle lists without culling and blend premultiplied
// alpha over the target.
type PipelineSpec struct {
	Label       string
	Module      hal.ShaderModule
	Layout      hal.PipelineLayout
	Format      gputypes.TextureFormat
	SampleCount uint32
	Buffers     []gputypes.VertexBufferLayout
}

// CreateRenderPipeline builds the pipeline described by spec.
func CreateRenderPipeline(device hal.Device, spec PipelineSpec) (hal.RenderPipeline, error) {
	samples := spec.SampleCount
	if samples == 0 {
		samples = 1
	}
	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  spec.Label,
		Layout: spec.Layout,
		Vertex: hal.VertexState{
			Module:     spec.Module,
			EntryPoint: "vs_main",
			Buffers:    spec.Buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     spec.Module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    spec.Format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", spec.Label, err)
	}
	slogger().Debug("gpu: pipeline created", "label", spec.Label, "samples", samples)
	return pipeline, nil
}

// Family is a shader with its bind group layout, pipeline layout and the
// two pipeline variants every compositor pass needs: one at the renderer's
// sample count and a single-sample overlay variant.
type Family struct {
	Name        Shader
	Module      hal.ShaderModule
	GroupLayout hal.BindGroupLayout
	PipeLayout  hal.PipelineLayout
	Main        hal.RenderPipeline
	Overlay     hal.RenderPipeline
}

// NewFamily creates the shader module, layouts and both pipeline variants.
// When sampleCount is 1 the overlay variant is the main pipeline.
func NewFamily(
	device hal.Device, s Shader, entries []gputypes.BindGroupLayoutEntry,
	buffers []gputypes.VertexBufferLayout, format gputypes.TextureFormat, sampleCount uint32,
) (*Family, error) {
	f := &Family{Name: s}
	var err error
	if f.Module, err = CreateModule(device, s); err != nil {
		return nil, err
	}
	f.GroupLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   string(s) + "_group_layout",
		Entries: entries,
	})
	if err != nil {
		f.Destroy(device)
		return nil, fmt.Errorf("create %s bind group layout: %w", s, err)
	}
	f.PipeLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            string(s) + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{f.GroupLayout},
	})
	if err != nil {
		f.Destroy(device)
		return nil, fmt.Errorf("create %s pipeline layout: %w", s, err)
	}

	spec := PipelineSpec{
		Label:       string(s),
		Module:      f.Module,
		Layout:      f.PipeLayout,
		Format:      format,
		SampleCount: sampleCount,
		Buffers:     buffers,
	}
	if f.Main, err = CreateRenderPipeline(device, spec); err != nil {
		f.Destroy(device)
		return nil, err
	}
	if sampleCount <= 1 {
		f.Overlay = f.Main
		return f, nil
	}
	spec.Label = string(s) + "_overlay"
	spec.SampleCount = 1
	if f.Overlay, err = CreateRenderPipeline(device, spec); err != nil {
		f.Destroy(device)
		return nil, err
	}
	return f, nil
}

// Pipeline returns the variant matching sampleCount.
func (f *Family) Pipeline(sampleCount uint32) hal.RenderPipeline {
	if sampleCount > 1 {
		return f.Main
	}
	return f.Overlay
}

// Destroy releases the family's objects in reverse creation order. Safe on
// a partially constructed family.
func (f *Family) Destroy(device hal.Device) {
	if f.Overlay != nil && f.Overlay != f.Main {
		device.DestroyRenderPipeline(f.Overlay)
	}
	f.Overlay = nil
	if f.Main != nil {
		device.DestroyRenderPipeline(f.Main)
		f.Main = nil
	}
	if f.PipeLayout != nil {
		device.DestroyPipelineLayout(f.PipeLayout)
		f.PipeLayout = nil
	}
	if f.GroupLayout != nil {
		device.DestroyBindGroupLayout(f.GroupLayout)
		f.GroupLayout = nil
	}
	if f.Module != nil {
		device.DestroyShaderModule(f.Module)
		f.Module = nil
	}
}

// BufferBinding binds size bytes of buf from offset 0.
func BufferBinding(binding uint32, buf hal.Buffer, size uint64) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding:  binding,
		Resource: gputypes.BufferBinding{Buffer: buf.NativeHandle(), Offset: 0, Size: size},
	}
}

// TextureBinding binds a texture view.
func TextureBinding(binding uint32, view hal.TextureView) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding:  binding,
		Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()},
	}
}

// SamplerBinding binds a sampler.
func SamplerBinding(binding uint32, s hal.Sampler) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding:  binding,
		Resource: gputypes.SamplerBinding{Sampler: s.NativeHandle()},
	}
}

// LinearSampler creates a clamp-to-edge bilinear sampler.
func LinearSampler(device hal.Device, label string) (hal.Sampler, error) {
	s, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label,
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return s, nil
}
