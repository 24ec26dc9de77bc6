package gpu

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/batch"
	"github.com/gogpu/compositor/internal/cache"
	igpu "github.com/gogpu/compositor/internal/gpu"
)

func slogger() *slog.Logger { return compositor.Logger() }

// Initial path buffer sizes; both grow on demand.
const (
	initialPathVertices = 4096
	initialPathIndices  = 8192
	initialImages       = 64
)

// Renderer draws primitive batches. It owns its pipelines, buffers and
// caches; several renderers may share one Context. A Renderer is not safe
// for concurrent use.
type Renderer struct {
	ctx    *Context
	device hal.Device
	queue  hal.Queue
	cfg    Config
	format gputypes.TextureFormat

	sdf       *igpu.Family
	glass     *igpu.Family
	path      *igpu.Family
	text      *igpu.Family
	composite *igpu.Family
	sampler   hal.Sampler

	// extra pipeline variants for sample counts other than the configured one
	variants map[variantKey]hal.RenderPipeline

	uniforms      *igpu.Buffer
	glassUniforms *igpu.Buffer
	primitives    *igpu.Buffer
	foreground    *igpu.Buffer
	glassPrims    *igpu.Buffer
	glyphs        *igpu.Buffer
	pathVertices  *igpu.Buffer
	pathIndices   *igpu.Buffer
	pathUniforms  *igpu.Buffer
	pathGroup     hal.BindGroup

	// placeholder is bound as the SDF atlas until SetAtlas is called.
	placeholder *Texture
	atlas       *Texture

	sdfGroup       *igpu.BindGroupCache[igpu.TextureKey]
	foregroundGrp  *igpu.BindGroupCache[igpu.TextureKey]
	glassGroup     *igpu.BindGroupCache[igpu.TextureKey]
	textGroup      *igpu.BindGroupCache[igpu.TextureKey]
	compositeGroup *igpu.BindGroupCache[igpu.TargetKey]
	msaaTargets    *igpu.TargetCache

	// created on first RenderImages
	image        *igpu.Family
	imageSampler hal.Sampler
	images       *igpu.Buffer
	imageGroups  *cache.Cache[uint64, hal.BindGroup]

	time      float32
	stats     Stats
	scratch   []byte
	destroyed bool
}

type variantKey struct {
	shader  igpu.Shader
	samples uint32
}

// Configure creates a renderer on ctx. Any failure is returned as is;
// shader failures are *ShaderError, invalid values wrap ErrInvalidConfig.
func Configure(ctx *Context, cfg Config) (*Renderer, error) {
	if !ctx.valid() {
		return nil, ErrNilContext
	}
	if cfg.SampleCount == 0 {
		cfg.SampleCount = 1
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxImageGroups <= 0 {
		cfg.MaxImageGroups = DefaultMaxImageGroups
	}
	if cfg.ValidateShaders {
		for _, s := range igpu.Shaders {
			if err := s.Validate(); err != nil {
				return nil, &ShaderError{Shader: string(s), Err: err}
			}
		}
	}

	r := &Renderer{
		ctx:            ctx,
		device:         ctx.Device,
		queue:          ctx.Queue,
		cfg:            cfg,
		format:         cfg.Format(),
		variants:       make(map[variantKey]hal.RenderPipeline),
		sdfGroup:       igpu.NewBindGroupCache[igpu.TextureKey]("sdf"),
		foregroundGrp:  igpu.NewBindGroupCache[igpu.TextureKey]("sdf_foreground"),
		glassGroup:     igpu.NewBindGroupCache[igpu.TextureKey]("glass"),
		textGroup:      igpu.NewBindGroupCache[igpu.TextureKey]("text"),
		compositeGroup: igpu.NewBindGroupCache[igpu.TargetKey]("composite"),
	}
	r.msaaTargets = igpu.NewTargetCache("overlay", r.format)

	if err := r.createFamilies(); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.createBuffers(); err != nil {
		r.Destroy()
		return nil, err
	}

	slogger().Info("gpu: renderer configured",
		"format", r.format, "samples", cfg.SampleCount,
		"max_primitives", cfg.MaxPrimitives, "max_glass", cfg.MaxGlassPrimitives, "max_glyphs", cfg.MaxGlyphs)
	return r, nil
}

func instanceEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		igpu.UniformEntry(0),
		igpu.StorageEntry(1),
		igpu.TextureEntry(2),
		igpu.SamplerEntry(3),
	}
}

func pathVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: batch.PathVertexSize,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // uv
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
				{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3}, // end color
			},
		},
	}
}

func (r *Renderer) newFamily(s igpu.Shader, entries []gputypes.BindGroupLayoutEntry, buffers []gputypes.VertexBufferLayout, samples uint32) (*igpu.Family, error) {
	f, err := igpu.NewFamily(r.device, s, entries, buffers, r.format, samples)
	if err != nil {
		return nil, &ShaderError{Shader: string(s), Err: err}
	}
	return f, nil
}

func (r *Renderer) createFamilies() error {
	samples := r.cfg.SampleCount
	var err error
	if r.sdf, err = r.newFamily(igpu.ShaderSDF, instanceEntries(), nil, samples); err != nil {
		return err
	}
	if r.glass, err = r.newFamily(igpu.ShaderGlass, instanceEntries(), nil, samples); err != nil {
		return err
	}
	if r.path, err = r.newFamily(igpu.ShaderPath, []gputypes.BindGroupLayoutEntry{igpu.UniformEntry(0)}, pathVertexLayout(), samples); err != nil {
		return err
	}
	if r.text, err = r.newFamily(igpu.ShaderText, instanceEntries(), nil, samples); err != nil {
		return err
	}
	// The composite pass always writes a resolved single-sample target.
	compositeEntries := []gputypes.BindGroupLayoutEntry{igpu.TextureEntry(0), igpu.SamplerEntry(1)}
	if r.composite, err = r.newFamily(igpu.ShaderComposite, compositeEntries, nil, 1); err != nil {
		return err
	}
	if r.sampler, err = igpu.LinearSampler(r.device, "compositor_sampler"); err != nil {
		return &DeviceError{Op: "create sampler", Err: err}
	}
	return nil
}

func (r *Renderer) createBuffers() error {
	type spec struct {
		dst   **igpu.Buffer
		label string
		usage gputypes.BufferUsage
		size  uint64
	}
	specs := []spec{
		{&r.uniforms, "uniforms", gputypes.BufferUsageUniform, batch.UniformsSize},
		{&r.glassUniforms, "glass_uniforms", gputypes.BufferUsageUniform, batch.UniformsSize},
		{&r.pathUniforms, "path_uniforms", gputypes.BufferUsageUniform, batch.PathUniformsSize},
		{&r.primitives, "primitives", gputypes.BufferUsageStorage, uint64(r.cfg.MaxPrimitives) * batch.PrimitiveSize},
		{&r.foreground, "foreground_primitives", gputypes.BufferUsageStorage, uint64(r.cfg.MaxPrimitives) * batch.PrimitiveSize},
		{&r.glassPrims, "glass_primitives", gputypes.BufferUsageStorage, uint64(r.cfg.MaxGlassPrimitives) * batch.GlassPrimitiveSize},
		{&r.glyphs, "glyphs", gputypes.BufferUsageStorage, uint64(r.cfg.MaxGlyphs) * batch.GlyphSize},
	}
	for _, s := range specs {
		buf, err := igpu.NewBuffer(r.device, s.label, s.usage, s.size)
		if err != nil {
			return &DeviceError{Op: "create buffer", Err: err}
		}
		*s.dst = buf
	}

	var err error
	r.pathVertices, err = igpu.NewGrowableBuffer(r.device, "path_vertices", gputypes.BufferUsageVertex,
		initialPathVertices*batch.PathVertexSize)
	if err != nil {
		return &DeviceError{Op: "create buffer", Err: err}
	}
	r.pathIndices, err = igpu.NewGrowableBuffer(r.device, "path_indices", gputypes.BufferUsageIndex,
		initialPathIndices*4)
	if err != nil {
		return &DeviceError{Op: "create buffer", Err: err}
	}

	r.pathGroup, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "path_bind",
		Layout:  r.path.GroupLayout,
		Entries: []gputypes.BindGroupEntry{igpu.BufferBinding(0, r.pathUniforms.Raw(), batch.PathUniformsSize)},
	})
	if err != nil {
		return &DeviceError{Op: "create path bind group", Err: err}
	}

	r.placeholder, err = NewTexture(r.ctx, 1, 1, gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
	if err != nil {
		return err
	}
	return r.placeholder.Write([]byte{255, 255, 255, 255})
}

// pipelineFor returns the pipeline of f for samples, creating and caching
// extra variants for sample counts other than 1 and the configured one.
func (r *Renderer) pipelineFor(f *igpu.Family, samples uint32) (hal.RenderPipeline, error) {
	switch samples {
	case 0, 1:
		return f.Overlay, nil
	case r.cfg.SampleCount:
		return f.Main, nil
	}
	key := variantKey{shader: f.Name, samples: samples}
	if p, ok := r.variants[key]; ok {
		return p, nil
	}
	var buffers []gputypes.VertexBufferLayout
	if f.Name == igpu.ShaderPath {
		buffers = pathVertexLayout()
	}
	p, err := igpu.CreateRenderPipeline(r.device, igpu.PipelineSpec{
		Label:       fmt.Sprintf("%s_x%d", f.Name, samples),
		Module:      f.Module,
		Layout:      f.PipeLayout,
		Format:      r.format,
		SampleCount: samples,
		Buffers:     buffers,
	})
	if err != nil {
		return nil, &ShaderError{Shader: string(f.Name), Err: err}
	}
	r.variants[key] = p
	return p, nil
}

// Config returns the configuration the renderer was created with.
func (r *Renderer) Config() Config { return r.cfg }

// Format returns the render target format.
func (r *Renderer) Format() gputypes.TextureFormat { return r.format }

// SetTime sets the animation time passed to the glass shader.
func (r *Renderer) SetTime(seconds float32) { r.time = seconds }

// SetAtlas sets the glyph atlas bound to the SDF pipeline for text
// primitives. Pass nil to bind the built-in placeholder.
func (r *Renderer) SetAtlas(atlas *Texture) { r.atlas = atlas }

func (r *Renderer) sdfAtlas() *Texture {
	if r.atlas != nil && r.atlas.raw != nil {
		return r.atlas
	}
	return r.placeholder
}

func (r *Renderer) check() error {
	if r == nil || r.destroyed {
		return ErrDestroyed
	}
	return nil
}

// Destroy releases every GPU object the renderer owns. Safe to call more
// than once. The Context is not closed.
func (r *Renderer) Destroy() {
	if r == nil || r.destroyed {
		return
	}
	r.destroyed = true
	d := r.device

	for _, c := range []*igpu.BindGroupCache[igpu.TextureKey]{r.sdfGroup, r.foregroundGrp, r.glassGroup, r.textGroup} {
		c.Invalidate(d)
	}
	r.compositeGroup.Invalidate(d)
	r.msaaTargets.Destroy(d)
	if r.imageGroups != nil {
		r.imageGroups.Clear()
	}
	if r.pathGroup != nil {
		d.DestroyBindGroup(r.pathGroup)
		r.pathGroup = nil
	}
	for _, b := range []*igpu.Buffer{
		r.uniforms, r.glassUniforms, r.pathUniforms, r.primitives, r.foreground,
		r.glassPrims, r.glyphs, r.pathVertices, r.pathIndices, r.images,
	} {
		b.Destroy(d)
	}
	r.placeholder.Destroy()
	for key, p := range r.variants {
		d.DestroyRenderPipeline(p)
		delete(r.variants, key)
	}
	for _, s := range []hal.Sampler{r.sampler, r.imageSampler} {
		if s != nil {
			d.DestroySampler(s)
		}
	}
	for _, f := range []*igpu.Family{r.sdf, r.glass, r.path, r.text, r.composite, r.image} {
		if f != nil {
			f.Destroy(d)
		}
	}
	slogger().Debug("gpu: renderer destroyed")
}
