package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/compositor/batch"
	igpu "github.com/gogpu/compositor/internal/gpu"
)

// FrameStats counts the GPU work recorded by one render call.
type FrameStats struct {
	Submissions int
	Passes      int
	Draws       int
}

// Stats are cumulative renderer counters.
type Stats struct {
	Calls       int
	Submissions int
	Passes      int
	Draws       int

	// BindGroupRebuilds counts bind groups built by the validity caches.
	BindGroupRebuilds int
	// MSAATargetCreates counts transient MSAA texture pairs created.
	MSAATargetCreates int
	// Truncated counts instances dropped because a buffer was full.
	Truncated int
	// ImageGroups is the number of cached per-image bind groups.
	ImageGroups int
}

// Stats returns the cumulative counters.
func (r *Renderer) Stats() Stats {
	s := r.stats
	s.BindGroupRebuilds = r.sdfGroup.Rebuilds() + r.foregroundGrp.Rebuilds() +
		r.glassGroup.Rebuilds() + r.textGroup.Rebuilds() + r.compositeGroup.Rebuilds()
	s.MSAATargetCreates = r.msaaTargets.Creates()
	if r.imageGroups != nil {
		s.ImageGroups = r.imageGroups.Len()
	}
	return s
}

// recording is one submission being recorded by a render call.
type recording struct {
	r   *Renderer
	enc *igpu.Encoder
	fs  *FrameStats
}

func (r *Renderer) record(label string, fs *FrameStats) (*recording, error) {
	enc, err := igpu.BeginEncoder(r.device, label)
	if err != nil {
		return nil, err
	}
	return &recording{r: r, enc: enc, fs: fs}, nil
}

func (rec *recording) pass(p igpu.ColorPass) hal.RenderPassEncoder {
	rec.fs.Passes++
	return rec.enc.BeginPass(p)
}

func (rec *recording) draw(rp hal.RenderPassEncoder, vertices, instances uint32) {
	rp.Draw(vertices, instances, 0, 0)
	rec.fs.Draws++
}

func (rec *recording) drawIndexed(rp hal.RenderPassEncoder, count, first uint32, base int32) {
	rp.DrawIndexed(count, 1, first, base, 0)
	rec.fs.Draws++
}

func (rec *recording) submit() error {
	if err := rec.enc.Submit(rec.r.queue); err != nil {
		return err
	}
	rec.fs.Submissions++
	return nil
}

// finish folds a call's counters into the renderer totals.
func (r *Renderer) finish(fs FrameStats) {
	r.stats.Calls++
	r.stats.Submissions += fs.Submissions
	r.stats.Passes += fs.Passes
	r.stats.Draws += fs.Draws
}

func clearColor(c [4]float32) *gputypes.Color {
	return &gputypes.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}

// Uploads. Every instance buffer has a fixed capacity; excess instances
// are dropped and counted in Stats.Truncated.

func (r *Renderer) writeUniforms(w, h uint32) {
	r.queue.WriteBuffer(r.uniforms.Raw(), 0, batch.EncodeUniforms(float32(w), float32(h), 0))
}

func (r *Renderer) clamp(n, capacity int) int {
	if n > capacity {
		r.stats.Truncated += n - capacity
		return capacity
	}
	return n
}

func (r *Renderer) uploadPrimitives(buf *igpu.Buffer, prims []batch.Primitive) (uint32, error) {
	n := r.clamp(len(prims), r.cfg.MaxPrimitives)
	if n == 0 {
		return 0, nil
	}
	r.scratch = batch.AppendPrimitives(r.scratch[:0], prims[:n])
	if _, err := buf.Write(r.device, r.queue, r.scratch); err != nil {
		return 0, err
	}
	return uint32(n), nil
}

func (r *Renderer) uploadGlass(glass []batch.GlassPrimitive, w, h uint32) (uint32, error) {
	n := r.clamp(len(glass), r.cfg.MaxGlassPrimitives)
	if n == 0 {
		return 0, nil
	}
	r.queue.WriteBuffer(r.glassUniforms.Raw(), 0, batch.EncodeUniforms(float32(w), float32(h), r.time))
	r.scratch = batch.AppendGlass(r.scratch[:0], glass[:n])
	if _, err := r.glassPrims.Write(r.device, r.queue, r.scratch); err != nil {
		return 0, err
	}
	return uint32(n), nil
}

func (r *Renderer) uploadGlyphs(glyphs []batch.Glyph) (uint32, error) {
	n := r.clamp(len(glyphs), r.cfg.MaxGlyphs)
	if n == 0 {
		return 0, nil
	}
	r.scratch = batch.AppendGlyphs(r.scratch[:0], glyphs[:n])
	if _, err := r.glyphs.Write(r.device, r.queue, r.scratch); err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// pathRange is a contiguous run of indices in the path buffers.
type pathRange struct {
	first, count uint32
	base         int32
}

// pathUpload locates the background and foreground paths of one upload.
type pathUpload struct {
	background, foreground pathRange
}

func (u pathUpload) empty() bool {
	return u.background.count == 0 && u.foreground.count == 0
}

// uploadPaths writes the path uniforms and the background paths followed by
// the foreground paths. Foreground indices keep their own numbering and are
// drawn with a base vertex.
func (r *Renderer) uploadPaths(b *batch.Batch, w, h uint32) (pathUpload, error) {
	bg, fg := &b.Paths, &b.ForegroundPaths
	var up pathUpload
	if bg.IsEmpty() && fg.IsEmpty() {
		return up, nil
	}
	u := b.PathState.Uniforms(float32(w), float32(h))
	r.queue.WriteBuffer(r.pathUniforms.Raw(), 0, u.Encode())

	r.scratch = batch.AppendPathVertices(r.scratch[:0], bg.Vertices)
	r.scratch = batch.AppendPathVertices(r.scratch, fg.Vertices)
	if _, err := r.pathVertices.Write(r.device, r.queue, r.scratch); err != nil {
		return up, err
	}
	r.scratch = batch.AppendIndices(r.scratch[:0], bg.Indices)
	r.scratch = batch.AppendIndices(r.scratch, fg.Indices)
	if _, err := r.pathIndices.Write(r.device, r.queue, r.scratch); err != nil {
		return up, err
	}

	up.background = pathRange{count: uint32(len(bg.Indices))}
	up.foreground = pathRange{
		first: uint32(len(bg.Indices)),
		count: uint32(len(fg.Indices)),
		base:  int32(len(bg.Vertices)),
	}
	return up, nil
}

// Bind groups.

func (r *Renderer) instanceBindings(uniforms, storage *igpu.Buffer, view hal.TextureView, sampler hal.Sampler) []gputypes.BindGroupEntry {
	return []gputypes.BindGroupEntry{
		igpu.BufferBinding(0, uniforms.Raw(), uniforms.Size()),
		igpu.BufferBinding(1, storage.Raw(), storage.Size()),
		igpu.TextureBinding(2, view),
		igpu.SamplerBinding(3, sampler),
	}
}

// sdfBindGroup returns the SDF group over storage, rebuilt only when the
// bound atlas changes.
func (r *Renderer) sdfBindGroup(c *igpu.BindGroupCache[igpu.TextureKey], storage *igpu.Buffer) (hal.BindGroup, error) {
	atlas := r.sdfAtlas()
	return c.Get(r.device, igpu.TextureKey{Generation: atlas.Generation()}, func() (hal.BindGroup, error) {
		return r.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:   "sdf_bind",
			Layout:  r.sdf.GroupLayout,
			Entries: r.instanceBindings(r.uniforms, storage, atlas.View(), r.sampler),
		})
	})
}

func (r *Renderer) glassBindGroup(backdrop *Texture) (hal.BindGroup, error) {
	return r.glassGroup.Get(r.device, igpu.TextureKey{Generation: backdrop.Generation()}, func() (hal.BindGroup, error) {
		return r.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:   "glass_bind",
			Layout:  r.glass.GroupLayout,
			Entries: r.instanceBindings(r.glassUniforms, r.glassPrims, backdrop.View(), r.sampler),
		})
	})
}

func (r *Renderer) textBindGroup(atlas *Texture) (hal.BindGroup, error) {
	return r.textGroup.Get(r.device, igpu.TextureKey{Generation: atlas.Generation()}, func() (hal.BindGroup, error) {
		return r.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:   "text_bind",
			Layout:  r.text.GroupLayout,
			Entries: r.instanceBindings(r.uniforms, r.glyphs, atlas.View(), r.sampler),
		})
	})
}

// Draw helpers. Empty ranges record nothing.

func (r *Renderer) drawSDF(rec *recording, rp hal.RenderPassEncoder, pipeline hal.RenderPipeline, group hal.BindGroup, count uint32) {
	if count == 0 {
		return
	}
	rp.SetPipeline(pipeline)
	rp.SetBindGroup(0, group, nil)
	rec.draw(rp, 6, count)
}

func (r *Renderer) drawPaths(rec *recording, rp hal.RenderPassEncoder, pipeline hal.RenderPipeline, ranges ...pathRange) {
	bound := false
	for _, rg := range ranges {
		if rg.count == 0 {
			continue
		}
		if !bound {
			rp.SetPipeline(pipeline)
			rp.SetBindGroup(0, r.pathGroup, nil)
			rp.SetVertexBuffer(0, r.pathVertices.Raw(), 0)
			rp.SetIndexBuffer(r.pathIndices.Raw(), gputypes.IndexFormatUint32, 0)
			bound = true
		}
		rec.drawIndexed(rp, rg.count, rg.first, rg.base)
	}
}
