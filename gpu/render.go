package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/batch"
	igpu "github.com/gogpu/compositor/internal/gpu"
)

// RenderWithClear clears target and draws the normal primitives followed by
// the background paths, in one pass and one submission. An empty batch
// produces a pure clear.
func (r *Renderer) RenderWithClear(target Target, b *batch.Batch, clear compositor.Color) (FrameStats, error) {
	return r.renderCleared("render", target, nil, b, clear)
}

// RenderMSAA is RenderWithClear for a multisampled target resolved into
// resolve.
func (r *Renderer) RenderMSAA(msaa, resolve Target, b *batch.Batch, clear compositor.Color) (FrameStats, error) {
	if err := resolve.validate("render msaa"); err != nil {
		return FrameStats{}, err
	}
	return r.renderCleared("render_msaa", msaa, resolve.View, b, clear)
}

func (r *Renderer) renderCleared(label string, target Target, resolve hal.TextureView, b *batch.Batch, clear compositor.Color) (FrameStats, error) {
	var fs FrameStats
	if err := r.check(); err != nil {
		return fs, err
	}
	if err := target.validate(label); err != nil {
		return fs, err
	}
	samples := target.samples()

	r.writeUniforms(target.Width, target.Height)
	count, err := r.uploadPrimitives(r.primitives, b.Primitives)
	if err != nil {
		return fs, err
	}
	paths, err := r.uploadPaths(b, target.Width, target.Height)
	if err != nil {
		return fs, err
	}
	sdfPipe, err := r.pipelineFor(r.sdf, samples)
	if err != nil {
		return fs, err
	}
	pathPipe, err := r.pipelineFor(r.path, samples)
	if err != nil {
		return fs, err
	}
	group, err := r.sdfBindGroup(r.sdfGroup, r.primitives)
	if err != nil {
		return fs, err
	}

	rec, err := r.record(label, &fs)
	if err != nil {
		return fs, err
	}
	rp := rec.pass(igpu.ColorPass{
		Label:   label + "_pass",
		View:    target.View,
		Resolve: resolve,
		Clear:   clearColor(clear.Array()),
	})
	r.drawSDF(rec, rp, sdfPipe, group, count)
	r.drawPaths(rec, rp, pathPipe, paths.background)
	rp.End()
	if err := rec.submit(); err != nil {
		return fs, err
	}
	r.finish(fs)
	return fs, nil
}

// RenderOverlay draws all of the batch's paths and then its normal
// primitives over the existing content of a single-sample target.
func (r *Renderer) RenderOverlay(target Target, b *batch.Batch) (FrameStats, error) {
	return r.renderOverlay("overlay", target, b, b.Primitives, true)
}

// RenderPrimitivesOverlay draws prims over the existing content.
func (r *Renderer) RenderPrimitivesOverlay(target Target, prims []batch.Primitive) (FrameStats, error) {
	return r.renderOverlay("primitives_overlay", target, nil, prims, false)
}

// RenderPathsOverlay draws only the batch's paths over the existing content.
func (r *Renderer) RenderPathsOverlay(target Target, b *batch.Batch) (FrameStats, error) {
	return r.renderOverlay("paths_overlay", target, b, nil, true)
}

// RenderForeground draws the foreground paths and then the foreground
// primitives over the existing content. Glyphs are not drawn; convert them
// with Batch.UnifiedForeground or render them with RenderText.
func (r *Renderer) RenderForeground(target Target, b *batch.Batch) (FrameStats, error) {
	fg := &batch.Batch{ForegroundPaths: b.ForegroundPaths, PathState: b.PathState}
	return r.renderOverlay("foreground", target, fg, b.Foreground, true)
}

// renderOverlay draws paths (if withPaths) then prims in one load pass with
// the single-sample pipelines. Primitives go through the foreground buffer
// so the normal list of a previous call stays intact.
func (r *Renderer) renderOverlay(label string, target Target, b *batch.Batch, prims []batch.Primitive, withPaths bool) (FrameStats, error) {
	var fs FrameStats
	if err := r.check(); err != nil {
		return fs, err
	}
	if err := target.validate(label); err != nil {
		return fs, err
	}
	r.writeUniforms(target.Width, target.Height)
	count, err := r.uploadPrimitives(r.foreground, prims)
	if err != nil {
		return fs, err
	}
	var paths pathUpload
	if withPaths && b != nil {
		if paths, err = r.uploadPaths(b, target.Width, target.Height); err != nil {
			return fs, err
		}
	}
	if count == 0 && paths.empty() {
		return fs, nil
	}
	group, err := r.sdfBindGroup(r.foregroundGrp, r.foreground)
	if err != nil {
		return fs, err
	}

	rec, err := r.record(label, &fs)
	if err != nil {
		return fs, err
	}
	rp := rec.pass(igpu.ColorPass{Label: label + "_pass", View: target.View})
	r.drawPaths(rec, rp, r.path.Overlay, paths.background, paths.foreground)
	r.drawSDF(rec, rp, r.sdf.Overlay, group, count)
	rp.End()
	if err := rec.submit(); err != nil {
		return fs, err
	}
	r.finish(fs)
	return fs, nil
}

// RenderOverlayMSAA draws the batch like RenderOverlay, but into a cached
// transient MSAA texture pair that is resolved and then composited over
// target with a full-screen triangle. The pair is recreated only when the
// target size or sampleCount changes.
func (r *Renderer) RenderOverlayMSAA(target Target, b *batch.Batch, sampleCount uint32) (FrameStats, error) {
	var fs FrameStats
	if err := r.check(); err != nil {
		return fs, err
	}
	if err := target.validate("overlay msaa"); err != nil {
		return fs, err
	}
	if sampleCount <= 1 {
		return r.RenderOverlay(target, b)
	}

	r.writeUniforms(target.Width, target.Height)
	count, err := r.uploadPrimitives(r.foreground, b.Primitives)
	if err != nil {
		return fs, err
	}
	paths, err := r.uploadPaths(b, target.Width, target.Height)
	if err != nil {
		return fs, err
	}
	if count == 0 && paths.empty() {
		return fs, nil
	}

	key := igpu.TargetKey{Width: target.Width, Height: target.Height, SampleCount: sampleCount}
	pair, err := r.msaaTargets.Ensure(r.device, key)
	if err != nil {
		return fs, &SurfaceError{Op: "overlay msaa", Err: err}
	}
	sdfPipe, err := r.pipelineFor(r.sdf, sampleCount)
	if err != nil {
		return fs, err
	}
	pathPipe, err := r.pipelineFor(r.path, sampleCount)
	if err != nil {
		return fs, err
	}
	sdfGroup, err := r.sdfBindGroup(r.foregroundGrp, r.foreground)
	if err != nil {
		return fs, err
	}
	compGroup, err := r.compositeGroup.Get(r.device, key, func() (hal.BindGroup, error) {
		return r.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "composite_bind",
			Layout: r.composite.GroupLayout,
			Entries: []gputypes.BindGroupEntry{
				igpu.TextureBinding(0, pair.ResolveView),
				igpu.SamplerBinding(1, r.sampler),
			},
		})
	})
	if err != nil {
		return fs, err
	}

	rec, err := r.record("overlay_msaa", &fs)
	if err != nil {
		return fs, err
	}
	rp := rec.pass(igpu.ColorPass{
		Label:   "overlay_msaa_pass",
		View:    pair.MSAAView,
		Resolve: pair.ResolveView,
		Clear:   clearColor(compositor.Transparent.Array()),
	})
	r.drawPaths(rec, rp, pathPipe, paths.background, paths.foreground)
	r.drawSDF(rec, rp, sdfPipe, sdfGroup, count)
	rp.End()

	rp = rec.pass(igpu.ColorPass{Label: "composite_pass", View: target.View})
	rp.SetPipeline(r.composite.Overlay)
	rp.SetBindGroup(0, compGroup, nil)
	rec.draw(rp, 3, 1)
	rp.End()

	if err := rec.submit(); err != nil {
		return fs, fmt.Errorf("overlay msaa: %w", err)
	}
	r.finish(fs)
	return fs, nil
}
