package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/compositor/batch"
	"github.com/gogpu/compositor/internal/cache"
	igpu "github.com/gogpu/compositor/internal/gpu"
)

// ensureImagePipeline creates the image pipeline, sampler, instance buffer
// and bind group cache on first use.
func (r *Renderer) ensureImagePipeline() error {
	if r.image != nil {
		return nil
	}
	f, err := r.newFamily(igpu.ShaderImage, instanceEntries(), nil, r.cfg.SampleCount)
	if err != nil {
		return err
	}
	sampler, err := igpu.LinearSampler(r.device, "image_sampler")
	if err != nil {
		f.Destroy(r.device)
		return &DeviceError{Op: "create sampler", Err: err}
	}
	buf, err := igpu.NewGrowableBuffer(r.device, "image_instances", gputypes.BufferUsageStorage,
		initialImages*batch.ImageInstanceSize)
	if err != nil {
		f.Destroy(r.device)
		r.device.DestroySampler(sampler)
		return &DeviceError{Op: "create buffer", Err: err}
	}
	r.image, r.imageSampler, r.images = f, sampler, buf
	r.imageGroups = cache.New[uint64, hal.BindGroup](r.cfg.MaxImageGroups, func(_ uint64, g hal.BindGroup) {
		r.device.DestroyBindGroup(g)
	})
	slogger().Debug("gpu: image pipeline created")
	return nil
}

// RenderImages draws instances of image over the existing content. The
// pipeline and its resources are created on the first call. Bind groups
// are cached per image generation.
func (r *Renderer) RenderImages(target Target, image *Texture, instances []batch.ImageInstance) (FrameStats, error) {
	var fs FrameStats
	if err := r.check(); err != nil {
		return fs, err
	}
	if len(instances) == 0 {
		return fs, nil
	}
	if err := target.validate("images"); err != nil {
		return fs, err
	}
	if image == nil || image.raw == nil {
		return fs, &SurfaceError{Op: "images", Err: fmt.Errorf("no image texture")}
	}
	if err := r.ensureImagePipeline(); err != nil {
		return fs, err
	}

	r.writeUniforms(target.Width, target.Height)
	r.scratch = batch.AppendImages(r.scratch[:0], instances)
	grows := r.images.Grows()
	if _, err := r.images.Write(r.device, r.queue, r.scratch); err != nil {
		return fs, err
	}
	if r.images.Grows() != grows {
		// Every cached group references the old buffer.
		r.imageGroups.Clear()
	}

	group, err := r.imageGroups.GetOrCreate(image.Generation(), func() (hal.BindGroup, error) {
		return r.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:   "image_bind",
			Layout:  r.image.GroupLayout,
			Entries: r.instanceBindings(r.uniforms, r.images, image.View(), r.imageSampler),
		})
	})
	if err != nil {
		return fs, fmt.Errorf("build image bind group: %w", err)
	}

	pipeline, err := r.pipelineFor(r.image, target.samples())
	if err != nil {
		return fs, err
	}

	rec, err := r.record("images", &fs)
	if err != nil {
		return fs, err
	}
	rp := rec.pass(igpu.ColorPass{Label: "images_pass", View: target.View})
	r.drawSDF(rec, rp, pipeline, group, uint32(len(instances)))
	rp.End()
	if err := rec.submit(); err != nil {
		return fs, err
	}
	r.finish(fs)
	return fs, nil
}
