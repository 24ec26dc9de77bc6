// Package gpu renders primitive batches with the wgpu HAL.
//
// A [Renderer] owns the pipelines, persistent buffers and bind-group caches
// for one output format and sample count. It draws into caller-supplied
// [Target] views and never presents; windowing and surface management
// belong to the caller.
//
// Devices are passed explicitly through a [Context], so several renderers
// can share one device:
//
//	ctx, err := gpu.OpenDefaultContext()
//	if err != nil {
//	    return err
//	}
//	defer ctx.Close()
//
//	r, err := gpu.Configure(ctx, gpu.NewConfig(gpu.WithSampleCount(4)))
//	if err != nil {
//	    return err
//	}
//	defer r.Destroy()
//
// Frames with glass surfaces use [Renderer.RenderGlassFrame], which first
// renders the background into a backdrop texture that the glass shader
// samples and blurs.
//
// Textures are identified by a generation number instead of pointer
// identity. Any change of content or backing storage takes a new
// generation, and bind groups referencing a texture are rebuilt exactly
// when the generation they were built for changes.
package gpu
