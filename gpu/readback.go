package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	igpu "github.com/gogpu/compositor/internal/gpu"
)

// ReadPixels copies tex back to host memory. The texture must have been
// created with CopySrc usage (NewRenderTexture does this). BGRA content is
// swizzled to RGBA.
func ReadPixels(ctx *Context, tex *Texture) (*image.RGBA, error) {
	if !ctx.valid() {
		return nil, ErrNilContext
	}
	if tex == nil || tex.raw == nil {
		return nil, ErrDestroyed
	}
	if tex.usage&gputypes.TextureUsageCopySrc == 0 {
		return nil, &SurfaceError{Op: "read pixels", Err: fmt.Errorf("texture lacks CopySrc usage")}
	}
	data, err := igpu.ReadTexture(ctx.Device, ctx.Queue, tex.raw, tex.width, tex.height)
	if err != nil {
		return nil, fmt.Errorf("gpu: read pixels: %w", err)
	}
	if igpu.IsBGRA(tex.format) {
		igpu.SwapRB(data)
	}
	return &image.RGBA{
		Pix:    data,
		Stride: int(tex.width) * 4,
		Rect:   image.Rect(0, 0, int(tex.width), int(tex.height)),
	}, nil
}

// ReadPixels reads back a texture rendered by r.
func (r *Renderer) ReadPixels(tex *Texture) (*image.RGBA, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	return ReadPixels(r.ctx, tex)
}
