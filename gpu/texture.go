package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/compositor"
	igpu "github.com/gogpu/compositor/internal/gpu"
)

// Texture is a 2D GPU texture with a generation number. The generation
// changes whenever the backing storage is replaced, and caches key their
// bind groups on it. Writing or rendering into the texture keeps the
// generation, since bind groups reference storage, not content.
type Texture struct {
	ctx    *Context
	raw    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
	format gputypes.TextureFormat
	usage  gputypes.TextureUsage
	gen    uint64
}

// NewTexture creates a single-sample texture with one mip level.
func NewTexture(ctx *Context, width, height uint32, format gputypes.TextureFormat, usage gputypes.TextureUsage) (*Texture, error) {
	if !ctx.valid() {
		return nil, ErrNilContext
	}
	if width == 0 || height == 0 {
		return nil, &SurfaceError{Op: "create texture", Err: fmt.Errorf("zero size %dx%d", width, height)}
	}
	raw, err := ctx.Device.CreateTexture(&hal.TextureDescriptor{
		Label:         "compositor_texture",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, &SurfaceError{Op: "create texture", Err: err}
	}
	view, err := ctx.Device.CreateTextureView(raw, &hal.TextureViewDescriptor{
		Label:         "compositor_texture_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		ctx.Device.DestroyTexture(raw)
		return nil, &SurfaceError{Op: "create texture view", Err: err}
	}
	return &Texture{
		ctx:    ctx,
		raw:    raw,
		view:   view,
		width:  width,
		height: height,
		format: format,
		usage:  usage,
		gen:    igpu.NextGeneration(),
	}, nil
}

// NewRenderTexture creates a texture usable as a render target, as a
// sampled backdrop and as a readback source.
func NewRenderTexture(ctx *Context, width, height uint32, format gputypes.TextureFormat) (*Texture, error) {
	return NewTexture(ctx, width, height, format,
		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopySrc)
}

// UploadImage converts img to RGBA, scales it down if it exceeds the
// device's maximum texture dimension, and uploads it to a new sampled
// texture.
func UploadImage(ctx *Context, img image.Image) (*Texture, error) {
	if !ctx.valid() {
		return nil, ErrNilContext
	}
	rgba := toRGBA(img, ctx.Limits.MaxTextureDimension2D)
	b := rgba.Bounds()
	if b.Empty() {
		return nil, &SurfaceError{Op: "upload image", Err: fmt.Errorf("empty image")}
	}
	tex, err := NewTexture(ctx, uint32(b.Dx()), uint32(b.Dy()), gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
	if err != nil {
		return nil, err
	}
	if err := tex.Write(rgba.Pix); err != nil {
		tex.Destroy()
		return nil, err
	}
	return tex, nil
}

// toRGBA returns img as a tightly packed *image.RGBA whose sides do not
// exceed maxDim. A zero maxDim disables scaling.
func toRGBA(img image.Image, maxDim uint32) *image.RGBA {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if maxDim > 0 && (w > int(maxDim) || h > int(maxDim)) {
		scale := float64(maxDim) / float64(max(w, h))
		nw := max(1, int(float64(w)*scale))
		nh := max(1, int(float64(h)*scale))
		compositor.Logger().Warn("gpu: image downscaled to fit device limit",
			"width", w, "height", h, "limit", maxDim)
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
		return dst
	}
	if rgba, ok := img.(*image.RGBA); ok && src.Min == (image.Point{}) && rgba.Stride == 4*w {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), img, src.Min, xdraw.Src)
	return dst
}

// Write replaces the whole texture content with tightly packed 4-byte
// pixels.
func (t *Texture) Write(pix []byte) error {
	if t.raw == nil {
		return ErrDestroyed
	}
	want := int(t.width) * int(t.height) * 4
	if len(pix) < want {
		return &SurfaceError{Op: "write texture", Err: fmt.Errorf("need %d bytes, got %d", want, len(pix))}
	}
	t.ctx.Queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.raw, MipLevel: 0},
		pix[:want],
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: t.width * 4, RowsPerImage: t.height},
		&hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	)
	return nil
}

// Resize replaces the backing storage with one of the new size, keeping
// format and usage. The content is undefined afterwards. Resizing to the
// current size is a no-op and keeps the generation.
func (t *Texture) Resize(width, height uint32) error {
	if t.raw == nil {
		return ErrDestroyed
	}
	if width == t.width && height == t.height {
		return nil
	}
	next, err := NewTexture(t.ctx, width, height, t.format, t.usage)
	if err != nil {
		return err
	}
	t.Destroy()
	*t = *next
	return nil
}

// Bump assigns a new generation, forcing dependent bind groups to be
// rebuilt. Resize does this implicitly.
func (t *Texture) Bump() { t.gen = igpu.NextGeneration() }

// Generation returns the current generation.
func (t *Texture) Generation() uint64 { return t.gen }

// Size returns the texture dimensions.
func (t *Texture) Size() (width, height uint32) { return t.width, t.height }

// Format returns the texture format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// View returns the default view.
func (t *Texture) View() hal.TextureView { return t.view }

// Raw returns the HAL texture.
func (t *Texture) Raw() hal.Texture { return t.raw }

// Target returns a single-sample render target over the texture.
func (t *Texture) Target() Target {
	return Target{View: t.view, Width: t.width, Height: t.height, SampleCount: 1}
}

// Destroy releases the texture. Safe to call more than once.
func (t *Texture) Destroy() {
	if t == nil || t.raw == nil {
		return
	}
	t.ctx.Device.DestroyTextureView(t.view)
	t.ctx.Device.DestroyTexture(t.raw)
	t.view = nil
	t.raw = nil
}

// Target is a view the renderer draws into.
type Target struct {
	View          hal.TextureView
	Width, Height uint32
	// SampleCount of the view; 0 is treated as 1.
	SampleCount uint32
}

func (t Target) samples() uint32 {
	if t.SampleCount == 0 {
		return 1
	}
	return t.SampleCount
}

func (t Target) validate(op string) error {
	if t.View == nil {
		return &SurfaceError{Op: op, Err: fmt.Errorf("target has no view")}
	}
	if t.Width == 0 || t.Height == 0 {
		return &SurfaceError{Op: op, Err: fmt.Errorf("target has zero size %dx%d", t.Width, t.Height)}
	}
	return nil
}
