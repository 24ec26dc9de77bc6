package frame

import (
	"fmt"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/batch"
	"github.com/gogpu/compositor/gpu"
)

// DefaultBackdropScale is the backdrop resolution relative to the target.
// The backdrop is only ever sampled blurred, so half resolution is enough.
const DefaultBackdropScale = 0.5

// Compositor submits batches to a renderer. It owns the glass backdrop and
// knows the textures referenced by image brushes and glyphs.
type Compositor struct {
	ctx *gpu.Context
	r   *gpu.Renderer

	backdropScale float32
	backdrop      *gpu.Texture
	atlas         *gpu.Texture
	images        map[uint64]*gpu.Texture
}

// New returns a compositor drawing with r.
func New(ctx *gpu.Context, r *gpu.Renderer) *Compositor {
	return &Compositor{
		ctx:           ctx,
		r:             r,
		backdropScale: DefaultBackdropScale,
		images:        make(map[uint64]*gpu.Texture),
	}
}

// Renderer returns the renderer in use.
func (c *Compositor) Renderer() *gpu.Renderer { return c.r }

// SetBackdropScale sets the backdrop resolution relative to the target.
// Values outside (0, 1] are ignored.
func (c *Compositor) SetBackdropScale(s float32) {
	if s > 0 && s <= 1 {
		c.backdropScale = s
	}
}

// Backdrop returns the current backdrop texture, nil before the first
// glass frame.
func (c *Compositor) Backdrop() *gpu.Texture { return c.backdrop }

// SetAtlas sets the glyph atlas used for text that is not drawn through
// the SDF pipeline.
func (c *Compositor) SetAtlas(atlas *gpu.Texture) { c.atlas = atlas }

// AddImage registers tex for image brushes and returns the generation
// they must reference. A texture whose storage is replaced must be added
// again.
func (c *Compositor) AddImage(tex *gpu.Texture) uint64 {
	gen := tex.Generation()
	c.images[gen] = tex
	return gen
}

// RemoveImage forgets the texture with generation gen.
func (c *Compositor) RemoveImage(gen uint64) { delete(c.images, gen) }

// Submit renders b into target. Frames with glass use the glass protocol
// against the backdrop; other frames clear and draw the background, then
// the foreground over it. Images and atlas glyphs are drawn last.
//
// With Config.UnifiedTextRendering the batch's glyphs are moved into its
// foreground list first, so b is modified.
func (c *Compositor) Submit(target gpu.Target, b *batch.Batch) (gpu.FrameStats, error) {
	var total gpu.FrameStats
	cfg := c.r.Config()

	if cfg.UnifiedTextRendering && len(b.Glyphs) > 0 {
		b.Foreground = b.UnifiedForeground()
		b.Glyphs = b.Glyphs[:0]
	}

	if len(b.Glass) > 0 {
		if err := c.ensureBackdrop(target); err != nil {
			return total, err
		}
		fs, err := c.r.RenderGlassFrame(target, c.backdrop, b)
		add(&total, fs)
		if err != nil {
			return total, fmt.Errorf("glass frame: %w", err)
		}
	} else {
		fs, err := c.r.RenderWithClear(target, b, cfg.Background)
		add(&total, fs)
		if err != nil {
			return total, fmt.Errorf("clear frame: %w", err)
		}
		if len(b.Foreground) > 0 || !b.ForegroundPaths.IsEmpty() {
			fs, err = c.r.RenderForeground(target, b)
			add(&total, fs)
			if err != nil {
				return total, fmt.Errorf("foreground: %w", err)
			}
		}
	}

	for _, group := range batch.ImageGroups(b.Images) {
		tex := c.images[group[0].Generation]
		if tex == nil {
			compositor.Logger().Warn("frame: image texture not registered", "generation", group[0].Generation)
			continue
		}
		fs, err := c.r.RenderImages(target, tex, group)
		add(&total, fs)
		if err != nil {
			return total, fmt.Errorf("images: %w", err)
		}
	}

	if len(b.Glyphs) > 0 {
		if c.atlas == nil {
			compositor.Logger().Warn("frame: glyphs without an atlas", "glyphs", len(b.Glyphs))
			return total, nil
		}
		fs, err := c.r.RenderText(target, c.atlas, b.Glyphs)
		add(&total, fs)
		if err != nil {
			return total, fmt.Errorf("text: %w", err)
		}
	}
	return total, nil
}

func (c *Compositor) ensureBackdrop(target gpu.Target) error {
	w := max(uint32(float32(target.Width)*c.backdropScale), 1)
	h := max(uint32(float32(target.Height)*c.backdropScale), 1)
	if c.backdrop == nil {
		tex, err := gpu.NewRenderTexture(c.ctx, w, h, c.r.Format())
		if err != nil {
			return fmt.Errorf("create backdrop: %w", err)
		}
		c.backdrop = tex
		compositor.Logger().Debug("frame: backdrop created", "width", w, "height", h)
		return nil
	}
	if bw, bh := c.backdrop.Size(); bw == w && bh == h {
		return nil
	}
	if err := c.backdrop.Resize(w, h); err != nil {
		return fmt.Errorf("resize backdrop: %w", err)
	}
	compositor.Logger().Debug("frame: backdrop resized", "width", w, "height", h)
	return nil
}

// Close releases the backdrop. Registered images and the atlas belong to
// the caller.
func (c *Compositor) Close() {
	if c.backdrop != nil {
		c.backdrop.Destroy()
		c.backdrop = nil
	}
}

func add(dst *gpu.FrameStats, fs gpu.FrameStats) {
	dst.Submissions += fs.Submissions
	dst.Passes += fs.Passes
	dst.Draws += fs.Draws
}
