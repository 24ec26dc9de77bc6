package gpu

import (
	"fmt"

	"github.com/gogpu/compositor/batch"
	igpu "github.com/gogpu/compositor/internal/gpu"
)

// RenderText draws glyph instances sampled from atlas over the existing
// content. The text bind group is rebuilt only when the atlas generation
// changes.
func (r *Renderer) RenderText(target Target, atlas *Texture, glyphs []batch.Glyph) (FrameStats, error) {
	var fs FrameStats
	if err := r.check(); err != nil {
		return fs, err
	}
	if len(glyphs) == 0 {
		return fs, nil
	}
	if err := target.validate("text"); err != nil {
		return fs, err
	}
	if atlas == nil || atlas.raw == nil {
		return fs, &SurfaceError{Op: "text", Err: fmt.Errorf("no atlas texture")}
	}

	r.writeUniforms(target.Width, target.Height)
	count, err := r.uploadGlyphs(glyphs)
	if err != nil {
		return fs, err
	}
	group, err := r.textBindGroup(atlas)
	if err != nil {
		return fs, err
	}

	rec, err := r.record("text", &fs)
	if err != nil {
		return fs, err
	}
	rp := rec.pass(igpu.ColorPass{Label: "text_pass", View: target.View})
	r.drawSDF(rec, rp, r.text.Overlay, group, count)
	rp.End()
	if err := rec.submit(); err != nil {
		return fs, err
	}
	r.finish(fs)
	return fs, nil
}

// RenderPrimitivesOverlayWithGlyphs draws prims followed by glyphs, both
// through the SDF pipeline in a single draw. atlas becomes the renderer's
// SDF atlas (see SetAtlas); the SDF bind group is rebuilt only when its
// generation changes.
func (r *Renderer) RenderPrimitivesOverlayWithGlyphs(target Target, prims []batch.Primitive, glyphs []batch.Glyph, atlas *Texture) (FrameStats, error) {
	if err := r.check(); err != nil {
		return FrameStats{}, err
	}
	if len(glyphs) > 0 {
		if atlas == nil || atlas.raw == nil {
			return FrameStats{}, &SurfaceError{Op: "primitives with glyphs", Err: fmt.Errorf("no atlas texture")}
		}
		r.SetAtlas(atlas)
	}
	all := make([]batch.Primitive, 0, len(prims)+len(glyphs))
	all = append(all, prims...)
	all = append(all, batch.ConvertGlyphsToPrimitives(glyphs)...)
	return r.renderOverlay("primitives_glyphs_overlay", target, nil, all, false)
}
