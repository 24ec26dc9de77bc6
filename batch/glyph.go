package batch

import "github.com/gogpu/compositor"

// GlyphSize is the encoded size of a Glyph in bytes.
const GlyphSize = 80

// Glyph flags stored in Flags[0].
const (
	// GlyphColor marks a color (emoji) glyph whose atlas texels are used
	// as-is instead of as a coverage mask.
	GlyphColor uint32 = 1 << iota
)

// Glyph is one pre-rasterized glyph instance sampled from an atlas.
type Glyph struct {
	Bounds     [4]float32 // x, y, w, h in screen space
	UVBounds   [4]float32 // u0, v0, u1, v1
	Color      [4]float32
	ClipBounds [4]float32
	Flags      [4]uint32
}

// NewGlyph returns a glyph instance with no clip.
func NewGlyph(bounds compositor.Rect, uv [4]float32, c compositor.Color) Glyph {
	return Glyph{
		Bounds:     bounds.Array(),
		UVBounds:   uv,
		Color:      c.Array(),
		ClipBounds: NoClipBounds,
	}
}

// IsColor reports whether the glyph comes from a color font.
func (g *Glyph) IsColor() bool { return g.Flags[0]&GlyphColor != 0 }

// Primitive converts the glyph to a PrimitiveText primitive so it can be
// drawn by the SDF pipeline with the atlas bound. TypeInfo[1] carries the
// color flag in place of a fill type.
func (g *Glyph) Primitive() Primitive {
	var color uint32
	if g.IsColor() {
		color = 1
	}
	return Primitive{
		Bounds:         g.Bounds,
		Color:          g.Color,
		Color2:         g.Color,
		ClipBounds:     g.ClipBounds,
		GradientParams: g.UVBounds,
		TypeInfo:       [4]uint32{uint32(PrimitiveText), color, uint32(ClipRect), 0},
	}
}
