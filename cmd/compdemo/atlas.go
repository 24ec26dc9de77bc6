package main

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/batch"
	"github.com/gogpu/compositor/frame"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/scene"
)

// bitmapText lays text runs out with a fixed-size bitmap face and emits
// glyph instances into the face's mask, which serves as the atlas.
type bitmapText struct {
	face *basicfont.Face
}

func newBitmapText() *bitmapText {
	return &bitmapText{face: basicfont.Face7x13}
}

// Atlas uploads the face mask as the glyph atlas.
func (t *bitmapText) Atlas(ctx *gpu.Context) (*gpu.Texture, error) {
	return gpu.UploadImage(ctx, t.face.Mask)
}

func (t *bitmapText) scale(size float32) float32 {
	return size / float32(t.face.Height)
}

// measure returns the advance of s at size.
func (t *bitmapText) measure(s string, size float32) float32 {
	w := font.MeasureString(t.face, s)
	return float32(w.Round()) * t.scale(size)
}

func (t *bitmapText) AppendText(b *batch.Batch, run frame.TextRun) {
	sc := t.scale(run.FontSize)
	x := run.Bounds.X
	switch run.Align {
	case scene.AlignCenter:
		x += (run.Bounds.W - t.measure(run.Content, run.FontSize)) / 2
	case scene.AlignRight:
		x += run.Bounds.W - t.measure(run.Content, run.FontSize)
	}
	y := run.Bounds.Y + (run.Bounds.H-float32(t.face.Height)*sc)/2

	mb := t.face.Mask.Bounds()
	mw, mh := float32(mb.Dx()), float32(mb.Dy())
	dot := fixed.P(0, t.face.Ascent)
	for _, r := range run.Content {
		dr, _, maskp, adv, ok := t.face.Glyph(dot, r)
		if ok && !dr.Empty() {
			src := image.Rectangle{Min: maskp, Max: maskp.Add(dr.Size())}
			bounds := compositor.R(
				x+float32(dr.Min.X)*sc,
				y+float32(dr.Min.Y)*sc,
				float32(dr.Dx())*sc,
				float32(dr.Dy())*sc,
			)
			uv := [4]float32{
				float32(src.Min.X) / mw, float32(src.Min.Y) / mh,
				float32(src.Max.X) / mw, float32(src.Max.Y) / mh,
			}
			g := batch.NewGlyph(bounds, uv, run.Color)
			if run.Clip != nil {
				g.ClipBounds = run.Clip.Array()
			}
			b.PushGlyph(g)
		}
		x += float32(adv.Round()) * sc
	}
}
