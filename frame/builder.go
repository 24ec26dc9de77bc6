// Package frame assembles complete frames: it paints a scene through the
// bridge into a primitive batch and submits the batch with the render
// protocol the frame needs.
//
// A typical frame:
//
//	fb := frame.NewBuilder(batch.New())
//	bridge.New(tree, offsets).Render(fb)
//	stats, err := comp.Submit(target, fb.Batch())
//	fb.Reset()
package frame

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/batch"
	"github.com/gogpu/compositor/bridge"
)

// TextRun is a text leaf collected during a frame.
type TextRun struct {
	bridge.Text
	Foreground bool
}

// SVGRun is a vector image leaf collected during a frame.
type SVGRun struct {
	bridge.SVG
	Foreground bool
}

// TextSink turns text runs into batch content, typically glyph instances
// from a pre-rasterized atlas.
type TextSink interface {
	AppendText(b *batch.Batch, run TextRun)
}

// SVGSink turns vector images into batch content, typically paths.
type SVGSink interface {
	AppendSVG(b *batch.Batch, run SVGRun)
}

// Builder implements bridge.LayoutRenderer over a batch. Background
// content goes to the normal and glass lists, foreground content to the
// foreground lists. Text and SVG leaves are recorded and, when a sink is
// set, forwarded to it.
type Builder struct {
	batch *batch.Batch
	bg    *batch.Painter
	fg    *batch.Painter

	Text TextSink
	SVG  SVGSink

	texts []TextRun
	svgs  []SVGRun
}

var _ bridge.LayoutRenderer = (*Builder)(nil)

// NewBuilder returns a builder writing into b.
func NewBuilder(b *batch.Batch) *Builder {
	fg := batch.NewPainter(b)
	fg.SetForeground(true)
	return &Builder{batch: b, bg: batch.NewPainter(b), fg: fg}
}

// Batch returns the batch being built.
func (f *Builder) Batch() *batch.Batch { return f.batch }

// Background returns the painter for the background and glass layers.
func (f *Builder) Background() compositor.DrawContext { return f.bg }

// Foreground returns the painter for the foreground layer.
func (f *Builder) Foreground() compositor.DrawContext { return f.fg }

// RenderTextBackground records a background text run.
func (f *Builder) RenderTextBackground(t bridge.Text) { f.addText(TextRun{Text: t}) }

// RenderTextForeground records a foreground text run.
func (f *Builder) RenderTextForeground(t bridge.Text) {
	f.addText(TextRun{Text: t, Foreground: true})
}

func (f *Builder) addText(run TextRun) {
	f.texts = append(f.texts, run)
	if f.Text != nil {
		f.Text.AppendText(f.batch, run)
	}
}

// RenderSVGBackground records a background SVG run.
func (f *Builder) RenderSVGBackground(s bridge.SVG) { f.addSVG(SVGRun{SVG: s}) }

// RenderSVGForeground records a foreground SVG run.
func (f *Builder) RenderSVGForeground(s bridge.SVG) {
	f.addSVG(SVGRun{SVG: s, Foreground: true})
}

func (f *Builder) addSVG(run SVGRun) {
	f.svgs = append(f.svgs, run)
	if f.SVG != nil {
		f.SVG.AppendSVG(f.batch, run)
	}
}

// TextRuns returns the text runs recorded since the last Reset.
func (f *Builder) TextRuns() []TextRun { return f.texts }

// SVGRuns returns the SVG runs recorded since the last Reset.
func (f *Builder) SVGRuns() []SVGRun { return f.svgs }

// Reset clears the batch, the painters' stacks and the recorded runs.
func (f *Builder) Reset() {
	f.batch.Clear()
	f.bg.Reset()
	f.fg.Reset()
	f.texts = f.texts[:0]
	f.svgs = f.svgs[:0]
}
