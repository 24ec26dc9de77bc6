// Package batch accumulates a frame's drawable content into GPU-layout
// records.
//
// A [Batch] holds three primitive lists (normal, glass, foreground), glyph
// instances and tessellated path geometry. [Painter] implements
// compositor.DrawContext on top of a Batch, resolving the transform, clip and
// opacity stacks into per-primitive parameters. The gpu package uploads the
// encoded records verbatim, so the struct layouts here mirror the WGSL
// declarations exactly.
package batch
