// Package compositor provides the shared data model of a GPU compositing core
// for retained-mode user interfaces.
//
// # Overview
//
// A laid-out scene tree is walked by the bridge package in three passes
// (background, glass, foreground). Each pass issues calls on a [DrawContext],
// which the batch package turns into GPU primitive records. The gpu package
// owns pipelines and buffers and executes the frame, including the multi-pass
// glass protocol that renders a backdrop texture and samples it for
// frosted-glass surfaces.
//
// # Packages
//
//   - compositor: geometry, colors, transforms, paths, brushes, DrawContext
//   - batch: primitive records, the per-frame Batch and its Painter
//   - gpu: Context, Renderer, textures and render operations
//   - scene: retained scene tree
//   - bridge: three-pass traversal with layer promotion
//   - scroll, nodestate: per-node stores that survive tree rebuilds
//   - frame: end-to-end frame assembly
//
// # Logging
//
// The module is silent by default. Call [SetLogger] to enable diagnostics.
package compositor
