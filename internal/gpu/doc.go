// Package gpu holds the HAL building blocks shared by the compositor's
// pipeline families: embedded WGSL sources and their validation, bind group
// layout helpers, the validity-keyed bind group cache, the transient MSAA
// target cache, growable GPU buffers and command submission.
//
// Nothing here knows about primitives or layers; the public gpu package
// composes these pieces into the renderer.
package gpu
