package gpu

import "sync/atomic"

var generation atomic.Uint64

// NextGeneration returns a process-unique, non-zero generation number.
// Textures take a new generation whenever their content or identity
// changes; caches compare generations instead of object identity.
func NextGeneration() uint64 { return generation.Add(1) }
