// Package scroll holds the scroll offsets of scroll containers and the
// physics that drive them.
//
// Offsets is keyed by scene.NodeID. The compositor bridge reads it while
// walking the tree and translates the children of every container with a
// non-zero offset. When a tree is rebuilt, TransferFrom or TransferMapped
// carries offsets over to the new handles so scroll position survives the
// rebuild.
//
// Physics adds momentum and rubber-band overscroll. Dragging past an edge
// is resisted, and releasing springs the content back to the edge with a
// gween tween.
package scroll
