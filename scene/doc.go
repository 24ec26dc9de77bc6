// Package scene holds the retained tree of laid-out visual nodes that the
// compositor bridge walks every frame.
//
// Nodes live in an arena owned by a Tree and are addressed by NodeID, an
// arena index paired with a generation. Removing a node bumps the
// generation of its slot, so stale handles stop resolving. Reset empties
// the tree and restarts allocation: building the same structure again
// yields the same handles, which is what lets scroll offsets and per-node
// state survive a rebuild. Nodes that carry a Key can also be matched
// across trees with Tree.Remap.
//
// Basic usage:
//
//	t := scene.New()
//	root := t.SetRoot(scene.Container(compositor.R(0, 0, 800, 600)))
//	card := scene.Container(compositor.R(40, 40, 300, 200))
//	card.SetGlass(compositor.RegularGlass())
//	id := t.Add(root, card)
//	t.Add(id, scene.TextNode(compositor.R(16, 16, 200, 24), scene.TextData{
//		Content:  "Hello",
//		FontSize: 16,
//		Color:    compositor.White,
//	}))
package scene
