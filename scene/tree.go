package scene

import (
	"github.com/gogpu/compositor"
)

type slot struct {
	node Node
	gen  uint32
	live bool
}

// Tree is an arena of nodes with a single root. A Tree is not safe for
// concurrent use; it is built and mutated between frames.
type Tree struct {
	slots   []slot
	free    []uint32
	root    NodeID
	keys    map[string]NodeID
	live    int
	version uint64
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{keys: make(map[string]NodeID)}
}

// Reset removes every node and restarts handle allocation, so rebuilding
// the same structure yields the same handles.
func (t *Tree) Reset() {
	clear(t.slots)
	t.slots = t.slots[:0]
	t.free = t.free[:0]
	t.root = NoNode
	clear(t.keys)
	t.live = 0
	t.version++
}

// Version is incremented by every structural change.
func (t *Tree) Version() uint64 { return t.version }

// Len returns the number of live nodes.
func (t *Tree) Len() int { return t.live }

// Root returns the root handle, or NoNode for an empty tree.
func (t *Tree) Root() NodeID { return t.root }

// SetRoot inserts n as the root. A tree that already has a root is Reset
// first.
func (t *Tree) SetRoot(n Node) NodeID {
	if t.root.IsValid() {
		t.Reset()
	}
	t.root = t.alloc(n, NoNode)
	return t.root
}

// Add appends n as the last child of parent. It returns NoNode if parent
// does not exist.
func (t *Tree) Add(parent NodeID, n Node) NodeID {
	p := t.Node(parent)
	if p == nil {
		return NoNode
	}
	id := t.alloc(n, parent)
	// alloc may have grown the arena; look the parent up again.
	p = t.Node(parent)
	p.children = append(p.children, id)
	return id
}

func (t *Tree) alloc(n Node, parent NodeID) NodeID {
	n.parent = parent
	n.children = nil

	var id NodeID
	if k := len(t.free); k > 0 {
		idx := t.free[k-1]
		t.free = t.free[:k-1]
		s := &t.slots[idx]
		s.node, s.live = n, true
		id = NodeID{index: idx, gen: s.gen}
	} else {
		t.slots = append(t.slots, slot{node: n, gen: 1, live: true})
		id = NodeID{index: uint32(len(t.slots) - 1), gen: 1}
	}
	if n.Key != "" {
		t.keys[n.Key] = id
	}
	t.live++
	t.version++
	return id
}

// Remove deletes id and its subtree. Handles to removed nodes stop
// resolving.
func (t *Tree) Remove(id NodeID) {
	n := t.Node(id)
	if n == nil {
		return
	}
	if p := t.Node(n.parent); p != nil {
		for i, c := range p.children {
			if c == id {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	if id == t.root {
		t.root = NoNode
	}
	t.release(id)
	t.version++
}

func (t *Tree) release(id NodeID) {
	s := &t.slots[id.index]
	for _, c := range s.node.children {
		t.release(c)
	}
	if key := s.node.Key; key != "" && t.keys[key] == id {
		delete(t.keys, key)
	}
	s.node = Node{}
	s.live = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	t.free = append(t.free, id.index)
	t.live--
}

// Contains reports whether id refers to a live node.
func (t *Tree) Contains(id NodeID) bool {
	return t.Node(id) != nil
}

// Node returns the node for id, or nil if it does not exist. The pointer
// is valid until the next Add, Remove or Reset.
func (t *Tree) Node(id NodeID) *Node {
	if !id.IsValid() || int(id.index) >= len(t.slots) {
		return nil
	}
	s := &t.slots[id.index]
	if !s.live || s.gen != id.gen {
		return nil
	}
	return &s.node
}

// Children returns the children of id, or nil.
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.children
	}
	return nil
}

// Parent returns the parent of id, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.parent
	}
	return NoNode
}

// Lookup returns the node carrying key.
func (t *Tree) Lookup(key string) (NodeID, bool) {
	id, ok := t.keys[key]
	return id, ok && t.Contains(id)
}

// Remap returns a function translating handles of old into handles of t by
// node key. Handles that exist unchanged in t map to themselves.
func (t *Tree) Remap(old *Tree) func(NodeID) (NodeID, bool) {
	return func(id NodeID) (NodeID, bool) {
		if n := old.Node(id); n != nil && n.Key != "" {
			if nid, ok := t.Lookup(n.Key); ok {
				return nid, true
			}
		}
		if t.Contains(id) {
			return id, true
		}
		return NoNode, false
	}
}

// Walk visits the subtree of the root in pre-order. Returning false from
// fn skips the node's children.
func (t *Tree) Walk(fn func(id NodeID, n *Node, depth int) bool) {
	t.walk(t.root, 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(NodeID, *Node, int) bool) {
	n := t.Node(id)
	if n == nil || !fn(id, n, depth) {
		return
	}
	for _, c := range n.children {
		t.walk(c, depth+1, fn)
	}
}

// AbsoluteBounds returns the bounds of id in root coordinates, ignoring
// transforms and scroll offsets. It reports false if the node or any
// ancestor is unresolved.
func (t *Tree) AbsoluteBounds(id NodeID) (compositor.Rect, bool) {
	n := t.Node(id)
	if n == nil || !n.resolved {
		return compositor.Rect{}, false
	}
	r := n.bounds
	for p := t.Node(n.parent); p != nil; p = t.Node(p.parent) {
		if !p.resolved {
			return compositor.Rect{}, false
		}
		r = r.Translate(p.bounds.X, p.bounds.Y)
	}
	return r, true
}

// HasGlass reports whether any live node has a glass material.
func (t *Tree) HasGlass() bool {
	found := false
	t.Walk(func(_ NodeID, n *Node, _ int) bool {
		if n.IsGlass() {
			found = true
		}
		return !found
	})
	return found
}
