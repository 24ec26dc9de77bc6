// Package nodestate stores typed per-node state, such as hover or press
// state of interactive elements, keyed by scene.NodeID.
//
// Each kind of state is registered once, usually in a package-level var:
//
//	var hover = nodestate.Register("hover", func() HoverState { return HoverState{} })
//
//	st := hover.Get(store, id) // created on first use
//	st.Hovered = true
//
// When the scene tree is rebuilt, Store.TransferFrom carries the state of
// handles that still exist over to the new store.
package nodestate

import (
	"fmt"
	"sync"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/scene"
)

var registry struct {
	mu    sync.Mutex
	names map[string]int
}

// Kind identifies one registered type of per-node state.
type Kind[T any] struct {
	id   int
	name string
	init func() T
}

// Register declares a new kind of state. init builds the value created on
// first Get; nil means the zero value. Register panics if name is already
// taken.
func Register[T any](name string, init func() T) Kind[T] {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.names == nil {
		registry.names = make(map[string]int)
	}
	if _, dup := registry.names[name]; dup {
		panic(fmt.Sprintf("nodestate: kind %q registered twice", name))
	}
	id := len(registry.names) + 1
	registry.names[name] = id
	return Kind[T]{id: id, name: name, init: init}
}

// Name returns the registered name.
func (k Kind[T]) Name() string { return k.name }

// Get returns the state of id, creating it if absent. The pointer stays
// valid until the entry is deleted.
func (k Kind[T]) Get(s *Store, id scene.NodeID) *T {
	key := entryKey{node: id, kind: k.id}
	if v, ok := s.values[key]; ok {
		return v.(*T)
	}
	p := new(T)
	if k.init != nil {
		*p = k.init()
	}
	s.values[key] = p
	return p
}

// Peek returns the state of id without creating it.
func (k Kind[T]) Peek(s *Store, id scene.NodeID) (*T, bool) {
	v, ok := s.values[entryKey{node: id, kind: k.id}]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// Set replaces the state of id, writing through pointers returned by an
// earlier Get.
func (k Kind[T]) Set(s *Store, id scene.NodeID, v T) {
	key := entryKey{node: id, kind: k.id}
	if p, ok := s.values[key]; ok {
		*p.(*T) = v
		return
	}
	s.values[key] = &v
}

// Delete removes the state of id.
func (k Kind[T]) Delete(s *Store, id scene.NodeID) {
	delete(s.values, entryKey{node: id, kind: k.id})
}

type entryKey struct {
	node scene.NodeID
	kind int
}

// Store holds the state of every kind for one scene tree. It is mutated
// between frames and is not safe for concurrent use.
type Store struct {
	values map[entryKey]any
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{values: make(map[entryKey]any)}
}

// Len returns the number of entries across all kinds.
func (s *Store) Len() int { return len(s.values) }

// DeleteNode removes every kind of state held for id.
func (s *Store) DeleteNode(id scene.NodeID) {
	for k := range s.values {
		if k.node == id {
			delete(s.values, k)
		}
	}
}

// TransferFrom moves the entries of old whose handles keep accepts into s.
// Values are shared, not copied: pointers returned by Get on old remain
// live in s.
func (s *Store) TransferFrom(old *Store, keep func(scene.NodeID) bool) int {
	return s.TransferMapped(old, func(id scene.NodeID) (scene.NodeID, bool) {
		return id, keep(id)
	})
}

// TransferMapped is TransferFrom with handle translation, for use with
// scene.Tree.Remap.
func (s *Store) TransferMapped(old *Store, remap func(scene.NodeID) (scene.NodeID, bool)) int {
	if old == nil || old == s {
		return 0
	}
	n := 0
	for k, v := range old.values {
		nid, ok := remap(k.node)
		if !ok {
			continue
		}
		s.values[entryKey{node: nid, kind: k.kind}] = v
		n++
	}
	compositor.Logger().Debug("nodestate: entries transferred", "kept", n, "dropped", len(old.values)-n)
	return n
}
