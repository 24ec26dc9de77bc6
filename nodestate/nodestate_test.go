package nodestate

import (
	"testing"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/scene"
)

type pressState struct {
	Pressed bool
	Count   int
}

var (
	press   = Register("test.press", func() pressState { return pressState{Count: 1} })
	counter = Register[int]("test.counter", nil)
)

func twoNodes() (*scene.Tree, scene.NodeID, scene.NodeID) {
	t := scene.New()
	root := t.SetRoot(scene.Container(compositor.R(0, 0, 100, 100)))
	a := t.Add(root, scene.Container(compositor.R(0, 0, 50, 50)))
	b := t.Add(root, scene.Container(compositor.R(50, 0, 50, 50)))
	return t, a, b
}

func TestGetCreatesLazily(t *testing.T) {
	_, a, _ := twoNodes()
	s := NewStore()

	if _, ok := press.Peek(s, a); ok {
		t.Fatal("Peek found state before Get")
	}
	st := press.Get(s, a)
	if st.Count != 1 {
		t.Errorf("initial Count = %d, want 1", st.Count)
	}
	st.Pressed = true
	if got := press.Get(s, a); got != st || !got.Pressed {
		t.Errorf("second Get returned %+v, want the same pointer", got)
	}
	if got := counter.Get(s, a); *got != 0 {
		t.Errorf("nil init: *Get = %d, want 0", *got)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestSetDelete(t *testing.T) {
	_, a, b := twoNodes()
	s := NewStore()

	counter.Set(s, a, 7)
	press.Set(s, a, pressState{Pressed: true})
	counter.Set(s, b, 3)

	if v, ok := counter.Peek(s, a); !ok || *v != 7 {
		t.Errorf("Peek(a) = %v, %v", v, ok)
	}
	counter.Delete(s, b)
	if _, ok := counter.Peek(s, b); ok {
		t.Error("Delete left the entry")
	}
	s.DeleteNode(a)
	if s.Len() != 0 {
		t.Errorf("Len after DeleteNode = %d, want 0", s.Len())
	}
}

func TestSetWritesThrough(t *testing.T) {
	_, a, _ := twoNodes()
	s := NewStore()

	st := press.Get(s, a)
	press.Set(s, a, pressState{Pressed: true, Count: 5})
	if *st != (pressState{Pressed: true, Count: 5}) {
		t.Errorf("pointer from Get sees %+v after Set", *st)
	}
	if got := press.Get(s, a); got != st {
		t.Error("Set replaced the entry pointer")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register[int]("test.counter", nil)
}

func TestTransferFrom(t *testing.T) {
	oldTree, a, b := twoNodes()
	old := NewStore()
	st := press.Get(old, a)
	st.Pressed = true
	counter.Set(old, b, 5)

	// The rebuilt tree only keeps the first child.
	oldTree.Reset()
	newTree := scene.New()
	root := newTree.SetRoot(scene.Container(compositor.R(0, 0, 100, 100)))
	na := newTree.Add(root, scene.Container(compositor.R(0, 0, 50, 50)))
	if na != a {
		t.Fatalf("rebuilt handle %v, want %v", na, a)
	}

	cur := NewStore()
	if n := cur.TransferFrom(old, newTree.Contains); n != 1 {
		t.Errorf("TransferFrom kept %d, want 1", n)
	}
	got, ok := press.Peek(cur, na)
	if !ok || got != st || !got.Pressed {
		t.Errorf("state after transfer = %+v, %v; want the original value", got, ok)
	}
	if _, ok := counter.Peek(cur, b); ok {
		t.Error("state of a dropped node was transferred")
	}
}

func TestTransferMapped(t *testing.T) {
	oldTree := scene.New()
	root := oldTree.SetRoot(scene.Container(compositor.R(0, 0, 100, 100)))
	n := scene.Container(compositor.R(0, 0, 10, 10))
	n.Key = "button"
	btn := oldTree.Add(root, n)

	old := NewStore()
	counter.Set(old, btn, 9)

	newTree := scene.New()
	nroot := newTree.SetRoot(scene.Container(compositor.R(0, 0, 100, 100)))
	newTree.Add(nroot, scene.Container(compositor.R(0, 0, 10, 10)))
	nbtn := newTree.Add(nroot, n)

	cur := NewStore()
	cur.TransferMapped(old, newTree.Remap(oldTree))
	if v, ok := counter.Peek(cur, nbtn); !ok || *v != 9 {
		t.Errorf("Peek(new button) = %v, %v; want 9", v, ok)
	}
}
