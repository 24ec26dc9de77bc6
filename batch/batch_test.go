package batch

import (
	"testing"

	"github.com/gogpu/compositor"
)

func TestPathBatchPushOffsetsIndices(t *testing.T) {
	var pb PathBatch
	tri := []PathVertex{{}, {}, {}}
	pb.Push(tri, []uint32{0, 1, 2})
	pb.Push(tri, []uint32{0, 1, 2})

	want := []uint32{0, 1, 2, 3, 4, 5}
	if len(pb.Indices) != len(want) {
		t.Fatalf("len(Indices) = %d, want %d", len(pb.Indices), len(want))
	}
	for i, idx := range pb.Indices {
		if idx != want[i] {
			t.Errorf("Indices[%d] = %d, want %d", i, idx, want[i])
		}
	}
	if len(pb.Vertices) != 6 {
		t.Errorf("len(Vertices) = %d, want 6", len(pb.Vertices))
	}
}

func TestBatchClearKeepsCapacity(t *testing.T) {
	b := New()
	for range 10 {
		b.Push(NewRect(0, 0, 1, 1, compositor.White))
	}
	b.PushGlyph(NewGlyph(compositor.R(0, 0, 8, 8), [4]float32{0, 0, 1, 1}, compositor.Black))
	b.PushPath([]PathVertex{{}, {}, {}}, []uint32{0, 1, 2})
	b.PathState.Opacity = 0.5
	capBefore := cap(b.Primitives)

	b.Clear()

	if !b.IsEmpty() {
		t.Fatal("batch not empty after Clear")
	}
	if cap(b.Primitives) != capBefore {
		t.Errorf("cap(Primitives) = %d, want %d", cap(b.Primitives), capBefore)
	}
	if b.PathState.Opacity != 1 {
		t.Errorf("PathState.Opacity = %v, want 1 after Clear", b.PathState.Opacity)
	}
}

func TestBatchIsEmptyAndHasPaths(t *testing.T) {
	tests := []struct {
		name      string
		fill      func(b *Batch)
		wantEmpty bool
		wantPaths bool
	}{
		{"new", func(*Batch) {}, true, false},
		{"primitive", func(b *Batch) { b.Push(NewRect(0, 0, 1, 1, compositor.White)) }, false, false},
		{"foreground", func(b *Batch) { b.PushForeground(NewRect(0, 0, 1, 1, compositor.White)) }, false, false},
		{"glass", func(b *Batch) {
			b.PushGlass(NewGlassPrimitive(compositor.R(0, 0, 1, 1), compositor.CornerRadius{}, compositor.RegularGlass()))
		}, false, false},
		{"image", func(b *Batch) { b.PushImage(NewImageInstance(1, compositor.R(0, 0, 1, 1), compositor.Rect{}, 1)) }, false, false},
		{"path", func(b *Batch) { b.PushPath([]PathVertex{{}, {}, {}}, []uint32{0, 1, 2}) }, false, true},
		{"foreground path", func(b *Batch) { b.PushForegroundPath([]PathVertex{{}, {}, {}}, []uint32{0, 1, 2}) }, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			tt.fill(b)
			if got := b.IsEmpty(); got != tt.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.wantEmpty)
			}
			if got := b.HasPaths(); got != tt.wantPaths {
				t.Errorf("HasPaths() = %v, want %v", got, tt.wantPaths)
			}
		})
	}
}

func TestUnifiedForeground(t *testing.T) {
	b := New()
	b.PushForeground(NewRect(1, 2, 3, 4, compositor.White))
	g := NewGlyph(compositor.R(10, 10, 8, 12), [4]float32{0.1, 0.2, 0.3, 0.4}, compositor.Black)
	g.Flags[0] |= GlyphColor
	b.PushGlyph(g)

	got := b.UnifiedForeground()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Type() != PrimitiveRect {
		t.Errorf("first type = %d, want rect", got[0].Type())
	}
	text := got[1]
	if text.Type() != PrimitiveText {
		t.Errorf("second type = %d, want text", text.Type())
	}
	if text.GradientParams != g.UVBounds {
		t.Errorf("GradientParams = %v, want glyph UV %v", text.GradientParams, g.UVBounds)
	}
	if text.TypeInfo[1] != 1 {
		t.Errorf("color flag = %d, want 1", text.TypeInfo[1])
	}
	if text.Bounds != g.Bounds {
		t.Errorf("Bounds = %v, want %v", text.Bounds, g.Bounds)
	}
}

func TestStats(t *testing.T) {
	b := New()
	b.Push(NewRect(0, 0, 1, 1, compositor.White))
	b.Push(NewRect(0, 0, 1, 1, compositor.White))
	b.PushForegroundPath([]PathVertex{{}, {}, {}, {}}, []uint32{0, 1, 2, 0, 2, 3})

	s := b.Stats()
	if s.Primitives != 2 || s.PathVertices != 4 || s.ForegroundIndices != 6 || s.PathIndices != 0 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestImageGroups(t *testing.T) {
	r := compositor.R(0, 0, 1, 1)
	images := []ImageInstance{
		NewImageInstance(1, r, compositor.Rect{}, 1),
		NewImageInstance(1, r, compositor.Rect{}, 1),
		NewImageInstance(2, r, compositor.Rect{}, 1),
		NewImageInstance(1, r, compositor.Rect{}, 1),
	}
	groups := ImageGroups(images)
	wantLens := []int{2, 1, 1}
	if len(groups) != len(wantLens) {
		t.Fatalf("groups = %d, want %d", len(groups), len(wantLens))
	}
	for i, g := range groups {
		if len(g) != wantLens[i] {
			t.Errorf("group %d len = %d, want %d", i, len(g), wantLens[i])
		}
	}
	if images[0].UV != [4]float32{0, 0, 1, 1} {
		t.Errorf("default UV = %v, want full texture", images[0].UV)
	}
}

func TestGlassPrimitiveShadow(t *testing.T) {
	m := compositor.RegularGlass().WithShadow(compositor.Shadow{
		OffsetX: 2, OffsetY: -3, Blur: 12, Color: compositor.RGBA(0, 0, 0, 0.4),
	})
	g := NewGlassPrimitive(compositor.R(0, 0, 100, 50), compositor.Uniform(8), m)

	if g.Params[0] != 20 {
		t.Errorf("blur = %v, want 20", g.Params[0])
	}
	if g.Params2[2] != 12 || g.Params2[3] != 0.4 {
		t.Errorf("shadow params = %v", g.Params2)
	}
	if x, y := g.ShadowOffset(); x != 2 || y != -3 {
		t.Errorf("ShadowOffset() = (%v, %v), want (2, -3)", x, y)
	}
	if g.TypeInfo[0] != uint32(compositor.GlassRegular) {
		t.Errorf("glass type = %d", g.TypeInfo[0])
	}
}
