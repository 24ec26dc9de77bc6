package batch

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/compositor"
)

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off : off+4]))
}

func u32At(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

func TestEncodedSizes(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"primitive", len(AppendPrimitives(nil, make([]Primitive, 3))), 3 * 192},
		{"glass", len(AppendGlass(nil, make([]GlassPrimitive, 2))), 2 * 128},
		{"glyph", len(AppendGlyphs(nil, make([]Glyph, 4))), 4 * 80},
		{"path vertex", len(AppendPathVertices(nil, make([]PathVertex, 5))), 5 * 48},
		{"index", len(AppendIndices(nil, make([]uint32, 6))), 6 * 4},
		{"image", len(AppendImages(nil, make([]ImageInstance, 2))), 2 * 64},
		{"uniforms", len(EncodeUniforms(800, 600, 0)), 16},
		{"path uniforms", len((&PathUniforms{}).Encode()), 160},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: encoded %d bytes, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestAppendPrimitivesLayout(t *testing.T) {
	p := NewRect(10, 20, 30, 40, compositor.RGBA(0.25, 0.5, 0.75, 1)).
		WithCornerRadius(compositor.Uniform(6)).
		WithZLayer(3)
	prefix := []byte{0xAA}
	buf := AppendPrimitives(prefix, []Primitive{p})
	if len(buf) != 1+PrimitiveSize {
		t.Fatalf("len = %d", len(buf))
	}
	b := buf[1:]

	if got := f32At(b, 0); got != 10 {
		t.Errorf("bounds.x = %v", got)
	}
	if got := f32At(b, 12); got != 40 {
		t.Errorf("bounds.h = %v", got)
	}
	if got := f32At(b, 16); got != 6 {
		t.Errorf("radius.tl = %v", got)
	}
	if got := f32At(b, 36); got != 0.5 {
		t.Errorf("color.g = %v", got)
	}
	if got := f32At(b, 128); got != -10000 {
		t.Errorf("clip.x = %v, want default", got)
	}
	if got := u32At(b, 176); got != uint32(PrimitiveRect) {
		t.Errorf("type = %d", got)
	}
	if got := u32At(b, 188); got != 3 {
		t.Errorf("z layer = %d", got)
	}
}

func TestPathUniformsEncode(t *testing.T) {
	s := DefaultPathState()
	s.Transform = compositor.Translate(5, 7)
	s.ClipType = ClipRect
	s.Flags = PathGradient
	u := s.Uniforms(800, 600)
	b := u.Encode()

	if f32At(b, 0) != 800 || f32At(b, 4) != 600 || f32At(b, 8) != 1 {
		t.Errorf("viewport/opacity = %v %v %v", f32At(b, 0), f32At(b, 4), f32At(b, 8))
	}
	if got := f32At(b, 16+8); got != 5 {
		t.Errorf("transform row0.z = %v, want 5", got)
	}
	if got := f32At(b, 32+8); got != 7 {
		t.Errorf("transform row1.z = %v, want 7", got)
	}
	if got := u32At(b, 96); got != uint32(ClipRect) {
		t.Errorf("clip type = %d", got)
	}
	if got := u32At(b, 100); got != PathGradient {
		t.Errorf("flags = %d", got)
	}
	if got := f32At(b, 120); got != 1 {
		t.Errorf("image uv.z = %v, want 1", got)
	}
}

func TestAppendGlassShadowOffsetBits(t *testing.T) {
	g := NewGlassPrimitive(compositor.R(0, 0, 10, 10), compositor.CornerRadius{}, compositor.RegularGlass()).
		WithShadow(compositor.Shadow{OffsetX: 1.5, OffsetY: 4, Color: compositor.Black})
	b := AppendGlass(nil, []GlassPrimitive{g})
	if got := math.Float32frombits(u32At(b, 84)); got != 1.5 {
		t.Errorf("shadow offset x = %v", got)
	}
	if got := math.Float32frombits(u32At(b, 88)); got != 4 {
		t.Errorf("shadow offset y = %v", got)
	}
}
