package compositor

import "testing"

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", R(0, 0, 100, 100), R(50, 50, 100, 100), R(50, 50, 50, 50)},
		{"contained", R(0, 0, 100, 100), R(10, 10, 20, 20), R(10, 10, 20, 20)},
		{"disjoint", R(0, 0, 10, 10), R(20, 20, 10, 10), R(20, 20, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	got := R(0, 0, 10, 10).Union(R(20, 5, 10, 10))
	if got != R(0, 0, 30, 15) {
		t.Errorf("Union = %+v", got)
	}
	if got := (Rect{}).Union(R(1, 2, 3, 4)); got != R(1, 2, 3, 4) {
		t.Errorf("Union with empty = %+v", got)
	}
}

func TestCornerRadius(t *testing.T) {
	if !Uniform(4).IsUniform() {
		t.Error("Uniform(4) should be uniform")
	}
	if (CornerRadius{TopLeft: 4}).IsUniform() {
		t.Error("single corner should not be uniform")
	}
	if !(CornerRadius{}).IsZero() {
		t.Error("zero value should be IsZero")
	}
	if got := Uniform(2).Scale(3); got != Uniform(6) {
		t.Errorf("Scale = %+v", got)
	}
}

func TestPathBounds(t *testing.T) {
	p := NewPath().MoveTo(10, 10).LineTo(50, 20).QuadTo(60, 80, 30, 40).Close()
	if got := p.Bounds(); got != R(10, 10, 50, 70) {
		t.Errorf("Bounds = %+v", got)
	}
	moved := p.Transform(Translate(5, 5)).Bounds()
	if moved != R(15, 15, 50, 70) {
		t.Errorf("transformed Bounds = %+v", moved)
	}
}

func TestGlassPresets(t *testing.T) {
	tests := []struct {
		typ  GlassType
		blur float32
		sat  float32
	}{
		{GlassUltraThin, 10, 1},
		{GlassThin, 15, 1},
		{GlassRegular, 20, 1},
		{GlassThick, 30, 1},
		{GlassChrome, 25, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			m := NewGlassMaterial(tt.typ)
			if m.Blur != tt.blur || m.Saturation != tt.sat {
				t.Errorf("preset = blur %v sat %v, want %v %v", m.Blur, m.Saturation, tt.blur, tt.sat)
			}
			if m.Tint != DefaultGlassTint {
				t.Errorf("tint = %+v", m.Tint)
			}
		})
	}
}
