package compositor

import "testing"

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", White},
		{"000", Black},
		{"#ff000080", Color{R: 1, A: 128.0 / 255}},
		{"00ff00", Color{G: 1, A: 1}},
		{"#0000", Transparent},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Hex(tt.in)
			if err != nil {
				t.Fatalf("Hex(%q) error: %v", tt.in, err)
			}
			if !approx(got.R, tt.want.R) || !approx(got.G, tt.want.G) ||
				!approx(got.B, tt.want.B) || !approx(got.A, tt.want.A) {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "zzzzzz"} {
		if _, err := Hex(in); err == nil {
			t.Errorf("Hex(%q) expected error", in)
		}
	}
}

func TestColorPremultiplied(t *testing.T) {
	got := RGBA(1, 0.5, 0, 0.5).Premultiplied()
	want := Color{R: 0.5, G: 0.25, B: 0, A: 0.5}
	if got != want {
		t.Errorf("Premultiplied = %+v, want %+v", got, want)
	}
}
