package compositor

// GlassType selects a glass material preset. The value is forwarded to the
// GPU so the shader can vary its frosting noise per type.
type GlassType uint32

// Glass presets, from least to most frosted.
const (
	GlassUltraThin GlassType = iota
	GlassThin
	GlassRegular
	GlassThick
	GlassChrome
)

// String returns the preset name.
func (t GlassType) String() string {
	switch t {
	case GlassUltraThin:
		return "ultra-thin"
	case GlassThin:
		return "thin"
	case GlassRegular:
		return "regular"
	case GlassThick:
		return "thick"
	case GlassChrome:
		return "chrome"
	default:
		return "unknown"
	}
}

// GlassMaterial describes a frosted-glass surface that blurs and tints the
// content behind it.
type GlassMaterial struct {
	Type            GlassType
	Blur            float32
	Tint            Color
	Saturation      float32
	Brightness      float32
	Noise           float32
	BorderThickness float32
	Shadow          *Shadow
}

// DefaultGlassTint is the faint white tint shared by all presets.
var DefaultGlassTint = Color{R: 1, G: 1, B: 1, A: 0.1}

// NewGlassMaterial returns the preset material for t.
func NewGlassMaterial(t GlassType) GlassMaterial {
	m := GlassMaterial{
		Type:            t,
		Tint:            DefaultGlassTint,
		Saturation:      1,
		Brightness:      1,
		BorderThickness: 0.8,
	}
	switch t {
	case GlassUltraThin:
		m.Blur = 10
	case GlassThin:
		m.Blur = 15
	case GlassThick:
		m.Blur = 30
	case GlassChrome:
		m.Blur = 25
		m.Saturation = 0.8
	default:
		m.Type = GlassRegular
		m.Blur = 20
	}
	return m
}

// Preset shorthands.
func UltraThinGlass() GlassMaterial { return NewGlassMaterial(GlassUltraThin) }
func ThinGlass() GlassMaterial { return NewGlassMaterial(GlassThin) }
func ThickGlass() GlassMaterial { return NewGlassMaterial(GlassThick) }
func ChromeGlass() GlassMaterial { return NewGlassMaterial(GlassChrome) }

// RegularGlass is the default material.
func RegularGlass() GlassMaterial { return NewGlassMaterial(GlassRegular) }

// WithTint returns m with a different tint.
func (m GlassMaterial) WithTint(c Color) GlassMaterial {
	m.Tint = c
	return m
}

// WithBlur returns m with a different blur radius.
func (m GlassMaterial) WithBlur(blur float32) GlassMaterial {
	m.Blur = blur
	return m
}

// WithShadow returns m carrying a shadow that the glass pipeline renders
// beneath the surface.
func (m GlassMaterial) WithShadow(s Shadow) GlassMaterial {
	m.Shadow = &s
	return m
}
