package compositor

// Brush describes how a shape is filled.
// This is a sealed interface: the set of brushes is closed and consists of
// Solid, LinearGradient, RadialGradient, ImageBrush and Glass.
type Brush interface {
	brushMarker()
}

// SolidBrush fills with a single color.
type SolidBrush struct {
	Color Color
}

func (SolidBrush) brushMarker() {}

// Solid creates a SolidBrush.
func Solid(c Color) SolidBrush { return SolidBrush{Color: c} }

// GradientStop is a color at a normalized offset along a gradient.
type GradientStop struct {
	Offset float32
	Color  Color
}

// LinearGradient interpolates between stops along Start→End.
// The GPU path uses the first and last stop only.
type LinearGradient struct {
	Start, End Point
	Stops      []GradientStop
}

func (LinearGradient) brushMarker() {}

// RadialGradient interpolates between stops from Center outward to Radius.
type RadialGradient struct {
	Center Point
	Radius float32
	Stops  []GradientStop
}

func (RadialGradient) brushMarker() {}

// endColors returns the first and last stop colors. A gradient without stops
// yields white for both; a single stop yields that color twice.
func endColors(stops []GradientStop) (Color, Color) {
	switch len(stops) {
	case 0:
		return White, White
	case 1:
		return stops[0].Color, stops[0].Color
	default:
		return stops[0].Color, stops[len(stops)-1].Color
	}
}

// EndColors returns the colors at both ends of the gradient.
func (g LinearGradient) EndColors() (Color, Color) { return endColors(g.Stops) }

// EndColors returns the colors at both ends of the gradient.
func (g RadialGradient) EndColors() (Color, Color) { return endColors(g.Stops) }

// ImageBrush fills with a region of a GPU texture identified by its
// generation number.
type ImageBrush struct {
	Generation uint64
	UV         Rect // normalized source rectangle; zero means the full image
	Opacity    float32 // zero is fully transparent, as for node opacity
}

func (ImageBrush) brushMarker() {}

// Image creates an opaque ImageBrush over the whole texture.
func Image(generation uint64) ImageBrush {
	return ImageBrush{Generation: generation, Opacity: 1}
}

// GlassBrush fills a shape with a frosted-glass material sampling the
// backdrop.
type GlassBrush struct {
	Material GlassMaterial
}

func (GlassBrush) brushMarker() {}

// Glass creates a GlassBrush.
func Glass(m GlassMaterial) GlassBrush { return GlassBrush{Material: m} }

// Shadow is a drop shadow descriptor.
type Shadow struct {
	OffsetX, OffsetY float32
	Blur             float32
	Spread           float32
	Color            Color
}

// IsVisible reports whether the shadow would produce any pixels.
func (s Shadow) IsVisible() bool {
	return s.Color.A > 0 && (s.Blur > 0 || s.Spread > 0 || s.OffsetX != 0 || s.OffsetY != 0)
}
