package batch

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/compositor"
)

// GlassPrimitiveSize is the encoded size of a GlassPrimitive in bytes.
const GlassPrimitiveSize = 128

// DefaultLightAngle is the direction of the simulated rim light, in radians.
const DefaultLightAngle = -math32.Pi / 4

// GlassPrimitive is a frosted-glass surface that samples the backdrop.
type GlassPrimitive struct {
	Bounds       [4]float32
	CornerRadius [4]float32
	Tint         [4]float32
	Params       [4]float32 // blur, saturation, brightness, noise
	Params2      [4]float32 // border thickness, light angle, shadow blur, shadow opacity
	// TypeInfo holds the glass type, the shadow offset x and y as raw float
	// bits, and the clip type.
	TypeInfo   [4]uint32
	ClipBounds [4]float32
	ClipRadius [4]float32
}

// NewGlassPrimitive returns a glass primitive covering r with material m.
// The material's shadow, if any, is folded into Params2 and TypeInfo.
func NewGlassPrimitive(r compositor.Rect, radius compositor.CornerRadius, m compositor.GlassMaterial) GlassPrimitive {
	g := GlassPrimitive{
		Bounds:       r.Array(),
		CornerRadius: radius.Array(),
		Tint:         m.Tint.Array(),
		Params:       [4]float32{m.Blur, m.Saturation, m.Brightness, m.Noise},
		Params2:      [4]float32{m.BorderThickness, DefaultLightAngle, 0, 0},
		TypeInfo:     [4]uint32{uint32(m.Type), 0, 0, uint32(ClipNone)},
		ClipBounds:   NoClipBounds,
	}
	if m.Shadow != nil {
		g = g.WithShadow(*m.Shadow)
	}
	return g
}

// WithShadow attaches a drop shadow rendered beneath the glass. The shadow
// color's alpha becomes the shadow opacity.
func (g GlassPrimitive) WithShadow(s compositor.Shadow) GlassPrimitive {
	g.Params2[2] = s.Blur
	g.Params2[3] = s.Color.A
	g.TypeInfo[1] = math.Float32bits(s.OffsetX)
	g.TypeInfo[2] = math.Float32bits(s.OffsetY)
	return g
}

// WithClip sets the clip geometry.
func (g GlassPrimitive) WithClip(bounds, radius [4]float32, kind ClipType) GlassPrimitive {
	g.ClipBounds = bounds
	g.ClipRadius = radius
	g.TypeInfo[3] = uint32(kind)
	return g
}

// ShadowOffset decodes the shadow offset stored in TypeInfo.
func (g *GlassPrimitive) ShadowOffset() (x, y float32) {
	return math.Float32frombits(g.TypeInfo[1]), math.Float32frombits(g.TypeInfo[2])
}
