package batch

import "github.com/gogpu/compositor"

// PrimitiveType selects the SDF evaluated for a primitive.
type PrimitiveType uint32

// Primitive types understood by the SDF shader.
const (
	PrimitiveRect PrimitiveType = iota
	PrimitiveCircle
	PrimitiveEllipse
	PrimitiveShadow
	PrimitiveInnerShadow
	PrimitiveCircleShadow
	PrimitiveCircleInnerShadow
	PrimitiveText
)

// FillType selects how a primitive's interior is colored.
type FillType uint32

// Fill types.
const (
	FillSolid FillType = iota
	FillLinearGradient
	FillRadialGradient
)

// ClipType selects the clip geometry applied in the fragment shader.
type ClipType uint32

// Clip types.
const (
	ClipNone ClipType = iota
	ClipRect
	ClipCircle
	ClipEllipse
)

// PrimitiveSize is the encoded size of a Primitive in bytes.
const PrimitiveSize = 192

// NoClipBounds is the clip rectangle used when nothing is clipped.
var NoClipBounds = [4]float32{-10000, -10000, 100000, 100000}

// Primitive is one SDF-rendered shape, drawn as an instanced quad.
// Field order matches the WGSL struct; every field is a vec4.
type Primitive struct {
	Bounds       [4]float32 // x, y, w, h
	CornerRadius [4]float32 // tl, tr, br, bl
	Color        [4]float32 // fill or gradient start
	Color2       [4]float32 // gradient end
	Border       [4]float32 // width, 0, 0, 0
	BorderColor  [4]float32
	Shadow       [4]float32 // offset x, offset y, blur, spread
	ShadowColor  [4]float32
	ClipBounds   [4]float32 // rect clips: x, y, w, h; ellipse clips: cx, cy, rx, ry
	ClipRadius   [4]float32
	// GradientParams holds (x1, y1, x2, y2) for linear gradients,
	// (cx, cy, r, 0) for radial ones and atlas UV bounds for text.
	GradientParams [4]float32
	TypeInfo       [4]uint32 // primitive type, fill type, clip type, z layer
}

// NewRect returns a solid rectangle primitive with no clip.
func NewRect(x, y, w, h float32, c compositor.Color) Primitive {
	return Primitive{
		Bounds:         [4]float32{x, y, w, h},
		Color:          c.Array(),
		Color2:         c.Array(),
		ClipBounds:     NoClipBounds,
		GradientParams: [4]float32{0, 0, 1, 0},
		TypeInfo:       [4]uint32{uint32(PrimitiveRect), uint32(FillSolid), uint32(ClipNone), 0},
	}
}

// NewCircle returns a solid circle primitive centered at (cx, cy).
func NewCircle(cx, cy, r float32, c compositor.Color) Primitive {
	p := NewRect(cx-r, cy-r, r*2, r*2, c)
	p.TypeInfo[0] = uint32(PrimitiveCircle)
	return p
}

// Type returns the primitive type.
func (p *Primitive) Type() PrimitiveType { return PrimitiveType(p.TypeInfo[0]) }

// Fill returns the fill type.
func (p *Primitive) Fill() FillType { return FillType(p.TypeInfo[1]) }

// Clip returns the clip type.
func (p *Primitive) Clip() ClipType { return ClipType(p.TypeInfo[2]) }

// WithCornerRadius sets per-corner radii.
func (p Primitive) WithCornerRadius(r compositor.CornerRadius) Primitive {
	p.CornerRadius = r.Array()
	return p
}

// WithBorder sets a border of the given width and color.
func (p Primitive) WithBorder(width float32, c compositor.Color) Primitive {
	p.Border = [4]float32{width, 0, 0, 0}
	p.BorderColor = c.Array()
	return p
}

// WithShadow turns p into a shadow primitive of the matching shape.
func (p Primitive) WithShadow(s compositor.Shadow) Primitive {
	p.Shadow = [4]float32{s.OffsetX, s.OffsetY, s.Blur, s.Spread}
	p.ShadowColor = s.Color.Array()
	p.Color = [4]float32{}
	p.Color2 = [4]float32{}
	if p.Type() == PrimitiveCircle {
		p.TypeInfo[0] = uint32(PrimitiveCircleShadow)
	} else {
		p.TypeInfo[0] = uint32(PrimitiveShadow)
	}
	return p
}

// WithClip sets the clip geometry.
func (p Primitive) WithClip(bounds, radius [4]float32, kind ClipType) Primitive {
	p.ClipBounds = bounds
	p.ClipRadius = radius
	p.TypeInfo[2] = uint32(kind)
	return p
}

// WithLinearGradient fills p with a two-color linear gradient between
// (x1, y1) and (x2, y2) in screen space.
func (p Primitive) WithLinearGradient(x1, y1, x2, y2 float32, from, to compositor.Color) Primitive {
	p.Color = from.Array()
	p.Color2 = to.Array()
	p.GradientParams = [4]float32{x1, y1, x2, y2}
	p.TypeInfo[1] = uint32(FillLinearGradient)
	return p
}

// WithRadialGradient fills p with a two-color radial gradient.
func (p Primitive) WithRadialGradient(cx, cy, r float32, from, to compositor.Color) Primitive {
	p.Color = from.Array()
	p.Color2 = to.Array()
	p.GradientParams = [4]float32{cx, cy, r, 0}
	p.TypeInfo[1] = uint32(FillRadialGradient)
	return p
}

// WithZLayer tags p with a z layer, used by callers that interleave
// primitives with layer commands.
func (p Primitive) WithZLayer(z uint32) Primitive {
	p.TypeInfo[3] = z
	return p
}
