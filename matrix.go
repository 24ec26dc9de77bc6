package compositor

import "github.com/chewxy/math32"

// Transform represents a 2D affine transformation in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// which maps a point as:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Transform struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{A: 1, E: 1}
}

// Translate creates a translation.
func Translate(x, y float32) Transform {
	return Transform{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling transformation.
func Scale(x, y float32) Transform {
	return Transform{A: x, E: y}
}

// Rotate creates a rotation (angle in radians, clockwise in y-down space).
func Rotate(angle float32) Transform {
	sin, cos := math32.Sincos(angle)
	return Transform{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// RotateDegrees is Rotate with the angle in degrees.
func RotateDegrees(deg float32) Transform {
	return Rotate(deg * math32.Pi / 180)
}

// Multiply returns m * other: other is applied first, then m.
func (m Transform) Multiply(other Transform) Transform {
	return Transform{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply transforms a point.
func (m Transform) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// ApplyVector transforms a vector (translation ignored).
func (m Transform) ApplyVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// ApplyRect returns the axis-aligned bounding box of r's four transformed
// corners.
func (m Transform) ApplyRect(r Rect) Rect {
	if m.IsTranslation() {
		return r.Translate(m.C, m.F)
	}
	p0 := m.Apply(Point{X: r.X, Y: r.Y})
	p1 := m.Apply(Point{X: r.X + r.W, Y: r.Y})
	p2 := m.Apply(Point{X: r.X + r.W, Y: r.Y + r.H})
	p3 := m.Apply(Point{X: r.X, Y: r.Y + r.H})
	minX := math32.Min(math32.Min(p0.X, p1.X), math32.Min(p2.X, p3.X))
	minY := math32.Min(math32.Min(p0.Y, p1.Y), math32.Min(p2.Y, p3.Y))
	maxX := math32.Max(math32.Max(p0.X, p1.X), math32.Max(p2.X, p3.X))
	maxY := math32.Max(math32.Max(p0.Y, p1.Y), math32.Max(p2.Y, p3.Y))
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// ScaleFactors returns the length of the transformed unit axes.
func (m Transform) ScaleFactors() (sx, sy float32) {
	sx = math32.Hypot(m.A, m.D)
	sy = math32.Hypot(m.B, m.E)
	return sx, sy
}

// AverageScale is the mean of ScaleFactors, used to scale radii and blur.
func (m Transform) AverageScale() float32 {
	sx, sy := m.ScaleFactors()
	return (sx + sy) / 2
}

// Invert returns the inverse transformation.
// Returns the identity if the transformation is not invertible.
func (m Transform) Invert() Transform {
	det := m.A*m.E - m.B*m.D
	if math32.Abs(det) < 1e-10 {
		return Identity()
	}

	invDet := 1 / det
	return Transform{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
}

// IsIdentity reports whether m is the identity transformation.
func (m Transform) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation reports whether m only translates.
func (m Transform) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// Rows returns the matrix as three column-padded vec4 rows for GPU upload:
// (A, B, C, 0), (D, E, F, 0), (0, 0, 1, 0).
func (m Transform) Rows() [3][4]float32 {
	return [3][4]float32{
		{m.A, m.B, m.C, 0},
		{m.D, m.E, m.F, 0},
		{0, 0, 1, 0},
	}
}
