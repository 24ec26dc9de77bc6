package compositor

import "github.com/chewxy/math32"

// Point is a 2D point or vector in logical pixels.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Size is a width/height pair.
type Size struct {
	W, H float32
}

// Rect is an axis-aligned rectangle given by its origin and size.
type Rect struct {
	X, Y, W, H float32
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// RectFromPoints returns the rectangle spanning min and max.
func RectFromPoints(minPt, maxPt Point) Rect {
	return Rect{X: minPt.X, Y: minPt.Y, W: maxPt.X - minPt.X, H: maxPt.Y - minPt.Y}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's extent.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{X: r.X + r.W, Y: r.Y + r.H} }

// Center returns the geometric center.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Contains reports whether p lies inside r (edges inclusive on the min side).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X < r.X+r.W && p.Y < r.Y+r.H
}

// Intersect returns the overlap of r and o. The result is empty
// (zero size, positioned at the clamped origin) when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math32.Max(r.X, o.X)
	y0 := math32.Max(r.Y, o.Y)
	x1 := math32.Min(r.X+r.W, o.X+o.W)
	y1 := math32.Min(r.Y+r.H, o.Y+o.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest rectangle containing both r and o.
// An empty operand is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x0 := math32.Min(r.X, o.X)
	y0 := math32.Min(r.Y, o.Y)
	x1 := math32.Max(r.X+r.W, o.X+o.W)
	y1 := math32.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Array returns (x, y, w, h) as a GPU-friendly array.
func (r Rect) Array() [4]float32 { return [4]float32{r.X, r.Y, r.W, r.H} }

// CornerRadius holds per-corner radii in clockwise order starting at the
// top-left corner.
type CornerRadius struct {
	TopLeft, TopRight, BottomRight, BottomLeft float32
}

// Uniform returns a CornerRadius with every corner set to r.
func Uniform(r float32) CornerRadius {
	return CornerRadius{TopLeft: r, TopRight: r, BottomRight: r, BottomLeft: r}
}

// IsZero reports whether every corner is square.
func (c CornerRadius) IsZero() bool {
	return c.TopLeft == 0 && c.TopRight == 0 && c.BottomRight == 0 && c.BottomLeft == 0
}

// IsUniform reports whether all four corners share one radius.
func (c CornerRadius) IsUniform() bool {
	return c.TopLeft == c.TopRight && c.TopRight == c.BottomRight && c.BottomRight == c.BottomLeft
}

// Scale multiplies every corner by f.
func (c CornerRadius) Scale(f float32) CornerRadius {
	return CornerRadius{
		TopLeft:     c.TopLeft * f,
		TopRight:    c.TopRight * f,
		BottomRight: c.BottomRight * f,
		BottomLeft:  c.BottomLeft * f,
	}
}

// Array returns the radii in GPU order (tl, tr, br, bl).
func (c CornerRadius) Array() [4]float32 {
	return [4]float32{c.TopLeft, c.TopRight, c.BottomRight, c.BottomLeft}
}
