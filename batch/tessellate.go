package batch

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/compositor"
)

// flattenTolerance is the maximum allowed deviation between a curve and its
// linear approximation, in pixels.
const flattenTolerance = 0.25

// maxFlattenDepth bounds curve subdivision for degenerate input.
const maxFlattenDepth = 16

// Tessellator flattens paths into polygon contours and triangulates each
// contour as a fan around its first vertex.
//
// A fan is exact for convex contours and for contours that are star-shaped
// around their first point. Other contours render with overdraw artifacts;
// Fill reports them through Convex so callers can log the degradation.
//
// A Tessellator is reused across paths via Reset.
type Tessellator struct {
	points   []compositor.Point
	contours []span
	indices  []uint32
}

type span struct{ start, end int }

// NewTessellator returns a tessellator with preallocated capacity.
func NewTessellator() *Tessellator {
	return &Tessellator{
		points:  make([]compositor.Point, 0, 128),
		indices: make([]uint32, 0, 384),
	}
}

// Reset clears the tessellator for reuse without releasing memory.
func (t *Tessellator) Reset() {
	t.points = t.points[:0]
	t.contours = t.contours[:0]
	t.indices = t.indices[:0]
}

// Fill tessellates p (transformed by m) into indexed triangles. The returned
// slices alias the tessellator's storage and are valid until the next call.
// convex is false when any contour is concave.
func (t *Tessellator) Fill(p *compositor.Path, m compositor.Transform) (points []compositor.Point, indices []uint32, convex bool) {
	t.Reset()
	if p.IsEmpty() {
		return nil, nil, true
	}
	t.flatten(p, m)

	convex = true
	for _, c := range t.contours {
		contour := t.points[c.start:c.end]
		if len(contour) < 3 {
			continue
		}
		if !IsConvex(contour) {
			convex = false
		}
		for i := c.start + 1; i+1 < c.end; i++ {
			if triangleArea(t.points[c.start], t.points[i], t.points[i+1]) == 0 {
				continue
			}
			t.indices = append(t.indices, uint32(c.start), uint32(i), uint32(i+1))
		}
	}
	return t.points, t.indices, convex
}

func (t *Tessellator) flatten(p *compositor.Path, m compositor.Transform) {
	var (
		start, prev compositor.Point
		open        bool
	)
	closeContour := func() {
		if !open {
			return
		}
		c := &t.contours[len(t.contours)-1]
		c.end = len(t.points)
		// Drop the duplicated start point of explicitly closed contours.
		if c.end-c.start > 1 && t.points[c.end-1] == t.points[c.start] {
			t.points = t.points[:c.end-1]
			c.end--
		}
		open = false
	}
	begin := func(pt compositor.Point) {
		closeContour()
		t.contours = append(t.contours, span{start: len(t.points)})
		t.points = append(t.points, pt)
		start, prev, open = pt, pt, true
	}

	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case compositor.MoveTo:
			begin(m.Apply(e.Point))
		case compositor.LineTo:
			if !open {
				begin(prev)
			}
			pt := m.Apply(e.Point)
			t.points = append(t.points, pt)
			prev = pt
		case compositor.QuadTo:
			if !open {
				begin(prev)
			}
			pt := m.Apply(e.Point)
			t.flattenQuad(prev, m.Apply(e.Control), pt, 0)
			prev = pt
		case compositor.CubicTo:
			if !open {
				begin(prev)
			}
			pt := m.Apply(e.Point)
			t.flattenCubic(prev, m.Apply(e.Control1), m.Apply(e.Control2), pt, 0)
			prev = pt
		case compositor.Close:
			closeContour()
			prev = start
		}
	}
	closeContour()
}

// flattenQuad appends the flattened points of a quadratic Bezier, excluding
// p0, using de Casteljau subdivision.
func (t *Tessellator) flattenQuad(p0, c, p1 compositor.Point, depth int) {
	midX := 0.25*p0.X + 0.5*c.X + 0.25*p1.X
	midY := 0.25*p0.Y + 0.5*c.Y + 0.25*p1.Y
	dx := midX - 0.5*(p0.X+p1.X)
	dy := midY - 0.5*(p0.Y+p1.Y)
	if depth >= maxFlattenDepth || dx*dx+dy*dy <= flattenTolerance*flattenTolerance {
		t.points = append(t.points, p1)
		return
	}
	a := midpoint(p0, c)
	b := midpoint(c, p1)
	m := midpoint(a, b)
	t.flattenQuad(p0, a, m, depth+1)
	t.flattenQuad(m, b, p1, depth+1)
}

// flattenCubic appends the flattened points of a cubic Bezier, excluding p0.
// The factor of 16 is the cubic approximation error bound.
func (t *Tessellator) flattenCubic(p0, c1, c2, p1 compositor.Point, depth int) {
	ux := 3*c1.X - 2*p0.X - p1.X
	uy := 3*c1.Y - 2*p0.Y - p1.Y
	vx := 3*c2.X - p0.X - 2*p1.X
	vy := 3*c2.Y - p0.Y - 2*p1.Y
	distSq := math32.Max(ux*ux+uy*uy, vx*vx+vy*vy)
	if depth >= maxFlattenDepth || distSq <= 16*flattenTolerance*flattenTolerance {
		t.points = append(t.points, p1)
		return
	}
	ab1 := midpoint(p0, c1)
	ab2 := midpoint(c1, c2)
	ab3 := midpoint(c2, p1)
	bc1 := midpoint(ab1, ab2)
	bc2 := midpoint(ab2, ab3)
	m := midpoint(bc1, bc2)
	t.flattenCubic(p0, ab1, bc1, m, depth+1)
	t.flattenCubic(m, bc2, ab3, p1, depth+1)
}

func midpoint(a, b compositor.Point) compositor.Point {
	return compositor.Point{X: 0.5 * (a.X + b.X), Y: 0.5 * (a.Y + b.Y)}
}

func triangleArea(a, b, c compositor.Point) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// convexityEpsilon is the tolerance for cross product comparisons.
const convexityEpsilon = 1e-6

// IsConvex reports whether the closed polygon is convex. Collinear edges are
// permitted; fewer than three points or all-collinear input is not convex.
func IsConvex(points []compositor.Point) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	var pos, neg int
	for i := range n {
		cross := triangleArea(points[i], points[(i+1)%n], points[(i+2)%n])
		switch {
		case cross > convexityEpsilon:
			pos++
		case cross < -convexityEpsilon:
			neg++
		}
	}
	return (pos > 0) != (neg > 0)
}
