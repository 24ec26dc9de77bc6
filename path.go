package compositor

// PathElement is a single element of a Path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new contour.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo adds a straight segment.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo adds a quadratic Bezier segment.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo adds a cubic Bezier segment.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current contour.
type Close struct{}

func (Close) isPathElement() {}

// Path is a vector path made of one or more contours.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new contour at (x, y).
func (p *Path) MoveTo(x, y float32) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	return p
}

// LineTo adds a line to (x, y).
func (p *Path) LineTo(x, y float32) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
	return p
}

// QuadTo adds a quadratic curve.
func (p *Path) QuadTo(cx, cy, x, y float32) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
	return p
}

// CubicTo adds a cubic curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
	return p
}

// Close closes the current contour back to its start point.
func (p *Path) Close() *Path {
	p.elements = append(p.elements, Close{})
	p.current = p.start
	return p
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.elements) == 0
}

// Transform returns a copy of p with every point mapped through m.
func (p *Path) Transform(m Transform) *Path {
	out := &Path{elements: make([]PathElement, 0, len(p.elements))}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.Apply(e.Point)
			out.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.Apply(e.Point)
			out.LineTo(pt.X, pt.Y)
		case QuadTo:
			c := m.Apply(e.Control)
			pt := m.Apply(e.Point)
			out.QuadTo(c.X, c.Y, pt.X, pt.Y)
		case CubicTo:
			c1 := m.Apply(e.Control1)
			c2 := m.Apply(e.Control2)
			pt := m.Apply(e.Point)
			out.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		case Close:
			out.Close()
		}
	}
	return out
}

// Bounds returns the bounding box of all points, control points included.
func (p *Path) Bounds() Rect {
	var (
		minPt, maxPt Point
		seen         bool
	)
	add := func(q Point) {
		if !seen {
			minPt, maxPt, seen = q, q, true
			return
		}
		minPt.X = min(minPt.X, q.X)
		minPt.Y = min(minPt.Y, q.Y)
		maxPt.X = max(maxPt.X, q.X)
		maxPt.Y = max(maxPt.Y, q.Y)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case QuadTo:
			add(e.Control)
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	return RectFromPoints(minPt, maxPt)
}

// Rectangle adds a closed rectangle contour.
func (p *Path) Rectangle(x, y, w, h float32) *Path {
	return p.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// Ellipse adds a closed ellipse contour approximated by four cubics.
func (p *Path) Ellipse(cx, cy, rx, ry float32) *Path {
	const k = 0.5522847498 // 4/3 * (sqrt(2) - 1)
	ox, oy := rx*k, ry*k
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	return p.Close()
}

// Circle adds a closed circle contour.
func (p *Path) Circle(cx, cy, r float32) *Path {
	return p.Ellipse(cx, cy, r, r)
}
