package batch

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/compositor"
)

// clipEntry is a clip shape resolved to screen space.
type clipEntry struct {
	kind   compositor.ClipKind
	rect   compositor.Rect
	radius compositor.CornerRadius
	// center and radii of elliptical clips
	cx, cy, rx, ry float32
}

// Painter implements compositor.DrawContext by appending primitives to a
// Batch. Geometry is resolved to screen space at call time: the transform
// stack is applied to bounds, radii are scaled by the average transform
// scale, and the clip stack is collapsed into per-primitive clip parameters.
//
// A Painter in foreground mode routes primitives and paths to the batch's
// foreground lists. Glass fills always go to the glass list.
type Painter struct {
	batch      *Batch
	foreground bool
	transforms []compositor.Transform
	clips      []clipEntry
	opacity    []float32
	tess       *Tessellator
}

var (
	_ compositor.ShapeContext   = (*Painter)(nil)
	_ compositor.OpacityContext = (*Painter)(nil)
)

// NewPainter returns a painter writing into b.
func NewPainter(b *Batch) *Painter {
	return &Painter{
		batch:      b,
		transforms: []compositor.Transform{compositor.Identity()},
		opacity:    []float32{1},
		tess:       NewTessellator(),
	}
}

// Batch returns the batch being written.
func (p *Painter) Batch() *Batch { return p.batch }

// SetForeground selects whether subsequent primitives go to the foreground
// lists.
func (p *Painter) SetForeground(fg bool) { p.foreground = fg }

// IsForeground reports the current routing mode.
func (p *Painter) IsForeground() bool { return p.foreground }

// Reset clears the transform, clip and opacity stacks.
func (p *Painter) Reset() {
	p.transforms = p.transforms[:1]
	p.transforms[0] = compositor.Identity()
	p.clips = p.clips[:0]
	p.opacity = p.opacity[:1]
	p.opacity[0] = 1
}

// Transform returns the current accumulated transform.
func (p *Painter) Transform() compositor.Transform {
	return p.transforms[len(p.transforms)-1]
}

// Opacity returns the product of the opacity stack.
func (p *Painter) Opacity() float32 {
	o := float32(1)
	for _, v := range p.opacity {
		o *= v
	}
	return o
}

// PushTransform composes t with the current transform; t applies first.
func (p *Painter) PushTransform(t compositor.Transform) {
	p.transforms = append(p.transforms, p.Transform().Multiply(t))
}

// PopTransform restores the previous transform. The base identity is never
// popped.
func (p *Painter) PopTransform() {
	if len(p.transforms) > 1 {
		p.transforms = p.transforms[:len(p.transforms)-1]
	}
}

// PushClip pushes c, resolved through the current transform. Rotated clips
// are approximated by their bounding box.
func (p *Painter) PushClip(c compositor.ClipShape) {
	m := p.Transform()
	e := clipEntry{kind: c.Kind}
	switch c.Kind {
	case compositor.ClipKindEllipse, compositor.ClipKindCircle:
		center := m.Apply(c.Rect.Center())
		sx, sy := m.ScaleFactors()
		e.cx, e.cy = center.X, center.Y
		e.rx, e.ry = c.Rect.W/2*sx, c.Rect.H/2*sy
		e.rect = compositor.R(e.cx-e.rx, e.cy-e.ry, e.rx*2, e.ry*2)
	default:
		e.rect = m.ApplyRect(c.Rect)
		e.radius = c.Radius.Scale(m.AverageScale())
	}
	p.clips = append(p.clips, e)
}

// PopClip removes the innermost clip.
func (p *Painter) PopClip() {
	if len(p.clips) > 0 {
		p.clips = p.clips[:len(p.clips)-1]
	}
}

// PushOpacity multiplies alpha into everything painted until PopOpacity.
func (p *Painter) PushOpacity(alpha float32) {
	p.opacity = append(p.opacity, alpha)
}

// PopOpacity restores the previous opacity.
func (p *Painter) PopOpacity() {
	if len(p.opacity) > 1 {
		p.opacity = p.opacity[:len(p.opacity)-1]
	}
}

// FillRect fills a rounded rectangle.
func (p *Painter) FillRect(r compositor.Rect, radius compositor.CornerRadius, b compositor.Brush) {
	m := p.Transform()
	screen := m.ApplyRect(r)
	scaled := radius.Scale(m.AverageScale())
	p.fillShape(PrimitiveRect, screen, scaled, b)
}

// FillCircle fills a circle.
func (p *Painter) FillCircle(center compositor.Point, radius float32, b compositor.Brush) {
	m := p.Transform()
	c := m.Apply(center)
	r := radius * m.AverageScale()
	p.fillShape(PrimitiveCircle, compositor.R(c.X-r, c.Y-r, r*2, r*2), compositor.Uniform(r), b)
}

func (p *Painter) fillShape(kind PrimitiveType, screen compositor.Rect, radius compositor.CornerRadius, b compositor.Brush) {
	clipBounds, clipRadius, clipType := p.clipData()
	opacity := p.Opacity()

	switch br := b.(type) {
	case compositor.GlassBrush:
		mat := br.Material
		mat.Tint = mat.Tint.MulAlpha(opacity)
		if mat.Shadow != nil {
			s := *mat.Shadow
			s.Blur *= p.Transform().AverageScale()
			s.Color = s.Color.MulAlpha(opacity)
			mat.Shadow = &s
		}
		p.batch.PushGlass(NewGlassPrimitive(screen, radius, mat).WithClip(clipBounds, clipRadius, clipType))
		return
	case compositor.ImageBrush:
		o := clamp01(br.Opacity) * opacity
		if o <= 0 {
			return
		}
		im := NewImageInstance(br.Generation, screen, br.UV, o)
		im.ClipBounds = clipBounds
		im.Params[1] = float32(clipType)
		p.batch.PushImage(im)
		return
	}

	prim := NewRect(screen.X, screen.Y, screen.W, screen.H, compositor.Transparent).
		WithCornerRadius(radius).
		WithClip(clipBounds, clipRadius, clipType)
	prim.TypeInfo[0] = uint32(kind)
	prim = p.applyBrush(prim, b, opacity)
	p.push(prim)
}

// DrawShadow draws a drop shadow for a rounded rectangle.
func (p *Painter) DrawShadow(r compositor.Rect, radius compositor.CornerRadius, s compositor.Shadow) {
	m := p.Transform()
	scale := m.AverageScale()
	screen := m.ApplyRect(r)
	clipBounds, clipRadius, clipType := p.clipData()
	s.Color = s.Color.MulAlpha(p.Opacity())
	s.Blur *= scale
	s.Spread *= scale
	prim := NewRect(screen.X, screen.Y, screen.W, screen.H, compositor.Transparent).
		WithCornerRadius(radius.Scale(scale)).
		WithClip(clipBounds, clipRadius, clipType).
		WithShadow(s)
	p.push(prim)
}

// FillPath tessellates and fills an arbitrary path. Colors are resolved per
// vertex; clip parameters are written to the batch's frame-level PathState,
// so the most recent path's clip applies to all paths of the frame.
func (p *Painter) FillPath(path *compositor.Path, b compositor.Brush) {
	m := p.Transform()
	points, indices, convex := p.tess.Fill(path, m)
	if len(indices) == 0 {
		return
	}
	if !convex {
		compositor.Logger().Warn("batch: fan fill of non-convex path may overdraw",
			"points", len(points))
	}

	opacity := p.Opacity()
	state := &p.batch.PathState
	state.ClipBounds, state.ClipRadius, state.ClipType = p.clipData()

	from, to := compositor.White, compositor.White
	var tAt func(compositor.Point) float32
	switch br := b.(type) {
	case compositor.SolidBrush:
		from, to = br.Color, br.Color
	case compositor.LinearGradient:
		from, to = br.EndColors()
		start, end := m.Apply(br.Start), m.Apply(br.End)
		d := end.Sub(start)
		lenSq := d.X*d.X + d.Y*d.Y
		tAt = func(q compositor.Point) float32 {
			if lenSq == 0 {
				return 0
			}
			v := q.Sub(start)
			return clamp01((v.X*d.X + v.Y*d.Y) / lenSq)
		}
		state.Flags |= PathGradient
	case compositor.RadialGradient:
		from, to = br.EndColors()
		c := m.Apply(br.Center)
		r := br.Radius * m.AverageScale()
		tAt = func(q compositor.Point) float32 {
			if r == 0 {
				return 0
			}
			return clamp01(math32.Hypot(q.X-c.X, q.Y-c.Y) / r)
		}
		state.Flags |= PathGradient
	case compositor.GlassBrush:
		mat := br.Material
		from, to = mat.Tint, mat.Tint
		state.Flags |= PathGlass
		state.GlassParams = [4]float32{mat.Blur, mat.Saturation, mat.Brightness, mat.Noise}
		state.GlassTint = mat.Tint.Array()
	case compositor.ImageBrush:
		// The path pipeline has no texture binding; draw the image over the
		// path's bounds instead.
		bounds := path.Transform(m).Bounds()
		p.fillShape(PrimitiveRect, bounds, compositor.CornerRadius{}, b)
		return
	}
	from, to = from.MulAlpha(opacity), to.MulAlpha(opacity)

	vertices := make([]PathVertex, len(points))
	for i, pt := range points {
		v := PathVertex{
			Position: [2]float32{pt.X, pt.Y},
			Color:    from.Array(),
			EndColor: to.Array(),
		}
		if tAt != nil {
			v.UV[0] = tAt(pt)
		}
		vertices[i] = v
	}
	if p.foreground {
		p.batch.PushForegroundPath(vertices, indices)
	} else {
		p.batch.PushPath(vertices, indices)
	}
}

func (p *Painter) push(prim Primitive) {
	if p.foreground {
		p.batch.PushForeground(prim)
	} else {
		p.batch.Push(prim)
	}
}

// applyBrush sets the fill parameters of prim from b. Gradients keep their
// first and last stops; their geometry is mapped to screen space.
func (p *Painter) applyBrush(prim Primitive, b compositor.Brush, opacity float32) Primitive {
	m := p.Transform()
	switch br := b.(type) {
	case compositor.SolidBrush:
		c := br.Color.MulAlpha(opacity).Array()
		prim.Color, prim.Color2 = c, c
	case compositor.LinearGradient:
		from, to := br.EndColors()
		s, e := m.Apply(br.Start), m.Apply(br.End)
		prim = prim.WithLinearGradient(s.X, s.Y, e.X, e.Y, from.MulAlpha(opacity), to.MulAlpha(opacity))
	case compositor.RadialGradient:
		from, to := br.EndColors()
		c := m.Apply(br.Center)
		prim = prim.WithRadialGradient(c.X, c.Y, br.Radius*m.AverageScale(), from.MulAlpha(opacity), to.MulAlpha(opacity))
	}
	return prim
}

// clipData collapses the clip stack into shader clip parameters.
//
// Rectangular clips (plain or rounded) intersect. Each corner keeps the
// largest radius seen, reduced by how far the intersection edge has moved
// inward from that radius's source rectangle. Elliptical clips cannot be
// intersected, so when no rectangular clip exists the innermost clip is used
// as-is.
func (p *Painter) clipData() (bounds, radius [4]float32, kind ClipType) {
	if len(p.clips) == 0 {
		return NoClipBounds, [4]float32{}, ClipNone
	}

	type cornerSource struct {
		r    float32
		rect compositor.Rect
	}
	var (
		corners  [4]cornerSource
		isect    compositor.Rect
		hasRects bool
	)
	for _, c := range p.clips {
		switch c.kind {
		case compositor.ClipKindRect, compositor.ClipKindRoundedRect:
			if hasRects {
				isect = isect.Intersect(c.rect)
			} else {
				isect, hasRects = c.rect, true
			}
			for i, r := range c.radius.Array() {
				if r > corners[i].r {
					corners[i] = cornerSource{r: r, rect: c.rect}
				}
			}
		}
	}

	if hasRects {
		var radii [4]float32
		for i, cs := range corners {
			if cs.r <= 0 {
				continue
			}
			var dx, dy float32
			switch i {
			case 0: // top-left
				dx, dy = isect.X-cs.rect.X, isect.Y-cs.rect.Y
			case 1: // top-right
				dx, dy = cs.rect.X+cs.rect.W-(isect.X+isect.W), isect.Y-cs.rect.Y
			case 2: // bottom-right
				dx, dy = cs.rect.X+cs.rect.W-(isect.X+isect.W), cs.rect.Y+cs.rect.H-(isect.Y+isect.H)
			case 3: // bottom-left
				dx, dy = isect.X-cs.rect.X, cs.rect.Y+cs.rect.H-(isect.Y+isect.H)
			}
			if dx < cs.r && dy < cs.r {
				radii[i] = math32.Min(cs.r, math32.Max(0, cs.r-math32.Max(dx, 0)))
			}
		}
		return isect.Array(), radii, ClipRect
	}

	top := p.clips[len(p.clips)-1]
	if top.rx == top.ry {
		return [4]float32{top.cx, top.cy, top.rx, top.ry}, [4]float32{top.rx, top.ry, 0, 0}, ClipCircle
	}
	return [4]float32{top.cx, top.cy, top.rx, top.ry}, [4]float32{top.rx, top.ry, 0, 0}, ClipEllipse
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}
