package batch

// Batch accumulates one frame of drawable content. It is rebuilt every
// frame; Clear keeps the backing arrays so steady-state frames do not
// allocate.
type Batch struct {
	// Primitives are drawn in the background pass and captured by the
	// glass backdrop.
	Primitives []Primitive
	// Foreground primitives are drawn after glass and never blurred.
	Foreground []Primitive
	Glass      []GlassPrimitive
	Glyphs     []Glyph
	// Images are drawn after the foreground primitives, grouped by texture.
	Images []ImageInstance

	Paths           PathBatch
	ForegroundPaths PathBatch
	PathState       PathState
}

// New returns an empty batch.
func New() *Batch {
	return &Batch{PathState: DefaultPathState()}
}

// Push appends a primitive to the normal list.
func (b *Batch) Push(p Primitive) { b.Primitives = append(b.Primitives, p) }

// PushForeground appends a primitive drawn after the glass pass.
func (b *Batch) PushForeground(p Primitive) { b.Foreground = append(b.Foreground, p) }

// PushGlass appends a glass primitive.
func (b *Batch) PushGlass(g GlassPrimitive) { b.Glass = append(b.Glass, g) }

// PushGlyph appends a glyph instance.
func (b *Batch) PushGlyph(g Glyph) { b.Glyphs = append(b.Glyphs, g) }

// PushImage appends a textured quad.
func (b *Batch) PushImage(im ImageInstance) { b.Images = append(b.Images, im) }

// PushPath appends tessellated geometry to the normal path list.
func (b *Batch) PushPath(vertices []PathVertex, indices []uint32) {
	b.Paths.Push(vertices, indices)
}

// PushForegroundPath appends tessellated geometry drawn in the foreground.
func (b *Batch) PushForegroundPath(vertices []PathVertex, indices []uint32) {
	b.ForegroundPaths.Push(vertices, indices)
}

// Clear empties every list and resets the path state.
func (b *Batch) Clear() {
	b.Primitives = b.Primitives[:0]
	b.Foreground = b.Foreground[:0]
	b.Glass = b.Glass[:0]
	b.Glyphs = b.Glyphs[:0]
	b.Images = b.Images[:0]
	b.Paths.Clear()
	b.ForegroundPaths.Clear()
	b.PathState = DefaultPathState()
}

// IsEmpty reports whether nothing would be drawn.
func (b *Batch) IsEmpty() bool {
	return len(b.Primitives) == 0 && len(b.Foreground) == 0 && len(b.Glass) == 0 &&
		len(b.Glyphs) == 0 && len(b.Images) == 0 && b.Paths.IsEmpty() && b.ForegroundPaths.IsEmpty()
}

// HasPaths reports whether any path geometry is present.
func (b *Batch) HasPaths() bool {
	return !b.Paths.IsEmpty() || !b.ForegroundPaths.IsEmpty()
}

// ConvertGlyphsToPrimitives converts glyphs to PrimitiveText primitives.
func ConvertGlyphsToPrimitives(glyphs []Glyph) []Primitive {
	out := make([]Primitive, len(glyphs))
	for i := range glyphs {
		out[i] = glyphs[i].Primitive()
	}
	return out
}

// UnifiedForeground returns the foreground primitives followed by the
// glyphs converted to text primitives, for renderers that draw text through
// the SDF pipeline in the same pass.
func (b *Batch) UnifiedForeground() []Primitive {
	out := make([]Primitive, 0, len(b.Foreground)+len(b.Glyphs))
	out = append(out, b.Foreground...)
	for i := range b.Glyphs {
		out = append(out, b.Glyphs[i].Primitive())
	}
	return out
}

// Stats summarizes the batch contents.
type Stats struct {
	Primitives        int
	Foreground        int
	Glass             int
	Glyphs            int
	Images            int
	PathVertices      int
	PathIndices       int
	ForegroundIndices int
}

// Stats returns the current list sizes, which callers compare against the
// renderer's configured capacities.
func (b *Batch) Stats() Stats {
	return Stats{
		Primitives:        len(b.Primitives),
		Foreground:        len(b.Foreground),
		Glass:             len(b.Glass),
		Glyphs:            len(b.Glyphs),
		Images:            len(b.Images),
		PathVertices:      len(b.Paths.Vertices) + len(b.ForegroundPaths.Vertices),
		PathIndices:       len(b.Paths.Indices),
		ForegroundIndices: len(b.ForegroundPaths.Indices),
	}
}
