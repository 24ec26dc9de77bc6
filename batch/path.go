package batch

import "github.com/gogpu/compositor"

// PathVertexSize is the encoded size of a PathVertex in bytes.
const PathVertexSize = 48

// PathUniformsSize is the encoded size of PathUniforms in bytes.
const PathUniformsSize = 160

// PathVertex is one tessellated path vertex.
type PathVertex struct {
	Position [2]float32
	// UV carries the gradient parameter t in UV[0]; UV[1] is reserved for
	// image fills.
	UV       [2]float32
	Color    [4]float32
	EndColor [4]float32
}

// PathBatch is indexed triangle-list geometry.
type PathBatch struct {
	Vertices []PathVertex
	Indices  []uint32
}

// Push appends vertices and indices. Indices are relative to vertices and
// are offset by the number of vertices already in the batch.
func (p *PathBatch) Push(vertices []PathVertex, indices []uint32) {
	base := uint32(len(p.Vertices))
	p.Vertices = append(p.Vertices, vertices...)
	for _, i := range indices {
		p.Indices = append(p.Indices, base+i)
	}
}

// IsEmpty reports whether the batch has no triangles.
func (p *PathBatch) IsEmpty() bool { return len(p.Indices) == 0 }

// Clear empties the batch, keeping capacity.
func (p *PathBatch) Clear() {
	p.Vertices = p.Vertices[:0]
	p.Indices = p.Indices[:0]
}

// PathFlag bits stored in PathUniforms.Flags[1].
const (
	PathGradient uint32 = 1 << iota
	PathImage
	PathGlass
)

// PathState is the frame-level state applied to all path geometry by the
// path shader.
type PathState struct {
	ClipBounds [4]float32
	ClipRadius [4]float32
	ClipType   ClipType
	Flags      uint32
	ImageUV    [4]float32
	// GlassParams holds blur, saturation, brightness and noise.
	GlassParams [4]float32
	GlassTint   [4]float32
	Opacity     float32
	Transform   compositor.Transform
}

// DefaultPathState returns an unclipped, opaque identity state.
func DefaultPathState() PathState {
	return PathState{
		ClipBounds: NoClipBounds,
		ImageUV:    [4]float32{0, 0, 1, 1},
		Opacity:    1,
		Transform:  compositor.Identity(),
	}
}

// PathUniforms is the uniform block consumed by the path shader.
type PathUniforms struct {
	Viewport    [2]float32
	Opacity     float32
	Transform   [3][4]float32
	ClipBounds  [4]float32
	ClipRadius  [4]float32
	Flags       [4]uint32 // clip type, flags, 0, 0
	ImageUV     [4]float32
	GlassParams [4]float32
	GlassTint   [4]float32
}

// Uniforms builds the shader uniform block for a viewport of w×h pixels.
func (s *PathState) Uniforms(w, h float32) PathUniforms {
	return PathUniforms{
		Viewport:    [2]float32{w, h},
		Opacity:     s.Opacity,
		Transform:   s.Transform.Rows(),
		ClipBounds:  s.ClipBounds,
		ClipRadius:  s.ClipRadius,
		Flags:       [4]uint32{uint32(s.ClipType), s.Flags, 0, 0},
		ImageUV:     s.ImageUV,
		GlassParams: s.GlassParams,
		GlassTint:   s.GlassTint,
	}
}
