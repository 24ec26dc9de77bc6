package batch

import (
	"encoding/binary"
	"math"
)

// UniformsSize is the size of the viewport uniform block shared by the SDF,
// text, image and glass pipelines.
const UniformsSize = 16

func putF32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
}

func putVec4(buf []byte, off int, v [4]float32) {
	for i, f := range v {
		putF32(buf, off+i*4, f)
	}
}

func putUVec4(buf []byte, off int, v [4]uint32) {
	for i, u := range v {
		binary.LittleEndian.PutUint32(buf[off+i*4:off+i*4+4], u)
	}
}

// EncodeUniforms returns the 16-byte viewport block: width, height, time and
// one pad word. Pipelines that do not animate pass zero for time.
func EncodeUniforms(w, h, time float32) []byte {
	buf := make([]byte, UniformsSize)
	putF32(buf, 0, w)
	putF32(buf, 4, h)
	putF32(buf, 8, time)
	return buf
}

// AppendPrimitives appends the encoding of prims to dst.
func AppendPrimitives(dst []byte, prims []Primitive) []byte {
	off := len(dst)
	dst = grow(dst, len(prims)*PrimitiveSize)
	for i := range prims {
		p := &prims[i]
		b := dst[off+i*PrimitiveSize:]
		putVec4(b, 0, p.Bounds)
		putVec4(b, 16, p.CornerRadius)
		putVec4(b, 32, p.Color)
		putVec4(b, 48, p.Color2)
		putVec4(b, 64, p.Border)
		putVec4(b, 80, p.BorderColor)
		putVec4(b, 96, p.Shadow)
		putVec4(b, 112, p.ShadowColor)
		putVec4(b, 128, p.ClipBounds)
		putVec4(b, 144, p.ClipRadius)
		putVec4(b, 160, p.GradientParams)
		putUVec4(b, 176, p.TypeInfo)
	}
	return dst
}

// AppendGlass appends the encoding of glass primitives to dst.
func AppendGlass(dst []byte, glass []GlassPrimitive) []byte {
	off := len(dst)
	dst = grow(dst, len(glass)*GlassPrimitiveSize)
	for i := range glass {
		g := &glass[i]
		b := dst[off+i*GlassPrimitiveSize:]
		putVec4(b, 0, g.Bounds)
		putVec4(b, 16, g.CornerRadius)
		putVec4(b, 32, g.Tint)
		putVec4(b, 48, g.Params)
		putVec4(b, 64, g.Params2)
		putUVec4(b, 80, g.TypeInfo)
		putVec4(b, 96, g.ClipBounds)
		putVec4(b, 112, g.ClipRadius)
	}
	return dst
}

// AppendGlyphs appends the encoding of glyphs to dst.
func AppendGlyphs(dst []byte, glyphs []Glyph) []byte {
	off := len(dst)
	dst = grow(dst, len(glyphs)*GlyphSize)
	for i := range glyphs {
		g := &glyphs[i]
		b := dst[off+i*GlyphSize:]
		putVec4(b, 0, g.Bounds)
		putVec4(b, 16, g.UVBounds)
		putVec4(b, 32, g.Color)
		putVec4(b, 48, g.ClipBounds)
		putUVec4(b, 64, g.Flags)
	}
	return dst
}

// AppendPathVertices appends the encoding of path vertices to dst.
func AppendPathVertices(dst []byte, vertices []PathVertex) []byte {
	off := len(dst)
	dst = grow(dst, len(vertices)*PathVertexSize)
	for i := range vertices {
		v := &vertices[i]
		b := dst[off+i*PathVertexSize:]
		putF32(b, 0, v.Position[0])
		putF32(b, 4, v.Position[1])
		putF32(b, 8, v.UV[0])
		putF32(b, 12, v.UV[1])
		putVec4(b, 16, v.Color)
		putVec4(b, 32, v.EndColor)
	}
	return dst
}

// AppendIndices appends uint32 indices to dst.
func AppendIndices(dst []byte, indices []uint32) []byte {
	off := len(dst)
	dst = grow(dst, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(dst[off+i*4:off+i*4+4], idx)
	}
	return dst
}

// Encode returns the 160-byte uniform block.
func (u *PathUniforms) Encode() []byte {
	b := make([]byte, PathUniformsSize)
	putF32(b, 0, u.Viewport[0])
	putF32(b, 4, u.Viewport[1])
	putF32(b, 8, u.Opacity)
	for i, row := range u.Transform {
		putVec4(b, 16+i*16, row)
	}
	putVec4(b, 64, u.ClipBounds)
	putVec4(b, 80, u.ClipRadius)
	putUVec4(b, 96, u.Flags)
	putVec4(b, 112, u.ImageUV)
	putVec4(b, 128, u.GlassParams)
	putVec4(b, 144, u.GlassTint)
	return b
}

func grow(b []byte, n int) []byte {
	if n == 0 {
		return b
	}
	b = append(b, make([]byte, n)...)
	return b
}
