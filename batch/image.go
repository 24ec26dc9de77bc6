package batch

import "github.com/gogpu/compositor"

// ImageInstanceSize is the encoded size of an ImageInstance in bytes.
const ImageInstanceSize = 64

// ImageInstance is one textured quad drawn by the image pipeline.
type ImageInstance struct {
	// Generation identifies the texture; it is not uploaded.
	Generation uint64

	Bounds     [4]float32
	UV         [4]float32 // u0, v0, u1, v1
	ClipBounds [4]float32
	Params     [4]float32 // opacity, clip type, 0, 0
}

// NewImageInstance returns an unclipped image quad. A zero uv rectangle
// selects the whole texture.
func NewImageInstance(generation uint64, bounds, uv compositor.Rect, opacity float32) ImageInstance {
	if uv == (compositor.Rect{}) {
		uv = compositor.R(0, 0, 1, 1)
	}
	return ImageInstance{
		Generation: generation,
		Bounds:     bounds.Array(),
		UV:         [4]float32{uv.X, uv.Y, uv.X + uv.W, uv.Y + uv.H},
		ClipBounds: NoClipBounds,
		Params:     [4]float32{opacity, float32(ClipNone), 0, 0},
	}
}

// AppendImages appends the encoding of image instances to dst.
func AppendImages(dst []byte, images []ImageInstance) []byte {
	off := len(dst)
	dst = grow(dst, len(images)*ImageInstanceSize)
	for i := range images {
		im := &images[i]
		b := dst[off+i*ImageInstanceSize:]
		putVec4(b, 0, im.Bounds)
		putVec4(b, 16, im.UV)
		putVec4(b, 32, im.ClipBounds)
		putVec4(b, 48, im.Params)
	}
	return dst
}

// ImageGroups splits images into runs sharing one texture, preserving order.
func ImageGroups(images []ImageInstance) [][]ImageInstance {
	var groups [][]ImageInstance
	for start := 0; start < len(images); {
		end := start + 1
		for end < len(images) && images[end].Generation == images[start].Generation {
			end++
		}
		groups = append(groups, images[start:end])
		start = end
	}
	return groups
}
