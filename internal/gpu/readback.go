package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ReadTexture copies a 4-bytes-per-pixel texture into host memory. The
// texture must have been created with CopySrc usage and last used as a
// render attachment.
func ReadTexture(device hal.Device, queue hal.Queue, tex hal.Texture, w, h uint32) ([]byte, error) {
	enc, err := BeginEncoder(device, "readback")
	if err != nil {
		return nil, err
	}

	// Required on Vulkan before copying out of a color attachment.
	enc.raw.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	size := uint64(w) * uint64(h) * 4
	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "readback_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		enc.Discard()
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer device.DestroyBuffer(staging)

	enc.raw.CopyTextureToBuffer(tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	if err := enc.Submit(queue); err != nil {
		return nil, err
	}

	data := make([]byte, size)
	if err := queue.ReadBuffer(staging, 0, data); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}
	return data, nil
}

// SwapRB swaps the red and blue channels of 4-byte pixels in place,
// converting between BGRA and RGBA.
func SwapRB(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

// IsBGRA reports whether format stores blue in the first byte.
func IsBGRA(format gputypes.TextureFormat) bool {
	return format == gputypes.TextureFormatBGRA8Unorm || format == gputypes.TextureFormatBGRA8UnormSrgb
}
