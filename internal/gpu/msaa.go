package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// TargetPair is a multisampled color texture with its single-sample
// resolve texture. The resolve texture can be sampled and copied.
type TargetPair struct {
	Key         TargetKey
	Generation  uint64
	MSAA        hal.Texture
	MSAAView    hal.TextureView
	Resolve     hal.Texture
	ResolveView hal.TextureView
}

// TargetCache keeps one TargetPair alive and recreates it only when the
// requested size or sample count changes.
type TargetCache struct {
	label   string
	format  gputypes.TextureFormat
	pair    *TargetPair
	creates int
}

// NewTargetCache returns an empty cache producing textures in format.
func NewTargetCache(label string, format gputypes.TextureFormat) *TargetCache {
	return &TargetCache{label: label, format: format}
}

// Ensure returns a pair matching key, creating it if needed.
func (c *TargetCache) Ensure(device hal.Device, key TargetKey) (*TargetPair, error) {
	if c.pair != nil && c.pair.Key == key {
		return c.pair, nil
	}
	c.Destroy(device)

	size := hal.Extent3D{Width: key.Width, Height: key.Height, DepthOrArrayLayers: 1}
	p := &TargetPair{Key: key, Generation: NextGeneration()}
	var err error

	p.MSAA, err = device.CreateTexture(&hal.TextureDescriptor{
		Label:         c.label + "_msaa",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   key.SampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        c.format,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s MSAA texture: %w", c.label, err)
	}
	c.pair = p

	p.MSAAView, err = device.CreateTextureView(p.MSAA, c.viewDesc("_msaa_view"))
	if err != nil {
		c.Destroy(device)
		return nil, fmt.Errorf("create %s MSAA view: %w", c.label, err)
	}

	p.Resolve, err = device.CreateTexture(&hal.TextureDescriptor{
		Label:         c.label + "_resolve",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        c.format,
		Usage: gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		c.Destroy(device)
		return nil, fmt.Errorf("create %s resolve texture: %w", c.label, err)
	}

	p.ResolveView, err = device.CreateTextureView(p.Resolve, c.viewDesc("_resolve_view"))
	if err != nil {
		c.Destroy(device)
		return nil, fmt.Errorf("create %s resolve view: %w", c.label, err)
	}

	c.creates++
	slogger().Debug("gpu: MSAA targets created", "label", c.label,
		"width", key.Width, "height", key.Height, "samples", key.SampleCount)
	return p, nil
}

func (c *TargetCache) viewDesc(suffix string) *hal.TextureViewDescriptor {
	return &hal.TextureViewDescriptor{
		Label:         c.label + suffix,
		Format:        c.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	}
}

// Creates returns how many pairs have been created.
func (c *TargetCache) Creates() int { return c.creates }

// Destroy releases the current pair, if any.
func (c *TargetCache) Destroy(device hal.Device) {
	p := c.pair
	if p == nil {
		return
	}
	if p.ResolveView != nil {
		device.DestroyTextureView(p.ResolveView)
	}
	if p.Resolve != nil {
		device.DestroyTexture(p.Resolve)
	}
	if p.MSAAView != nil {
		device.DestroyTextureView(p.MSAAView)
	}
	if p.MSAA != nil {
		device.DestroyTexture(p.MSAA)
	}
	c.pair = nil
}
