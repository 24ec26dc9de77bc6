package gpu

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// TextureKey identifies the texture content a bind group samples.
type TextureKey struct {
	Generation uint64
}

// TargetKey identifies an offscreen target configuration.
type TargetKey struct {
	Width, Height uint32
	SampleCount   uint32
}

// BindGroupCache holds one bind group together with the key it was built
// for. The group is reused while the key is unchanged and rebuilt exactly
// once when it changes.
type BindGroupCache[K comparable] struct {
	label    string
	group    hal.BindGroup
	key      K
	rebuilds int
}

// NewBindGroupCache returns an empty cache. The label is used in logs.
func NewBindGroupCache[K comparable](label string) *BindGroupCache[K] {
	return &BindGroupCache[K]{label: label}
}

// Get returns the cached group if it was built for key; otherwise it
// destroys the stale group and calls build.
func (c *BindGroupCache[K]) Get(device hal.Device, key K, build func() (hal.BindGroup, error)) (hal.BindGroup, error) {
	if c.group != nil && c.key == key {
		return c.group, nil
	}
	c.Invalidate(device)
	group, err := build()
	if err != nil {
		return nil, fmt.Errorf("build %s bind group: %w", c.label, err)
	}
	c.group = group
	c.key = key
	c.rebuilds++
	slogger().Debug("gpu: bind group rebuilt", "label", c.label, "key", key, "rebuilds", c.rebuilds)
	return group, nil
}

// Rebuilds returns how many times a group has been built.
func (c *BindGroupCache[K]) Rebuilds() int { return c.rebuilds }

// Invalidate destroys the cached group so the next Get rebuilds it.
func (c *BindGroupCache[K]) Invalidate(device hal.Device) {
	if c.group != nil {
		device.DestroyBindGroup(c.group)
		c.group = nil
	}
	var zero K
	c.key = zero
}
