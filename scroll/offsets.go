package scroll

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/scene"
)

// Vec is a 2-D scroll offset, velocity or extent.
type Vec struct {
	X, Y float32
}

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool { return v == Vec{} }

// Add returns v+w.
func (v Vec) Add(w Vec) Vec { return Vec{X: v.X + w.X, Y: v.Y + w.Y} }

// Scale returns v*f.
func (v Vec) Scale(f float32) Vec { return Vec{X: v.X * f, Y: v.Y * f} }

// Clamp bounds offset to [-(content-viewport), 0] when content exceeds the
// viewport, and to exactly 0 otherwise.
func Clamp(offset, viewport, content float32) float32 {
	return clamp(offset, minOffset(viewport, content), 0)
}

// Offsets maps scroll containers to their content offsets. It is mutated by
// event dispatch between frames and read by the bridge while it walks the
// tree; it is not safe for concurrent use.
type Offsets struct {
	offsets map[scene.NodeID]Vec
	physics map[scene.NodeID]*Physics
	config  Config
}

// NewOffsets returns an empty store. Physics objects created through it
// start from DefaultConfig.
func NewOffsets() *Offsets {
	return &Offsets{
		offsets: make(map[scene.NodeID]Vec),
		physics: make(map[scene.NodeID]*Physics),
		config:  DefaultConfig(),
	}
}

// SetConfig sets the configuration used for Physics objects created later.
func (o *Offsets) SetConfig(cfg Config) { o.config = cfg }

// Get returns the offset of id, zero if it has none.
func (o *Offsets) Get(id scene.NodeID) Vec {
	if o == nil {
		return Vec{}
	}
	return o.offsets[id]
}

// Set replaces the offset of id. Setting zero removes the entry.
func (o *Offsets) Set(id scene.NodeID, v Vec) {
	if p := o.physics[id]; p != nil {
		p.Offset = v
	}
	o.put(id, v)
}

func (o *Offsets) put(id scene.NodeID, v Vec) {
	if v.IsZero() {
		delete(o.offsets, id)
		return
	}
	o.offsets[id] = v
}

// ApplyDelta adds (dx, dy) to the offset of id. A container with a Physics
// object routes the delta through it so rubber-banding applies.
func (o *Offsets) ApplyDelta(id scene.NodeID, dx, dy float32) Vec {
	if p := o.physics[id]; p != nil {
		p.ApplyDelta(dx, dy)
		o.put(id, p.Offset)
		return p.Offset
	}
	v := o.offsets[id].Add(Vec{X: dx, Y: dy})
	o.put(id, v)
	return v
}

// ApplyDeltaWithBounds adds (dx, dy) and clamps each axis with Clamp.
func (o *Offsets) ApplyDeltaWithBounds(id scene.NodeID, dx, dy float32, viewport, content compositor.Size) Vec {
	v := o.offsets[id]
	v.X = Clamp(v.X+dx, viewport.W, content.W)
	v.Y = Clamp(v.Y+dy, viewport.H, content.H)
	if p := o.physics[id]; p != nil {
		p.Offset = v
		p.SetExtents(Vec{X: viewport.W, Y: viewport.H}, Vec{X: content.W, Y: content.H})
	}
	o.put(id, v)
	return v
}

// Physics returns the physics object of id, creating one seeded with the
// current offset.
func (o *Offsets) Physics(id scene.NodeID) *Physics {
	if p := o.physics[id]; p != nil {
		return p
	}
	p := NewPhysics(o.config)
	p.Offset = o.offsets[id]
	o.physics[id] = p
	return p
}

// Tick advances every physics object and copies the results into the
// offsets. It reports whether any container is still animating.
func (o *Offsets) Tick(dt float32) bool {
	active := false
	for id, p := range o.physics {
		if p.Tick(dt) {
			active = true
		}
		o.put(id, p.Offset)
	}
	return active
}

// Remove drops the offset and physics of id.
func (o *Offsets) Remove(id scene.NodeID) {
	delete(o.offsets, id)
	delete(o.physics, id)
}

// Len returns the number of containers with a non-zero offset.
func (o *Offsets) Len() int { return len(o.offsets) }

// TransferFrom copies the entries of old whose handles keep accepts, which
// is typically the new tree's Contains. Existing entries are overwritten.
func (o *Offsets) TransferFrom(old *Offsets, keep func(scene.NodeID) bool) int {
	return o.TransferMapped(old, func(id scene.NodeID) (scene.NodeID, bool) {
		return id, keep(id)
	})
}

// TransferMapped copies the entries of old under the handles remap
// returns, dropping those it rejects.
func (o *Offsets) TransferMapped(old *Offsets, remap func(scene.NodeID) (scene.NodeID, bool)) int {
	if old == nil || old == o {
		return 0
	}
	n := 0
	for id, v := range old.offsets {
		if nid, ok := remap(id); ok {
			o.offsets[nid] = v
			n++
		}
	}
	for id, p := range old.physics {
		if nid, ok := remap(id); ok {
			o.physics[nid] = p
		}
	}
	compositor.Logger().Debug("scroll: offsets transferred", "kept", n, "dropped", len(old.offsets)-n)
	return n
}
