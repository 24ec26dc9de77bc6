// Package bridge walks a scene tree and paints it into draw contexts, one
// compositing layer at a time.
//
// A frame is painted in three layer passes (background, glass, foreground)
// followed by two collection passes for text and vector images. Each node
// lands in exactly one layer, its effective layer:
//
//   - a glass node is in the glass layer;
//   - any other node below a glass node is promoted to the foreground, so
//     that it draws on top of the blurred glass surface;
//   - everything else keeps its own Layer.
//
// Geometry is emitted in absolute coordinates. Scroll offsets and node
// transforms are pushed onto the draw context's transform stack; a scroll
// offset moves a container's descendants but never the container itself.
package bridge

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/scene"
	"github.com/gogpu/compositor/scroll"
)

// Bridge paints one scene tree. It holds no per-frame state, so a Bridge
// can be kept across frames as long as the tree and offsets stay the same
// objects.
type Bridge struct {
	tree   *scene.Tree
	scroll *scroll.Offsets
}

// New returns a bridge over tree. offsets may be nil.
func New(tree *scene.Tree, offsets *scroll.Offsets) *Bridge {
	return &Bridge{tree: tree, scroll: offsets}
}

// Tree returns the tree being painted.
func (b *Bridge) Tree() *scene.Tree { return b.tree }

// Offsets returns the scroll offsets read during traversal.
func (b *Bridge) Offsets() *scroll.Offsets { return b.scroll }

func effectiveLayer(n *scene.Node, insideGlass bool) compositor.Layer {
	switch {
	case insideGlass && !n.IsGlass():
		return compositor.LayerForeground
	case n.IsGlass():
		return compositor.LayerGlass
	default:
		return n.Layer
	}
}

// EffectiveLayer returns the layer id is painted in.
func (b *Bridge) EffectiveLayer(id scene.NodeID) (compositor.Layer, bool) {
	n := b.tree.Node(id)
	if n == nil {
		return 0, false
	}
	inside := false
	for p := b.tree.Node(n.Parent()); p != nil; p = b.tree.Node(p.Parent()) {
		if p.IsGlass() {
			inside = true
			break
		}
	}
	return effectiveLayer(n, inside), true
}

// RenderLayer paints the nodes whose effective layer is layer into dc.
func (b *Bridge) RenderLayer(dc compositor.DrawContext, layer compositor.Layer) {
	b.renderNode(dc, b.tree.Root(), compositor.Point{}, layer, false)
}

func (b *Bridge) renderNode(dc compositor.DrawContext, id scene.NodeID, parent compositor.Point, layer compositor.Layer, insideGlass bool) {
	n := b.tree.Node(id)
	if n == nil {
		return
	}
	local, ok := n.Bounds()
	if !ok {
		return
	}
	abs := local.Translate(parent.X, parent.Y)

	transformed := n.Transform != nil && !n.Transform.IsIdentity()
	if transformed {
		c := abs.Center()
		dc.PushTransform(compositor.Translate(c.X, c.Y))
		dc.PushTransform(*n.Transform)
		dc.PushTransform(compositor.Translate(-c.X, -c.Y))
	}
	oc, faded := dc.(compositor.OpacityContext)
	faded = faded && n.Opacity < 1
	if faded {
		oc.PushOpacity(max(n.Opacity, 0))
	}

	if effectiveLayer(n, insideGlass) == layer {
		paintNode(dc, n, abs)
	}

	if n.ClipsContent {
		dc.PushClip(clipFor(abs, n.Radius))
	}
	off := b.scroll.Get(id)
	if !off.IsZero() {
		dc.PushTransform(compositor.Translate(off.X, off.Y))
	}

	childGlass := insideGlass || n.IsGlass()
	origin := abs.Origin()
	for _, c := range n.Children() {
		b.renderNode(dc, c, origin, layer, childGlass)
	}

	if !off.IsZero() {
		dc.PopTransform()
	}
	if n.ClipsContent {
		dc.PopClip()
	}
	if faded {
		oc.PopOpacity()
	}
	if transformed {
		dc.PopTransform()
		dc.PopTransform()
		dc.PopTransform()
	}
}

func paintNode(dc compositor.DrawContext, n *scene.Node, abs compositor.Rect) {
	if g := n.Glass(); g != nil {
		m := *g
		if n.Shadow != nil {
			s := *n.Shadow
			m.Shadow = &s
		}
		dc.FillRect(abs, n.Radius, compositor.Glass(m))
	} else {
		if n.Shadow != nil && n.Shadow.IsVisible() {
			dc.DrawShadow(abs, n.Radius, *n.Shadow)
		}
		if f := n.Fill(); f != nil {
			dc.FillRect(abs, n.Radius, f)
		}
	}

	switch n.Type {
	case scene.ElementImage:
		if img := n.Image; img != nil {
			dc.FillRect(abs, n.Radius, compositor.ImageBrush{
				Generation: img.Generation,
				UV:         img.UV,
				Opacity:    img.Opacity,
			})
		}
	case scene.ElementCanvas:
		if n.Canvas != nil {
			n.Canvas(dc, abs)
		}
	}
}

// clipFor returns a rounded clip only when all four radii agree; mixed
// radii fall back to the plain rectangle.
func clipFor(r compositor.Rect, radius compositor.CornerRadius) compositor.ClipShape {
	if !radius.IsZero() && radius.IsUniform() {
		return compositor.ClipRoundedRect(r, radius)
	}
	return compositor.ClipRect(r)
}
