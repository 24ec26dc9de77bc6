package bridge

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/scene"
)

// Text is a text leaf resolved to absolute coordinates.
type Text struct {
	Content  string
	Bounds   compositor.Rect
	FontSize float32
	// Color has the opacity of the node and its ancestors applied.
	Color  compositor.Color
	Align  scene.TextAlign
	Weight scene.FontWeight
	// Clip is the intersection of all clipping ancestors, nil if none.
	Clip *compositor.Rect
}

// SVG is a vector image leaf resolved to absolute coordinates.
type SVG struct {
	Source string
	Bounds compositor.Rect
	Tint   *compositor.Color
	Clip   *compositor.Rect
}

// LayoutRenderer is the frame sink driven by Render. Background receives
// the background and glass layers, Foreground the layer drawn over glass.
// Text and SVG leaves are delivered separately since they are rasterized
// by collaborators outside the primitive batch.
type LayoutRenderer interface {
	Background() compositor.DrawContext
	Foreground() compositor.DrawContext

	RenderTextBackground(t Text)
	RenderTextForeground(t Text)
	RenderSVGBackground(s SVG)
	RenderSVGForeground(s SVG)
}

// Render paints a whole frame: the background and glass layers into
// lr.Background(), the foreground layer into lr.Foreground(), then text
// and SVG leaves.
func (b *Bridge) Render(lr LayoutRenderer) {
	bg := lr.Background()
	b.RenderLayer(bg, compositor.LayerBackground)
	b.RenderLayer(bg, compositor.LayerGlass)
	b.RenderLayer(lr.Foreground(), compositor.LayerForeground)
	b.RenderText(lr)
	b.RenderSVG(lr)
}

// leafState is inherited down the collection passes.
type leafState struct {
	origin      compositor.Point
	insideGlass bool
	opacity     float32
	clip        *compositor.Rect
}

// walkLeaves visits every resolved node with its absolute bounds. Ancestor
// scroll offsets are included in the bounds; transforms are not.
func (b *Bridge) walkLeaves(id scene.NodeID, st leafState, fn func(n *scene.Node, abs compositor.Rect, st leafState)) {
	n := b.tree.Node(id)
	if n == nil {
		return
	}
	local, ok := n.Bounds()
	if !ok {
		return
	}
	abs := local.Translate(st.origin.X, st.origin.Y)
	st.opacity *= min(max(n.Opacity, 0), 1)
	st.insideGlass = st.insideGlass || n.IsGlass()

	fn(n, abs, st)

	if n.ClipsContent {
		c := abs
		if st.clip != nil {
			c = st.clip.Intersect(abs)
		}
		st.clip = &c
	}
	off := b.scroll.Get(id)
	st.origin = compositor.Point{X: abs.X + off.X, Y: abs.Y + off.Y}
	for _, c := range n.Children() {
		b.walkLeaves(c, st, fn)
	}
}

func toForeground(n *scene.Node, st leafState) bool {
	return st.insideGlass || n.Layer == compositor.LayerForeground
}

// RenderText hands every text leaf to lr. Leaves inside glass or on the
// foreground layer go to RenderTextForeground.
func (b *Bridge) RenderText(lr LayoutRenderer) {
	b.walkLeaves(b.tree.Root(), leafState{opacity: 1}, func(n *scene.Node, abs compositor.Rect, st leafState) {
		if n.Type != scene.ElementText || n.Text == nil {
			return
		}
		t := Text{
			Content:  n.Text.Content,
			Bounds:   abs,
			FontSize: n.Text.FontSize,
			Color:    n.Text.Color.MulAlpha(st.opacity),
			Align:    n.Text.Align,
			Weight:   n.Text.Weight,
			Clip:     st.clip,
		}
		if toForeground(n, st) {
			lr.RenderTextForeground(t)
		} else {
			lr.RenderTextBackground(t)
		}
	})
}

// RenderSVG hands every SVG leaf to lr, routed like RenderText.
func (b *Bridge) RenderSVG(lr LayoutRenderer) {
	b.walkLeaves(b.tree.Root(), leafState{opacity: 1}, func(n *scene.Node, abs compositor.Rect, st leafState) {
		if n.Type != scene.ElementSVG || n.SVG == nil {
			return
		}
		s := SVG{Source: n.SVG.Source, Bounds: abs, Tint: n.SVG.Tint, Clip: st.clip}
		if toForeground(n, st) {
			lr.RenderSVGForeground(s)
		} else {
			lr.RenderSVGBackground(s)
		}
	})
}
