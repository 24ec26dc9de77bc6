package scene

import (
	"fmt"

	"github.com/gogpu/compositor"
)

// NodeID is a stable handle to a node: an arena index and the generation
// of that slot. The zero value refers to no node.
type NodeID struct {
	index uint32
	gen   uint32
}

// NoNode is the zero NodeID.
var NoNode NodeID

// IsValid reports whether id was issued by a Tree. It does not check that
// the node still exists; use Tree.Contains for that.
func (id NodeID) IsValid() bool { return id.gen != 0 }

// Index returns the arena index.
func (id NodeID) Index() uint32 { return id.index }

// String returns a debug form such as "3v1".
func (id NodeID) String() string {
	if !id.IsValid() {
		return "none"
	}
	return fmt.Sprintf("%dv%d", id.index, id.gen)
}

// ElementType tags what a node renders beyond its box.
type ElementType uint8

// Element types.
const (
	ElementContainer ElementType = iota
	ElementText
	ElementSVG
	ElementCanvas
	ElementImage
)

func (t ElementType) String() string {
	switch t {
	case ElementContainer:
		return "container"
	case ElementText:
		return "text"
	case ElementSVG:
		return "svg"
	case ElementCanvas:
		return "canvas"
	case ElementImage:
		return "image"
	default:
		return fmt.Sprintf("ElementType(%d)", t)
	}
}

// TextAlign is the horizontal alignment of a text run in its box.
type TextAlign uint8

// Text alignments.
const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// FontWeight is a CSS-style font weight.
type FontWeight uint16

// Common weights.
const (
	WeightNormal FontWeight = 400
	WeightBold   FontWeight = 700
)

// TextData is the payload of a text leaf.
type TextData struct {
	Content  string
	FontSize float32
	Color    compositor.Color
	Align    TextAlign
	Weight   FontWeight
}

// SVGData is the payload of a vector image leaf.
type SVGData struct {
	Source string
	Tint   *compositor.Color
}

// ImageData is the payload of a raster image leaf.
type ImageData struct {
	// Generation identifies the GPU texture holding the image.
	Generation uint64
	// UV is the normalized source rectangle; zero means the whole image.
	UV compositor.Rect
	// Opacity follows Node.Opacity: zero hides the image.
	Opacity float32
}

// Image returns the payload of an opaque image showing the whole texture.
func Image(generation uint64) ImageData {
	return ImageData{Generation: generation, Opacity: 1}
}

// Node is one visual element. Its bounds are relative to its parent and may
// be unresolved while layout is in progress.
//
// A node has either a plain fill or a glass material, never both: setting
// one clears the other.
type Node struct {
	// Key identifies the node across rebuilds; empty keys are not indexed.
	Key  string
	Type ElementType

	Radius       compositor.CornerRadius
	Shadow       *compositor.Shadow
	Layer        compositor.Layer
	ClipsContent bool
	// Transform is applied about the center of the node.
	Transform *compositor.Transform
	// Opacity multiplies into the node's paint and its subtree. Nodes built
	// with the constructors in this package start at 1.
	Opacity float32

	Text  *TextData
	SVG   *SVGData
	Image *ImageData
	// Canvas paints custom content of an ElementCanvas node in its layer
	// pass. bounds are absolute.
	Canvas func(dc compositor.DrawContext, bounds compositor.Rect)

	bounds   compositor.Rect
	resolved bool
	fill     compositor.Brush
	glass    *compositor.GlassMaterial

	parent   NodeID
	children []NodeID
}

// Container returns a container node with resolved bounds.
func Container(bounds compositor.Rect) Node {
	return Node{Type: ElementContainer, Opacity: 1, bounds: bounds, resolved: true}
}

// TextNode returns a text leaf.
func TextNode(bounds compositor.Rect, text TextData) Node {
	n := Container(bounds)
	n.Type = ElementText
	n.Text = &text
	return n
}

// SVGNode returns a vector image leaf.
func SVGNode(bounds compositor.Rect, svg SVGData) Node {
	n := Container(bounds)
	n.Type = ElementSVG
	n.SVG = &svg
	return n
}

// ImageNode returns a raster image leaf.
func ImageNode(bounds compositor.Rect, img ImageData) Node {
	n := Container(bounds)
	n.Type = ElementImage
	n.Image = &img
	return n
}

// CanvasNode returns a node painted by fn.
func CanvasNode(bounds compositor.Rect, fn func(dc compositor.DrawContext, bounds compositor.Rect)) Node {
	n := Container(bounds)
	n.Type = ElementCanvas
	n.Canvas = fn
	return n
}

// Bounds returns the layout bounds relative to the parent and whether they
// have been resolved.
func (n *Node) Bounds() (compositor.Rect, bool) { return n.bounds, n.resolved }

// SetBounds sets resolved layout bounds.
func (n *Node) SetBounds(r compositor.Rect) *Node {
	n.bounds, n.resolved = r, true
	return n
}

// ClearBounds marks the bounds unresolved.
func (n *Node) ClearBounds() *Node {
	n.resolved = false
	return n
}

// Fill returns the plain fill brush, or nil.
func (n *Node) Fill() compositor.Brush { return n.fill }

// Glass returns the glass material, or nil.
func (n *Node) Glass() *compositor.GlassMaterial { return n.glass }

// IsGlass reports whether the node has a glass material.
func (n *Node) IsGlass() bool { return n.glass != nil }

// SetFill sets a plain fill and clears any glass material. A GlassBrush is
// treated as SetGlass.
func (n *Node) SetFill(b compositor.Brush) *Node {
	if g, ok := b.(compositor.GlassBrush); ok {
		return n.SetGlass(g.Material)
	}
	n.fill, n.glass = b, nil
	return n
}

// SetGlass sets a glass material and clears any plain fill.
func (n *Node) SetGlass(m compositor.GlassMaterial) *Node {
	n.glass, n.fill = &m, nil
	return n
}

// ClearFill removes both the fill and the glass material.
func (n *Node) ClearFill() *Node {
	n.fill, n.glass = nil, nil
	return n
}

// Parent returns the parent handle, or NoNode for the root.
func (n *Node) Parent() NodeID { return n.parent }

// Children returns the child handles in paint order. The slice is owned by
// the tree.
func (n *Node) Children() []NodeID { return n.children }
