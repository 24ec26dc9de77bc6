package compositor

// Layer is a compositing pass. Nodes are drawn in exactly one layer per
// frame; see the bridge package for how a node's effective layer is chosen.
type Layer uint8

// Compositing layers in draw order.
const (
	LayerBackground Layer = iota
	LayerGlass
	LayerForeground
)

// Layers lists all layers in draw order.
var Layers = [...]Layer{LayerBackground, LayerGlass, LayerForeground}

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerGlass:
		return "glass"
	case LayerForeground:
		return "foreground"
	default:
		return "unknown"
	}
}

// ClipKind identifies the geometry of a ClipShape.
type ClipKind uint8

// Clip kinds.
const (
	ClipKindRect ClipKind = iota
	ClipKindRoundedRect
	ClipKindCircle
	ClipKindEllipse
)

// ClipShape is a clip region in the current coordinate space.
// Circles and ellipses are described by Rect as their bounding box.
type ClipShape struct {
	Kind   ClipKind
	Rect   Rect
	Radius CornerRadius
}

// ClipRect returns a rectangular clip.
func ClipRect(r Rect) ClipShape {
	return ClipShape{Kind: ClipKindRect, Rect: r}
}

// ClipRoundedRect returns a rounded-rectangle clip.
func ClipRoundedRect(r Rect, radius CornerRadius) ClipShape {
	return ClipShape{Kind: ClipKindRoundedRect, Rect: r, Radius: radius}
}

// ClipCircle returns a circular clip.
func ClipCircle(center Point, radius float32) ClipShape {
	return ClipEllipse(center, radius, radius)
}

// ClipEllipse returns an elliptical clip.
func ClipEllipse(center Point, rx, ry float32) ClipShape {
	return ClipShape{
		Kind: ClipKindEllipse,
		Rect: Rect{X: center.X - rx, Y: center.Y - ry, W: rx * 2, H: ry * 2},
	}
}

// DrawContext is the paint sink consumed by the compositor bridge.
//
// Transforms and clips form stacks; every Push must be balanced by the
// matching Pop. Coordinates passed to FillRect and DrawShadow are in the
// space established by the current transform stack.
type DrawContext interface {
	PushTransform(t Transform)
	PopTransform()
	PushClip(c ClipShape)
	PopClip()
	FillRect(r Rect, radius CornerRadius, b Brush)
	DrawShadow(r Rect, radius CornerRadius, s Shadow)
}

// ShapeContext is implemented by DrawContexts that can fill circles and
// arbitrary paths in addition to rounded rectangles.
type ShapeContext interface {
	DrawContext
	FillCircle(center Point, radius float32, b Brush)
	FillPath(p *Path, b Brush)
}

// OpacityContext is implemented by DrawContexts that support group opacity.
type OpacityContext interface {
	PushOpacity(alpha float32)
	PopOpacity()
}
