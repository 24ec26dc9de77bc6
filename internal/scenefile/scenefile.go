// Package scenefile loads scene trees from YAML documents.
//
// A document has a single root node:
//
//	root:
//	  bounds: [0, 0, 800, 600]
//	  fill: "#1e2430"
//	  children:
//	    - key: panel
//	      bounds: [40, 40, 320, 200]
//	      glass: regular
//	      radius: 16
//	      shadow: {offset: [0, 8], blur: 24, color: "#00000066"}
//	      children:
//	        - text: {content: "Hello", size: 18, color: "#ffffff"}
//	          bounds: [16, 16, 200, 24]
//
// Colors are hex strings as accepted by compositor.Hex.
package scenefile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/scene"
	"github.com/gogpu/compositor/scroll"
)

// ErrNoRoot is returned for documents without a root node.
var ErrNoRoot = errors.New("scenefile: document has no root")

type document struct {
	Root *nodeDef `yaml:"root"`
}

type nodeDef struct {
	Key       string        `yaml:"key"`
	Bounds    *[4]float32   `yaml:"bounds"`
	Fill      string        `yaml:"fill"`
	Glass     *glassDef     `yaml:"glass"`
	Radius    radiusDef     `yaml:"radius"`
	Shadow    *shadowDef    `yaml:"shadow"`
	Layer     string        `yaml:"layer"`
	Clip      bool          `yaml:"clip"`
	Opacity   *float32      `yaml:"opacity"`
	Transform *transformDef `yaml:"transform"`
	Scroll    *[2]float32   `yaml:"scroll"`
	Text      *textDef      `yaml:"text"`
	SVG       *svgDef       `yaml:"svg"`
	Children  []*nodeDef    `yaml:"children"`
}

type glassDef struct {
	Type       string   `yaml:"type"`
	Blur       *float32 `yaml:"blur"`
	Tint       string   `yaml:"tint"`
	Saturation *float32 `yaml:"saturation"`
	Brightness *float32 `yaml:"brightness"`
	Noise      *float32 `yaml:"noise"`
}

// UnmarshalYAML accepts either a preset name or a mapping.
func (g *glassDef) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		g.Type = n.Value
		return nil
	}
	type plain glassDef
	return n.Decode((*plain)(g))
}

// radiusDef is a single radius or four per-corner radii.
type radiusDef []float32

func (r *radiusDef) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		var v float32
		if err := n.Decode(&v); err != nil {
			return err
		}
		*r = radiusDef{v}
		return nil
	}
	var vs []float32
	if err := n.Decode(&vs); err != nil {
		return err
	}
	if len(vs) != 4 {
		return fmt.Errorf("line %d: radius needs 1 or 4 values, got %d", n.Line, len(vs))
	}
	*r = vs
	return nil
}

func (r radiusDef) corners() compositor.CornerRadius {
	switch len(r) {
	case 1:
		return compositor.Uniform(r[0])
	case 4:
		return compositor.CornerRadius{TopLeft: r[0], TopRight: r[1], BottomRight: r[2], BottomLeft: r[3]}
	}
	return compositor.CornerRadius{}
}

type shadowDef struct {
	Offset [2]float32 `yaml:"offset"`
	Blur   float32    `yaml:"blur"`
	Spread float32    `yaml:"spread"`
	Color  string     `yaml:"color"`
}

type transformDef struct {
	Rotate    float32     `yaml:"rotate"` // degrees
	Scale     *[2]float32 `yaml:"scale"`
	Translate *[2]float32 `yaml:"translate"`
}

type textDef struct {
	Content string  `yaml:"content"`
	Size    float32 `yaml:"size"`
	Color   string  `yaml:"color"`
	Align   string  `yaml:"align"`
	Weight  uint16  `yaml:"weight"`
}

type svgDef struct {
	Source string `yaml:"source"`
	Tint   string `yaml:"tint"`
}

// Result is a loaded scene.
type Result struct {
	Tree *scene.Tree
	// Scroll holds the initial offsets of scrolled nodes.
	Scroll map[scene.NodeID]scroll.Vec
}

// Offsets returns the initial scroll offsets as a store.
func (r *Result) Offsets() *scroll.Offsets {
	o := scroll.NewOffsets()
	for id, v := range r.Scroll {
		o.Set(id, v)
	}
	return o
}

// Load decodes a YAML scene. Unknown fields are errors.
func Load(r io.Reader) (*Result, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRoot
		}
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	if doc.Root == nil {
		return nil, ErrNoRoot
	}

	res := &Result{Tree: scene.New(), Scroll: make(map[scene.NodeID]scroll.Vec)}
	root, err := doc.Root.build("root")
	if err != nil {
		return nil, err
	}
	id := res.Tree.SetRoot(root)
	if err := res.addChildren(id, doc.Root, "root"); err != nil {
		return nil, err
	}
	return res, nil
}

func (res *Result) addChildren(parent scene.NodeID, def *nodeDef, path string) error {
	if def.Scroll != nil {
		res.Scroll[parent] = scroll.Vec{X: def.Scroll[0], Y: def.Scroll[1]}
	}
	for i, c := range def.Children {
		cpath := fmt.Sprintf("%s.children[%d]", path, i)
		if c.Key != "" {
			cpath = c.Key
		}
		n, err := c.build(cpath)
		if err != nil {
			return err
		}
		id := res.Tree.Add(parent, n)
		if err := res.addChildren(id, c, cpath); err != nil {
			return err
		}
	}
	return nil
}

func (d *nodeDef) build(path string) (scene.Node, error) {
	var n scene.Node
	var bounds compositor.Rect
	if d.Bounds != nil {
		bounds = compositor.R(d.Bounds[0], d.Bounds[1], d.Bounds[2], d.Bounds[3])
	}

	switch {
	case d.Text != nil && d.SVG != nil:
		return n, fmt.Errorf("scenefile: %s: text and svg are exclusive", path)
	case d.Text != nil:
		td, err := d.Text.data()
		if err != nil {
			return n, fmt.Errorf("scenefile: %s: %w", path, err)
		}
		n = scene.TextNode(bounds, td)
	case d.SVG != nil:
		sd := scene.SVGData{Source: d.SVG.Source}
		if d.SVG.Tint != "" {
			c, err := compositor.Hex(d.SVG.Tint)
			if err != nil {
				return n, fmt.Errorf("scenefile: %s: svg tint: %w", path, err)
			}
			sd.Tint = &c
		}
		n = scene.SVGNode(bounds, sd)
	default:
		n = scene.Container(bounds)
	}
	if d.Bounds == nil {
		n.ClearBounds()
	}

	n.Key = d.Key
	n.Radius = d.Radius.corners()
	n.ClipsContent = d.Clip
	if d.Opacity != nil {
		n.Opacity = *d.Opacity
	}

	if d.Fill != "" && d.Glass != nil {
		return n, fmt.Errorf("scenefile: %s: fill and glass are exclusive", path)
	}
	if d.Fill != "" {
		c, err := compositor.Hex(d.Fill)
		if err != nil {
			return n, fmt.Errorf("scenefile: %s: fill: %w", path, err)
		}
		n.SetFill(compositor.Solid(c))
	}
	if d.Glass != nil {
		m, err := d.Glass.material()
		if err != nil {
			return n, fmt.Errorf("scenefile: %s: glass: %w", path, err)
		}
		n.SetGlass(m)
	}
	if d.Shadow != nil {
		s, err := d.Shadow.shadow()
		if err != nil {
			return n, fmt.Errorf("scenefile: %s: shadow: %w", path, err)
		}
		n.Shadow = &s
	}
	layer, err := parseLayer(d.Layer)
	if err != nil {
		return n, fmt.Errorf("scenefile: %s: %w", path, err)
	}
	n.Layer = layer
	if d.Transform != nil {
		t := d.Transform.transform()
		n.Transform = &t
	}
	return n, nil
}

func parseLayer(s string) (compositor.Layer, error) {
	for _, l := range compositor.Layers {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	if s == "" {
		return compositor.LayerBackground, nil
	}
	return 0, fmt.Errorf("unknown layer %q", s)
}

func parseGlassType(s string) (compositor.GlassType, error) {
	if s == "" {
		return compositor.GlassRegular, nil
	}
	for t := compositor.GlassUltraThin; t <= compositor.GlassChrome; t++ {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown glass type %q", s)
}

func (g *glassDef) material() (compositor.GlassMaterial, error) {
	t, err := parseGlassType(g.Type)
	if err != nil {
		return compositor.GlassMaterial{}, err
	}
	m := compositor.NewGlassMaterial(t)
	if g.Blur != nil {
		m.Blur = *g.Blur
	}
	if g.Tint != "" {
		c, err := compositor.Hex(g.Tint)
		if err != nil {
			return m, err
		}
		m.Tint = c
	}
	if g.Saturation != nil {
		m.Saturation = *g.Saturation
	}
	if g.Brightness != nil {
		m.Brightness = *g.Brightness
	}
	if g.Noise != nil {
		m.Noise = *g.Noise
	}
	return m, nil
}

func (s *shadowDef) shadow() (compositor.Shadow, error) {
	out := compositor.Shadow{
		OffsetX: s.Offset[0],
		OffsetY: s.Offset[1],
		Blur:    s.Blur,
		Spread:  s.Spread,
		Color:   compositor.RGBA(0, 0, 0, 0.25),
	}
	if s.Color != "" {
		c, err := compositor.Hex(s.Color)
		if err != nil {
			return out, err
		}
		out.Color = c
	}
	return out, nil
}

func (t *transformDef) transform() compositor.Transform {
	m := compositor.Identity()
	if t.Translate != nil {
		m = m.Multiply(compositor.Translate(t.Translate[0], t.Translate[1]))
	}
	if t.Rotate != 0 {
		m = m.Multiply(compositor.RotateDegrees(t.Rotate))
	}
	if t.Scale != nil {
		m = m.Multiply(compositor.Scale(t.Scale[0], t.Scale[1]))
	}
	return m
}

var aligns = map[string]scene.TextAlign{
	"":       scene.AlignLeft,
	"left":   scene.AlignLeft,
	"center": scene.AlignCenter,
	"right":  scene.AlignRight,
}

func (t *textDef) data() (scene.TextData, error) {
	td := scene.TextData{
		Content:  t.Content,
		FontSize: t.Size,
		Color:    compositor.Black,
		Weight:   scene.FontWeight(t.Weight),
	}
	if td.FontSize == 0 {
		td.FontSize = 14
	}
	if td.Weight == 0 {
		td.Weight = scene.WeightNormal
	}
	a, ok := aligns[strings.ToLower(t.Align)]
	if !ok {
		return td, fmt.Errorf("unknown text align %q", t.Align)
	}
	td.Align = a
	if t.Color != "" {
		c, err := compositor.Hex(t.Color)
		if err != nil {
			return td, fmt.Errorf("text color: %w", err)
		}
		td.Color = c
	}
	return td, nil
}
