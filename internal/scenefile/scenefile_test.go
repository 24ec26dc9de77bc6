package scenefile

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/scene"
	"github.com/gogpu/compositor/scroll"
)

const sample = `
root:
  key: window
  bounds: [0, 0, 800, 600]
  fill: "#ffffff"
  children:
    - key: list
      bounds: [0, 0, 300, 600]
      clip: true
      scroll: [0, -120]
      children:
        - key: row
          bounds: [0, 0, 300, 40]
          text: {content: "Inbox", size: 16, color: "#102030", align: center, weight: 700}
    - key: panel
      bounds: [320, 40, 400, 240]
      glass: {type: thick, blur: 30, tint: "#ffffff33"}
      radius: [8, 8, 16, 16]
      shadow: {offset: [0, 6], blur: 20, color: "#00000080"}
      children:
        - key: icon
          bounds: [16, 16, 24, 24]
          svg: {source: "<svg/>", tint: "#ff0000"}
    - key: badge
      bounds: [760, 10, 30, 30]
      fill: "#ff3b30"
      radius: 15
      layer: foreground
      opacity: 0.5
      transform: {rotate: 90}
    - key: pending
`

func load(t *testing.T, src string) *Result {
	t.Helper()
	res, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return res
}

func lookup(t *testing.T, tree *scene.Tree, key string) *scene.Node {
	t.Helper()
	id, ok := tree.Lookup(key)
	if !ok {
		t.Fatalf("node %q not found", key)
	}
	return tree.Node(id)
}

func TestLoad(t *testing.T) {
	res := load(t, sample)
	tree := res.Tree
	if tree.Len() != 7 {
		t.Fatalf("Len = %d, want 7", tree.Len())
	}
	if root := tree.Node(tree.Root()); root.Key != "window" {
		t.Errorf("root key = %q", root.Key)
	}

	row := lookup(t, tree, "row")
	ink, _ := compositor.Hex("#102030")
	want := &scene.TextData{
		Content:  "Inbox",
		FontSize: 16,
		Color:    ink,
		Align:    scene.AlignCenter,
		Weight:   scene.WeightBold,
	}
	if diff := cmp.Diff(want, row.Text); diff != "" {
		t.Errorf("row text mismatch (-want +got):\n%s", diff)
	}

	panel := lookup(t, tree, "panel")
	g := panel.Glass()
	if g == nil || g.Type != compositor.GlassThick || g.Blur != 30 {
		t.Fatalf("panel glass = %+v", g)
	}
	if panel.Fill() != nil {
		t.Error("glass node has a fill")
	}
	if want := (compositor.CornerRadius{TopLeft: 8, TopRight: 8, BottomRight: 16, BottomLeft: 16}); panel.Radius != want {
		t.Errorf("radius = %+v", panel.Radius)
	}
	if panel.Shadow == nil || panel.Shadow.OffsetY != 6 || panel.Shadow.Blur != 20 {
		t.Errorf("shadow = %+v", panel.Shadow)
	}

	icon := lookup(t, tree, "icon")
	if icon.SVG == nil || icon.SVG.Tint == nil || *icon.SVG.Tint != compositor.RGB(1, 0, 0) {
		t.Errorf("icon svg = %+v", icon.SVG)
	}

	badge := lookup(t, tree, "badge")
	if badge.Layer != compositor.LayerForeground || badge.Opacity != 0.5 {
		t.Errorf("badge layer=%v opacity=%v", badge.Layer, badge.Opacity)
	}
	if badge.Radius != compositor.Uniform(15) {
		t.Errorf("badge radius = %+v", badge.Radius)
	}
	if badge.Transform == nil || badge.Transform.IsIdentity() {
		t.Error("badge transform missing")
	}

	if _, ok := lookup(t, tree, "pending").Bounds(); ok {
		t.Error("node without bounds is resolved")
	}
	if !lookup(t, tree, "list").ClipsContent {
		t.Error("list does not clip")
	}
}

func TestLoadScroll(t *testing.T) {
	res := load(t, sample)
	list, _ := res.Tree.Lookup("list")
	if diff := cmp.Diff(map[scene.NodeID]scroll.Vec{list: {Y: -120}}, res.Scroll,
		cmp.AllowUnexported(scene.NodeID{})); diff != "" {
		t.Errorf("scroll mismatch (-want +got):\n%s", diff)
	}
	if got := res.Offsets().Get(list); got != (scroll.Vec{Y: -120}) {
		t.Errorf("Offsets().Get = %+v", got)
	}
}

func TestLoadGlassPreset(t *testing.T) {
	res := load(t, `
root:
  bounds: [0, 0, 10, 10]
  glass: chrome
`)
	g := res.Tree.Node(res.Tree.Root()).Glass()
	if g == nil {
		t.Fatal("no glass")
	}
	if diff := cmp.Diff(compositor.NewGlassMaterial(compositor.GlassChrome), *g); diff != "" {
		t.Errorf("material mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaults(t *testing.T) {
	res := load(t, `
root:
  bounds: [0, 0, 10, 10]
  children:
    - text: {content: hi}
      bounds: [0, 0, 10, 10]
    - bounds: [0, 0, 1, 1]
      shadow: {blur: 4}
`)
	kids := res.Tree.Children(res.Tree.Root())
	txt := res.Tree.Node(kids[0]).Text
	if txt.FontSize != 14 || txt.Weight != scene.WeightNormal || txt.Color != compositor.Black {
		t.Errorf("text defaults = %+v", txt)
	}
	sh := res.Tree.Node(kids[1]).Shadow
	if sh == nil || sh.Color != compositor.RGBA(0, 0, 0, 0.25) {
		t.Errorf("shadow defaults = %+v", sh)
	}
	if n := res.Tree.Node(kids[1]); n.Opacity != 1 || n.Layer != compositor.LayerBackground {
		t.Errorf("node defaults: opacity=%v layer=%v", n.Opacity, n.Layer)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown field", "root:\n  colour: red\n", "colour"},
		{"bad color", "root:\n  fill: \"#zz\"\n", "fill"},
		{"fill and glass", "root:\n  fill: \"#fff\"\n  glass: thin\n", "exclusive"},
		{"text and svg", "root:\n  text: {content: a}\n  svg: {source: b}\n", "exclusive"},
		{"bad layer", "root:\n  layer: overlay\n", "overlay"},
		{"bad glass", "root:\n  glass: marble\n", "marble"},
		{"bad align", "root:\n  text: {content: a, align: justify}\n", "justify"},
		{"radius count", "root:\n  radius: [1, 2]\n", "radius"},
		{"child error has path", "root:\n  children:\n    - key: card\n      layer: top\n", "card"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("Load succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadNoRoot(t *testing.T) {
	for _, src := range []string{"", "root:\n"} {
		if _, err := Load(strings.NewReader(src)); !errors.Is(err, ErrNoRoot) {
			t.Errorf("Load(%q) = %v, want ErrNoRoot", src, err)
		}
	}
}
