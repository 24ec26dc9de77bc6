package bridge

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/scene"
	"github.com/gogpu/compositor/scroll"
)

type layoutRecorder struct {
	bg, fg         recorder
	bgText, fgText []Text
	bgSVG, fgSVG   []SVG
	calls          []string
}

func (l *layoutRecorder) Background() compositor.DrawContext {
	l.calls = append(l.calls, "background")
	return &l.bg
}

func (l *layoutRecorder) Foreground() compositor.DrawContext {
	l.calls = append(l.calls, "foreground")
	return &l.fg
}

func (l *layoutRecorder) RenderTextBackground(t Text) {
	l.calls = append(l.calls, "text")
	l.bgText = append(l.bgText, t)
}

func (l *layoutRecorder) RenderTextForeground(t Text) {
	l.calls = append(l.calls, "text")
	l.fgText = append(l.fgText, t)
}

func (l *layoutRecorder) RenderSVGBackground(s SVG) {
	l.calls = append(l.calls, "svg")
	l.bgSVG = append(l.bgSVG, s)
}

func (l *layoutRecorder) RenderSVGForeground(s SVG) {
	l.calls = append(l.calls, "svg")
	l.fgSVG = append(l.fgSVG, s)
}

func TestRender(t *testing.T) {
	tree, _ := sampleTree()
	lr := &layoutRecorder{}
	New(tree, nil).Render(lr)

	if diff := cmp.Diff([]string{"background", "foreground", "text", "text"}, lr.calls); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
	// background + glass layers share the background context.
	if n := len(lr.bg.paints()); n != 4 {
		t.Errorf("background context got %d paints, want 4", n)
	}
	if n := len(lr.fg.paints()); n != 2 {
		t.Errorf("foreground context got %d paints, want 2", n)
	}
	if _, ok := lr.bg.paints()[3].Brush.(compositor.GlassBrush); !ok {
		t.Error("glass was not painted after the background layer")
	}
}

func TestRenderTextPromotion(t *testing.T) {
	tree, _ := sampleTree()
	lr := &layoutRecorder{}
	New(tree, nil).RenderText(lr)

	wantFG := []Text{{
		Content:  "glass label",
		Bounds:   compositor.R(160, 80, 100, 20),
		FontSize: 14,
		Color:    compositor.White,
	}}
	wantBG := []Text{{
		Content:  "caption",
		Bounds:   compositor.R(10, 250, 200, 20),
		FontSize: 12,
		Color:    compositor.Black,
	}}
	if diff := cmp.Diff(wantFG, lr.fgText); diff != "" {
		t.Errorf("foreground text mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantBG, lr.bgText); diff != "" {
		t.Errorf("background text mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderTextForegroundLayer(t *testing.T) {
	tree := scene.New()
	root := tree.SetRoot(scene.Container(compositor.R(0, 0, 100, 100)))
	n := scene.TextNode(compositor.R(0, 0, 50, 10), scene.TextData{Content: "top", FontSize: 10})
	n.Layer = compositor.LayerForeground
	tree.Add(root, n)

	lr := &layoutRecorder{}
	New(tree, nil).RenderText(lr)
	if len(lr.fgText) != 1 || len(lr.bgText) != 0 {
		t.Errorf("fg=%d bg=%d, want the foreground-layer text in the foreground", len(lr.fgText), len(lr.bgText))
	}
}

func TestRenderTextScrollAndClip(t *testing.T) {
	tree := scene.New()
	root := tree.SetRoot(scene.Container(compositor.R(0, 0, 400, 400)))
	list := scene.Container(compositor.R(20, 20, 200, 100))
	list.ClipsContent = true
	list.Opacity = 0.5
	lid := tree.Add(root, list)
	tree.Add(lid, scene.TextNode(compositor.R(0, 60, 200, 20), scene.TextData{
		Content: "row", FontSize: 12, Color: compositor.Black,
	}))

	offsets := scroll.NewOffsets()
	offsets.Set(lid, scroll.Vec{Y: -50})

	lr := &layoutRecorder{}
	New(tree, offsets).RenderText(lr)
	if len(lr.bgText) != 1 {
		t.Fatalf("got %d text runs, want 1", len(lr.bgText))
	}
	got := lr.bgText[0]
	if got.Bounds != compositor.R(20, 30, 200, 20) {
		t.Errorf("bounds = %v, want scrolled to (20,30)", got.Bounds)
	}
	if got.Clip == nil || *got.Clip != compositor.R(20, 20, 200, 100) {
		t.Errorf("clip = %v, want the list bounds", got.Clip)
	}
	if got.Color.A != 0.5 {
		t.Errorf("alpha = %v, want 0.5", got.Color.A)
	}
}

func TestRenderSVG(t *testing.T) {
	tree := scene.New()
	root := tree.SetRoot(scene.Container(compositor.R(0, 0, 200, 200)))
	card := scene.Container(compositor.R(50, 50, 100, 100))
	card.SetGlass(compositor.RegularGlass())
	cid := tree.Add(root, card)
	tint := compositor.White
	tree.Add(cid, scene.SVGNode(compositor.R(8, 8, 24, 24), scene.SVGData{Source: "<svg/>", Tint: &tint}))
	tree.Add(root, scene.SVGNode(compositor.R(0, 0, 16, 16), scene.SVGData{Source: "<svg/>"}))

	lr := &layoutRecorder{}
	New(tree, nil).RenderSVG(lr)

	wantFG := []SVG{{Source: "<svg/>", Bounds: compositor.R(58, 58, 24, 24), Tint: &tint}}
	wantBG := []SVG{{Source: "<svg/>", Bounds: compositor.R(0, 0, 16, 16)}}
	if diff := cmp.Diff(wantFG, lr.fgSVG); diff != "" {
		t.Errorf("foreground svg mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantBG, lr.bgSVG); diff != "" {
		t.Errorf("background svg mismatch (-want +got):\n%s", diff)
	}
}
