package main

import (
	"testing"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/batch"
	"github.com/gogpu/compositor/bridge"
	"github.com/gogpu/compositor/frame"
	"github.com/gogpu/compositor/scene"
)

func TestDemoSceneLoads(t *testing.T) {
	res, err := loadScene("")
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	if !res.Tree.HasGlass() {
		t.Error("demo scene has no glass")
	}
	for _, key := range []string{"sidebar", "inbox", "panel", "title", "badge"} {
		if _, ok := res.Tree.Lookup(key); !ok {
			t.Errorf("demo scene lacks %q", key)
		}
	}
}

func TestSimulateFling(t *testing.T) {
	res, err := loadScene("")
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	offsets := res.Offsets()
	if err := simulateFling(res.Tree, offsets, "sidebar:-1200", 600); err != nil {
		t.Fatalf("simulateFling: %v", err)
	}
	id, _ := res.Tree.Lookup("sidebar")
	y := offsets.Get(id).Y
	// inbox is 1200 high in a 600 high sidebar.
	if y >= 0 || y < -600 {
		t.Errorf("offset = %v, want within [-600, 0)", y)
	}

	for _, spec := range []string{"sidebar", "sidebar:fast", "nowhere:-10"} {
		if err := simulateFling(res.Tree, offsets, spec, 1); err == nil {
			t.Errorf("simulateFling(%q) succeeded", spec)
		}
	}
}

func TestContentSize(t *testing.T) {
	tree := scene.New()
	root := tree.SetRoot(scene.Container(compositor.R(0, 0, 100, 100)))
	tree.Add(root, scene.Container(compositor.R(10, 20, 50, 300)))
	tree.Add(root, scene.Container(compositor.R(90, 0, 40, 40)))
	n := scene.Container(compositor.Rect{})
	n.ClearBounds()
	tree.Add(root, n)

	if got, want := contentSize(tree, root), (compositor.Size{W: 130, H: 320}); got != want {
		t.Errorf("contentSize = %+v, want %+v", got, want)
	}
}

func TestBitmapText(t *testing.T) {
	bt := newBitmapText()
	b := batch.New()
	clip := compositor.R(0, 0, 50, 50)
	run := frame.TextRun{Text: bridge.Text{
		Content:  "ab c",
		Bounds:   compositor.R(10, 10, 200, 26),
		FontSize: 26,
		Color:    compositor.White,
		Clip:     &clip,
	}}
	bt.AppendText(b, run)

	if len(b.Glyphs) != 4 {
		t.Fatalf("got %d glyphs, want 4", len(b.Glyphs))
	}
	first, second := b.Glyphs[0], b.Glyphs[1]
	if first.Bounds[0] != 10 || first.Bounds[1] != 10 {
		t.Errorf("first glyph at (%v,%v), want (10,10)", first.Bounds[0], first.Bounds[1])
	}
	// 7px advance at twice the 13px face height.
	if adv := second.Bounds[0] - first.Bounds[0]; adv != 14 {
		t.Errorf("advance = %v, want 14", adv)
	}
	if first.ClipBounds != clip.Array() {
		t.Errorf("clip = %v", first.ClipBounds)
	}
	for i, g := range b.Glyphs {
		if g.UVBounds[0] >= g.UVBounds[2] || g.UVBounds[1] >= g.UVBounds[3] {
			t.Errorf("glyph %d has empty uv %v", i, g.UVBounds)
		}
	}

	b.Clear()
	run.Align = scene.AlignRight
	bt.AppendText(b, run)
	last := b.Glyphs[len(b.Glyphs)-1]
	if right := last.Bounds[0] + 14; right != 210 {
		t.Errorf("right-aligned text ends at %v, want 210", right)
	}
}
