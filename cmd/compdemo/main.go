// Command compdemo renders a YAML scene through the compositor and writes
// the frame as a PNG.
//
// Usage:
//
//	compdemo [-scene file.yaml] [-config renderer.toml] [-output out.png]
//	         [-fling key:velocity] [-frames n] [-noop] [-v]
//
// Without -scene a built-in scene with a glass panel is rendered. With
// -fling the named scroll container is flung and the scroll physics is
// ticked for -frames frames at 60 Hz before the frame is drawn.
package main

import (
	"bytes"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/batch"
	"github.com/gogpu/compositor/bridge"
	"github.com/gogpu/compositor/frame"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/internal/scenefile"
	"github.com/gogpu/compositor/scene"
	"github.com/gogpu/compositor/scroll"
)

//go:embed demo.yaml
var demoScene []byte

func main() {
	var (
		scenePath  = flag.String("scene", "", "YAML scene file (default: built-in demo)")
		configPath = flag.String("config", "", "TOML renderer configuration")
		output     = flag.String("output", "compdemo.png", "output file")
		fling      = flag.String("fling", "", "fling a scroll container, as key:velocity in px/s")
		frames     = flag.Int("frames", 30, "physics frames to simulate before drawing")
		noop       = flag.Bool("noop", false, "use the noop backend instead of a GPU")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*scenePath, *configPath, *output, *fling, *frames, *noop); err != nil {
		log.Fatalf("compdemo: %v", err)
	}
}

func run(scenePath, configPath, output, fling string, frames int, noop bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	res, err := loadScene(scenePath)
	if err != nil {
		return err
	}
	offsets := res.Offsets()
	if fling != "" {
		if err := simulateFling(res.Tree, offsets, fling, frames); err != nil {
			return err
		}
	}

	ctx, err := openContext(noop)
	if err != nil {
		return err
	}
	defer ctx.Close()

	r, err := gpu.Configure(ctx, cfg)
	if err != nil {
		return err
	}
	defer r.Destroy()

	root := res.Tree.Node(res.Tree.Root())
	bounds, _ := root.Bounds()
	w, h := uint32(max(bounds.W, 1)), uint32(max(bounds.H, 1))
	target, err := gpu.NewRenderTexture(ctx, w, h, r.Format())
	if err != nil {
		return err
	}
	defer target.Destroy()

	comp := frame.New(ctx, r)
	defer comp.Close()

	text := newBitmapText()
	atlas, err := text.Atlas(ctx)
	if err != nil {
		return fmt.Errorf("glyph atlas: %w", err)
	}
	defer atlas.Destroy()
	comp.SetAtlas(atlas)

	fb := frame.NewBuilder(batch.New())
	fb.Text = text
	bridge.New(res.Tree, offsets).Render(fb)
	if n := len(fb.SVGRuns()); n > 0 {
		compositor.Logger().Warn("compdemo: svg leaves are not rasterized", "count", n)
	}

	stats, err := comp.Submit(target.Target(), fb.Batch())
	if err != nil {
		return err
	}
	bs := fb.Batch().Stats()
	compositor.Logger().Info("compdemo: frame submitted",
		"primitives", bs.Primitives, "glass", bs.Glass, "foreground", bs.Foreground, "glyphs", bs.Glyphs,
		"submissions", stats.Submissions, "passes", stats.Passes, "draws", stats.Draws)

	img, err := gpu.ReadPixels(ctx, target)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.Printf("frame saved to %s (%dx%d)", output, w, h)
	return nil
}

func loadConfig(path string) (gpu.Config, error) {
	if path == "" {
		return gpu.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return gpu.Config{}, err
	}
	defer f.Close()
	return gpu.LoadConfig(f)
}

func loadScene(path string) (*scenefile.Result, error) {
	var r io.Reader = bytes.NewReader(demoScene)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return scenefile.Load(r)
}

// openContext opens a GPU device, falling back to the noop backend when
// none is available.
func openContext(noop bool) (*gpu.Context, error) {
	if !noop {
		ctx, err := gpu.OpenDefaultContext()
		if err == nil {
			return ctx, nil
		}
		compositor.Logger().Warn("compdemo: no GPU, using the noop backend", "err", err)
	}
	return gpu.OpenNoopContext()
}

// simulateFling parses key:velocity, flings that container and ticks the
// scroll physics for the given number of frames.
func simulateFling(tree *scene.Tree, offsets *scroll.Offsets, spec string, frames int) error {
	key, v, ok := strings.Cut(spec, ":")
	if !ok {
		return errors.New("fling: want key:velocity")
	}
	velocity, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return fmt.Errorf("fling: %w", err)
	}
	id, ok := tree.Lookup(key)
	if !ok {
		return fmt.Errorf("fling: no node with key %q", key)
	}

	n := tree.Node(id)
	viewport, _ := n.Bounds()
	content := contentSize(tree, id)
	p := offsets.Physics(id)
	p.SetExtents(scroll.Vec{X: viewport.W, Y: viewport.H}, scroll.Vec{X: content.W, Y: content.H})
	p.Fling(0, float32(velocity))
	for range frames {
		if !offsets.Tick(1.0 / 60) {
			break
		}
	}
	compositor.Logger().Info("compdemo: fling settled",
		"key", key, "offset", offsets.Get(id).Y, "state", p.State().String())
	return nil
}

// contentSize is the extent of the children of id.
func contentSize(tree *scene.Tree, id scene.NodeID) compositor.Size {
	var s compositor.Size
	for _, c := range tree.Children(id) {
		b, ok := tree.Node(c).Bounds()
		if !ok {
			continue
		}
		s.W = max(s.W, b.X+b.W)
		s.H = max(s.H, b.Y+b.H)
	}
	return s
}
