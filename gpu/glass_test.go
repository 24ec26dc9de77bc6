package gpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/batch"
	igpu "github.com/gogpu/compositor/internal/gpu"
)

// glassScene has one primitive in every list and one path.
func glassScene() *batch.Batch {
	b := batch.New()
	b.Push(rectPrim(0))
	b.PushGlass(glassPrim())
	b.PushForeground(rectPrim(30))
	b.PushPath(triangle())
	return b
}

func TestRenderGlassFrameFiveSteps(t *testing.T) {
	r, ctx, log := newTestRenderer(t)
	target := newTestTarget(t, ctx, 200, 100)
	backdrop := newTestTarget(t, ctx, 100, 50)

	fs, err := r.RenderGlassFrame(target.Target(), backdrop, glassScene())
	if err != nil {
		t.Fatalf("RenderGlassFrame: %v", err)
	}
	if want := (FrameStats{Submissions: 3, Passes: 5, Draws: 5}); fs != want {
		t.Errorf("FrameStats = %+v, want %+v", fs, want)
	}
	wantLabels := []string{
		"glass_backdrop_pass",
		"glass_background_pass",
		"glass_pass",
		"glass_foreground_pass",
		"glass_paths_pass",
	}
	if diff := cmp.Diff(wantLabels, log.labels()); diff != "" {
		t.Fatalf("passes mismatch (-want +got):\n%s", diff)
	}

	p := log.passes
	if p[0].View != backdrop.View() || !p[0].Clear || p[0].ClearValue != (gputypes.Color{}) {
		t.Errorf("backdrop pass = %+v, want transparent clear of the backdrop", p[0])
	}
	if p[1].View != target.View() || !p[1].Clear || p[1].ClearValue != (gputypes.Color{A: 1}) {
		t.Errorf("background pass = %+v, want opaque black clear of the target", p[1])
	}
	for _, pass := range p[2:] {
		if pass.View != target.View() || pass.Clear {
			t.Errorf("%s = %+v, want load on the target", pass.Label, pass)
		}
	}
}

func TestRenderGlassFrameBackdropOnlyNormal(t *testing.T) {
	r, ctx, log := newTestRenderer(t)
	target := newTestTarget(t, ctx, 200, 100)
	backdrop := newTestTarget(t, ctx, 100, 50)

	b := batch.New()
	b.Push(rectPrim(0))
	b.PushGlass(glassPrim())

	fs, err := r.RenderGlassFrame(target.Target(), backdrop, b)
	if err != nil {
		t.Fatalf("RenderGlassFrame: %v", err)
	}
	// backdrop: normal; background: normal; glass: glass. The composite
	// is submitted before the empty overlay submission.
	if want := (FrameStats{Submissions: 2, Passes: 3, Draws: 3}); fs != want {
		t.Errorf("FrameStats = %+v, want %+v", fs, want)
	}

	bd := log.passes[0]
	if bd.View != backdrop.View() {
		t.Fatalf("first pass renders into %v, want the backdrop", bd.View)
	}
	if diff := cmp.Diff([]uint32{1}, bd.Instances); diff != "" {
		t.Errorf("backdrop draws mismatch (-want +got):\n%s", diff)
	}
	for _, label := range bd.Pipelines {
		if !strings.HasPrefix(label, string(igpu.ShaderSDF)) {
			t.Errorf("backdrop pass binds pipeline %q, want only sdf", label)
		}
	}
	if len(bd.Pipelines) == 0 {
		t.Error("backdrop pass binds no pipeline")
	}

	glass := log.passes[2]
	if len(glass.Pipelines) != 1 || !strings.HasPrefix(glass.Pipelines[0], string(igpu.ShaderGlass)) {
		t.Errorf("glass pass pipelines = %v, want the glass pipeline", glass.Pipelines)
	}
}

func TestRenderGlassFrameSkipsEmptySteps(t *testing.T) {
	tests := []struct {
		name   string
		batch  func() *batch.Batch
		want   FrameStats
		labels []string
	}{
		{
			name:   "empty",
			batch:  batch.New,
			want:   FrameStats{Submissions: 2, Passes: 1},
			labels: []string{"glass_background_pass"},
		},
		{
			name: "glass only",
			batch: func() *batch.Batch {
				b := batch.New()
				b.PushGlass(glassPrim())
				return b
			},
			want:   FrameStats{Submissions: 2, Passes: 2, Draws: 1},
			labels: []string{"glass_background_pass", "glass_pass"},
		},
		{
			name: "foreground paths",
			batch: func() *batch.Batch {
				b := batch.New()
				b.PushForegroundPath(triangle())
				return b
			},
			want:   FrameStats{Submissions: 2, Passes: 2, Draws: 1},
			labels: []string{"glass_background_pass", "glass_paths_pass"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ctx, log := newTestRenderer(t)
			target := newTestTarget(t, ctx, 64, 64)
			backdrop := newTestTarget(t, ctx, 32, 32)

			fs, err := r.RenderGlassFrame(target.Target(), backdrop, tt.batch())
			if err != nil {
				t.Fatalf("RenderGlassFrame: %v", err)
			}
			if fs != tt.want {
				t.Errorf("FrameStats = %+v, want %+v", fs, tt.want)
			}
			if diff := cmp.Diff(tt.labels, log.labels()); diff != "" {
				t.Errorf("passes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderGlassFrameSingleSubmit(t *testing.T) {
	r, ctx, _ := newTestRenderer(t, WithSingleSubmitGlass(true))
	target := newTestTarget(t, ctx, 200, 100)
	backdrop := newTestTarget(t, ctx, 100, 50)

	fs, err := r.RenderGlassFrame(target.Target(), backdrop, glassScene())
	if err != nil {
		t.Fatalf("RenderGlassFrame: %v", err)
	}
	if want := (FrameStats{Submissions: 1, Passes: 5, Draws: 5}); fs != want {
		t.Errorf("FrameStats = %+v, want %+v", fs, want)
	}
}

func TestRenderGlassFrameBackground(t *testing.T) {
	bg := compositor.RGB(1, 1, 1)
	r, ctx, log := newTestRenderer(t, WithBackground(bg))
	target := newTestTarget(t, ctx, 64, 64)
	backdrop := newTestTarget(t, ctx, 32, 32)

	if _, err := r.RenderGlassFrame(target.Target(), backdrop, batch.New()); err != nil {
		t.Fatalf("RenderGlassFrame: %v", err)
	}
	want := gputypes.Color{R: 1, G: 1, B: 1, A: 1}
	if got := log.passes[0].ClearValue; got != want {
		t.Errorf("clear value = %+v, want %+v", got, want)
	}
}

func TestGlassBindGroupStability(t *testing.T) {
	r, ctx, _ := newTestRenderer(t)
	target := newTestTarget(t, ctx, 200, 100)
	backdrop := newTestTarget(t, ctx, 100, 50)
	b := glassScene()

	render := func() {
		t.Helper()
		if _, err := r.RenderGlassFrame(target.Target(), backdrop, b); err != nil {
			t.Fatalf("RenderGlassFrame: %v", err)
		}
	}

	for i := 0; i < 3; i++ {
		render()
	}
	if got := r.glassGroup.Rebuilds(); got != 1 {
		t.Errorf("glass rebuilds after 3 frames = %d, want 1", got)
	}
	before := r.Stats().BindGroupRebuilds

	if err := backdrop.Resize(50, 25); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	render()
	render()
	if got := r.glassGroup.Rebuilds(); got != 2 {
		t.Errorf("glass rebuilds after backdrop resize = %d, want 2", got)
	}
	if got := r.Stats().BindGroupRebuilds - before; got != 1 {
		t.Errorf("backdrop resize rebuilt %d bind groups, want exactly 1", got)
	}
}

func TestRenderGlassFrameErrors(t *testing.T) {
	r, ctx, _ := newTestRenderer(t)
	target := newTestTarget(t, ctx, 64, 64)
	backdrop := newTestTarget(t, ctx, 32, 32)

	tests := []struct {
		name     string
		target   Target
		backdrop *Texture
	}{
		{"multisampled target", Target{View: target.View(), Width: 64, Height: 64, SampleCount: 4}, backdrop},
		{"no backdrop", target.Target(), nil},
		{"no view", Target{Width: 64, Height: 64}, backdrop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.RenderGlassFrame(tt.target, tt.backdrop, batch.New())
			var se *SurfaceError
			if !errors.As(err, &se) {
				t.Errorf("RenderGlassFrame() = %v, want *SurfaceError", err)
			}
		})
	}
}
