package gpu

import (
	"fmt"

	"github.com/gogpu/compositor/batch"
	igpu "github.com/gogpu/compositor/internal/gpu"
)

// RenderGlassFrame renders a frame containing glass surfaces:
//
//  1. normal primitives into backdrop, cleared transparent (skipped when
//     there are none);
//  2. normal primitives into target, cleared to Config.Background;
//  3. glass primitives into target, sampling backdrop (skipped when empty);
//  4. in a new submission, foreground primitives into target (skipped when
//     empty);
//  5. all paths into target with the single-sample path pipeline, in a
//     further submission when step 4 drew anything (skipped when empty).
//
// Steps 1 to 3 end with a submission of their own, so a frame takes at
// least two submissions even when steps 4 and 5 are both empty. With
// Config.SingleSubmitGlass everything shares the first submission.
// The backdrop resolution is the caller's choice; its size only affects
// blur quality. Both target and backdrop must be single-sample.
func (r *Renderer) RenderGlassFrame(target Target, backdrop *Texture, b *batch.Batch) (FrameStats, error) {
	var fs FrameStats
	if err := r.check(); err != nil {
		return fs, err
	}
	if err := target.validate("glass frame"); err != nil {
		return fs, err
	}
	if target.samples() != 1 {
		return fs, &SurfaceError{Op: "glass frame", Err: fmt.Errorf("target must be single-sample, got %d samples", target.SampleCount)}
	}
	if backdrop == nil || backdrop.raw == nil {
		return fs, &SurfaceError{Op: "glass frame", Err: fmt.Errorf("no backdrop texture")}
	}

	r.writeUniforms(target.Width, target.Height)
	normal, err := r.uploadPrimitives(r.primitives, b.Primitives)
	if err != nil {
		return fs, err
	}
	fg, err := r.uploadPrimitives(r.foreground, b.Foreground)
	if err != nil {
		return fs, err
	}
	glass, err := r.uploadGlass(b.Glass, target.Width, target.Height)
	if err != nil {
		return fs, err
	}
	paths, err := r.uploadPaths(b, target.Width, target.Height)
	if err != nil {
		return fs, err
	}

	sdfGroup, err := r.sdfBindGroup(r.sdfGroup, r.primitives)
	if err != nil {
		return fs, err
	}
	fgGroup, err := r.sdfBindGroup(r.foregroundGrp, r.foreground)
	if err != nil {
		return fs, err
	}
	glassGroup, err := r.glassBindGroup(backdrop)
	if err != nil {
		return fs, err
	}

	rec, err := r.record("glass_frame", &fs)
	if err != nil {
		return fs, err
	}

	// Step 1: backdrop.
	if normal > 0 {
		rp := rec.pass(igpu.ColorPass{
			Label: "glass_backdrop_pass",
			View:  backdrop.View(),
			Clear: clearColor([4]float32{}),
		})
		r.drawSDF(rec, rp, r.sdf.Overlay, sdfGroup, normal)
		rp.End()
	}

	// Steps 2 and 3: background, then glass over it.
	rp := rec.pass(igpu.ColorPass{
		Label: "glass_background_pass",
		View:  target.View,
		Clear: clearColor(r.cfg.Background.Array()),
	})
	r.drawSDF(rec, rp, r.sdf.Overlay, sdfGroup, normal)
	rp.End()
	if glass > 0 {
		rp = rec.pass(igpu.ColorPass{Label: "glass_pass", View: target.View})
		r.drawSDF(rec, rp, r.glass.Overlay, glassGroup, glass)
		rp.End()
	}

	// next ends the current submission unless everything goes into one.
	next := func(label string) error {
		if r.cfg.SingleSubmitGlass {
			return nil
		}
		if err := rec.submit(); err != nil {
			return err
		}
		rec, err = r.record(label, &fs)
		return err
	}

	// Steps 1 to 3 end their own submission.
	if err := next("glass_foreground"); err != nil {
		return fs, err
	}

	// Step 4: foreground.
	if fg > 0 {
		rp = rec.pass(igpu.ColorPass{Label: "glass_foreground_pass", View: target.View})
		r.drawSDF(rec, rp, r.sdf.Overlay, fgGroup, fg)
		rp.End()
	}

	// Step 5: paths.
	if !paths.empty() {
		if fg > 0 {
			if err := next("glass_paths"); err != nil {
				return fs, err
			}
		}
		rp = rec.pass(igpu.ColorPass{Label: "glass_paths_pass", View: target.View})
		r.drawPaths(rec, rp, r.path.Overlay, paths.background, paths.foreground)
		rp.End()
	}

	if err := rec.submit(); err != nil {
		return fs, err
	}
	r.finish(fs)
	return fs, nil
}
