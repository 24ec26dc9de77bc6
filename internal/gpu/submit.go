package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// SubmitTimeout bounds how long a submission waits for the GPU.
const SubmitTimeout = 5 * time.Second

// Encoder wraps a command encoder that is recording one submission.
type Encoder struct {
	device hal.Device
	label  string
	raw    hal.CommandEncoder
}

// BeginEncoder creates a command encoder and starts recording.
func BeginEncoder(device hal.Device, label string) (*Encoder, error) {
	raw, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label + "_encoder"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := raw.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	return &Encoder{device: device, label: label, raw: raw}, nil
}

// Raw returns the underlying encoder for copy commands and barriers.
func (e *Encoder) Raw() hal.CommandEncoder { return e.raw }

// ColorPass describes a render pass with one color attachment.
type ColorPass struct {
	Label   string
	View    hal.TextureView
	Resolve hal.TextureView // nil when not multisampled
	Clear   *gputypes.Color // nil loads existing contents
}

// BeginPass starts a render pass on the encoder.
func (e *Encoder) BeginPass(p ColorPass) hal.RenderPassEncoder {
	att := hal.RenderPassColorAttachment{
		View:          p.View,
		ResolveTarget: p.Resolve,
		LoadOp:        gputypes.LoadOpLoad,
		StoreOp:       gputypes.StoreOpStore,
	}
	if p.Clear != nil {
		att.LoadOp = gputypes.LoadOpClear
		att.ClearValue = *p.Clear
	}
	return e.raw.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            p.Label,
		ColorAttachments: []hal.RenderPassColorAttachment{att},
	})
}

// Discard abandons the recording.
func (e *Encoder) Discard() {
	e.raw.DiscardEncoding()
}

// Submit finishes recording, submits the command buffer and waits for the
// GPU to finish it. The recording is discarded when it cannot be ended.
func (e *Encoder) Submit(queue hal.Queue) error {
	cmdBuf, err := e.raw.EndEncoding()
	if err != nil {
		e.Discard()
		return fmt.Errorf("end encoding: %w", err)
	}
	defer e.device.FreeCommandBuffer(cmdBuf)

	fence, err := e.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer e.device.DestroyFence(fence)

	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit %s: %w", e.label, err)
	}
	ok, err := e.device.Wait(fence, 1, SubmitTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}
