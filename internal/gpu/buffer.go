package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// minBufferSize keeps zero-length data from producing zero-sized buffers.
const minBufferSize = 256

// Buffer is a GPU buffer with a fixed usage. Growable buffers are replaced
// by a larger one when a write does not fit; fixed buffers never grow and
// Write truncates.
type Buffer struct {
	label    string
	usage    gputypes.BufferUsage
	growable bool
	raw      hal.Buffer
	size     uint64
	grows    int
}

// NewBuffer creates a fixed-capacity buffer of size bytes.
func NewBuffer(device hal.Device, label string, usage gputypes.BufferUsage, size uint64) (*Buffer, error) {
	b := &Buffer{label: label, usage: usage | gputypes.BufferUsageCopyDst}
	if err := b.allocate(device, size); err != nil {
		return nil, err
	}
	return b, nil
}

// NewGrowableBuffer creates a buffer that grows on demand.
func NewGrowableBuffer(device hal.Device, label string, usage gputypes.BufferUsage, initial uint64) (*Buffer, error) {
	b, err := NewBuffer(device, label, usage, initial)
	if err != nil {
		return nil, err
	}
	b.growable = true
	return b, nil
}

func (b *Buffer) allocate(device hal.Device, size uint64) error {
	size = max(alignUp(size, 4), minBufferSize)
	raw, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: b.label,
		Size:  size,
		Usage: b.usage,
	})
	if err != nil {
		return fmt.Errorf("create %s buffer: %w", b.label, err)
	}
	b.raw = raw
	b.size = size
	return nil
}

// Write uploads data at offset 0 and returns the number of bytes written.
// A growable buffer is reallocated to at least twice its size when data does
// not fit.
func (b *Buffer) Write(device hal.Device, queue hal.Queue, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	need := uint64(len(data))
	if need > b.size {
		if !b.growable {
			data = data[:b.size]
		} else {
			old := b.raw
			if err := b.allocate(device, max(need, b.size*2)); err != nil {
				return 0, err
			}
			device.DestroyBuffer(old)
			b.grows++
			slogger().Debug("gpu: buffer grown", "label", b.label, "size", b.size)
		}
	}
	queue.WriteBuffer(b.raw, 0, data)
	return len(data), nil
}

// Raw returns the underlying HAL buffer.
func (b *Buffer) Raw() hal.Buffer { return b.raw }

// Size returns the allocated size in bytes.
func (b *Buffer) Size() uint64 { return b.size }

// Grows returns how many times the buffer was reallocated.
func (b *Buffer) Grows() int { return b.grows }

// Destroy releases the buffer. Safe to call more than once.
func (b *Buffer) Destroy(device hal.Device) {
	if b == nil || b.raw == nil {
		return
	}
	device.DestroyBuffer(b.raw)
	b.raw = nil
	b.size = 0
}

func alignUp(v, a uint64) uint64 {
	return (v + a - 1) / a * a
}
