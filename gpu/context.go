package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/compositor"

	// Register the Vulkan backend for OpenDefaultContext.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Context is the device and queue renderers draw with. It is passed
// explicitly and may be shared by any number of renderers.
type Context struct {
	Device hal.Device
	Queue  hal.Queue

	// Limits are the limits the device was opened with.
	Limits gputypes.Limits

	instance hal.Instance
	owned    bool
}

// NewContext wraps an existing device and queue. The caller keeps
// ownership; Close does not destroy them.
func NewContext(device hal.Device, queue hal.Queue) (*Context, error) {
	if device == nil || queue == nil {
		return nil, ErrNilContext
	}
	return &Context{Device: device, Queue: queue, Limits: gputypes.DefaultLimits()}, nil
}

// halProvider is implemented by device providers that expose their HAL
// objects, such as the gogpu application runtime.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewContextFromProvider shares the device of a gpucontext.DeviceProvider.
// The provider must also expose HalDevice and HalQueue.
func NewContextFromProvider(provider gpucontext.DeviceProvider) (*Context, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, &DeviceError{Op: "share", Err: fmt.Errorf("provider %T does not expose HAL types", provider)}
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, &DeviceError{Op: "share", Err: fmt.Errorf("provider HalDevice is not hal.Device")}
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, &DeviceError{Op: "share", Err: fmt.Errorf("provider HalQueue is not hal.Queue")}
	}
	return NewContext(device, queue)
}

// OpenDefaultContext opens a device on the Vulkan backend, preferring a
// discrete or integrated GPU. The returned Context owns the device.
func OpenDefaultContext() (*Context, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, &DeviceError{Op: "open", Err: fmt.Errorf("vulkan backend not available")}
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, &DeviceError{Op: "create instance", Err: err}
	}
	ctx, err := openContext(instance)
	if err != nil {
		instance.Destroy()
		return nil, err
	}
	return ctx, nil
}

// OpenNoopContext opens a device on the noop backend, which accepts every
// call and draws nothing. It serves headless runs without a GPU and tests.
func OpenNoopContext() (*Context, error) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return nil, &DeviceError{Op: "create instance", Err: err}
	}
	ctx, err := openContext(instance)
	if err != nil {
		instance.Destroy()
		return nil, err
	}
	return ctx, nil
}

// openContext selects an adapter from instance and opens it.
func openContext(instance hal.Instance) (*Context, error) {
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return nil, ErrAdapterNotFound
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	limits := gputypes.DefaultLimits()
	openDev, err := selected.Adapter.Open(gputypes.Features(0), limits)
	if err != nil {
		return nil, &DeviceError{Op: "open", Err: err}
	}
	compositor.Logger().Info("gpu: adapter selected", "name", selected.Info.Name)
	return &Context{
		Device:   openDev.Device,
		Queue:    openDev.Queue,
		Limits:   limits,
		instance: instance,
		owned:    true,
	}, nil
}

// Close destroys the device and instance if the Context opened them.
// Renderers using the Context must be destroyed first.
func (c *Context) Close() {
	if c == nil || !c.owned {
		return
	}
	if c.Device != nil {
		c.Device.Destroy()
		c.Device = nil
	}
	if c.instance != nil {
		c.instance.Destroy()
		c.instance = nil
	}
	c.owned = false
}

func (c *Context) valid() bool {
	return c != nil && c.Device != nil && c.Queue != nil
}
