package gpu

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrAdapterNotFound is returned when no usable GPU adapter exists.
	ErrAdapterNotFound = errors.New("gpu: no suitable adapter found")

	// ErrNilContext is returned when a nil or incomplete Context is passed.
	ErrNilContext = errors.New("gpu: context has no device or queue")

	// ErrDestroyed is returned by operations on a destroyed renderer or texture.
	ErrDestroyed = errors.New("gpu: use after destroy")

	// ErrInvalidConfig is returned for out-of-range configuration values.
	ErrInvalidConfig = errors.New("gpu: invalid configuration")
)

// DeviceError reports a failure to create or open a device.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("gpu: device %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// SurfaceError reports an unusable render target or texture.
type SurfaceError struct {
	Op  string
	Err error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("gpu: surface %s: %v", e.Op, e.Err)
}

func (e *SurfaceError) Unwrap() error { return e.Err }

// ShaderError reports a shader that failed validation or module creation.
type ShaderError struct {
	Shader string
	Err    error
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("gpu: shader %s: %v", e.Shader, e.Err)
}

func (e *ShaderError) Unwrap() error { return e.Err }
