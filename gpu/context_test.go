package gpu

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewContextNil(t *testing.T) {
	if _, err := NewContext(nil, nil); !errors.Is(err, ErrNilContext) {
		t.Errorf("NewContext(nil, nil) = %v, want ErrNilContext", err)
	}
	if _, err := Configure(nil, DefaultConfig()); !errors.Is(err, ErrNilContext) {
		t.Errorf("Configure(nil) = %v, want ErrNilContext", err)
	}
	if _, err := Configure(&Context{}, DefaultConfig()); !errors.Is(err, ErrNilContext) {
		t.Errorf("Configure(empty) = %v, want ErrNilContext", err)
	}
}

func TestOpenNoopContext(t *testing.T) {
	ctx, err := OpenNoopContext()
	if err != nil {
		t.Fatalf("OpenNoopContext: %v", err)
	}
	if ctx.Device == nil || ctx.Queue == nil {
		t.Fatal("openContext returned an incomplete context")
	}
	if ctx.Limits.MaxTextureDimension2D == 0 {
		t.Error("Limits not recorded")
	}
	ctx.Close()
	ctx.Close()
	if ctx.Device != nil {
		t.Error("Close did not release the owned device")
	}
}

func TestNewContextBorrowedNotClosed(t *testing.T) {
	ctx, _ := createNoopContext(t)
	dev := ctx.Device
	ctx.Close()
	if ctx.Device != dev {
		t.Error("Close released a device the context does not own")
	}
}

func TestNewContextFromProvider(t *testing.T) {
	base, _ := createNoopContext(t)

	t.Run("no hal", func(t *testing.T) {
		_, err := NewContextFromProvider(mockProvider{})
		var de *DeviceError
		if !errors.As(err, &de) {
			t.Fatalf("err = %v, want *DeviceError", err)
		}
		if de.Op != "share" {
			t.Errorf("Op = %q, want share", de.Op)
		}
	})

	t.Run("wrong types", func(t *testing.T) {
		_, err := NewContextFromProvider(halMockProvider{device: 1, queue: 2})
		var de *DeviceError
		if !errors.As(err, &de) {
			t.Fatalf("err = %v, want *DeviceError", err)
		}
	})

	t.Run("shared", func(t *testing.T) {
		ctx, err := NewContextFromProvider(halMockProvider{device: base.Device, queue: base.Queue})
		if err != nil {
			t.Fatalf("NewContextFromProvider: %v", err)
		}
		if ctx.Device != base.Device || ctx.Queue != base.Queue {
			t.Error("context does not share the provider's device")
		}
	})
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"device", &DeviceError{Op: "open", Err: cause}, "gpu: device open: boom"},
		{"surface", &SurfaceError{Op: "read pixels", Err: cause}, "gpu: surface read pixels: boom"},
		{"shader", &ShaderError{Shader: "glass", Err: cause}, "gpu: shader glass: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
			}
			wrapped := fmt.Errorf("configure: %w", tt.err)
			if !errors.Is(wrapped, cause) {
				t.Error("errors.Is does not reach the cause")
			}
		})
	}

	var se *ShaderError
	if !errors.As(fmt.Errorf("x: %w", &ShaderError{Shader: "sdf", Err: cause}), &se) || se.Shader != "sdf" {
		t.Errorf("errors.As(*ShaderError) failed: %v", se)
	}
}
