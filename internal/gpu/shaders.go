package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/sdf.wgsl
var sdfShaderSource string

//go:embed shaders/glass.wgsl
var glassShaderSource string

//go:embed shaders/path.wgsl
var pathShaderSource string

//go:embed shaders/text.wgsl
var textShaderSource string

//go:embed shaders/image.wgsl
var imageShaderSource string

//go:embed shaders/composite.wgsl
var compositeShaderSource string

// Shader names one of the embedded WGSL programs.
type Shader string

// Embedded shaders.
const (
	ShaderSDF       Shader = "sdf"
	ShaderGlass     Shader = "glass"
	ShaderPath      Shader = "path"
	ShaderText      Shader = "text"
	ShaderImage     Shader = "image"
	ShaderComposite Shader = "composite"
)

// Shaders lists every embedded shader.
var Shaders = []Shader{ShaderSDF, ShaderGlass, ShaderPath, ShaderText, ShaderImage, ShaderComposite}

// Source returns the WGSL source of s, or "" for an unknown shader.
func (s Shader) Source() string {
	switch s {
	case ShaderSDF:
		return sdfShaderSource
	case ShaderGlass:
		return glassShaderSource
	case ShaderPath:
		return pathShaderSource
	case ShaderText:
		return textShaderSource
	case ShaderImage:
		return imageShaderSource
	case ShaderComposite:
		return compositeShaderSource
	default:
		return ""
	}
}

// Validate compiles the shader to SPIR-V with naga and discards the
// result. It catches WGSL errors before any device object is created.
func (s Shader) Validate() error {
	src := s.Source()
	if src == "" {
		return fmt.Errorf("%s shader source is empty", s)
	}
	spirv, err := naga.Compile(src)
	if err != nil {
		return fmt.Errorf("compile %s shader: %w", s, err)
	}
	if len(spirv) == 0 {
		return fmt.Errorf("compile %s shader: empty SPIR-V output", s)
	}
	return nil
}

// CreateModule creates a shader module from the WGSL source of s. The
// backend compiles it; call Validate first to catch errors up front.
func CreateModule(device hal.Device, s Shader) (hal.ShaderModule, error) {
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  string(s) + "_shader",
		Source: hal.ShaderSource{WGSL: s.Source()},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s shader module: %w", s, err)
	}
	return module, nil
}
