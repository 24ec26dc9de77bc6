package gpu

import (
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/compositor"
)

// Default capacities.
const (
	DefaultMaxPrimitives      = 10000
	DefaultMaxGlassPrimitives = 1000
	DefaultMaxGlyphs          = 50000
	DefaultMaxImageGroups     = 64
)

// DefaultTextureFormat is used when Config.TextureFormat is Undefined.
const DefaultTextureFormat = gputypes.TextureFormatBGRA8UnormSrgb

// Config holds renderer configuration.
type Config struct {
	// MaxPrimitives sizes the normal and the foreground primitive buffers.
	// Primitives beyond it are not drawn.
	MaxPrimitives int
	// MaxGlassPrimitives sizes the glass buffer.
	MaxGlassPrimitives int
	// MaxGlyphs sizes the glyph buffer.
	MaxGlyphs int
	// SampleCount is the sample count of the main pipelines (1 disables MSAA).
	SampleCount uint32
	// TextureFormat of render targets. Undefined selects DefaultTextureFormat.
	TextureFormat gputypes.TextureFormat
	// UnifiedTextRendering tells the glyph producer to emit text as SDF
	// primitives (see batch.Batch.ConvertGlyphsToPrimitives). The renderer
	// does not convert glyphs by itself.
	UnifiedTextRendering bool
	// SingleSubmitGlass records glass frame steps 2 to 5 into one
	// submission instead of three.
	SingleSubmitGlass bool
	// ValidateShaders compiles every shader with naga during Configure.
	ValidateShaders bool
	// Background is the opaque clear color of glass frames.
	Background compositor.Color
	// MaxImageGroups bounds the cached per-image bind groups.
	MaxImageGroups int
}

// Option configures a Config.
type Option func(*Config)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxPrimitives:      DefaultMaxPrimitives,
		MaxGlassPrimitives: DefaultMaxGlassPrimitives,
		MaxGlyphs:          DefaultMaxGlyphs,
		SampleCount:        1,
		TextureFormat:      gputypes.TextureFormatUndefined,
		Background:         compositor.Black,
		MaxImageGroups:     DefaultMaxImageGroups,
	}
}

// NewConfig returns DefaultConfig with opts applied.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxPrimitives sets the primitive buffer capacity.
func WithMaxPrimitives(n int) Option {
	return func(c *Config) { c.MaxPrimitives = n }
}

// WithMaxGlassPrimitives sets the glass buffer capacity.
func WithMaxGlassPrimitives(n int) Option {
	return func(c *Config) { c.MaxGlassPrimitives = n }
}

// WithMaxGlyphs sets the glyph buffer capacity.
func WithMaxGlyphs(n int) Option {
	return func(c *Config) { c.MaxGlyphs = n }
}

// WithSampleCount sets the MSAA sample count.
func WithSampleCount(n uint32) Option {
	return func(c *Config) { c.SampleCount = n }
}

// WithTextureFormat sets the render target format.
func WithTextureFormat(f gputypes.TextureFormat) Option {
	return func(c *Config) { c.TextureFormat = f }
}

// WithUnifiedTextRendering enables text as SDF primitives.
func WithUnifiedTextRendering(enabled bool) Option {
	return func(c *Config) { c.UnifiedTextRendering = enabled }
}

// WithSingleSubmitGlass collapses the glass frame into one submission.
func WithSingleSubmitGlass(enabled bool) Option {
	return func(c *Config) { c.SingleSubmitGlass = enabled }
}

// WithShaderValidation enables naga validation in Configure.
func WithShaderValidation(enabled bool) Option {
	return func(c *Config) { c.ValidateShaders = enabled }
}

// WithBackground sets the glass frame clear color.
func WithBackground(c compositor.Color) Option {
	return func(cfg *Config) { cfg.Background = c }
}

// Format returns the effective texture format.
func (c Config) Format() gputypes.TextureFormat {
	if c.TextureFormat == gputypes.TextureFormatUndefined {
		return DefaultTextureFormat
	}
	return c.TextureFormat
}

// Validate reports configuration values the renderer cannot use.
func (c Config) Validate() error {
	switch {
	case c.MaxPrimitives <= 0:
		return fmt.Errorf("%w: MaxPrimitives must be positive, got %d", ErrInvalidConfig, c.MaxPrimitives)
	case c.MaxGlassPrimitives <= 0:
		return fmt.Errorf("%w: MaxGlassPrimitives must be positive, got %d", ErrInvalidConfig, c.MaxGlassPrimitives)
	case c.MaxGlyphs <= 0:
		return fmt.Errorf("%w: MaxGlyphs must be positive, got %d", ErrInvalidConfig, c.MaxGlyphs)
	}
	switch c.SampleCount {
	case 0, 1, 2, 4, 8:
	default:
		return fmt.Errorf("%w: unsupported sample count %d", ErrInvalidConfig, c.SampleCount)
	}
	return nil
}

// fileConfig is the TOML representation of Config.
type fileConfig struct {
	MaxPrimitives        *int    `toml:"max_primitives"`
	MaxGlassPrimitives   *int    `toml:"max_glass_primitives"`
	MaxGlyphs            *int    `toml:"max_glyphs"`
	MaxImageGroups       *int    `toml:"max_image_groups"`
	SampleCount          *uint32 `toml:"sample_count"`
	TextureFormat        string  `toml:"texture_format"`
	UnifiedTextRendering *bool   `toml:"unified_text_rendering"`
	SingleSubmitGlass    *bool   `toml:"single_submit_glass"`
	ValidateShaders      *bool   `toml:"validate_shaders"`
	Background           string  `toml:"background"`
}

// textureFormats maps config file names to formats.
var textureFormats = map[string]gputypes.TextureFormat{
	"":                gputypes.TextureFormatUndefined,
	"bgra8unorm":      gputypes.TextureFormatBGRA8Unorm,
	"bgra8unorm-srgb": gputypes.TextureFormatBGRA8UnormSrgb,
	"rgba8unorm":      gputypes.TextureFormatRGBA8Unorm,
	"rgba8unorm-srgb": gputypes.TextureFormatRGBA8UnormSrgb,
}

// LoadConfig reads a TOML configuration. Keys that are absent keep their
// default values; unknown keys are an error.
//
//	sample_count = 4
//	texture_format = "bgra8unorm"
//	background = "#101018"
func LoadConfig(r io.Reader) (Config, error) {
	var fc fileConfig
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return Config{}, fmt.Errorf("gpu: decode config: %w", err)
	}

	cfg := DefaultConfig()
	setIf(&cfg.MaxPrimitives, fc.MaxPrimitives)
	setIf(&cfg.MaxGlassPrimitives, fc.MaxGlassPrimitives)
	setIf(&cfg.MaxGlyphs, fc.MaxGlyphs)
	setIf(&cfg.MaxImageGroups, fc.MaxImageGroups)
	setIf(&cfg.SampleCount, fc.SampleCount)
	setIf(&cfg.UnifiedTextRendering, fc.UnifiedTextRendering)
	setIf(&cfg.SingleSubmitGlass, fc.SingleSubmitGlass)
	setIf(&cfg.ValidateShaders, fc.ValidateShaders)

	format, ok := textureFormats[strings.ToLower(fc.TextureFormat)]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown texture format %q", ErrInvalidConfig, fc.TextureFormat)
	}
	cfg.TextureFormat = format

	if fc.Background != "" {
		bg, err := compositor.Hex(fc.Background)
		if err != nil {
			return Config{}, fmt.Errorf("%w: background: %w", ErrInvalidConfig, err)
		}
		cfg.Background = bg
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
