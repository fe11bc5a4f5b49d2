// Package config loads the immutable pipeline configuration from YAML,
// environment, and built-in defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Ankurjain1121/collage-tool-api/internal/fit"
	"github.com/Ankurjain1121/collage-tool-api/internal/palette"
)

type Config struct {
	Mode      string          `mapstructure:"mode"`
	Canvas    CanvasConfig    `mapstructure:"canvas"`
	Style     StyleConfig     `mapstructure:"style"`
	Enhance   EnhanceConfig   `mapstructure:"enhance"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Batch     BatchConfig     `mapstructure:"batch"`
}

type CanvasConfig struct {
	Width       int     `mapstructure:"width"`
	Height      int     `mapstructure:"height"`
	Border      int     `mapstructure:"border"`
	Gap         int     `mapstructure:"gap"`
	Image1Ratio float64 `mapstructure:"image1_ratio"`
}

type StyleConfig struct {
	BorderStyle       string         `mapstructure:"border_style"` // solid | asset-overlay | none
	BorderColor       []int          `mapstructure:"border_color"`
	Slot1Fit          string         `mapstructure:"slot1_fit"`
	Slot2Fit          string         `mapstructure:"slot2_fit"`
	OverlayStrategy   string         `mapstructure:"overlay_strategy"`
	AlphaThreshold    int            `mapstructure:"alpha_threshold"`
	Overlays          []OverlayColor `mapstructure:"overlays"`
	DefaultBackground string         `mapstructure:"default_background"`
	DefaultBorder     string         `mapstructure:"default_border"`
}

// OverlayColor is one entry of the ordered lightest-to-darkest overlay
// candidate list.
type OverlayColor struct {
	Name string `mapstructure:"name"`
	R    int    `mapstructure:"r"`
	G    int    `mapstructure:"g"`
	B    int    `mapstructure:"b"`
}

type EnhanceConfig struct {
	SharpenRadius    float64 `mapstructure:"sharpen_radius"`
	SharpenAmount    float64 `mapstructure:"sharpen_amount"` // fraction, 0.5 = 50%
	SharpenThreshold int     `mapstructure:"sharpen_threshold"`
	Contrast         float64 `mapstructure:"contrast"`
	Saturation       float64 `mapstructure:"saturation"`
}

type ExtractorConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Root string `mapstructure:"root"`
}

type BatchConfig struct {
	MaxConcurrent int `mapstructure:"max_concurrent"`
}

// Load reads configuration from a YAML file, layering it over the
// defaults. Environment variables prefixed COLLAGE_ override both.
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("collage")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(cfg.Style.Overlays) == 0 {
		cfg.Style.Overlays = defaultOverlays()
	}
	if len(cfg.Style.BorderColor) == 0 {
		cfg.Style.BorderColor = []int{0, 0, 0}
	}
	if cfg.Batch.MaxConcurrent < 1 {
		cfg.Batch.MaxConcurrent = 1
	}
	return cfg, nil
}

// New loads the default configuration path, falling back to pure defaults
// when no file is present.
func New() Config {
	cfg, err := Load("config.yaml")
	if err != nil {
		cfg, _ = Load("")
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "debug")

	v.SetDefault("canvas.width", 1920)
	v.SetDefault("canvas.height", 1080)
	v.SetDefault("canvas.border", 80)
	v.SetDefault("canvas.gap", 40)
	v.SetDefault("canvas.image1_ratio", 0.25)

	v.SetDefault("style.border_style", "solid")
	v.SetDefault("style.slot1_fit", "letterbox")
	v.SetDefault("style.slot2_fit", "crop-fill")
	v.SetDefault("style.overlay_strategy", "binary-pick")
	v.SetDefault("style.alpha_threshold", 125)
	v.SetDefault("style.default_background", "base_cream.png")
	v.SetDefault("style.default_border", "default.png")

	v.SetDefault("enhance.sharpen_radius", 1.5)
	v.SetDefault("enhance.sharpen_amount", 0.5)
	v.SetDefault("enhance.sharpen_threshold", 3)
	v.SetDefault("enhance.contrast", 1.08)
	v.SetDefault("enhance.saturation", 1.12)

	v.SetDefault("extractor.endpoint", "")
	v.SetDefault("extractor.timeout", 120*time.Second)

	v.SetDefault("storage.root", "./storage")

	v.SetDefault("batch.max_concurrent", 4)
}

// defaultOverlays is the production candidate list, ordered lightest to
// darkest.
func defaultOverlays() []OverlayColor {
	return []OverlayColor{
		{Name: "sky_blue", R: 135, G: 206, B: 235},
		{Name: "cream", R: 255, G: 248, B: 220},
		{Name: "tan", R: 210, G: 180, B: 140},
		{Name: "olive", R: 128, G: 128, B: 0},
		{Name: "bottle_green", R: 0, G: 106, B: 78},
	}
}

// Validate rejects configurations that would produce a degenerate layout
// or reference unknown styles. It never clamps: bad configuration is fatal
// before any pixel work starts.
func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas %dx%d is not positive", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.Border < 0 || c.Canvas.Gap < 0 {
		return fmt.Errorf("border %d / gap %d must be non-negative", c.Canvas.Border, c.Canvas.Gap)
	}
	if c.Canvas.Width <= 2*c.Canvas.Border+c.Canvas.Gap {
		return fmt.Errorf("canvas width %d leaves no usable space (border %d, gap %d)",
			c.Canvas.Width, c.Canvas.Border, c.Canvas.Gap)
	}
	if c.Canvas.Height <= 2*c.Canvas.Border {
		return fmt.Errorf("canvas height %d leaves no usable space (border %d)", c.Canvas.Height, c.Canvas.Border)
	}
	if c.Canvas.Image1Ratio <= 0 || c.Canvas.Image1Ratio >= 1 {
		return fmt.Errorf("image1_ratio %v outside (0,1)", c.Canvas.Image1Ratio)
	}

	switch c.Style.BorderStyle {
	case "solid", "asset-overlay", "none":
	default:
		return fmt.Errorf("unknown border style %q", c.Style.BorderStyle)
	}
	if len(c.Style.BorderColor) != 3 {
		return fmt.Errorf("border_color needs exactly 3 channels, got %d", len(c.Style.BorderColor))
	}
	if _, err := fit.ParsePolicy(c.Style.Slot1Fit); err != nil {
		return fmt.Errorf("slot1_fit: %w", err)
	}
	if _, err := fit.ParsePolicy(c.Style.Slot2Fit); err != nil {
		return fmt.Errorf("slot2_fit: %w", err)
	}
	strategy, err := palette.ParseStrategy(c.Style.OverlayStrategy)
	if err != nil {
		return err
	}
	if strategy == palette.StrategyBinaryPick && len(c.Style.Overlays) == 0 {
		return fmt.Errorf("binary-pick strategy needs a non-empty overlay list")
	}
	if c.Style.AlphaThreshold < 0 || c.Style.AlphaThreshold > 255 {
		return fmt.Errorf("alpha_threshold %d outside [0,255]", c.Style.AlphaThreshold)
	}

	if c.Enhance.SharpenRadius < 0 || c.Enhance.SharpenAmount < 0 || c.Enhance.SharpenThreshold < 0 {
		return fmt.Errorf("sharpen parameters must be non-negative")
	}
	if c.Enhance.Contrast <= 0 || c.Enhance.Saturation <= 0 {
		return fmt.Errorf("contrast/saturation factors must be positive")
	}
	return nil
}

// OverlaySamples converts the configured overlay list into palette samples.
func (c Config) OverlaySamples() []palette.Sample {
	samples := make([]palette.Sample, 0, len(c.Style.Overlays))
	for _, o := range c.Style.Overlays {
		samples = append(samples, palette.New(clampChannel(o.R), clampChannel(o.G), clampChannel(o.B)))
	}
	return samples
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
