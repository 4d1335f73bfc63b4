// Package config provides configuration loading and management.
package config

import (
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/user/timelapse/pkg/orchestrator"
	"github.com/user/timelapse/pkg/pipeline"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for timelapse.
type Config struct {
	// Input/Output
	InputDir   string `yaml:"input"`
	OutputPath string `yaml:"output"`

	// Encoding
	FPS                 float64 `yaml:"fps"`
	CRF                 int     `yaml:"crf"`
	Preset              string  `yaml:"preset"`
	PixelFormat         string  `yaml:"pixel_format"`
	KeyframeIntervalSec int     `yaml:"keyframe_interval_sec"`

	// Overlay
	OverlayEnabled bool          `yaml:"overlay"`
	Overlay        OverlayConfig `yaml:"overlay_style"`

	// Crop
	CropEnabled bool   `yaml:"crop"`
	Aspect      string `yaml:"aspect"`
	Anchor      string `yaml:"anchor"`

	// Concurrency
	Workers int `yaml:"workers"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// OverlayConfig represents timestamp overlay styling.
type OverlayConfig struct {
	FontPath  string  `yaml:"font"`
	Template  string  `yaml:"template"`
	Placement string  `yaml:"placement"`
	FontSize  float64 `yaml:"font_size"`
	Margin    int     `yaml:"margin"`
	Padding   int     `yaml:"padding"`
	TextColor string  `yaml:"text_color"`
	BoxColor  string  `yaml:"box_color"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Encoding
		FPS:                 6,
		CRF:                 18,
		Preset:              "slow",
		PixelFormat:         "yuv420p",
		KeyframeIntervalSec: 2,

		// Overlay
		OverlayEnabled: true,
		Overlay: OverlayConfig{
			Template:  "Mon Jan 02 2006  3:04 PM",
			Placement: "bottom-left",
			FontSize:  36,
			Margin:    24,
			Padding:   12,
			TextColor: "#ffffff",
			BoxColor:  "#00000080",
		},

		// Crop
		Aspect: "16:9",
		Anchor: "center",

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseColor parses a hex color string (#RGB, #RRGGBB or #RRGGBBAA)
// to color.Color. Malformed input yields opaque black.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	switch len(hex) {
	case 3:
		r := hexValue(hex[0])
		g := hexValue(hex[1])
		b := hexValue(hex[2])
		return color.RGBA{R: r<<4 | r, G: g<<4 | g, B: b<<4 | b, A: 255}
	case 6:
		return color.RGBA{
			R: hexPair(hex[0], hex[1]),
			G: hexPair(hex[2], hex[3]),
			B: hexPair(hex[4], hex[5]),
			A: 255,
		}
	case 8:
		return color.RGBA{
			R: hexPair(hex[0], hex[1]),
			G: hexPair(hex[2], hex[3]),
			B: hexPair(hex[4], hex[5]),
			A: hexPair(hex[6], hex[7]),
		}
	default:
		return color.Black
	}
}

func hexPair(hi, lo byte) uint8 {
	return hexValue(hi)<<4 | hexValue(lo)
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ParseAspect parses a "W:H" aspect ratio string. Returns zeros when the
// string is malformed; orchestrator validation rejects those.
func ParseAspect(s string) (int, int) {
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return 0, 0
	}
	w, err := strconv.Atoi(s[:idx])
	if err != nil {
		return 0, 0
	}
	h, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return 0, 0
	}
	return w, h
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	aspectW, aspectH := ParseAspect(c.Aspect)

	return orchestrator.Config{
		InputDir:   c.InputDir,
		OutputPath: c.OutputPath,

		FPS:                 c.FPS,
		CRF:                 c.CRF,
		Preset:              c.Preset,
		PixelFormat:         c.PixelFormat,
		KeyframeIntervalSec: c.KeyframeIntervalSec,

		OverlayEnabled: c.OverlayEnabled,
		Overlay: pipeline.OverlayConfig{
			FontPath:  c.Overlay.FontPath,
			Template:  c.Overlay.Template,
			Placement: pipeline.OverlayPlacement(c.Overlay.Placement),
			FontSize:  c.Overlay.FontSize,
			Margin:    c.Overlay.Margin,
			Padding:   c.Overlay.Padding,
			TextColor: ParseColor(c.Overlay.TextColor),
			BoxColor:  ParseColor(c.Overlay.BoxColor),
		},

		CropEnabled: c.CropEnabled,
		AspectW:     aspectW,
		AspectH:     aspectH,
		Anchor:      pipeline.CropAnchor(c.Anchor),

		Workers: c.Workers,
	}
}
