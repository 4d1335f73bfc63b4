// Package timelapse provides a high-level API for assembling timelapse videos.
package timelapse

import (
	"github.com/user/timelapse/pkg/orchestrator"
	"github.com/user/timelapse/pkg/pipeline"
)

// QualityPreset represents an encoding quality preset name.
type QualityPreset string

const (
	QualityDraft   QualityPreset = "draft"
	QualityDefault QualityPreset = "default"
	QualityArchive QualityPreset = "archive"
)

// QualitySettings contains quality parameters for video encoding.
type QualitySettings struct {
	CRF    int    // CRF value (0-51, lower is better)
	Preset string // Encoder speed/quality preset
}

// GetQualitySettings returns quality settings for the given preset.
func GetQualitySettings(preset QualityPreset) QualitySettings {
	switch preset {
	case QualityDraft:
		return QualitySettings{
			CRF:    28,
			Preset: "fast",
		}
	case QualityArchive:
		return QualitySettings{
			CRF:    12,
			Preset: "slower",
		}
	default:
		return QualitySettings{
			CRF:    18,
			Preset: "slow",
		}
	}
}

// ConfigBuilder provides a fluent interface for building an
// orchestrator.Config.
type ConfigBuilder struct {
	config orchestrator.Config
}

// NewConfigBuilder creates a new ConfigBuilder with default settings.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: orchestrator.DefaultConfig(),
	}
}

// NewDraftConfigBuilder creates a ConfigBuilder tuned for fast preview
// encodes.
func NewDraftConfigBuilder() *ConfigBuilder {
	b := NewConfigBuilder()
	q := GetQualitySettings(QualityDraft)
	b.config.CRF = q.CRF
	b.config.Preset = q.Preset
	return b
}

// WithQuality applies a named quality preset.
func (b *ConfigBuilder) WithQuality(preset QualityPreset) *ConfigBuilder {
	q := GetQualitySettings(preset)
	b.config.CRF = q.CRF
	b.config.Preset = q.Preset
	return b
}

// WithFPS sets the number of input frames consumed per output second.
func (b *ConfigBuilder) WithFPS(fps float64) *ConfigBuilder {
	b.config.FPS = fps
	return b
}

// WithCRF sets the constant rate factor.
func (b *ConfigBuilder) WithCRF(crf int) *ConfigBuilder {
	b.config.CRF = crf
	return b
}

// WithPreset sets the encoder speed/quality preset.
func (b *ConfigBuilder) WithPreset(preset string) *ConfigBuilder {
	b.config.Preset = preset
	return b
}

// WithOverlay enables the timestamp overlay with the given font.
func (b *ConfigBuilder) WithOverlay(fontPath string) *ConfigBuilder {
	b.config.OverlayEnabled = true
	b.config.Overlay.FontPath = fontPath
	return b
}

// WithoutOverlay disables the timestamp overlay.
func (b *ConfigBuilder) WithoutOverlay() *ConfigBuilder {
	b.config.OverlayEnabled = false
	return b
}

// WithOverlayTemplate sets the timestamp layout in Go reference-time
// notation.
func (b *ConfigBuilder) WithOverlayTemplate(template string) *ConfigBuilder {
	b.config.Overlay.Template = template
	return b
}

// WithOverlayPlacement sets the corner the timestamp is drawn in.
func (b *ConfigBuilder) WithOverlayPlacement(placement pipeline.OverlayPlacement) *ConfigBuilder {
	b.config.Overlay.Placement = placement
	return b
}

// WithCrop enables cropping to the given aspect ratio.
func (b *ConfigBuilder) WithCrop(aspectW, aspectH int, anchor pipeline.CropAnchor) *ConfigBuilder {
	b.config.CropEnabled = true
	b.config.AspectW = aspectW
	b.config.AspectH = aspectH
	b.config.Anchor = anchor
	return b
}

// WithWorkers bounds the parallel frame worker pool.
func (b *ConfigBuilder) WithWorkers(workers int) *ConfigBuilder {
	b.config.Workers = workers
	return b
}

// Build returns the constructed configuration for the given input
// directory and output path.
func (b *ConfigBuilder) Build(inputDir, outputPath string) orchestrator.Config {
	config := b.config
	config.InputDir = inputDir
	config.OutputPath = outputPath
	return config
}
