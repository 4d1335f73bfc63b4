// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// Config contains all configuration for the orchestrator. Every recognized
// option is enumerated here and validated eagerly at pipeline start.
type Config struct {
	// Input/Output
	InputDir   string
	OutputPath string

	// Encoding
	FPS                 float64
	CRF                 int
	Preset              string
	PixelFormat         string
	KeyframeIntervalSec int

	// Overlay
	OverlayEnabled bool
	Overlay        pipeline.OverlayConfig

	// Crop
	CropEnabled bool
	AspectW     int
	AspectH     int
	Anchor      pipeline.CropAnchor

	// Concurrency
	Workers int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FPS:                 6,
		CRF:                 18,
		Preset:              "slow",
		PixelFormat:         "yuv420p",
		KeyframeIntervalSec: 2,

		OverlayEnabled: true,
		Overlay:        pipeline.DefaultOverlayConfig(),

		CropEnabled: false,
		AspectW:     16,
		AspectH:     9,
		Anchor:      pipeline.AnchorCenter,
	}
}

// Validate checks the configuration before any stage runs.
func (c Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input directory is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if c.FPS <= 0 {
		return fmt.Errorf("frame rate must be positive, got %g", c.FPS)
	}
	if c.CRF < 0 || c.CRF > 51 {
		return fmt.Errorf("crf must be between 0 and 51, got %d", c.CRF)
	}
	if c.Preset == "" {
		return fmt.Errorf("encoder preset is required")
	}
	if c.OverlayEnabled && c.Overlay.FontPath == "" {
		return fmt.Errorf("font path is required when overlay is enabled")
	}
	if c.CropEnabled && (c.AspectW <= 0 || c.AspectH <= 0) {
		return fmt.Errorf("invalid crop aspect ratio %d:%d", c.AspectW, c.AspectH)
	}
	return nil
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	catalogStage pipeline.Stage[pipeline.CatalogInput, pipeline.CatalogResult]
	cropStage    pipeline.Stage[pipeline.CropInput, pipeline.CropResult]
	overlayStage pipeline.Stage[pipeline.OverlayInput, pipeline.OverlayResult]
	encodeStage  pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	fs           ports.FileSystem
	prober       ports.OutputProber
	sink         ports.DebugSink
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	catalogStage pipeline.Stage[pipeline.CatalogInput, pipeline.CatalogResult],
	cropStage pipeline.Stage[pipeline.CropInput, pipeline.CropResult],
	overlayStage pipeline.Stage[pipeline.OverlayInput, pipeline.OverlayResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	fs ports.FileSystem,
	prober ports.OutputProber,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		catalogStage: catalogStage,
		cropStage:    cropStage,
		overlayStage: overlayStage,
		encodeStage:  encodeStage,
		fs:           fs,
		prober:       prober,
		sink:         sink,
		logger:       logger,
	}
}

// Run executes the complete pipeline: catalog -> [crop] -> [overlay] ->
// encode. The first failure of any stage is propagated tagged with the
// stage name. An incomplete partial output file is left for inspection, but
// the run-scoped working directory is removed on every exit path.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	if err := config.Validate(); err != nil {
		return RunResult{}, fmt.Errorf("invalid configuration: %w", err)
	}

	o.logger.Info(l10n.T("Starting pipeline"))

	workDir, err := o.fs.MkdirTemp("", "timelapse-")
	if err != nil {
		return RunResult{}, fmt.Errorf("create working directory: %w", err)
	}
	defer o.fs.RemoveAll(workDir)

	// 1. Catalog frames
	o.logger.Info(l10n.F("Cataloging frames in %s", config.InputDir))
	catalog, err := o.catalogStage.Execute(ctx, pipeline.CatalogInput{Dir: config.InputDir})
	if err != nil {
		o.logger.Error(l10n.F("Failed to catalog frames: %s", err))
		return RunResult{}, pipeline.WrapStage(pipeline.StageCataloging, err)
	}
	frames := catalog.FrameSet.Frames
	dims := catalog.FrameSet.Dims
	o.logger.Info(l10n.F("Cataloged %d frames at %dx%d", len(frames), dims.Width, dims.Height))

	// Save catalog debug output
	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(catalog.FrameSet, "", "  "); err == nil {
			o.sink.SaveCatalogJSON(data)
		}
	}

	// 2. Crop frames (optional)
	if config.CropEnabled {
		cropInput := o.buildCropInput(config, frames, dims, workDir)
		cropped, err := o.cropStage.Execute(ctx, cropInput)
		if err != nil {
			o.logger.Error(l10n.F("Failed to crop frames: %s", err))
			return RunResult{}, pipeline.WrapStage(pipeline.StageCropping, err)
		}
		frames = cropped.Frames
		dims = cropped.Dims
	}

	// 3. Render timestamp overlay (optional)
	if config.OverlayEnabled {
		overlayInput := o.buildOverlayInput(config, frames, dims, workDir)
		overlaid, err := o.overlayStage.Execute(ctx, overlayInput)
		if err != nil {
			o.logger.Error(l10n.F("Failed to render overlay: %s", err))
			return RunResult{}, pipeline.WrapStage(pipeline.StageOverlaying, err)
		}
		frames = overlaid.Frames
	}

	// 4. Encode video
	encodeInput := o.buildEncodeInput(config, frames, dims, workDir)
	encoded, err := o.encodeStage.Execute(ctx, encodeInput)
	if err != nil {
		o.logger.Error(l10n.F("Failed to encode video: %s", err))
		return RunResult{}, pipeline.WrapStage(pipeline.StageEncoding, err)
	}
	o.logger.Info(l10n.F("Video encoded: %s (%d bytes)", encoded.OutputPath, encoded.FileSize))

	// 5. Verify the produced container (advisory)
	result := RunResult{
		InputDir:     config.InputDir,
		FrameCount:   len(catalog.FrameSet.Frames),
		OutputPath:   encoded.OutputPath,
		DurationMs:   encoded.DurationMs,
		FileSize:     encoded.FileSize,
		CanvasWidth:  dims.Width,
		CanvasHeight: dims.Height,
	}
	result.FirstCapture, result.LastCapture = catalog.FrameSet.Span()

	if info, err := o.prober.Probe(encoded.OutputPath); err != nil {
		o.logger.Warn(l10n.F("Output verification failed: %s", err))
	} else {
		o.logger.Debug("Output verified: %d ms, %dx%d", info.DurationMs, info.Width, info.Height)
		result.Verified = info.HasVideoTrack
		result.ProbedDurationMs = info.DurationMs
	}

	o.logger.Info(l10n.T("Pipeline completed successfully"))
	return result, nil
}

func (o *Orchestrator) buildCropInput(config Config, frames []pipeline.Frame, dims pipeline.Dimension, workDir string) pipeline.CropInput {
	return pipeline.CropInput{
		Frames:  frames,
		Dims:    dims,
		AspectW: config.AspectW,
		AspectH: config.AspectH,
		Anchor:  config.Anchor,
		OutDir:  filepath.Join(workDir, "cropped"),
		Workers: config.Workers,
	}
}

func (o *Orchestrator) buildOverlayInput(config Config, frames []pipeline.Frame, dims pipeline.Dimension, workDir string) pipeline.OverlayInput {
	return pipeline.OverlayInput{
		Frames:  frames,
		Dims:    dims,
		Config:  config.Overlay,
		OutDir:  filepath.Join(workDir, "overlaid"),
		Workers: config.Workers,
	}
}

func (o *Orchestrator) buildEncodeInput(config Config, frames []pipeline.Frame, dims pipeline.Dimension, workDir string) pipeline.EncodeInput {
	return pipeline.EncodeInput{
		Frames:              frames,
		Dims:                dims,
		FPS:                 config.FPS,
		CRF:                 config.CRF,
		Preset:              config.Preset,
		PixelFormat:         config.PixelFormat,
		KeyframeIntervalSec: config.KeyframeIntervalSec,
		OutputPath:          config.OutputPath,
		WorkDir:             workDir,
	}
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	// Input information
	InputDir     string
	FrameCount   int
	FirstCapture time.Time
	LastCapture  time.Time

	// Video information
	OutputPath       string
	DurationMs       int
	FileSize         int64
	CanvasWidth      int
	CanvasHeight     int
	Verified         bool
	ProbedDurationMs int
}
