package pipeline

import (
	"image/color"
	"time"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height in pixels.
type Dimension struct {
	Width  int
	Height int
}

// Frame is one captured still image in the input sequence.
type Frame struct {
	// Path is the absolute path of the image file.
	Path string

	// Timestamp is the capture time inferred from the filename, falling back
	// to the file modification time when the filename carries no usable token.
	Timestamp time.Time

	// Sequence is the position of the frame after sorting. Strictly
	// increasing with Timestamp; unique within a FrameSet.
	Sequence int
}

// FrameSet is the deterministically ordered collection of frames for one run.
// It is non-empty and homogeneous: every frame matches Dims.
type FrameSet struct {
	Frames []Frame
	Dims   Dimension
}

// Span returns the capture interval covered by the set.
func (fs FrameSet) Span() (first, last time.Time) {
	if len(fs.Frames) == 0 {
		return
	}
	return fs.Frames[0].Timestamp, fs.Frames[len(fs.Frames)-1].Timestamp
}

// =============================================================================
// Catalog Stage Types
// =============================================================================

// CatalogInput contains parameters for frame discovery.
type CatalogInput struct {
	// Dir is the directory holding the captured images.
	Dir string
}

// CatalogResult contains the ordered, validated frame set.
type CatalogResult struct {
	FrameSet FrameSet
}

// =============================================================================
// Crop Stage Types
// =============================================================================

// CropAnchor selects which part of the image survives an aspect crop.
type CropAnchor string

const (
	AnchorCenter CropAnchor = "center"
	AnchorTop    CropAnchor = "top"
	AnchorBottom CropAnchor = "bottom"
	AnchorLeft   CropAnchor = "left"
	AnchorRight  CropAnchor = "right"
)

// CropInput contains parameters for the optional aspect crop.
type CropInput struct {
	Frames []Frame
	Dims   Dimension

	// AspectW and AspectH define the target aspect ratio (e.g. 16 and 9).
	AspectW int
	AspectH int

	Anchor CropAnchor

	// OutDir is a run-scoped directory receiving the cropped frames.
	OutDir string

	// Workers bounds the crop worker pool. Zero means NumCPU.
	Workers int
}

// DefaultCropInput returns CropInput with default values.
func DefaultCropInput() CropInput {
	return CropInput{
		AspectW: 16,
		AspectH: 9,
		Anchor:  AnchorCenter,
	}
}

// CropResult contains the cropped frames in sequence order.
type CropResult struct {
	Frames []Frame
	Dims   Dimension
}

// =============================================================================
// Overlay Stage Types
// =============================================================================

// OverlayPlacement selects the corner the timestamp is drawn in.
type OverlayPlacement string

const (
	PlaceTopLeft     OverlayPlacement = "top-left"
	PlaceTopRight    OverlayPlacement = "top-right"
	PlaceBottomLeft  OverlayPlacement = "bottom-left"
	PlaceBottomRight OverlayPlacement = "bottom-right"
)

// OverlayConfig describes the timestamp overlay. Constructed once per run
// and read-only during rendering.
type OverlayConfig struct {
	// FontPath is the TTF font asset used for the timestamp text.
	FontPath string

	// Template is the time layout the timestamp is formatted with,
	// in Go reference-time notation.
	Template string

	Placement OverlayPlacement

	// FontSize is the text size in points at the 1080p baseline. The
	// effective size is scaled by min(w/1920, h/1080).
	FontSize float64

	// Margin is the distance from the image edge in pixels at the baseline
	// resolution, scaled like FontSize.
	Margin int

	// Padding is the box padding around the text in pixels, scaled.
	Padding int

	TextColor color.Color
	BoxColor  color.Color
}

// DefaultOverlayConfig returns OverlayConfig with default values.
func DefaultOverlayConfig() OverlayConfig {
	return OverlayConfig{
		Template:  "Mon Jan 02 2006  3:04 PM",
		Placement: PlaceBottomLeft,
		FontSize:  36,
		Margin:    24,
		Padding:   12,
		TextColor: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		BoxColor:  color.RGBA{R: 0, G: 0, B: 0, A: 0x80},
	}
}

// OverlayInput contains parameters for overlay rendering.
type OverlayInput struct {
	Frames []Frame
	Dims   Dimension
	Config OverlayConfig

	// OutDir is a run-scoped directory receiving the rendered frames.
	OutDir string

	// Workers bounds the render worker pool. Zero means NumCPU.
	Workers int
}

// OverlayResult contains the rendered frames in sequence order.
type OverlayResult struct {
	Frames []Frame
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains parameters for video encoding.
type EncodeInput struct {
	Frames []Frame
	Dims   Dimension

	// FPS is the number of input frames consumed per second of output.
	FPS float64

	// CRF is the constant rate factor (lower is higher quality).
	CRF int

	// Preset is the encoder speed/quality preset.
	Preset string

	// PixelFormat is the output pixel format.
	PixelFormat string

	// KeyframeIntervalSec is the time in seconds between keyframes.
	KeyframeIntervalSec int

	// OutputPath is the final path of the produced video file.
	OutputPath string

	// WorkDir is a run-scoped directory for encoder intermediates.
	WorkDir string
}

// DefaultEncodeInput returns EncodeInput with default values.
func DefaultEncodeInput() EncodeInput {
	return EncodeInput{
		FPS:                 6,
		CRF:                 18,
		Preset:              "slow",
		PixelFormat:         "yuv420p",
		KeyframeIntervalSec: 2,
	}
}

// EncodeResult contains the encoded video details.
type EncodeResult struct {
	// OutputPath is the absolute path of the produced video file.
	OutputPath string

	// DurationMs is the expected output duration: frameCount / FPS.
	DurationMs int

	// FileSize is the size of the produced file in bytes.
	FileSize int64
}
