// Package summarizer provides summary generation for assembly results.
package summarizer

import "time"

// Summary contains all data collected during an assembly run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Source information
	Source SourceInfo

	// Assembly settings
	Settings Settings

	// Video output details
	Video VideoInfo
}

// SourceInfo describes the cataloged input frames.
type SourceInfo struct {
	InputDir     string
	FrameCount   int
	FirstCapture time.Time
	LastCapture  time.Time
}

// Settings contains the assembly configuration.
type Settings struct {
	FPS    float64
	CRF    int
	Preset string

	OverlayEnabled bool
	FontPath       string

	CropEnabled bool
	Aspect      string

	Workers int
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	OutputPath   string
	DurationMs   int
	FileSize     int64
	CanvasWidth  int
	CanvasHeight int
	Verified     bool
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets cataloged input information.
func (b *Builder) WithSource(source SourceInfo) *Builder {
	b.summary.Source = source
	return b
}

// WithSettings sets assembly settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
