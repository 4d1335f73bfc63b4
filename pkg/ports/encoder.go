package ports

import (
	"context"
	"fmt"
)

// VideoEncoder abstracts the external encoder process that turns an ordered
// image sequence into a video file.
type VideoEncoder interface {
	// Available verifies the encoder binary is reachable before a run starts.
	Available() error

	// Encode runs the encoder once over the ordered frame sequence and blocks
	// until the process exits. The output is written to job.OutputPath.
	// A non-zero exit is reported as *ExitError; failing to spawn the
	// process at all is reported as a plain error.
	Encode(ctx context.Context, job EncodeJob) error
}

// EncodeJob describes a single encoder invocation.
type EncodeJob struct {
	// FramePaths is the ordered list of input images, one per frame.
	FramePaths []string

	// FPS is the number of input frames consumed per second of output.
	FPS float64

	// CRF is the constant rate factor passed to the encoder (lower is better).
	CRF int

	// Preset is the encoder speed/quality preset.
	Preset string

	// PixelFormat is the output pixel format (e.g. yuv420p).
	PixelFormat string

	// KeyframeIntervalSec is the time in seconds between keyframes.
	KeyframeIntervalSec int

	// OutputPath is where the encoder writes its output container.
	OutputPath string

	// WorkDir is a run-scoped directory for intermediate files such as the
	// concat list. The caller owns its lifecycle.
	WorkDir string

	// LogPath, when non-empty, is where the encoder writes its captured
	// diagnostic output regardless of exit status.
	LogPath string
}

// ExitError reports an encoder process that started but exited non-zero.
type ExitError struct {
	Code       int
	StderrTail string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("encoder exited with code %d", e.Code)
}

// OutputProber inspects a produced video container.
type OutputProber interface {
	// Probe parses the container at path and returns its properties.
	Probe(path string) (ProbeInfo, error)
}

// ProbeInfo describes a produced video file.
type ProbeInfo struct {
	DurationMs    int
	HasVideoTrack bool
	Width         int
	Height        int
}
