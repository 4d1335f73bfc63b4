// Package encode implements the video encoding stage.
package encode

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// Stage drives the external encoder over the ordered frame sequence.
type Stage struct {
	encoder ports.VideoEncoder
	fs      ports.FileSystem
	sink    ports.DebugSink
	logger  ports.Logger
}

// NewStage creates a new encode stage.
func NewStage(encoder ports.VideoEncoder, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		encoder: encoder,
		fs:      fs,
		sink:    sink,
		logger:  logger.WithComponent("encode"),
	}
}

// Execute encodes all frames into a single video file. The encoder runs once
// per pipeline run and writes to a temporary path which is renamed to the
// final output only on success, so a cancelled or failed encode never leaves
// a file at the final path.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{}

	if len(input.Frames) == 0 {
		return result, fmt.Errorf("no frames to encode")
	}
	if input.FPS <= 0 {
		return result, fmt.Errorf("frame rate must be positive, got %g", input.FPS)
	}

	// Precondition, not a retry target.
	if err := s.encoder.Available(); err != nil {
		return result, &pipeline.EncodeError{Kind: pipeline.EncoderUnavailable, Err: err}
	}

	framePaths := make([]string, len(input.Frames))
	for i, frame := range input.Frames {
		framePaths[i] = frame.Path
	}

	partialPath := partialOutputPath(input.OutputPath)
	job := ports.EncodeJob{
		FramePaths:          framePaths,
		FPS:                 input.FPS,
		CRF:                 input.CRF,
		Preset:              input.Preset,
		PixelFormat:         input.PixelFormat,
		KeyframeIntervalSec: input.KeyframeIntervalSec,
		OutputPath:          partialPath,
		WorkDir:             input.WorkDir,
	}
	if s.sink.Enabled() {
		job.LogPath = filepath.Join(input.WorkDir, "encoder.log")
	}

	s.logger.Debug("Encoding %d frames at %.1f fps", len(input.Frames), input.FPS)

	err := s.encoder.Encode(ctx, job)
	s.saveEncoderLog(job.LogPath)
	if err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		var exitErr *ports.ExitError
		if errors.As(err, &exitErr) {
			return result, &pipeline.EncodeError{
				Kind:       pipeline.EncoderProcessFailed,
				ExitCode:   exitErr.Code,
				StderrTail: exitErr.StderrTail,
				Err:        exitErr,
			}
		}
		// The process never started.
		return result, &pipeline.EncodeError{Kind: pipeline.EncoderUnavailable, Err: err}
	}

	exists, err := s.fs.Exists(partialPath)
	if err != nil || !exists {
		return result, &pipeline.EncodeError{
			Kind: pipeline.EncoderProcessFailed,
			Err:  fmt.Errorf("encoder exited cleanly but produced no output at %s", partialPath),
		}
	}

	if err := s.fs.Rename(partialPath, input.OutputPath); err != nil {
		return result, fmt.Errorf("commit output: %w", err)
	}

	size, err := s.fs.Size(input.OutputPath)
	if err != nil {
		return result, fmt.Errorf("stat output: %w", err)
	}

	absPath, err := filepath.Abs(input.OutputPath)
	if err != nil {
		absPath = input.OutputPath
	}

	result.OutputPath = absPath
	result.DurationMs = int(float64(len(input.Frames)) / input.FPS * 1000)
	result.FileSize = size
	return result, nil
}

// saveEncoderLog forwards the encoder's captured diagnostic output to the
// debug sink. The log lives in the run work directory, which is removed when
// the run ends, so it must be copied out while the stage still holds it.
func (s *Stage) saveEncoderLog(logPath string) {
	if logPath == "" {
		return
	}
	data, err := s.fs.ReadFile(logPath)
	if err != nil || len(data) == 0 {
		return
	}
	if err := s.sink.SaveEncoderLog(data); err != nil {
		s.logger.Debug("Failed to save encoder log: %s", err)
	}
}

// partialOutputPath keeps the container extension so the encoder can infer
// the output format: out.mp4 -> out.partial.mp4.
func partialOutputPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + ".partial" + ext
}
