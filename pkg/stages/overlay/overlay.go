// Package overlay implements the timestamp overlay stage.
package overlay

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// Stage renders the capture timestamp onto every frame.
type Stage struct {
	renderer ports.Renderer
	fs       ports.FileSystem
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new overlay stage.
func NewStage(renderer ports.Renderer, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		fs:       fs,
		sink:     sink,
		logger:   logger.WithComponent("overlay"),
	}
}

// Execute renders all frames concurrently and writes each result to
// input.OutDir. Output ordering follows the frames' sequence indices, not
// worker completion order. Source files are never modified.
func (s *Stage) Execute(ctx context.Context, input pipeline.OverlayInput) (pipeline.OverlayResult, error) {
	result := pipeline.OverlayResult{}

	// The font asset is a precondition for the whole stage; verify it before
	// any frame is written.
	exists, err := s.fs.Exists(input.Config.FontPath)
	if err != nil || !exists {
		return result, &pipeline.OverlayError{Kind: pipeline.FontNotFound, Path: input.Config.FontPath, Err: err}
	}

	workers := input.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if err := s.fs.MkdirAll(input.OutDir); err != nil {
		return result, &pipeline.OverlayError{Kind: pipeline.RenderFailure, Path: input.OutDir, Err: err}
	}

	s.logger.Debug("Rendering overlay on %d frames with %d workers", len(input.Frames), workers)

	frames, err := s.executeParallel(ctx, input, workers)
	if err != nil {
		return result, err
	}

	s.logger.Debug("Overlay completed")
	result.Frames = frames
	return result, nil
}

// indexedFrame holds a rendered frame with its original index for sorting.
type indexedFrame struct {
	index int
	frame pipeline.Frame
}

// executeParallel renders frames using a worker pool.
func (s *Stage) executeParallel(ctx context.Context, input pipeline.OverlayInput, workers int) ([]pipeline.Frame, error) {
	numFrames := len(input.Frames)
	jobs := make(chan int, numFrames)
	results := make(chan indexedFrame, numFrames)
	errChan := make(chan error, workers)

	// Start workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go s.worker(ctx, &wg, input, jobs, results, errChan)
	}

	// Send jobs
	for i := 0; i < numFrames; i++ {
		jobs <- i
	}
	close(jobs)

	// Wait for workers to finish
	go func() {
		wg.Wait()
		close(results)
		close(errChan)
	}()

	// Collect results
	rendered := make([]indexedFrame, 0, numFrames)
	for r := range results {
		rendered = append(rendered, r)
	}

	// Check for errors
	if err := <-errChan; err != nil {
		return nil, err
	}

	// Sort by index to maintain sequence order
	sort.Slice(rendered, func(i, j int) bool {
		return rendered[i].index < rendered[j].index
	})

	frames := make([]pipeline.Frame, len(rendered))
	for i, r := range rendered {
		frames[i] = r.frame
	}
	return frames, nil
}

// worker renders frames from the jobs channel.
func (s *Stage) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	input pipeline.OverlayInput,
	jobs <-chan int,
	results chan<- indexedFrame,
	errChan chan<- error,
) {
	defer wg.Done()

	for i := range jobs {
		select {
		case <-ctx.Done():
			errChan <- ctx.Err()
			return
		default:
		}

		frame, err := s.renderOne(input, input.Frames[i])
		if err != nil {
			errChan <- err
			return
		}
		results <- indexedFrame{index: i, frame: frame}
	}
}

// renderOne applies the overlay to a single frame and writes the result.
func (s *Stage) renderOne(input pipeline.OverlayInput, src pipeline.Frame) (pipeline.Frame, error) {
	data, err := s.fs.ReadFile(src.Path)
	if err != nil {
		return pipeline.Frame{}, &pipeline.OverlayError{Kind: pipeline.RenderFailure, Path: src.Path, Err: err}
	}

	img, err := s.renderer.DecodeImage(data)
	if err != nil {
		return pipeline.Frame{}, &pipeline.OverlayError{Kind: pipeline.RenderFailure, Path: src.Path, Err: err}
	}

	out, err := Render(s.renderer, img, src.Timestamp, input.Config)
	if err != nil {
		return pipeline.Frame{}, &pipeline.OverlayError{Kind: pipeline.RenderFailure, Path: src.Path, Err: err}
	}

	encoded, err := s.renderer.EncodeImage(out, ports.FormatPNG, 0)
	if err != nil {
		return pipeline.Frame{}, &pipeline.OverlayError{Kind: pipeline.RenderFailure, Path: src.Path, Err: err}
	}

	outPath := filepath.Join(input.OutDir, fmt.Sprintf("frame-%05d.png", src.Sequence))
	if err := s.fs.WriteFile(outPath, encoded); err != nil {
		return pipeline.Frame{}, &pipeline.OverlayError{Kind: pipeline.RenderFailure, Path: outPath, Err: err}
	}

	if s.sink.Enabled() {
		s.sink.SaveOverlaidFrame(src.Sequence, out)
	}

	return pipeline.Frame{Path: outPath, Timestamp: src.Timestamp, Sequence: src.Sequence}, nil
}
