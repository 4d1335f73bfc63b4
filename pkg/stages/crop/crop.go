// Package crop implements the optional aspect-ratio crop stage.
package crop

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// Stage crops every frame to a target aspect ratio before overlay/encode.
type Stage struct {
	renderer ports.Renderer
	fs       ports.FileSystem
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new crop stage.
func NewStage(renderer ports.Renderer, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		fs:       fs,
		sink:     sink,
		logger:   logger.WithComponent("crop"),
	}
}

// Execute crops all frames concurrently into input.OutDir. Output ordering
// follows sequence indices. Source files are never modified.
func (s *Stage) Execute(ctx context.Context, input pipeline.CropInput) (pipeline.CropResult, error) {
	result := pipeline.CropResult{}

	if input.AspectW <= 0 || input.AspectH <= 0 {
		return result, fmt.Errorf("invalid aspect ratio %d:%d", input.AspectW, input.AspectH)
	}

	rect := CropRect(input.Dims, input.AspectW, input.AspectH, input.Anchor)
	if rect.Dx() == input.Dims.Width && rect.Dy() == input.Dims.Height {
		// Already at the target aspect ratio.
		s.logger.Debug("Frames already %d:%d, crop skipped", input.AspectW, input.AspectH)
		result.Frames = input.Frames
		result.Dims = input.Dims
		return result, nil
	}

	workers := input.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if err := s.fs.MkdirAll(input.OutDir); err != nil {
		return result, fmt.Errorf("create crop directory: %w", err)
	}

	s.logger.Debug("Cropping %d frames to %d:%d with %d workers", len(input.Frames), input.AspectW, input.AspectH, workers)

	frames, err := s.executeParallel(ctx, input, rect, workers)
	if err != nil {
		return result, err
	}

	s.logger.Debug("Crop completed")
	result.Frames = frames
	result.Dims = pipeline.Dimension{Width: rect.Dx(), Height: rect.Dy()}
	return result, nil
}

// CropRect computes the largest rect of the target aspect ratio that fits
// the source dimensions, positioned by the anchor.
func CropRect(dims pipeline.Dimension, aspectW, aspectH int, anchor pipeline.CropAnchor) image.Rectangle {
	w, h := dims.Width, dims.Height

	cropW, cropH := w, h
	if w*aspectH > h*aspectW {
		// Too wide: trim the horizontal axis.
		cropW = h * aspectW / aspectH
	} else {
		// Too tall: trim the vertical axis.
		cropH = w * aspectH / aspectW
	}

	x, y := (w-cropW)/2, (h-cropH)/2
	switch anchor {
	case pipeline.AnchorTop:
		y = 0
	case pipeline.AnchorBottom:
		y = h - cropH
	case pipeline.AnchorLeft:
		x = 0
	case pipeline.AnchorRight:
		x = w - cropW
	}

	return image.Rect(x, y, x+cropW, y+cropH)
}

// indexedFrame holds a cropped frame with its original index for sorting.
type indexedFrame struct {
	index int
	frame pipeline.Frame
}

// executeParallel crops frames using a worker pool.
func (s *Stage) executeParallel(ctx context.Context, input pipeline.CropInput, rect image.Rectangle, workers int) ([]pipeline.Frame, error) {
	numFrames := len(input.Frames)
	jobs := make(chan int, numFrames)
	results := make(chan indexedFrame, numFrames)
	errChan := make(chan error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go s.worker(ctx, &wg, input, rect, jobs, results, errChan)
	}

	for i := 0; i < numFrames; i++ {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
		close(errChan)
	}()

	cropped := make([]indexedFrame, 0, numFrames)
	for r := range results {
		cropped = append(cropped, r)
	}

	if err := <-errChan; err != nil {
		return nil, err
	}

	sort.Slice(cropped, func(i, j int) bool {
		return cropped[i].index < cropped[j].index
	})

	frames := make([]pipeline.Frame, len(cropped))
	for i, r := range cropped {
		frames[i] = r.frame
	}
	return frames, nil
}

// worker crops frames from the jobs channel.
func (s *Stage) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	input pipeline.CropInput,
	rect image.Rectangle,
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

		frame, err := s.cropOne(input, rect, input.Frames[i])
		if err != nil {
			errChan <- err
			return
		}
		results <- indexedFrame{index: i, frame: frame}
	}
}

// cropOne crops a single frame and writes the result.
func (s *Stage) cropOne(input pipeline.CropInput, rect image.Rectangle, src pipeline.Frame) (pipeline.Frame, error) {
	data, err := s.fs.ReadFile(src.Path)
	if err != nil {
		return pipeline.Frame{}, &pipeline.CatalogError{Kind: pipeline.UnreadableFile, Path: src.Path, Err: err}
	}

	img, err := s.renderer.DecodeImage(data)
	if err != nil {
		return pipeline.Frame{}, &pipeline.CatalogError{Kind: pipeline.UnreadableFile, Path: src.Path, Err: err}
	}

	out := s.renderer.CropImage(img, rect)

	encoded, err := s.renderer.EncodeImage(out, ports.FormatPNG, 0)
	if err != nil {
		return pipeline.Frame{}, fmt.Errorf("encode cropped frame %s: %w", src.Path, err)
	}

	outPath := filepath.Join(input.OutDir, fmt.Sprintf("frame-%05d.png", src.Sequence))
	if err := s.fs.WriteFile(outPath, encoded); err != nil {
		return pipeline.Frame{}, fmt.Errorf("write cropped frame: %w", err)
	}

	if s.sink.Enabled() {
		s.sink.SaveCroppedFrame(src.Sequence, out)
	}

	return pipeline.Frame{Path: outPath, Timestamp: src.Timestamp, Sequence: src.Sequence}, nil
}
