// Package catalog implements the frame discovery stage.
package catalog

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// Supported image file extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Stage discovers, orders, and validates the input frames.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new catalog stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("catalog"),
	}
}

// Execute scans the input directory and builds the ordered frame set.
// Frames are sorted ascending by capture timestamp with ties broken by
// filename, so the ordering is deterministic across runs. Every frame's
// dimensions must match the first frame's; the check reads only image
// headers, never pixel data.
func (s *Stage) Execute(ctx context.Context, input pipeline.CatalogInput) (pipeline.CatalogResult, error) {
	result := pipeline.CatalogResult{}

	entries, err := os.ReadDir(input.Dir)
	if err != nil {
		return result, &pipeline.CatalogError{Kind: pipeline.UnreadableFile, Path: input.Dir, Err: err}
	}

	frames := make([]pipeline.Frame, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !imageExtensions[ext] {
			continue
		}

		path := filepath.Join(input.Dir, entry.Name())
		ts, ok := ParseTimestamp(entry.Name())
		if !ok {
			// Unparseable filename: fall back to modification time.
			info, err := entry.Info()
			if err != nil {
				return result, &pipeline.CatalogError{Kind: pipeline.UnreadableFile, Path: path, Err: err}
			}
			ts = info.ModTime()
			s.logger.Debug("No timestamp token in %s, using modification time", entry.Name())
		}

		frames = append(frames, pipeline.Frame{Path: path, Timestamp: ts})
	}

	if len(frames) == 0 {
		return result, &pipeline.CatalogError{Kind: pipeline.EmptyDirectory, Path: input.Dir}
	}

	sort.Slice(frames, func(i, j int) bool {
		if frames[i].Timestamp.Equal(frames[j].Timestamp) {
			return frames[i].Path < frames[j].Path
		}
		return frames[i].Timestamp.Before(frames[j].Timestamp)
	})
	for i := range frames {
		frames[i].Sequence = i
	}

	dims, err := s.checkDimensions(ctx, frames)
	if err != nil {
		return result, err
	}

	s.logger.Debug("Cataloged %d frames at %dx%d", len(frames), dims.Width, dims.Height)

	result.FrameSet = pipeline.FrameSet{Frames: frames, Dims: dims}
	return result, nil
}

// checkDimensions reads each frame's image header and verifies it matches
// the first frame's dimensions.
func (s *Stage) checkDimensions(ctx context.Context, frames []pipeline.Frame) (pipeline.Dimension, error) {
	var dims pipeline.Dimension

	for i, frame := range frames {
		select {
		case <-ctx.Done():
			return dims, ctx.Err()
		default:
		}

		w, h, err := headerDimensions(frame.Path)
		if err != nil {
			return dims, &pipeline.CatalogError{Kind: pipeline.UnreadableFile, Path: frame.Path, Err: err}
		}

		if i == 0 {
			dims = pipeline.Dimension{Width: w, Height: h}
			continue
		}
		if w != dims.Width || h != dims.Height {
			return dims, &pipeline.CatalogError{Kind: pipeline.InconsistentDimensions, Path: frame.Path}
		}
	}

	return dims, nil
}

// headerDimensions decodes only the image header of the file at path.
func headerDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
