// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/timelapse/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveCatalogJSON saves the frame catalog result as JSON.
func (s *Sink) SaveCatalogJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "catalog.json")
	return s.fs.WriteFile(path, data)
}

// SaveCroppedFrame saves a cropped frame.
func (s *Sink) SaveCroppedFrame(index int, img image.Image) error {
	return s.saveFrame(filepath.Join(s.baseDir, "frames", "cropped"), index, img)
}

// SaveOverlaidFrame saves a frame with the timestamp overlay applied.
func (s *Sink) SaveOverlaidFrame(index int, img image.Image) error {
	return s.saveFrame(filepath.Join(s.baseDir, "frames", "overlaid"), index, img)
}

// SaveEncoderLog saves the captured encoder diagnostic output.
func (s *Sink) SaveEncoderLog(data []byte) error {
	path := filepath.Join(s.baseDir, "encoder.log")
	return s.fs.WriteFile(path, data)
}

func (s *Sink) saveFrame(dir string, index int, img image.Image) error {
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode debug frame: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%05d.png", index))
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
