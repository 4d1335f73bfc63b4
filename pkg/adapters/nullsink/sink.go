// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/timelapse/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new null sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards output.
func (s *Sink) Enabled() bool {
	return false
}

func (s *Sink) SaveCatalogJSON(data []byte) error {
	return nil
}

func (s *Sink) SaveCroppedFrame(index int, img image.Image) error {
	return nil
}

func (s *Sink) SaveOverlaidFrame(index int, img image.Image) error {
	return nil
}

func (s *Sink) SaveEncoderLog(data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
