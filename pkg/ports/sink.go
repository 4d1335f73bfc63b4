package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveCatalogJSON saves the frame catalog result as JSON.
	SaveCatalogJSON(data []byte) error

	// SaveCroppedFrame saves a cropped frame.
	SaveCroppedFrame(index int, img image.Image) error

	// SaveOverlaidFrame saves a frame with the timestamp overlay applied.
	SaveOverlaidFrame(index int, img image.Image) error

	// SaveEncoderLog saves the captured encoder diagnostic output.
	SaveEncoderLog(data []byte) error
}
