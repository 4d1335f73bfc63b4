package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image processing operations.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background image.
	CreateCanvas(base image.Image) Canvas

	// DecodeImage decodes image data into an image.Image.
	DecodeImage(data []byte) (image.Image, error)

	// DecodeConfig reads only the image header and returns its dimensions.
	DecodeConfig(data []byte) (width, height int, err error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// CropImage returns the sub-region of an image described by rect.
	CropImage(img image.Image, rect image.Rectangle) image.Image

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides drawing operations for compositing a timestamp overlay.
type Canvas interface {
	// DrawRect draws a filled rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawRoundedRect draws a filled rounded rectangle.
	DrawRoundedRect(x, y, w, h, radius int, c color.Color)

	// DrawText draws text anchored at the specified position.
	DrawText(text string, x, y int, style TextStyle) error

	// MeasureText returns the width and height of the text.
	MeasureText(text string, style TextStyle) (width, height float64, err error)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
