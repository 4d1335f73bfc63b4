package mocks

import (
	"image"
	"image/color"

	"github.com/user/timelapse/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(base image.Image) ports.Canvas
	DecodeImageFunc  func(data []byte) (image.Image, error)
	DecodeConfigFunc func(data []byte) (int, int, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	CropImageFunc    func(img image.Image, rect image.Rectangle) image.Image
	ResizeImageFunc  func(img image.Image, width, height int) image.Image
}

func (m *Renderer) CreateCanvas(base image.Image) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(base)
	}
	return &Canvas{base: base}
}

func (m *Renderer) DecodeImage(data []byte) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (m *Renderer) DecodeConfig(data []byte) (int, int, error) {
	if m.DecodeConfigFunc != nil {
		return m.DecodeConfigFunc(data)
	}
	return 1, 1, nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte("encoded"), nil
}

func (m *Renderer) CropImage(img image.Image, rect image.Rectangle) image.Image {
	if m.CropImageFunc != nil {
		return m.CropImageFunc(img, rect)
	}
	return img
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return img
}

// Canvas is a mock implementation of ports.Canvas that records draw calls.
type Canvas struct {
	base image.Image

	RectCalls []RectCall
	TextCalls []TextCall

	DrawTextErr    error
	MeasureTextErr error
}

// RectCall records arguments of a DrawRect or DrawRoundedRect call.
type RectCall struct {
	X, Y, W, H int
	Radius     int
	Color      color.Color
}

// TextCall records arguments of a DrawText call.
type TextCall struct {
	Text  string
	X, Y  int
	Style ports.TextStyle
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {
	m.RectCalls = append(m.RectCalls, RectCall{X: x, Y: y, W: w, H: h, Color: c})
}

func (m *Canvas) DrawRoundedRect(x, y, w, h, radius int, c color.Color) {
	m.RectCalls = append(m.RectCalls, RectCall{X: x, Y: y, W: w, H: h, Radius: radius, Color: c})
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) error {
	if m.DrawTextErr != nil {
		return m.DrawTextErr
	}
	m.TextCalls = append(m.TextCalls, TextCall{Text: text, X: x, Y: y, Style: style})
	return nil
}

func (m *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64, error) {
	if m.MeasureTextErr != nil {
		return 0, 0, m.MeasureTextErr
	}
	return float64(len(text)) * style.FontSize * 0.6, style.FontSize, nil
}

func (m *Canvas) ToImage() image.Image {
	if m.base != nil {
		return m.base
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

// Ensure mocks implement their ports
var (
	_ ports.Renderer = (*Renderer)(nil)
	_ ports.Canvas   = (*Canvas)(nil)
)
