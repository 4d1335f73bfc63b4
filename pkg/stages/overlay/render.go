package overlay

import (
	"fmt"
	"image"
	"time"

	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// Baseline resolution the overlay sizes are specified against.
const (
	baseWidth  = 1920
	baseHeight = 1080
)

// minFontSize keeps the timestamp legible on very small frames.
const minFontSize = 8.0

// Render composites the formatted capture timestamp onto a copy of img.
// It is a pure function of its inputs: the same frame, timestamp, and config
// produce byte-identical output.
func Render(renderer ports.Renderer, img image.Image, ts time.Time, cfg pipeline.OverlayConfig) (image.Image, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	scale := scaleRatio(w, h)
	fontSize := cfg.FontSize * scale
	if fontSize < minFontSize {
		fontSize = minFontSize
	}
	margin := int(float64(cfg.Margin) * scale)
	padding := int(float64(cfg.Padding) * scale)

	text := ts.Format(cfg.Template)
	style := ports.TextStyle{
		FontSize: fontSize,
		FontPath: cfg.FontPath,
		Color:    cfg.TextColor,
	}

	canvas := renderer.CreateCanvas(img)

	textW, textH, err := canvas.MeasureText(text, style)
	if err != nil {
		return nil, fmt.Errorf("measure text: %w", err)
	}

	boxW := int(textW) + 2*padding
	boxH := int(textH) + 2*padding
	boxX, boxY := placeBox(cfg.Placement, w, h, boxW, boxH, margin)

	canvas.DrawRoundedRect(boxX, boxY, boxW, boxH, padding/2, cfg.BoxColor)
	if err := canvas.DrawText(text, boxX+padding, boxY+boxH/2, style); err != nil {
		return nil, fmt.Errorf("draw text: %w", err)
	}

	return canvas.ToImage(), nil
}

// scaleRatio relates the frame size to the 1080p baseline the overlay
// sizes are tuned for.
func scaleRatio(w, h int) float64 {
	rw := float64(w) / baseWidth
	rh := float64(h) / baseHeight
	if rw < rh {
		return rw
	}
	return rh
}

// placeBox returns the top-left corner of the overlay box for a placement.
func placeBox(placement pipeline.OverlayPlacement, w, h, boxW, boxH, margin int) (int, int) {
	switch placement {
	case pipeline.PlaceTopLeft:
		return margin, margin
	case pipeline.PlaceTopRight:
		return w - boxW - margin, margin
	case pipeline.PlaceBottomRight:
		return w - boxW - margin, h - boxH - margin
	default: // bottom-left
		return margin, h - boxH - margin
	}
}
