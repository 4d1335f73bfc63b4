package summarizer

import (
	"testing"
	"time"
)

func TestBuilder(t *testing.T) {
	first := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	last := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)

	summary := NewBuilder().
		WithSource(SourceInfo{
			InputDir:     "/photos",
			FrameCount:   100,
			FirstCapture: first,
			LastCapture:  last,
		}).
		WithSettings(Settings{FPS: 12, CRF: 20, Preset: "medium"}).
		WithVideo(VideoInfo{OutputPath: "/out.mp4", DurationMs: 8333, FileSize: 2048}).
		Build()

	if summary.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt to be set")
	}
	if summary.Source.FrameCount != 100 {
		t.Errorf("expected 100 frames, got %d", summary.Source.FrameCount)
	}
	if !summary.Source.FirstCapture.Equal(first) || !summary.Source.LastCapture.Equal(last) {
		t.Error("capture times not carried over")
	}
	if summary.Settings.FPS != 12 {
		t.Errorf("expected fps 12, got %g", summary.Settings.FPS)
	}
	if summary.Video.OutputPath != "/out.mp4" {
		t.Errorf("unexpected output path %s", summary.Video.OutputPath)
	}
}
