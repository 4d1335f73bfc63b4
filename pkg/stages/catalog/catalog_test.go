package catalog

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/timelapse/pkg/adapters/logger"
	"github.com/user/timelapse/pkg/pipeline"
)

// writePNG writes a wxh PNG to dir under name and returns its path.
func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func newStage() *Stage {
	return NewStage(logger.NewNoop())
}

func TestExecute_OrdersByTimestamp(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "2024-01-01_0030.png", 10, 10)
	writePNG(t, dir, "2024-01-01_0010.png", 10, 10)
	writePNG(t, dir, "2024-01-01_0020.png", 10, 10)

	result, err := newStage().Execute(context.Background(), pipeline.CatalogInput{Dir: dir})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	frames := result.FrameSet.Frames
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	wantOrder := []string{"2024-01-01_0010.png", "2024-01-01_0020.png", "2024-01-01_0030.png"}
	for i, want := range wantOrder {
		if filepath.Base(frames[i].Path) != want {
			t.Errorf("frames[%d]: expected %s, got %s", i, want, filepath.Base(frames[i].Path))
		}
		if frames[i].Sequence != i {
			t.Errorf("frames[%d]: expected sequence %d, got %d", i, i, frames[i].Sequence)
		}
	}
	if !frames[0].Timestamp.Equal(time.Date(2024, 1, 1, 0, 10, 0, 0, time.Local)) {
		t.Errorf("unexpected first timestamp: %v", frames[0].Timestamp)
	}
}

func TestExecute_TiesBreakByFilename(t *testing.T) {
	dir := t.TempDir()
	// Same embedded timestamp, different suffixes.
	writePNG(t, dir, "b_2024-01-01_0010.png", 10, 10)
	writePNG(t, dir, "a_2024-01-01_0010.png", 10, 10)

	result, err := newStage().Execute(context.Background(), pipeline.CatalogInput{Dir: dir})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	frames := result.FrameSet.Frames
	if filepath.Base(frames[0].Path) != "a_2024-01-01_0010.png" {
		t.Errorf("expected filename tie-break, got %s first", filepath.Base(frames[0].Path))
	}
}

func TestExecute_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "2024-01-01_0010.png", 10, 10)
	writePNG(t, dir, "2024-01-01_0020.png", 10, 10)
	writePNG(t, dir, "plain.png", 10, 10)

	first, err := newStage().Execute(context.Background(), pipeline.CatalogInput{Dir: dir})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	second, err := newStage().Execute(context.Background(), pipeline.CatalogInput{Dir: dir})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	for i := range first.FrameSet.Frames {
		if first.FrameSet.Frames[i].Path != second.FrameSet.Frames[i].Path {
			t.Errorf("frames[%d]: ordering not reproducible", i)
		}
	}
}

func TestExecute_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := newStage().Execute(context.Background(), pipeline.CatalogInput{Dir: dir})

	var catErr *pipeline.CatalogError
	if !errors.As(err, &catErr) || catErr.Kind != pipeline.EmptyDirectory {
		t.Fatalf("expected EmptyDirectory, got %v", err)
	}
}

func TestExecute_UnsupportedExtensionsOnly(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := newStage().Execute(context.Background(), pipeline.CatalogInput{Dir: dir})

	var catErr *pipeline.CatalogError
	if !errors.As(err, &catErr) || catErr.Kind != pipeline.EmptyDirectory {
		t.Fatalf("expected EmptyDirectory, got %v", err)
	}
}

func TestExecute_InconsistentDimensions(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "2024-01-01_0010.png", 100, 100)
	writePNG(t, dir, "2024-01-01_0020.png", 200, 200)

	_, err := newStage().Execute(context.Background(), pipeline.CatalogInput{Dir: dir})

	var catErr *pipeline.CatalogError
	if !errors.As(err, &catErr) || catErr.Kind != pipeline.InconsistentDimensions {
		t.Fatalf("expected InconsistentDimensions, got %v", err)
	}
}

func TestExecute_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "2024-01-01_0010.png", 10, 10)
	if err := os.WriteFile(filepath.Join(dir, "2024-01-01_0020.jpg"), []byte("not a jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := newStage().Execute(context.Background(), pipeline.CatalogInput{Dir: dir})

	var catErr *pipeline.CatalogError
	if !errors.As(err, &catErr) || catErr.Kind != pipeline.UnreadableFile {
		t.Fatalf("expected UnreadableFile, got %v", err)
	}
}

func TestExecute_ModTimeFallback(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "plain.png", 10, 10)
	mtime := time.Date(2023, 6, 15, 12, 0, 0, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	result, err := newStage().Execute(context.Background(), pipeline.CatalogInput{Dir: dir})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !result.FrameSet.Frames[0].Timestamp.Equal(mtime) {
		t.Errorf("expected mtime fallback %v, got %v", mtime, result.FrameSet.Frames[0].Timestamp)
	}
}

func TestExecute_CaseInsensitiveExtensions(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "2024-01-01_0010.PNG", 10, 10)

	result, err := newStage().Execute(context.Background(), pipeline.CatalogInput{Dir: dir})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(result.FrameSet.Frames) != 1 {
		t.Errorf("expected uppercase extension to be accepted")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		want time.Time
		ok   bool
	}{
		{"2024-01-01_0015.jpg", time.Date(2024, 1, 1, 0, 15, 0, 0, time.Local), true},
		{"2024-03-05_14-30.png", time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local), true},
		{"2024-03-05_14-30-45.png", time.Date(2024, 3, 5, 14, 30, 45, 0, time.Local), true},
		{"IMG_20240305_143045.jpg", time.Date(2024, 3, 5, 14, 30, 45, 0, time.Local), true},
		{"cam1_2024-01-01_0015_final.jpg", time.Date(2024, 1, 1, 0, 15, 0, 0, time.Local), true},
		{"snapshot.jpg", time.Time{}, false},
		{"2024-13-01_0015.jpg", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.name)
			if ok != tt.ok {
				t.Fatalf("ok: expected %v, got %v", tt.ok, ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
